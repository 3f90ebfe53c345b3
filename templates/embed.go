package templates

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var TemplatesFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// load reads a template file, preferring a file on disk under dir (when dir
// is non-empty) over the embedded copy. This lets artists override the
// shipped templates without rebuilding.
func load(dir, name string) ([]byte, error) {
	clean := cleanPath(name)
	if dir != "" {
		if data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(clean))); err == nil {
			return data, nil
		}
	}
	if strings.HasPrefix(clean, "scripts/") {
		return ScriptsFS.ReadFile(clean)
	}
	return TemplatesFS.ReadFile(clean)
}

func cleanPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	return strings.TrimPrefix(s, "templates/")
}

// listSpecFiles returns the yaml template file names, merging embedded files
// with any extras found on disk under dir. Disk names shadow embedded ones.
func listSpecFiles(dir string) ([]string, error) {
	seen := map[string]bool{}
	var names []string

	entries, err := TemplatesFS.ReadDir(".")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() || !isSpecFile(e.Name()) {
			continue
		}
		seen[e.Name()] = true
		names = append(names, e.Name())
	}

	if dir != "" {
		diskEntries, err := os.ReadDir(dir)
		if err == nil {
			for _, e := range diskEntries {
				if e.IsDir() || !isSpecFile(e.Name()) || seen[e.Name()] {
					continue
				}
				names = append(names, e.Name())
			}
		}
	}
	return names, nil
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
