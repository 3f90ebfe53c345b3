package templates

import (
	"fmt"

	"github.com/matforge/matforge/graph"
	"github.com/matforge/matforge/scene"
)

// Names of the templates shipped with the tool.
const (
	DefaultLayerGroup = "MF_DefaultLayer"
	DefaultMaterial   = "MatForgeDefault"
)

// Library holds the parsed template specs for a session and the canonical
// group trees appended into the document so far. Appending the same group
// name twice yields the same tree; per-layer instances are fresh copies.
type Library struct {
	dir       string
	groups    map[string]*GroupSpec
	materials map[string]*MaterialSpec
	appended  map[string]*graph.Tree
}

// Load parses every yaml template, embedded plus any overrides/extras under
// dir (dir may be empty).
func Load(dir string) (*Library, error) {
	lib := &Library{
		dir:       dir,
		groups:    map[string]*GroupSpec{},
		materials: map[string]*MaterialSpec{},
		appended:  map[string]*graph.Tree{},
	}

	files, err := listSpecFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("templates: list specs: %w", err)
	}
	for _, name := range files {
		file, err := LoadSpec[specFile](dir, name)
		if err != nil {
			return nil, err
		}
		if file.Group != nil {
			if err := file.Group.validate(); err != nil {
				return nil, err
			}
			lib.groups[file.Group.Name] = file.Group
		}
		if file.Material != nil {
			if err := file.Material.validate(); err != nil {
				return nil, err
			}
			lib.materials[file.Material.Name] = file.Material
		}
	}
	return lib, nil
}

// Group returns the named group template spec.
func (l *Library) Group(name string) (*GroupSpec, bool) {
	g, ok := l.groups[name]
	return g, ok
}

// Material returns the named material template spec.
func (l *Library) Material(name string) (*MaterialSpec, bool) {
	m, ok := l.materials[name]
	return m, ok
}

// AppendGroup returns the canonical tree for the named group template,
// building it on first use. Re-appending a known name never duplicates it.
func (l *Library) AppendGroup(name string) (*graph.Tree, error) {
	if tree, ok := l.appended[name]; ok {
		return tree, nil
	}
	tree, err := l.NewGroupTree(name, name)
	if err != nil {
		return nil, err
	}
	l.appended[name] = tree
	return tree, nil
}

// NewGroupTree builds a fresh instance of the named group template under the
// given instance name.
func (l *Library) NewGroupTree(specName, instanceName string) (*graph.Tree, error) {
	spec, ok := l.groups[specName]
	if !ok {
		return nil, fmt.Errorf("templates: group template %q not found", specName)
	}
	tree := graph.NewTree(instanceName)
	for _, name := range spec.Inputs {
		tree.Inputs = append(tree.Inputs, &graph.Socket{Name: name})
	}
	for _, name := range spec.Outputs {
		tree.Outputs = append(tree.Outputs, &graph.Socket{Name: name})
	}
	if err := l.buildNodes(tree, spec.Nodes, spec.Links); err != nil {
		return nil, err
	}
	return tree, nil
}

// NewMaterial builds a material from the named material template.
func (l *Library) NewMaterial(templateName, materialName string) (*scene.Material, error) {
	spec, ok := l.materials[templateName]
	if !ok {
		return nil, fmt.Errorf("templates: material template %q not found", templateName)
	}
	tree := graph.NewTree(materialName)
	if err := l.buildNodes(tree, spec.Nodes, spec.Links); err != nil {
		return nil, err
	}
	return &scene.Material{Name: materialName, Tree: tree}, nil
}

func (l *Library) buildNodes(tree *graph.Tree, nodes []NodeSpec, links []LinkSpec) error {
	for _, ns := range nodes {
		n, err := l.buildNode(ns)
		if err != nil {
			return fmt.Errorf("templates: %s: %w", tree.Name, err)
		}
		if err := tree.Add(n); err != nil {
			return err
		}
	}
	for _, ls := range links {
		if err := tree.Link(ls.From.Node, ls.From.Socket, ls.To.Node, ls.To.Socket); err != nil {
			return fmt.Errorf("templates: %s: %w", tree.Name, err)
		}
	}
	return nil
}

func (l *Library) buildNode(ns NodeSpec) (*graph.Node, error) {
	typ, err := nodeType(ns.Type)
	if err != nil {
		return nil, err
	}
	n := graph.NewNode(ns.Name, typ)
	n.Label = ns.Label
	n.X, n.Y = ns.X, ns.Y
	n.Width = ns.Width

	if len(ns.Inputs) > 0 {
		n.Inputs = nil
		for _, name := range ns.Inputs {
			n.Inputs = append(n.Inputs, &graph.Socket{Name: name})
		}
	}
	if len(ns.Outputs) > 0 {
		n.Outputs = nil
		for _, name := range ns.Outputs {
			n.Outputs = append(n.Outputs, &graph.Socket{Name: name})
		}
	}

	if typ == graph.NodeValue {
		kind, err := sourceKind(ns.Source)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", ns.Name, err)
		}
		n.Source.Kind = kind
		n.Source.Value = graph.Value(ns.Value)
		if kind == graph.SourceScript {
			script, err := l.LoadScript(ns.Script)
			if err != nil {
				return nil, fmt.Errorf("node %s: %w", ns.Name, err)
			}
			n.Source.Script = script
		}
	}
	if typ == graph.NodeProjection {
		mode, err := projectionMode(ns.Mode)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", ns.Name, err)
		}
		n.Mode = mode
	}
	return n, nil
}

// LoadScript reads a value-source script by its template-relative path
// (scripts/<name>.tengo), honoring the disk override dir.
func (l *Library) LoadScript(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("templates: script source without script file")
	}
	if !isScriptFile(name) {
		return "", fmt.Errorf("templates: %s is not a .tengo script", name)
	}
	data, err := load(l.dir, name)
	if err != nil {
		return "", fmt.Errorf("templates: load script %s: %w", name, err)
	}
	return string(data), nil
}

func nodeType(s string) (graph.NodeType, error) {
	switch s {
	case "group":
		return graph.NodeGroup, nil
	case "value":
		return graph.NodeValue, nil
	case "mix":
		return graph.NodeMix, nil
	case "projection":
		return graph.NodeProjection, nil
	case "bsdf":
		return graph.NodeBSDF, nil
	case "output":
		return graph.NodeOutput, nil
	case "group_input":
		return graph.NodeGroupInput, nil
	case "group_output":
		return graph.NodeGroupOutput, nil
	default:
		return 0, fmt.Errorf("unknown node type %q", s)
	}
}

func sourceKind(s string) (graph.SourceKind, error) {
	switch s {
	case "", "uniform":
		return graph.SourceUniform, nil
	case "color":
		return graph.SourceColor, nil
	case "texture":
		return graph.SourceTexture, nil
	case "script":
		return graph.SourceScript, nil
	default:
		return 0, fmt.Errorf("unknown value source %q", s)
	}
}

func projectionMode(s string) (graph.ProjectionMode, error) {
	switch s {
	case "", "flat":
		return graph.ProjectionFlat, nil
	case "triplanar":
		return graph.ProjectionTriplanar, nil
	case "decal":
		return graph.ProjectionDecal, nil
	default:
		return 0, fmt.Errorf("unknown projection mode %q", s)
	}
}
