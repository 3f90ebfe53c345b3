package templates

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SocketRef names one end of a link.
type SocketRef struct {
	Node   string `yaml:"node"`
	Socket string `yaml:"socket"`
}

// LinkSpec connects an output socket to an input socket.
type LinkSpec struct {
	From SocketRef `yaml:"from"`
	To   SocketRef `yaml:"to"`
}

// NodeSpec describes one node of a template tree. Inputs/Outputs override
// the type's default socket layout when present (used for nodes with bespoke
// interfaces like the normal/height combiner).
type NodeSpec struct {
	Name    string     `yaml:"name"`
	Type    string     `yaml:"type"`
	Label   string     `yaml:"label,omitempty"`
	X       float64    `yaml:"x,omitempty"`
	Y       float64    `yaml:"y,omitempty"`
	Width   float64    `yaml:"width,omitempty"`
	Inputs  []string   `yaml:"inputs,omitempty"`
	Outputs []string   `yaml:"outputs,omitempty"`
	Source  string     `yaml:"source,omitempty"`
	Value   [4]float32 `yaml:"value,omitempty"`
	Script  string     `yaml:"script,omitempty"`
	Mode    string     `yaml:"mode,omitempty"`
}

// GroupSpec is a reusable sub-graph template instantiated per layer.
type GroupSpec struct {
	Name    string     `yaml:"name"`
	Inputs  []string   `yaml:"inputs,omitempty"`
	Outputs []string   `yaml:"outputs,omitempty"`
	Nodes   []NodeSpec `yaml:"nodes"`
	Links   []LinkSpec `yaml:"links,omitempty"`
}

// MaterialSpec is a material node tree template: the base shading network a
// layer stack feeds into.
type MaterialSpec struct {
	Name  string     `yaml:"name"`
	Nodes []NodeSpec `yaml:"nodes"`
	Links []LinkSpec `yaml:"links,omitempty"`
}

// specFile is the on-disk shape of a template file: one group or one
// material template per file.
type specFile struct {
	Group    *GroupSpec    `yaml:"group,omitempty"`
	Material *MaterialSpec `yaml:"material,omitempty"`
}

// LoadSpec reads and unmarshals a single yaml template file.
func LoadSpec[T any](dir, filename string) (T, error) {
	var zero T
	data, err := load(dir, filename)
	if err != nil {
		return zero, fmt.Errorf("templates: load %s: %w", filename, err)
	}
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("templates: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

func (s *GroupSpec) validate() error {
	if s.Name == "" {
		return fmt.Errorf("templates: group template missing name")
	}
	if len(s.Nodes) == 0 {
		return fmt.Errorf("templates: group %s has no nodes", s.Name)
	}
	return validateNodes(s.Name, s.Nodes)
}

func (s *MaterialSpec) validate() error {
	if s.Name == "" {
		return fmt.Errorf("templates: material template missing name")
	}
	if len(s.Nodes) == 0 {
		return fmt.Errorf("templates: material %s has no nodes", s.Name)
	}
	return validateNodes(s.Name, s.Nodes)
}

func validateNodes(owner string, nodes []NodeSpec) error {
	seen := map[string]bool{}
	for _, n := range nodes {
		if n.Name == "" {
			return fmt.Errorf("templates: %s: node missing name", owner)
		}
		if seen[n.Name] {
			return fmt.Errorf("templates: %s: duplicate node %q", owner, n.Name)
		}
		seen[n.Name] = true
	}
	return nil
}
