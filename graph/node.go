package graph

// Value is the payload carried on sockets and value sources: RGBA for color
// channels, a uniform component for scalar channels.
type Value [4]float32

// Scalar builds a colourless value where every component holds v.
func Scalar(v float32) Value { return Value{v, v, v, 1} }

// Color builds an opaque RGB value.
func Color(r, g, b float32) Value { return Value{r, g, b, 1} }

// NodeType enumerates the node kinds the material trees are built from.
type NodeType int

const (
	NodeGroup NodeType = iota // instance of a group tree
	NodeValue                 // channel value source (uniform, color, texture or script)
	NodeMix                   // linear mix of two inputs by a factor
	NodeProjection            // texture coordinate projection
	NodeBSDF                  // final shading node
	NodeOutput                // material output
	NodeGroupInput            // group interface input
	NodeGroupOutput           // group interface output
)

func (t NodeType) String() string {
	switch t {
	case NodeGroup:
		return "group"
	case NodeValue:
		return "value"
	case NodeMix:
		return "mix"
	case NodeProjection:
		return "projection"
	case NodeBSDF:
		return "bsdf"
	case NodeOutput:
		return "output"
	case NodeGroupInput:
		return "group_input"
	case NodeGroupOutput:
		return "group_output"
	default:
		return "unknown"
	}
}

// ProjectionMode selects how a layer's textures are projected onto the
// object.
type ProjectionMode int

const (
	ProjectionFlat ProjectionMode = iota
	ProjectionTriplanar
	ProjectionDecal
)

func (m ProjectionMode) String() string {
	switch m {
	case ProjectionFlat:
		return "Flat"
	case ProjectionTriplanar:
		return "Triplanar"
	case ProjectionDecal:
		return "Decal"
	default:
		return "Unknown"
	}
}

// Socket is a named input or output on a node.
type Socket struct {
	Name    string
	Default Value
}

// Node is one node in a tree. Name is the lookup key within the owning tree;
// ID is a stable identity that survives renames (layer group nodes carry
// their slot token here so structural rebuilds can match nodes to slots).
type Node struct {
	ID    string
	Name  string
	Label string
	Type  NodeType

	X     float64
	Y     float64
	Width float64

	Inputs  []*Socket
	Outputs []*Socket

	// Group is the instantiated subtree for NodeGroup nodes.
	Group *Tree
	// Source drives NodeValue nodes.
	Source *Source
	// Mode applies to NodeProjection nodes.
	Mode ProjectionMode
}

// NewNode builds a node of the given type with that type's socket layout.
func NewNode(name string, typ NodeType) *Node {
	n := &Node{Name: name, Type: typ}
	switch typ {
	case NodeValue:
		n.Outputs = sockets("Value")
		n.Source = &Source{Kind: SourceUniform}
	case NodeMix:
		n.Inputs = sockets("A", "B", "Factor")
		n.Outputs = sockets("Result")
	case NodeProjection:
		n.Outputs = sockets("Vector")
	case NodeBSDF:
		n.Inputs = sockets("Base Color", "Subsurface", "Metallic", "Specular", "Roughness", "Emission", "Alpha", "Normal")
		n.Outputs = sockets("BSDF")
	case NodeOutput:
		n.Inputs = sockets("Surface")
	}
	return n
}

// NewGroupNode builds a group node exposing the interface of the given tree.
func NewGroupNode(name string, group *Tree) *Node {
	n := &Node{Name: name, Type: NodeGroup, Group: group}
	for _, s := range group.Inputs {
		n.Inputs = append(n.Inputs, &Socket{Name: s.Name, Default: s.Default})
	}
	for _, s := range group.Outputs {
		n.Outputs = append(n.Outputs, &Socket{Name: s.Name, Default: s.Default})
	}
	return n
}

func sockets(names ...string) []*Socket {
	out := make([]*Socket, len(names))
	for i, name := range names {
		out[i] = &Socket{Name: name}
	}
	return out
}

func findSocket(list []*Socket, name string) (*Socket, bool) {
	for _, s := range list {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Input returns the named input socket.
func (n *Node) Input(name string) (*Socket, bool) { return findSocket(n.Inputs, name) }

// Output returns the named output socket.
func (n *Node) Output(name string) (*Socket, bool) { return findSocket(n.Outputs, name) }

// Clone deep-copies the node, including its group subtree and value source.
func (n *Node) Clone() *Node {
	c := *n
	c.Inputs = cloneSockets(n.Inputs)
	c.Outputs = cloneSockets(n.Outputs)
	if n.Group != nil {
		c.Group = n.Group.Clone(n.Group.Name)
	}
	if n.Source != nil {
		src := *n.Source
		src.compiled = nil
		c.Source = &src
	}
	return &c
}

func cloneSockets(list []*Socket) []*Socket {
	out := make([]*Socket, len(list))
	for i, s := range list {
		cp := *s
		out[i] = &cp
	}
	return out
}
