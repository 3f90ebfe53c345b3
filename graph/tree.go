package graph

import (
	"fmt"
)

// Link connects a named output socket to a named input socket within a tree.
// Input sockets accept at most one link.
type Link struct {
	FromNode   string
	FromSocket string
	ToNode     string
	ToSocket   string
}

// Tree is a named node container: the top level node tree of a material, or
// the subtree backing a group node. Lookups return an explicit found flag
// so a missing node is always a decision point for the caller, never a nil
// that travels.
type Tree struct {
	Name string

	// Interface sockets when this tree backs a group node.
	Inputs  []*Socket
	Outputs []*Socket

	nodes map[string]*Node
	order []string
	links []Link
}

func NewTree(name string) *Tree {
	return &Tree{Name: name, nodes: map[string]*Node{}}
}

// Node returns the named node and whether it exists.
func (t *Tree) Node(name string) (*Node, bool) {
	n, ok := t.nodes[name]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (t *Tree) Nodes() []*Node {
	out := make([]*Node, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.nodes[name])
	}
	return out
}

// Len returns the node count.
func (t *Tree) Len() int { return len(t.nodes) }

// Add inserts a node, rejecting duplicate names.
func (t *Tree) Add(n *Node) error {
	if _, ok := t.nodes[n.Name]; ok {
		return fmt.Errorf("graph: tree %s: node %q already exists", t.Name, n.Name)
	}
	t.nodes[n.Name] = n
	t.order = append(t.order, n.Name)
	return nil
}

// Remove deletes the named node and every link touching it. Reports whether
// the node existed.
func (t *Tree) Remove(name string) bool {
	if _, ok := t.nodes[name]; !ok {
		return false
	}
	delete(t.nodes, name)
	for i, n := range t.order {
		if n == name {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	kept := t.links[:0]
	for _, l := range t.links {
		if l.FromNode != name && l.ToNode != name {
			kept = append(kept, l)
		}
	}
	t.links = kept
	return true
}

// Rename changes a node's lookup key, keeping links consistent. Renaming to
// an occupied name is an error.
func (t *Tree) Rename(old, new string) error {
	if old == new {
		return nil
	}
	n, ok := t.nodes[old]
	if !ok {
		return fmt.Errorf("graph: tree %s: rename: node %q not found", t.Name, old)
	}
	if _, ok := t.nodes[new]; ok {
		return fmt.Errorf("graph: tree %s: rename: node %q already exists", t.Name, new)
	}
	delete(t.nodes, old)
	n.Name = new
	t.nodes[new] = n
	for i, name := range t.order {
		if name == old {
			t.order[i] = new
			break
		}
	}
	for i := range t.links {
		if t.links[i].FromNode == old {
			t.links[i].FromNode = new
		}
		if t.links[i].ToNode == old {
			t.links[i].ToNode = new
		}
	}
	return nil
}

// Link connects fromNode's output socket to toNode's input socket. All four
// names are validated before any change; a conflicting link into the
// destination socket is replaced (last writer wins).
func (t *Tree) Link(fromNode, fromSocket, toNode, toSocket string) error {
	from, ok := t.nodes[fromNode]
	if !ok {
		return fmt.Errorf("graph: tree %s: link: node %q not found", t.Name, fromNode)
	}
	if _, ok := from.Output(fromSocket); !ok {
		return fmt.Errorf("graph: tree %s: link: node %q has no output %q", t.Name, fromNode, fromSocket)
	}
	to, ok := t.nodes[toNode]
	if !ok {
		return fmt.Errorf("graph: tree %s: link: node %q not found", t.Name, toNode)
	}
	if _, ok := to.Input(toSocket); !ok {
		return fmt.Errorf("graph: tree %s: link: node %q has no input %q", t.Name, toNode, toSocket)
	}
	t.Unlink(toNode, toSocket)
	t.links = append(t.links, Link{
		FromNode:   fromNode,
		FromSocket: fromSocket,
		ToNode:     toNode,
		ToSocket:   toSocket,
	})
	return nil
}

// Unlink removes the link feeding the given input socket, reporting whether
// one existed.
func (t *Tree) Unlink(toNode, toSocket string) bool {
	for i, l := range t.links {
		if l.ToNode == toNode && l.ToSocket == toSocket {
			t.links = append(t.links[:i], t.links[i+1:]...)
			return true
		}
	}
	return false
}

// LinkInto returns the link feeding the given input socket, if any.
func (t *Tree) LinkInto(toNode, toSocket string) (Link, bool) {
	for _, l := range t.links {
		if l.ToNode == toNode && l.ToSocket == toSocket {
			return l, true
		}
	}
	return Link{}, false
}

// Links returns a copy of the link table.
func (t *Tree) Links() []Link {
	out := make([]Link, len(t.links))
	copy(out, t.links)
	return out
}

// Clone deep-copies the tree under a new name.
func (t *Tree) Clone(name string) *Tree {
	c := NewTree(name)
	c.Inputs = cloneSockets(t.Inputs)
	c.Outputs = cloneSockets(t.Outputs)
	for _, n := range t.Nodes() {
		// Add cannot fail here: names were unique in the source tree.
		_ = c.Add(n.Clone())
	}
	c.links = make([]Link, len(t.links))
	copy(c.links, t.links)
	return c
}
