// Package layers keeps a material's layer slot store and its procedural node
// tree structurally in step, and exposes the user-facing layer commands.
//
// Two identities coexist: slots are keyed by random tokens that survive
// moves, while graph nodes are keyed by position (the layer node at index i
// is named "i" and owns a group tree named "<material>_<i>"). The positional
// names are a derived projection of the token-keyed sequence and are
// recomputed wholesale on every structural change, never patched
// incrementally.
package layers

import (
	"fmt"
	"strconv"

	"github.com/matforge/matforge/graph"
	"github.com/matforge/matforge/material"
	"github.com/matforge/matforge/scene"
	"github.com/matforge/matforge/templates"
)

// Shading network node names expected in every material built from the
// default material template.
const (
	bsdfNodeName     = "MATFORGE_BSDF"
	combinerNodeName = "NORMAL_HEIGHT_MIX"
)

// LayerGroupNodeName derives the group tree name for the layer at the given
// index. Deterministic and injective for index >= 0.
func LayerGroupNodeName(materialName string, index int) string {
	return fmt.Sprintf("%s_%d", materialName, index)
}

func layerNodeName(index int) string {
	return strconv.Itoa(index)
}

// Synchronizer re-derives a material's layer nodes from a slot stack.
type Synchronizer struct {
	mat *scene.Material
	lib *templates.Library
}

func NewSynchronizer(mat *scene.Material, lib *templates.Library) *Synchronizer {
	return &Synchronizer{mat: mat, lib: lib}
}

// Material returns the material this synchronizer edits.
func (s *Synchronizer) Material() *scene.Material { return s.mat }

// CountLayers reads the layer count from the node tree by probing
// integer-named layer nodes from 0 until the first miss. The tree, not the
// slot store, is the authority here; every command keeps the two equal.
func (s *Synchronizer) CountLayers() int {
	count := 0
	for {
		if _, ok := s.mat.Tree.Node(layerNodeName(count)); !ok {
			return count
		}
		count++
	}
}

// LayerNode returns the layer group node at the given index.
func (s *Synchronizer) LayerNode(index int) (*graph.Node, bool) {
	return s.mat.Tree.Node(layerNodeName(index))
}

// LayerGroup returns the group tree owned by the layer node at index.
func (s *Synchronizer) LayerGroup(index int) (*graph.Tree, bool) {
	n, ok := s.LayerNode(index)
	if !ok || n.Group == nil {
		return nil, false
	}
	return n.Group, true
}

// ProjectionNode returns the projection node inside the layer's group.
func (s *Synchronizer) ProjectionNode(index int) (*graph.Node, bool) {
	return s.groupNode(index, "PROJECTION")
}

// ChannelValueNode returns the value node for a channel inside the layer's
// group.
func (s *Synchronizer) ChannelValueNode(index int, ch material.Channel) (*graph.Node, bool) {
	return s.groupNode(index, ch.Key()+"_VALUE")
}

// ChannelOpacityNode returns the opacity node for a channel inside the
// layer's group.
func (s *Synchronizer) ChannelOpacityNode(index int, ch material.Channel) (*graph.Node, bool) {
	return s.groupNode(index, ch.Key()+"_OPACITY")
}

// ChannelMixNode returns the mix node for a channel inside the layer's group.
func (s *Synchronizer) ChannelMixNode(index int, ch material.Channel) (*graph.Node, bool) {
	return s.groupNode(index, ch.Key()+"_MIX")
}

func (s *Synchronizer) groupNode(index int, name string) (*graph.Node, bool) {
	g, ok := s.LayerGroup(index)
	if !ok {
		return nil, false
	}
	return g.Node(name)
}

// Sync makes the node tree's layer structure match the stack: one layer node
// per slot, in slot order, named by position, with orphaned nodes removed.
// All template and shading-node lookups happen before any mutation, so a
// failure leaves both the tree and the count/len invariant untouched.
func (s *Synchronizer) Sync(stack *material.Stack) error {
	// Preflight. Appending the default group is idempotent; it also proves
	// the template library can serve new layer instances.
	if _, err := s.lib.AppendGroup(templates.DefaultLayerGroup); err != nil {
		return fmt.Errorf("%w: %v", ErrInconsistentGraph, err)
	}
	if stack.Len() > 0 {
		if _, ok := s.mat.Tree.Node(bsdfNodeName); !ok {
			return fmt.Errorf("%w: material %s has no %s node", ErrInconsistentGraph, s.mat.Name, bsdfNodeName)
		}
		if _, ok := s.mat.Tree.Node(combinerNodeName); !ok {
			return fmt.Errorf("%w: material %s has no %s node", ErrInconsistentGraph, s.mat.Name, combinerNodeName)
		}
	}

	// Collect the current layer nodes by slot token and move them to
	// temporary names so renumbering cannot collide with itself.
	existing := s.CountLayers()
	byToken := make(map[string]*graph.Node, existing)
	for i := 0; i < existing; i++ {
		node, _ := s.mat.Tree.Node(layerNodeName(i))
		temp := "__sync_" + node.ID
		if err := s.mat.Tree.Rename(node.Name, temp); err != nil {
			return fmt.Errorf("%w: %v", ErrInconsistentGraph, err)
		}
		byToken[node.ID] = node
	}

	// Renumber surviving layers and instantiate groups for new slots.
	for i, slot := range stack.Slots() {
		if node, ok := byToken[slot.ID]; ok {
			if err := s.mat.Tree.Rename(node.Name, layerNodeName(i)); err != nil {
				return fmt.Errorf("%w: %v", ErrInconsistentGraph, err)
			}
			node.Label = "Layer " + strconv.Itoa(i)
			if node.Group != nil {
				node.Group.Name = LayerGroupNodeName(s.mat.Name, i)
			}
			delete(byToken, slot.ID)
			continue
		}
		group, err := s.lib.NewGroupTree(templates.DefaultLayerGroup, LayerGroupNodeName(s.mat.Name, i))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInconsistentGraph, err)
		}
		node := graph.NewGroupNode(layerNodeName(i), group)
		node.ID = slot.ID
		node.Label = "Layer " + strconv.Itoa(i)
		if err := s.mat.Tree.Add(node); err != nil {
			return fmt.Errorf("%w: %v", ErrInconsistentGraph, err)
		}
	}

	// Drop layer nodes whose slots are gone.
	for _, node := range byToken {
		s.mat.Tree.Remove(node.Name)
	}

	s.OrganizeLayout(stack)
	if stack.Len() > 0 {
		if err := s.RelinkOutputs(stack.Len()); err != nil {
			return err
		}
	}
	return nil
}

// OrganizeLayout repositions the layer nodes along the x axis at a fixed
// pitch, topmost layer nearest the shading nodes, so the tree stays readable.
// Layout only; no topology change.
func (s *Synchronizer) OrganizeLayout(stack *material.Stack) {
	pitch := stack.NodeSpacing
	if pitch <= 0 {
		pitch = 500
	}
	x := -pitch
	for i := 0; ; i++ {
		node, ok := s.LayerNode(i)
		if !ok {
			return
		}
		node.Width = stack.NodeWidth
		node.X = x
		node.Y = 0
		x -= pitch
	}
}

// bsdfInputs maps layer output sockets to inputs on the final shading node.
var bsdfInputs = [][2]string{
	{"Color", "Base Color"},
	{"Subsurface", "Subsurface"},
	{"Metallic", "Metallic"},
	{"Specular", "Specular"},
	{"Roughness", "Roughness"},
	{"Emission", "Emission"},
	{"Alpha", "Alpha"},
}

// RelinkOutputs rewires the chain between layer group nodes and feeds the
// topmost layer's channel outputs into the shading network: seven channels
// into the BSDF node, normal and height into the combiner. Conflicting links
// on those inputs are replaced. Missing nodes abort before any link change.
func (s *Synchronizer) RelinkOutputs(count int) error {
	tree := s.mat.Tree
	if _, ok := tree.Node(bsdfNodeName); !ok {
		return fmt.Errorf("%w: material %s has no %s node", ErrInconsistentGraph, s.mat.Name, bsdfNodeName)
	}
	if _, ok := tree.Node(combinerNodeName); !ok {
		return fmt.Errorf("%w: material %s has no %s node", ErrInconsistentGraph, s.mat.Name, combinerNodeName)
	}
	for i := 0; i < count; i++ {
		if _, ok := tree.Node(layerNodeName(i)); !ok {
			return fmt.Errorf("%w: material %s has no layer node %d", ErrInconsistentGraph, s.mat.Name, i)
		}
	}

	// Each layer reads the composited result of the layers beneath it.
	for i := 0; i+1 < count; i++ {
		under := layerNodeName(i + 1)
		over := layerNodeName(i)
		for _, ch := range material.Channels() {
			if err := tree.Link(under, ch.String(), over, ch.String()); err != nil {
				return fmt.Errorf("%w: %v", ErrInconsistentGraph, err)
			}
		}
	}

	top := layerNodeName(0)
	for _, pair := range bsdfInputs {
		if err := tree.Link(top, pair[0], bsdfNodeName, pair[1]); err != nil {
			return fmt.Errorf("%w: %v", ErrInconsistentGraph, err)
		}
	}
	if err := tree.Link(top, "Normal", combinerNodeName, "Normal"); err != nil {
		return fmt.Errorf("%w: %v", ErrInconsistentGraph, err)
	}
	if err := tree.Link(top, "Height", combinerNodeName, "Height"); err != nil {
		return fmt.Errorf("%w: %v", ErrInconsistentGraph, err)
	}
	return nil
}

// CopyLayerValues copies channel value sources, opacities and the projection
// mode from one layer's group to another's. Used by layer duplication.
func (s *Synchronizer) CopyLayerValues(srcIndex, dstIndex int) error {
	src, ok := s.LayerGroup(srcIndex)
	if !ok {
		return fmt.Errorf("%w: no layer group at index %d", ErrInconsistentGraph, srcIndex)
	}
	dst, ok := s.LayerGroup(dstIndex)
	if !ok {
		return fmt.Errorf("%w: no layer group at index %d", ErrInconsistentGraph, dstIndex)
	}

	for _, ch := range material.Channels() {
		for _, suffix := range []string{"_VALUE", "_OPACITY"} {
			name := ch.Key() + suffix
			from, ok := src.Node(name)
			if !ok || from.Source == nil {
				continue
			}
			to, ok := dst.Node(name)
			if !ok {
				continue
			}
			copied := *from.Source
			to.Source = &copied
		}
	}
	if from, ok := src.Node("PROJECTION"); ok {
		if to, ok := dst.Node("PROJECTION"); ok {
			to.Mode = from.Mode
		}
	}
	return nil
}

// Verify checks that the graph-derived layer count and naming agree with the
// stack. The two are kept equal by construction; divergence (an external
// graph edit) is reported as ErrInconsistentGraph, and Sync is the repair
// pass.
func (s *Synchronizer) Verify(stack *material.Stack) error {
	count := s.CountLayers()
	if count != stack.Len() {
		return fmt.Errorf("%w: graph has %d layers, stack has %d", ErrInconsistentGraph, count, stack.Len())
	}
	for i := 0; i < count; i++ {
		node, _ := s.LayerNode(i)
		slot, _ := stack.Slot(i)
		if node.ID != slot.ID {
			return fmt.Errorf("%w: layer %d holds token %s, stack has %s", ErrInconsistentGraph, i, node.ID, slot.ID)
		}
		want := LayerGroupNodeName(s.mat.Name, i)
		if node.Group == nil || node.Group.Name != want {
			return fmt.Errorf("%w: layer %d group is not %s", ErrInconsistentGraph, i, want)
		}
	}
	return nil
}
