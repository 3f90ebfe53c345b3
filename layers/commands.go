package layers

import (
	"fmt"

	"github.com/matforge/matforge/graph"
	"github.com/matforge/matforge/material"
	"github.com/matforge/matforge/scene"
	"github.com/matforge/matforge/templates"
)

// Session is the editing context every layer command runs against: the open
// scene, the layer stack for the active material, and the template library.
// A session is created when a material becomes active and discarded when the
// user switches away. Commands run to completion on the UI thread, one at a
// time; they are not reentrant.
type Session struct {
	Scene   *scene.Scene
	Stack   *material.Stack
	Library *templates.Library
}

func NewSession(sc *scene.Scene, lib *templates.Library) *Session {
	return &Session{
		Scene:   sc,
		Stack:   material.NewStack(),
		Library: lib,
	}
}

// CanEditLayers is the precondition every layer command is gated by: an
// active object that supports materials.
func (s *Session) CanEditLayers() bool {
	obj, ok := s.Scene.ActiveObject()
	return ok && obj.Type == scene.GeometryMesh
}

func (s *Session) pollTarget() (*scene.Object, error) {
	obj, ok := s.Scene.ActiveObject()
	if !ok {
		return nil, fmt.Errorf("%w: no active object", ErrPrecondition)
	}
	if obj.Type != scene.GeometryMesh {
		return nil, fmt.Errorf("%w: active object must be a mesh", ErrPrecondition)
	}
	return obj, nil
}

func (s *Session) pollSelected() (int, error) {
	if s.Stack.SelectedIndex < 0 {
		return -1, fmt.Errorf("%w: no layer selected", ErrPrecondition)
	}
	return s.Stack.SelectedIndex, nil
}

// ensureMaterial returns the active object's material, instantiating the
// default material template into the active slot when the object has none.
// The new material is named after the object.
func (s *Session) ensureMaterial(obj *scene.Object) (*scene.Material, error) {
	if mat, ok := obj.ActiveMaterial(); ok {
		return mat, nil
	}
	mat, err := s.Library.NewMaterial(templates.DefaultMaterial, obj.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInconsistentGraph, err)
	}
	if obj.ActiveSlot >= 0 && obj.ActiveSlot < len(obj.MaterialSlots) {
		obj.MaterialSlots[obj.ActiveSlot].Material = mat
	} else {
		obj.AppendMaterial(mat)
	}
	return mat, nil
}

// Synchronizer returns a synchronizer for the active object's material. The
// material must already exist.
func (s *Session) Synchronizer() (*Synchronizer, error) {
	obj, err := s.pollTarget()
	if err != nil {
		return nil, err
	}
	mat, ok := obj.ActiveMaterial()
	if !ok {
		return nil, fmt.Errorf("%w: active object has no material", ErrInconsistentGraph)
	}
	return NewSynchronizer(mat, s.Library), nil
}

// apply runs a slot-store mutation followed by a graph sync as one step: if
// the sync fails, the slot change is rolled back so the count/len invariant
// holds and the user never sees a partial apply.
func (s *Session) apply(sync *Synchronizer, mutate func() error) error {
	slots := s.Stack.Slots()
	selected := s.Stack.SelectedIndex
	if err := mutate(); err != nil {
		return err
	}
	if err := sync.Sync(s.Stack); err != nil {
		s.Stack.Restore(slots, selected)
		return err
	}
	return nil
}

// AddMaterialLayer adds a fill layer above the selection (or at the top when
// nothing is selected) and selects it.
func (s *Session) AddMaterialLayer() error {
	_, err := s.addLayer()
	return err
}

func (s *Session) addLayer() (*Synchronizer, error) {
	obj, err := s.pollTarget()
	if err != nil {
		return nil, err
	}
	mat, err := s.ensureMaterial(obj)
	if err != nil {
		return nil, err
	}
	sync := NewSynchronizer(mat, s.Library)
	err = s.apply(sync, func() error {
		_, err := s.Stack.AddSlot()
		return err
	})
	if err != nil {
		return nil, err
	}
	return sync, nil
}

// AddPaintLayer adds a fill layer whose color channel reads from a fresh
// blank paint image, ready for texture painting.
func (s *Session) AddPaintLayer() error {
	sync, err := s.addLayer()
	if err != nil {
		return err
	}
	index := s.Stack.SelectedIndex
	slot, _ := s.Stack.Slot(index)
	node, ok := sync.ChannelValueNode(index, material.ChannelColor)
	if !ok {
		return fmt.Errorf("%w: layer %d has no color value node", ErrInconsistentGraph, index)
	}
	node.Source = &graph.Source{
		Kind:        graph.SourceTexture,
		Image:       "paint_" + slot.ID,
		ImageWidth:  1024,
		ImageHeight: 1024,
	}
	return nil
}

// AddDecalLayer adds a decal layer: projection switched to decal mode and an
// empty scene object created as the decal anchor.
func (s *Session) AddDecalLayer() error {
	sync, err := s.addLayer()
	if err != nil {
		return err
	}
	index := s.Stack.SelectedIndex
	slot, _ := s.Stack.Slot(index)
	slot.Type = material.LayerDecal
	node, ok := sync.ProjectionNode(index)
	if !ok {
		return fmt.Errorf("%w: layer %d has no projection node", ErrInconsistentGraph, index)
	}
	node.Mode = graph.ProjectionDecal
	s.Scene.AddEmpty("Decal_" + slot.ID)
	return nil
}

// MoveLayer moves the selected layer one step up or down the stack. Boundary
// moves are quiet no-ops.
func (s *Session) MoveLayer(dir material.MoveDirection) error {
	index, err := s.pollSelected()
	if err != nil {
		return err
	}
	sync, err := s.Synchronizer()
	if err != nil {
		return err
	}
	return s.apply(sync, func() error {
		_, err := s.Stack.MoveSlot(index, dir)
		return err
	})
}

// DuplicateLayer inserts a copy of the selected layer directly above it,
// carrying its channel values, opacities and projection mode under a fresh
// token.
func (s *Session) DuplicateLayer() error {
	index, err := s.pollSelected()
	if err != nil {
		return err
	}
	sync, err := s.Synchronizer()
	if err != nil {
		return err
	}
	err = s.apply(sync, func() error {
		_, err := s.Stack.DuplicateSlot(index)
		return err
	})
	if err != nil {
		return err
	}
	// The source slot moved one step down when the copy was inserted.
	return sync.CopyLayerValues(s.Stack.SelectedIndex+1, s.Stack.SelectedIndex)
}

// DeleteLayer removes the selected layer's slot and its graph nodes
// together.
func (s *Session) DeleteLayer() error {
	index, err := s.pollSelected()
	if err != nil {
		return err
	}
	sync, err := s.Synchronizer()
	if err != nil {
		return err
	}
	return s.apply(sync, func() error {
		return s.Stack.RemoveSlot(index)
	})
}

// ToggleLayerHidden flips the selected layer's hidden flag. Hidden layers
// keep their nodes but stop contributing to channel evaluation.
func (s *Session) ToggleLayerHidden() error {
	index, err := s.pollSelected()
	if err != nil {
		return err
	}
	if _, err := s.pollTarget(); err != nil {
		return err
	}
	slot, ok := s.Stack.Slot(index)
	if !ok {
		return material.ErrSlotIndex
	}
	slot.Hidden = !slot.Hidden
	return nil
}

// EvalChannel samples the given channel of the visible layer stack at
// normalized coordinates, for preview rendering.
func (s *Session) EvalChannel(ch material.Channel, x, y float64) (graph.Value, error) {
	sync, err := s.Synchronizer()
	if err != nil {
		return graph.Value{}, err
	}
	var groups []*graph.Tree
	for i := 0; i < s.Stack.Len(); i++ {
		slot, _ := s.Stack.Slot(i)
		if slot.Hidden {
			continue
		}
		g, ok := sync.LayerGroup(i)
		if !ok {
			return graph.Value{}, fmt.Errorf("%w: no layer group at index %d", ErrInconsistentGraph, i)
		}
		groups = append(groups, g)
	}
	return graph.EvalChannel(groups, ch.Key(), x, y), nil
}
