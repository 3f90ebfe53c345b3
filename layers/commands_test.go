package layers

import (
	"errors"
	"strings"
	"testing"

	"github.com/matforge/matforge/graph"
	"github.com/matforge/matforge/material"
	"github.com/matforge/matforge/scene"
	"github.com/matforge/matforge/templates"
)

func newTestSession(t *testing.T) (*Session, *scene.Object) {
	t.Helper()
	lib, err := templates.Load("")
	if err != nil {
		t.Fatalf("load templates: %v", err)
	}
	sc := scene.NewScene()
	obj := &scene.Object{Name: "Cube", Type: scene.GeometryMesh}
	sc.AddObject(obj)
	return NewSession(sc, lib), obj
}

func (s *Session) mustCount(t *testing.T) int {
	t.Helper()
	sync, err := s.Synchronizer()
	if err != nil {
		t.Fatalf("Synchronizer failed: %v", err)
	}
	return sync.CountLayers()
}

func TestAddMaterialLayerCreatesMaterial(t *testing.T) {
	s, obj := newTestSession(t)

	if err := s.AddMaterialLayer(); err != nil {
		t.Fatalf("AddMaterialLayer failed: %v", err)
	}

	mat, ok := obj.ActiveMaterial()
	if !ok {
		t.Fatalf("no material after adding a layer")
	}
	if mat.Name != "Cube" {
		t.Fatalf("material named %s, want Cube", mat.Name)
	}
	if s.Stack.Len() != 1 || s.Stack.SelectedIndex != 0 {
		t.Fatalf("stack len=%d sel=%d", s.Stack.Len(), s.Stack.SelectedIndex)
	}
	if got := s.mustCount(t); got != 1 {
		t.Fatalf("graph count %d", got)
	}
	if _, ok := mat.Tree.Node("0"); !ok {
		t.Fatalf("layer node 0 missing")
	}
}

func TestCountMatchesStackAcrossCommands(t *testing.T) {
	s, _ := newTestSession(t)

	steps := []struct {
		name string
		run  func() error
	}{
		{"add_1", s.AddMaterialLayer},
		{"add_2", s.AddMaterialLayer},
		{"add_paint", s.AddPaintLayer},
		{"duplicate", s.DuplicateLayer},
		{"move_up", func() error { return s.MoveLayer(material.MoveUp) }},
		{"move_down", func() error { return s.MoveLayer(material.MoveDown) }},
		{"delete", s.DeleteLayer},
		{"add_decal", s.AddDecalLayer},
		{"delete_2", s.DeleteLayer},
		{"delete_3", s.DeleteLayer},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			t.Fatalf("%s failed: %v", step.name, err)
		}
		sync, err := s.Synchronizer()
		if err != nil {
			t.Fatalf("%s: Synchronizer failed: %v", step.name, err)
		}
		if got := sync.CountLayers(); got != s.Stack.Len() {
			t.Fatalf("%s: graph count %d != stack len %d", step.name, got, s.Stack.Len())
		}
		if err := sync.Verify(s.Stack); err != nil {
			t.Fatalf("%s: Verify failed: %v", step.name, err)
		}
		if s.Stack.Len() > 0 && (s.Stack.SelectedIndex < 0 || s.Stack.SelectedIndex >= s.Stack.Len()) {
			t.Fatalf("%s: selection %d out of range", step.name, s.Stack.SelectedIndex)
		}
	}

	if s.Stack.Len() != 2 {
		t.Fatalf("expected 2 layers at the end, got %d", s.Stack.Len())
	}
}

func TestPreconditionFailures(t *testing.T) {
	lib, err := templates.Load("")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("no_active_object", func(t *testing.T) {
		s := NewSession(scene.NewScene(), lib)
		err := s.AddMaterialLayer()
		if !errors.Is(err, ErrPrecondition) {
			t.Fatalf("expected ErrPrecondition, got %v", err)
		}
		if !strings.Contains(err.Error(), "no active object") {
			t.Fatalf("unexpected message: %v", err)
		}
		if s.Stack.Len() != 0 {
			t.Fatalf("failed command mutated the stack")
		}
	})

	t.Run("non_mesh_object", func(t *testing.T) {
		sc := scene.NewScene()
		sc.AddObject(&scene.Object{Name: "Path", Type: scene.GeometryCurve})
		s := NewSession(sc, lib)
		if err := s.AddMaterialLayer(); !errors.Is(err, ErrPrecondition) {
			t.Fatalf("expected ErrPrecondition, got %v", err)
		}
		if s.CanEditLayers() {
			t.Fatalf("CanEditLayers should be false for a curve")
		}
	})

	t.Run("nothing_selected", func(t *testing.T) {
		s, _ := newTestSession(t)
		for _, run := range []func() error{
			func() error { return s.MoveLayer(material.MoveUp) },
			s.DuplicateLayer,
			s.DeleteLayer,
			s.ToggleLayerHidden,
		} {
			if err := run(); !errors.Is(err, ErrPrecondition) {
				t.Fatalf("expected ErrPrecondition, got %v", err)
			}
		}
	})
}

func TestFailedSyncRollsBackSlots(t *testing.T) {
	s, obj := newTestSession(t)

	// Hand the object a material that lacks the base shading network.
	obj.AppendMaterial(&scene.Material{Name: "Broken", Tree: graph.NewTree("Broken")})

	err := s.AddMaterialLayer()
	if !errors.Is(err, ErrInconsistentGraph) {
		t.Fatalf("expected ErrInconsistentGraph, got %v", err)
	}
	if s.Stack.Len() != 0 {
		t.Fatalf("slot survived a failed sync: len=%d", s.Stack.Len())
	}
	if s.Stack.SelectedIndex != -1 {
		t.Fatalf("selection %d after rollback", s.Stack.SelectedIndex)
	}
	sync, err := s.Synchronizer()
	if err != nil {
		t.Fatal(err)
	}
	if got := sync.CountLayers(); got != 0 {
		t.Fatalf("graph count %d after failed command", got)
	}
}

func TestAddPaintLayer(t *testing.T) {
	s, _ := newTestSession(t)

	if err := s.AddPaintLayer(); err != nil {
		t.Fatalf("AddPaintLayer failed: %v", err)
	}
	sync, err := s.Synchronizer()
	if err != nil {
		t.Fatal(err)
	}
	node, ok := sync.ChannelValueNode(0, material.ChannelColor)
	if !ok {
		t.Fatalf("no color value node")
	}
	if node.Source.Kind != graph.SourceTexture {
		t.Fatalf("color source is %v, want texture", node.Source.Kind)
	}
	slot, _ := s.Stack.Slot(0)
	if node.Source.Image != "paint_"+slot.ID {
		t.Fatalf("paint image named %s", node.Source.Image)
	}
	if node.Source.ImageWidth != 1024 || node.Source.ImageHeight != 1024 {
		t.Fatalf("paint image %dx%d", node.Source.ImageWidth, node.Source.ImageHeight)
	}
}

func TestAddDecalLayer(t *testing.T) {
	s, _ := newTestSession(t)

	if err := s.AddDecalLayer(); err != nil {
		t.Fatalf("AddDecalLayer failed: %v", err)
	}
	slot, _ := s.Stack.Slot(0)
	if slot.Type != material.LayerDecal {
		t.Fatalf("slot type %v", slot.Type)
	}
	sync, err := s.Synchronizer()
	if err != nil {
		t.Fatal(err)
	}
	proj, ok := sync.ProjectionNode(0)
	if !ok {
		t.Fatalf("no projection node")
	}
	if proj.Mode != graph.ProjectionDecal {
		t.Fatalf("projection mode %v", proj.Mode)
	}

	found := false
	for _, o := range s.Scene.Objects() {
		if o.Type == scene.GeometryEmpty && o.Name == "Decal_"+slot.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("decal anchor object missing")
	}
}

func TestDuplicateLayerCopiesValues(t *testing.T) {
	s, _ := newTestSession(t)

	if err := s.AddMaterialLayer(); err != nil {
		t.Fatal(err)
	}
	sync, err := s.Synchronizer()
	if err != nil {
		t.Fatal(err)
	}
	v, _ := sync.ChannelValueNode(0, material.ChannelMetallic)
	v.Source.Value = graph.Scalar(1)

	if err := s.DuplicateLayer(); err != nil {
		t.Fatalf("DuplicateLayer failed: %v", err)
	}
	if s.Stack.Len() != 2 || s.Stack.SelectedIndex != 0 {
		t.Fatalf("len=%d sel=%d", s.Stack.Len(), s.Stack.SelectedIndex)
	}
	copied, _ := sync.ChannelValueNode(0, material.ChannelMetallic)
	if copied.Source.Value != graph.Scalar(1) {
		t.Fatalf("metallic value not copied to the duplicate")
	}
	a, _ := s.Stack.Slot(0)
	b, _ := s.Stack.Slot(1)
	if a.ID == b.ID {
		t.Fatalf("duplicate shares the source token")
	}
}

func TestToggleLayerHiddenAndEval(t *testing.T) {
	s, _ := newTestSession(t)

	if err := s.AddMaterialLayer(); err != nil {
		t.Fatal(err)
	}
	sync, err := s.Synchronizer()
	if err != nil {
		t.Fatal(err)
	}
	v, _ := sync.ChannelValueNode(0, material.ChannelColor)
	v.Source.Value = graph.Color(1, 0, 0)

	got, err := s.EvalChannel(material.ChannelColor, 0.5, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 1 {
		t.Fatalf("expected red layer to contribute, got %v", got)
	}

	if err := s.ToggleLayerHidden(); err != nil {
		t.Fatalf("ToggleLayerHidden failed: %v", err)
	}
	got, err = s.EvalChannel(material.ChannelColor, 0.5, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 0 {
		t.Fatalf("hidden layer still contributes: %v", got)
	}
}
