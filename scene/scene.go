// Package scene models the host document the material tools operate on: a
// flat object list with one active object, per-object material slots and the
// materials' node trees. State lives for the lifetime of the open document
// and is only touched from the editor loop.
package scene

import (
	"github.com/matforge/matforge/graph"
)

// GeometryType classifies an object's data. Material layers can only be
// authored on meshes; empties serve as decal anchors.
type GeometryType int

const (
	GeometryMesh GeometryType = iota
	GeometryCurve
	GeometryEmpty
)

func (t GeometryType) String() string {
	switch t {
	case GeometryMesh:
		return "Mesh"
	case GeometryCurve:
		return "Curve"
	case GeometryEmpty:
		return "Empty"
	default:
		return "Unknown"
	}
}

// Material owns the node tree the layer stack is built inside.
type Material struct {
	Name string
	Tree *graph.Tree
}

// MaterialSlot is one entry in an object's ordered slot list. Material may
// be nil for an empty slot.
type MaterialSlot struct {
	Material *Material
}

// Object is one scene object.
type Object struct {
	Name          string
	Type          GeometryType
	MaterialSlots []*MaterialSlot
	ActiveSlot    int
}

// ActiveMaterial returns the material in the active slot, if any.
func (o *Object) ActiveMaterial() (*Material, bool) {
	if o.ActiveSlot < 0 || o.ActiveSlot >= len(o.MaterialSlots) {
		return nil, false
	}
	slot := o.MaterialSlots[o.ActiveSlot]
	if slot == nil || slot.Material == nil {
		return nil, false
	}
	return slot.Material, true
}

// AppendMaterial adds a new slot holding m and makes it active.
func (o *Object) AppendMaterial(m *Material) {
	o.MaterialSlots = append(o.MaterialSlots, &MaterialSlot{Material: m})
	o.ActiveSlot = len(o.MaterialSlots) - 1
}

// Scene is the open document.
type Scene struct {
	objects []*Object
	active  *Object
}

func NewScene() *Scene { return &Scene{} }

// AddObject inserts an object and makes it active.
func (s *Scene) AddObject(o *Object) {
	s.objects = append(s.objects, o)
	s.active = o
}

// AddEmpty creates an empty object (decal anchor) without changing the
// active object.
func (s *Scene) AddEmpty(name string) *Object {
	o := &Object{Name: name, Type: GeometryEmpty}
	s.objects = append(s.objects, o)
	return o
}

// Objects returns every object in the scene.
func (s *Scene) Objects() []*Object { return s.objects }

// ActiveObject returns the active object, if any.
func (s *Scene) ActiveObject() (*Object, bool) {
	if s.active == nil {
		return nil, false
	}
	return s.active, true
}

// SetActiveObject switches the active object.
func (s *Scene) SetActiveObject(o *Object) { s.active = o }
