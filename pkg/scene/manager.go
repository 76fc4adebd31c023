package scene

import (
	"log"

	"github.com/decker502/animstudio/pkg/animation"
)

// Manager owns all scene objects. It keeps insertion order for deterministic
// drawing and a name index for the lookups the animation core performs every
// frame. Names are unique; creating an object under an existing name replaces
// the old one.
type Manager struct {
	objects []*Object
	byName  map[string]*Object
}

// NewManager creates an empty scene.
func NewManager() *Manager {
	return &Manager{
		byName: make(map[string]*Object),
	}
}

// CreateObject creates, registers and returns a new object.
func (m *Manager) CreateObject(name, kind string) *Object {
	obj := NewObject(name, kind)
	m.AddObject(obj)
	return obj
}

// AddObject registers an object, replacing any existing object with the same
// name.
func (m *Manager) AddObject(obj *Object) {
	if obj == nil {
		log.Printf("[SceneManager] AddObject: nil object")
		return
	}
	if _, exists := m.byName[obj.Name()]; exists {
		m.RemoveObject(obj.Name())
		log.Printf("[SceneManager] replacing object %q", obj.Name())
	}
	m.objects = append(m.objects, obj)
	m.byName[obj.Name()] = obj
}

// RemoveObject unregisters the named object. Unknown names are ignored.
func (m *Manager) RemoveObject(name string) {
	if _, ok := m.byName[name]; !ok {
		return
	}
	delete(m.byName, name)
	for i, obj := range m.objects {
		if obj.Name() == name {
			m.objects = append(m.objects[:i], m.objects[i+1:]...)
			break
		}
	}
}

// Object returns the named object, or (nil, false).
func (m *Manager) Object(name string) (*Object, bool) {
	obj, ok := m.byName[name]
	return obj, ok
}

// Objects returns all objects in insertion order. Callers must not mutate the
// slice.
func (m *Manager) Objects() []*Object {
	return m.objects
}

// Count returns the number of registered objects.
func (m *Manager) Count() int {
	return len(m.objects)
}

// Clear removes every object.
func (m *Manager) Clear() {
	m.objects = nil
	m.byName = make(map[string]*Object)
}

// FindObjectByName implements the animation.Scene port: it resolves a named
// object as a transform target for players.
func (m *Manager) FindObjectByName(name string) (animation.Transformable, bool) {
	obj, ok := m.byName[name]
	if !ok {
		return nil, false
	}
	return obj, true
}
