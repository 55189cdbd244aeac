package halfedge3d

import "sync"

// Scene is the set of models drawn each frame, the camera they are seen
// through and the light that shades them. It is safe to swap models from
// one goroutine while another renders.
type Scene struct {
	mu     sync.RWMutex
	camera Camera
	models []*Model
	Light  Light
}

func NewScene(camera Camera, light Light) *Scene {
	return &Scene{camera: camera, Light: light}
}

func (s *Scene) Camera() Camera { return s.camera }

func (s *Scene) AddModel(m *Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models = append(s.models, m)
}

// Models returns a snapshot of the models in the order they were added.
func (s *Scene) Models() []*Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Model, len(s.models))
	copy(out, s.models)
	return out
}

// Model returns the model called name, or nil.
func (s *Scene) Model(name string) *Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.models {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Replace swaps in m for the model with the same name. The old model's
// transform carries over so a reloaded mesh stays where it was. It reports
// whether a model was replaced.
func (s *Scene) Replace(m *Model) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, old := range s.models {
		if old.Name != m.Name {
			continue
		}
		m.Transform = old.Transform
		s.models[i] = m
		return true
	}
	return false
}
