package opengl

import "github.com/go-gl/gl/v4.1-core/gl"

// glCalls is the subset of GL state calls the renderer filters.
type glCalls interface {
	Enable(capability uint32)
	Disable(capability uint32)
	BindTexture(target, texture uint32)
}

type driverCalls struct{}

func (driverCalls) Enable(capability uint32)  { gl.Enable(capability) }
func (driverCalls) Disable(capability uint32) { gl.Disable(capability) }
func (driverCalls) BindTexture(target, texture uint32) {
	gl.BindTexture(target, texture)
}

// glState remembers the capabilities and texture binding it has set so that
// repeated requests for the same state reach the driver once.
// It must be reset whenever GL state is changed behind its back.
type glState struct {
	calls   glCalls
	enabled map[uint32]bool
	texture uint32
	bound   bool
}

func newGLState(calls glCalls) *glState {
	return &glState{calls: calls, enabled: make(map[uint32]bool)}
}

func (s *glState) reset() {
	clear(s.enabled)
	s.texture = 0
	s.bound = false
}

func (s *glState) enable(capability uint32) {
	if on, known := s.enabled[capability]; known && on {
		return
	}
	s.calls.Enable(capability)
	s.enabled[capability] = true
}

func (s *glState) disable(capability uint32) {
	if on, known := s.enabled[capability]; known && !on {
		return
	}
	s.calls.Disable(capability)
	s.enabled[capability] = false
}

func (s *glState) bindTexture(id uint32) {
	if s.bound && s.texture == id {
		return
	}
	s.calls.BindTexture(gl.TEXTURE_2D, id)
	s.texture = id
	s.bound = true
}
