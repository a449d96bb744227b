package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/aethyra/gui"
)

// Window owns a GLFW window with a current OpenGL 4.1 core context.
// GLFW must be used from the main thread; callers lock it with
// runtime.LockOSThread before NewWindow.
type Window struct {
	win *glfw.Window

	onClick func(x, y int)
	onMove  func(x, y int)
}

// NewWindow initializes GLFW and OpenGL and opens a window. Any failure is
// returned and leaves nothing initialized.
func NewWindow(title string, width, height int) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}
	gui.Logger().Info("opengl context", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	w := &Window{win: win}
	win.SetMouseButtonCallback(w.mouseButtonCallback)
	win.SetCursorPosCallback(w.cursorPosCallback)
	return w, nil
}

// OnClick registers a handler for left clicks in window coordinates.
func (w *Window) OnClick(fn func(x, y int)) {
	w.onClick = fn
}

// OnMouseMove registers a handler for cursor movement.
func (w *Window) OnMouseMove(fn func(x, y int)) {
	w.onMove = fn
}

func (w *Window) mouseButtonCallback(win *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft || action != glfw.Press || w.onClick == nil {
		return
	}
	x, y := win.GetCursorPos()
	w.onClick(int(x), int(y))
}

func (w *Window) cursorPosCallback(win *glfw.Window, x, y float64) {
	if w.onMove != nil {
		w.onMove(int(x), int(y))
	}
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

// BeginFrame polls events, sets the viewport and clears the screen.
// It returns the framebuffer size.
func (w *Window) BeginFrame(bg gui.Color) (int, int) {
	glfw.PollEvents()
	fw, fh := w.win.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fw), int32(fh))
	gl.ClearColor(float32(bg.R)/255, float32(bg.G)/255, float32(bg.B)/255, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	return fw, fh
}

// EndFrame presents the frame.
func (w *Window) EndFrame() {
	w.win.SwapBuffers()
}

// Destroy closes the window and shuts GLFW down.
func (w *Window) Destroy() {
	w.win.Destroy()
	glfw.Terminate()
}
