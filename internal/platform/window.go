// Package platform owns the glfw window and OpenGL context and turns window
// events into input.Manager state.
package platform

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl64"

	"heli-sim/internal/game"
	"heli-sim/internal/input"
)

// DefaultBindings maps keyboard keys to flight actions.
var DefaultBindings = map[glfw.Key]input.Action{
	glfw.KeyW:      input.ActionThrust,
	glfw.KeyUp:     input.ActionThrust,
	glfw.KeyS:      input.ActionReverse,
	glfw.KeyDown:   input.ActionReverse,
	glfw.KeyA:      input.ActionYawLeft,
	glfw.KeyLeft:   input.ActionYawLeft,
	glfw.KeyD:      input.ActionYawRight,
	glfw.KeyRight:  input.ActionYawRight,
	glfw.KeyR:      input.ActionReset,
	glfw.KeyEscape: input.ActionPause,
	glfw.KeyV:      input.ActionToggleProfiling,
}

const titleInterval = 250 * time.Millisecond

// Window is a game.Frame backed by a glfw window.
type Window struct {
	win   *glfw.Window
	in    *input.Manager
	title string

	captured   bool
	haveCursor bool
	lastX      float64
	lastY      float64
	lastTitle  time.Time
}

var _ game.Frame = (*Window)(nil)

// Init initialises glfw. Call it from the main thread, with the thread locked.
func Init() error { return glfw.Init() }

// Terminate releases glfw.
func Terminate() { glfw.Terminate() }

// Open creates a window with an OpenGL 4.1 core context and routes its input
// events into in.
func Open(width, height int, title string, in *input.Manager) (*Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()

	// Initialize OpenGL bindings
	if err := gl.Init(); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("init gl: %w", err)
	}

	// Disable V-Sync; the loop paces frames itself
	glfw.SwapInterval(0)

	for key, action := range DefaultBindings {
		in.BindKey(input.Key(key), action)
	}

	w := &Window{win: win, in: in, title: title}
	w.installCallbacks()
	w.capture(true)
	return w, nil
}

func (w *Window) installCallbacks() {
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}
		w.in.HandleKey(input.Key(key), action == glfw.Press)
		if key == glfw.KeyEscape && action == glfw.Press {
			w.capture(!w.captured)
		}
	})

	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if !w.captured {
			return
		}
		if w.haveCursor {
			w.in.AddMouseDelta(x-w.lastX, y-w.lastY)
		}
		w.lastX, w.lastY = x, y
		w.haveCursor = true
	})

	w.win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button == glfw.MouseButtonLeft && action == glfw.Press && !w.captured {
			w.capture(true)
		}
	})

	w.win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if !focused {
			w.in.ReleaseAll()
			w.capture(false)
		}
	})

	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, fbWidth, fbHeight int) {
		gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	})
}

// capture locks the pointer to the window, like a browser pointer lock.
func (w *Window) capture(on bool) {
	w.captured = on
	w.haveCursor = false
	if on {
		w.win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		w.win.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }

// Poll processes pending window events.
func (w *Window) Poll() { glfw.PollEvents() }

// Present clears to a sky colour that brightens with altitude and swaps
// buffers. The title doubles as a small flight readout.
func (w *Window) Present(p game.Pose) {
	r, g, b := skyColor(p.Altitude)
	gl.ClearColor(r, g, b, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	w.win.SwapBuffers()

	if now := time.Now(); now.Sub(w.lastTitle) >= titleInterval {
		w.lastTitle = now
		slope := mgl64.RadToDeg(math.Acos(mgl64.Clamp(p.Ground.Y(), -1, 1)))
		w.win.SetTitle(fmt.Sprintf("%s | alt %.1f | slope %.0f° | speed %.1f | pos %.0f %.0f %.0f",
			w.title, p.Altitude, slope, p.Velocity.Len(), p.Position.X(), p.Position.Y(), p.Position.Z()))
	}
}

// SetShouldClose asks the loop to stop after the current frame.
func (w *Window) SetShouldClose(v bool) { w.win.SetShouldClose(v) }

// Destroy closes the window.
func (w *Window) Destroy() { w.win.Destroy() }

func skyColor(altitude float64) (r, g, b float32) {
	t := float32(math.Max(0, math.Min(1, altitude/200)))
	// haze near the ground, 0x87ceeb sky higher up
	r = 0.65 + (0.53-0.65)*t
	g = 0.72 + (0.81-0.72)*t
	b = 0.78 + (0.92-0.78)*t
	return r, g, b
}
