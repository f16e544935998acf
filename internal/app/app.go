// Package app runs the editor's window, input and frame loop.
package app

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terraform/internal/config"
	"github.com/Faultbox/midgard-terraform/internal/editor"
	"github.com/Faultbox/midgard-terraform/internal/engine/debug"
	"github.com/Faultbox/midgard-terraform/internal/engine/input"
	"github.com/Faultbox/midgard-terraform/internal/engine/renderer"
	"github.com/Faultbox/midgard-terraform/internal/engine/window"
	"github.com/Faultbox/midgard-terraform/internal/logger"
	"github.com/Faultbox/midgard-terraform/internal/workspace"
)

// App is the running editor.
type App struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	ws          *workspace.Workspace
	mouse       *editor.DragTracker
	screenshots *debug.ScreenshotCapture
	capture     bool // screenshot requested for this frame
	log         *zap.Logger
}

var (
	outlineColor = [4]float32{0.6, 0.6, 0.6, 1}
	hoverColor   = [4]float32{1, 0.85, 0.2, 1}
)

// New opens the window and builds the editing session.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		config:      cfg,
		input:       input.New(),
		mouse:       editor.NewDragTracker(editor.PointerMouse),
		screenshots: debug.NewScreenshotCapture(cfg.Data.ScreenshotDir, "terrain"),
		log:         logger.Named("app"),
	}

	var err error
	a.ws, err = workspace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	// Create window (this also creates OpenGL context)
	a.window, err = window.New(cfg.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	dw, dh := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{Width: dw, Height: dh})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	w, h := a.window.Size()
	a.ws.Resize(w, h)

	a.log.Info("editor initialized",
		zap.Int("width", w),
		zap.Int("height", h),
		zap.String("mesh_path", cfg.Data.MeshPath),
	)
	return a, nil
}

// Run starts the frame loop. It returns when the window closes or ESC is pressed.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting frame loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}

		in := a.frameInput()
		if !a.running {
			break
		}

		if err := a.ws.Editor.Step(in); err != nil {
			a.log.Error("frame output failed", zap.Error(err))
		}

		a.render()
		if a.capture {
			a.capture = false
			a.screenshot()
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.window.SetTitle(fmt.Sprintf("%s - %d fps - %d selected",
				a.config.Window.Title, frameCount, a.ws.Editor.Registry().SelectedCount()))
			a.log.Debug("fps", zap.Int("count", frameCount), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// frameInput translates this frame's SDL events into editor input. Camera
// controls are applied directly.
func (a *App) frameInput() editor.FrameInput {
	var extra []editor.Event

	for _, ev := range a.input.Events() {
		switch ev.Type {
		case input.EventWindowResize:
			a.ws.Resize(ev.Width, ev.Height)
			a.renderer.Resize(a.window.DrawableSize())

		case input.EventFocusLost:
			a.mouse.FocusLost()

		case input.EventKeyDown:
			switch ev.Key {
			case sdl.SCANCODE_ESCAPE:
				a.running = false
			case sdl.SCANCODE_SPACE:
				extra = append(extra, editor.Event{Kind: editor.EventSerialize})
			case sdl.SCANCODE_F12:
				a.capture = true
			}

		case input.EventMouseDown:
			if b, ok := mouseButton(ev.Button); ok {
				a.mouse.Press(b)
				if b == editor.ButtonSecondary {
					extra = append(extra, editor.Event{Kind: editor.EventDeselectAll, Button: b})
				}
			}

		case input.EventMouseUp:
			if b, ok := mouseButton(ev.Button); ok {
				a.mouse.Release(b)
			}

		case input.EventMouseMove:
			if a.mouse.Held(editor.ButtonMiddle) {
				a.ws.Camera.HandleDrag(float32(ev.RelX), float32(ev.RelY))
			}
			a.mouse.Move()

		case input.EventMouseWheel:
			a.ws.Camera.HandleZoom(ev.WheelY)
		}
	}

	x, y, inside := a.input.Cursor()
	return editor.FrameInput{
		Cursor:    mgl32.Vec2{float32(x), float32(y)},
		HasCursor: inside,
		Events:    append(a.mouse.Flush(), extra...),
	}
}

func mouseButton(b uint8) (editor.Button, bool) {
	switch b {
	case sdl.BUTTON_LEFT:
		return editor.ButtonPrimary, true
	case sdl.BUTTON_RIGHT:
		return editor.ButtonSecondary, true
	case sdl.BUTTON_MIDDLE:
		return editor.ButtonMiddle, true
	default:
		return 0, false
	}
}

func (a *App) render() {
	a.renderer.Begin(a.ws.Camera.ViewProjection())

	if h, mesh, ok := a.ws.SurfaceMesh(); ok {
		a.renderer.DrawTerrain(h, mesh, a.ws.SurfaceMatrix())
	}
	a.renderer.DrawScene(a.ws.World.Drawables())

	ptr := a.ws.Editor.Pointer()
	for _, s := range a.ws.Editor.Surfaces() {
		tr, ok := a.ws.World.Transform(s.Entity)
		if !ok {
			continue
		}
		color := outlineColor
		if ptr.HasWorld && ptr.Surface == s.ID {
			color = hoverColor
		}
		a.renderer.DrawLines(debug.Wireframe(s.Bounds(tr.Translation, tr.Scale), color, 0))
	}

	a.renderer.End()
}

func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases the renderer and window.
func (a *App) Close() {
	a.log.Info("closing editor")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
