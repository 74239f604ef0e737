// Package interaction turns raw pointer input into view changes, node drags and
// selections through a small state machine.
package interaction

import (
	"math"

	"github.com/psidex/learnpath/internal/picking"
)

type Mode int

const (
	Idle Mode = iota
	Hovering
	Dragging
)

func (m Mode) String() string {
	switch m {
	case Hovering:
		return "hovering"
	case Dragging:
		return "dragging"
	}
	return "idle"
}

// State is the machine state, NodeID is set for Hovering and Dragging.
type State struct {
	Mode   Mode
	NodeID string
}

type Config struct {
	RotateSensitivity float64
	ZoomMin           float64
	ZoomMax           float64
	WheelIn           float64
	WheelOut          float64
	ButtonFactor      float64
	// DragDeadZone is how far, in pixels, a press may travel and still count as a click.
	DragDeadZone float64
	// Orbit switches empty-space drags from scene rotation to damped camera orbit.
	Orbit   bool
	Damping float64
}

func DefaultConfig() Config {
	return Config{
		RotateSensitivity: 0.005,
		ZoomMin:           0.2,
		ZoomMax:           3,
		WheelIn:           1.1,
		WheelOut:          0.9,
		ButtonFactor:      1.2,
		DragDeadZone:      4,
		Damping:           0.1,
	}
}

const maxPitch = math.Pi/2 - 0.01

// Target is what the controller acts on. Pick resolves a pointer to a node id, Drag
// moves a node under the pointer, Select changes the selection ("" clears it).
type Target interface {
	Pick(p picking.Pointer) (string, bool)
	Drag(id string, p picking.Pointer)
	Select(id string)
}

// View is the camera and scene transform state owned by a Controller.
type View struct {
	Zoom     float64
	Rotation float64

	Yaw         float64
	Pitch       float64
	TargetYaw   float64
	TargetPitch float64

	Viewport picking.Viewport
}

// LabelRotation keeps labels upright under Rotation.
func (v View) LabelRotation() float64 { return -v.Rotation }

type Controller struct {
	cfg   Config
	state State
	view  View

	pressed   bool
	rotating  bool
	pressAt   picking.Pointer
	last      picking.Pointer
	travelled float64
}

func NewController(cfg Config, vp picking.Viewport) *Controller {
	c := &Controller{cfg: cfg}
	c.view.Viewport = vp
	c.Reset()
	return c
}

func (c *Controller) State() State   { return c.state }
func (c *Controller) View() View     { return c.view }
func (c *Controller) Config() Config { return c.cfg }

// Dispatch applies one event.
func (c *Controller) Dispatch(ev Event, t Target) {
	switch ev := ev.(type) {
	case PointerDown:
		c.pointerDown(ev.At, t)
	case PointerMove:
		c.pointerMove(ev.At, t)
	case PointerUp:
		c.pointerUp()
	case Click:
		c.click(ev.At, t)
	case Wheel:
		if ev.DeltaY > 0 {
			c.setZoom(c.view.Zoom * c.cfg.WheelOut)
		} else {
			c.setZoom(c.view.Zoom * c.cfg.WheelIn)
		}
	case ZoomIn:
		c.setZoom(c.view.Zoom * c.cfg.ButtonFactor)
	case ZoomOut:
		c.setZoom(c.view.Zoom / c.cfg.ButtonFactor)
	case Resize:
		c.view.Viewport = ev.Viewport
	}
}

func (c *Controller) pointerDown(p picking.Pointer, t Target) {
	c.pressed = true
	c.pressAt, c.last = p, p
	c.travelled = 0
	if id, ok := t.Pick(p); ok {
		c.state = State{Mode: Dragging, NodeID: id}
		return
	}
	c.rotating = true
}

func (c *Controller) pointerMove(p picking.Pointer, t Target) {
	dx, dy := p.X-c.last.X, p.Y-c.last.Y
	c.last = p
	if c.pressed {
		c.travelled = math.Max(c.travelled, math.Hypot(p.X-c.pressAt.X, p.Y-c.pressAt.Y))
	}

	switch {
	case c.state.Mode == Dragging:
		t.Drag(c.state.NodeID, p)
	case c.rotating && c.cfg.Orbit:
		c.view.TargetYaw -= dx * c.cfg.RotateSensitivity
		c.view.TargetPitch = clamp(c.view.TargetPitch+dy*c.cfg.RotateSensitivity, -maxPitch, maxPitch)
	case c.rotating:
		c.view.Rotation += dx * c.cfg.RotateSensitivity
	default:
		if id, ok := t.Pick(p); ok {
			c.state = State{Mode: Hovering, NodeID: id}
		} else {
			c.state = State{}
		}
	}
}

func (c *Controller) pointerUp() {
	if c.state.Mode == Dragging {
		c.state.Mode = Hovering
	}
	c.pressed = false
	c.rotating = false
}

func (c *Controller) click(p picking.Pointer, t Target) {
	moved := c.travelled > c.cfg.DragDeadZone
	c.travelled = 0
	if moved {
		return
	}
	if id, ok := t.Pick(p); ok {
		t.Select(id)
		return
	}
	t.Select("")
}

func (c *Controller) setZoom(z float64) {
	c.view.Zoom = clamp(z, c.cfg.ZoomMin, c.cfg.ZoomMax)
}

// Step moves the orbit one damping step towards its target. It is a no-op outside
// orbit mode.
func (c *Controller) Step() {
	c.view.Yaw += (c.view.TargetYaw - c.view.Yaw) * c.cfg.Damping
	c.view.Pitch += (c.view.TargetPitch - c.view.Pitch) * c.cfg.Damping
}

// Forget drops any hover, drag or rotation in progress, used when the scene is rebuilt.
func (c *Controller) Forget() {
	c.state = State{}
	c.pressed = false
	c.rotating = false
}

// Reset restores neutral zoom, rotation and orbit and returns to Idle. The viewport
// is kept.
func (c *Controller) Reset() {
	vp := c.view.Viewport
	c.view = View{Zoom: 1, Viewport: vp}
	c.state = State{}
	c.pressed = false
	c.rotating = false
	c.travelled = 0
	c.pressAt, c.last = picking.Pointer{}, picking.Pointer{}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
