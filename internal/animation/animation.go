// Package animation advances the per-tick cosmetic state of a scene and hands the
// result to a Renderer.
package animation

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/psidex/learnpath/internal/interaction"
	"github.com/psidex/learnpath/internal/scene"
)

// Renderer draws one frame. It must not block for long, it runs on the tick loop.
type Renderer interface {
	Render(frame scene.Frame) error
}

type RendererFunc func(frame scene.Frame) error

func (f RendererFunc) Render(frame scene.Frame) error { return f(frame) }

// Discard is a Renderer that draws nothing.
var Discard Renderer = RendererFunc(func(scene.Frame) error { return nil })

type Config struct {
	AmbientX     float64
	AmbientXFreq float64
	AmbientY     float64
	AmbientYFreq float64

	// FlowStep is added to every edge's flow once per tick.
	FlowStep       float64
	PulseAmplitude float64
}

func DefaultConfig() Config {
	return Config{
		AmbientX:       5,
		AmbientXFreq:   0.5,
		AmbientY:       10,
		AmbientYFreq:   1,
		FlowStep:       0.02,
		PulseAmplitude: 0.05,
	}
}

// World is everything one tick reads and writes.
type World struct {
	Store      *scene.Store
	Controller *interaction.Controller
	SelectedID string
}

type Scheduler struct {
	cfg      Config
	renderer Renderer
	logger   *slog.Logger

	clock time.Duration
	seq   uint64
}

func NewScheduler(cfg Config, renderer Renderer, logger *slog.Logger) *Scheduler {
	if renderer == nil {
		renderer = Discard
	}
	return &Scheduler{cfg: cfg, renderer: renderer, logger: logger}
}

// Time returns the scheduler clock in seconds.
func (s *Scheduler) Time() float64 { return s.clock.Seconds() }

func (s *Scheduler) Seq() uint64 { return s.seq }

// Tick advances the clock by dt, animates w.Store and renders it. A renderer error is
// logged and returned, the scene state is already advanced when that happens.
func (s *Scheduler) Tick(dt time.Duration, w World) error {
	if dt > 0 {
		s.clock += dt
	}
	s.seq++
	t := s.Time()
	st := w.Store

	st.RootOffset.X = math.Cos(s.cfg.AmbientXFreq*t) * s.cfg.AmbientX
	st.RootOffset.Y = math.Sin(s.cfg.AmbientYFreq*t) * s.cfg.AmbientY
	st.RootOffset.Z = 0

	for _, e := range st.Edges() {
		e.Flow = math.Mod(e.Flow+s.cfg.FlowStep, 1)
	}
	for _, n := range st.Nodes() {
		n.Scale = 1 + s.cfg.PulseAmplitude*math.Sin(t*n.PulseSpeed+n.PulsePhase)
	}

	frame := scene.Frame{}
	if ctl := w.Controller; ctl != nil {
		ctl.Step()
		if state := ctl.State(); state.Mode == interaction.Dragging {
			st.RefreshEdges(state.NodeID)
		}
		view := ctl.View()
		st.Rotation = view.Rotation
		st.LabelRotation = view.LabelRotation()
		frame = st.Snapshot()
		frame.Zoom, frame.Yaw, frame.Pitch = view.Zoom, view.Yaw, view.Pitch
	} else {
		frame = st.Snapshot()
		frame.Zoom = 1
	}
	frame.Seq = s.seq
	frame.Time = t
	frame.SelectedID = w.SelectedID

	if err := s.renderer.Render(frame); err != nil {
		s.logger.Warn("render failed", "seq", s.seq, "error", err)
		return fmt.Errorf("render frame %d: %w", s.seq, err)
	}
	return nil
}

// Reset rewinds the clock.
func (s *Scheduler) Reset() {
	s.clock = 0
}
