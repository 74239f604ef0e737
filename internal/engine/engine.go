// Package engine ties the normalizer, layout, scene, picking, highlight, interaction
// and animation packages into one generation-scoped context. An Engine is owned by a
// single goroutine.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/psidex/learnpath/internal/animation"
	"github.com/psidex/learnpath/internal/expansion"
	"github.com/psidex/learnpath/internal/graph"
	"github.com/psidex/learnpath/internal/highlight"
	"github.com/psidex/learnpath/internal/interaction"
	"github.com/psidex/learnpath/internal/layout"
	"github.com/psidex/learnpath/internal/picking"
	"github.com/psidex/learnpath/internal/scene"
)

var (
	ErrStaleGeneration = errors.New("engine: stale generation")
	ErrTicketUsed      = errors.New("engine: generation already resolved")
	ErrUnknownNode     = errors.New("engine: unknown node")
	ErrNotExpandable   = errors.New("engine: node is not expandable")
)

// Sink receives the payload of the selected node, or nil when the selection clears.
type Sink interface {
	NodeSelected(payload map[string]any)
}

type SinkFunc func(payload map[string]any)

func (f SinkFunc) NodeSelected(payload map[string]any) { f(payload) }

type nopSink struct{}

func (nopSink) NodeSelected(map[string]any) {}

// Recorder is notified of engine activity, metrics.Collector implements it.
type Recorder interface {
	GenerationStarted()
	GenerationResolved(nodes int)
	GenerationStale()
	GenerationFailed()
	Expanded(nodes int)
	Picked(hit bool)
	Ticked(d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) GenerationStarted()     {}
func (nopRecorder) GenerationResolved(int) {}
func (nopRecorder) GenerationStale()       {}
func (nopRecorder) GenerationFailed()      {}
func (nopRecorder) Expanded(int)           {}
func (nopRecorder) Picked(bool)            {}
func (nopRecorder) Ticked(time.Duration)   {}

type Config struct {
	Layout      layout.Options
	Scene       scene.Style
	Highlight   highlight.Style
	Interaction interaction.Config
	Animation   animation.Config
	Viewport    picking.Viewport
	// Seed feeds the cosmetic per-node and per-edge hashes.
	Seed uint64
}

func DefaultConfig() Config {
	return Config{
		Layout:      layout.DefaultOptions(),
		Scene:       scene.DefaultStyle(),
		Highlight:   highlight.DefaultStyle(),
		Interaction: interaction.DefaultConfig(),
		Animation:   animation.DefaultConfig(),
		Viewport:    picking.Viewport{Width: 1280, Height: 720},
	}
}

// Ticket identifies one generation request.
type Ticket uint64

type Option func(*Engine)

func WithCaster(c picking.Caster) Option {
	return func(e *Engine) { e.caster = c }
}

func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

type Engine struct {
	// Set in New(...).
	cfg        Config
	logger     *slog.Logger
	normalizer *graph.Normalizer
	caster     picking.Caster
	sink       Sink
	recorder   Recorder
	scheduler  *animation.Scheduler
	controller *interaction.Controller
	// Replaced on every generation.
	generation uint64
	// used is set once the current ticket has been resolved or failed.
	used       bool
	graph      *graph.Graph
	store      *scene.Store
	expansion  *expansion.Store
	selection  highlight.Selection
}

func New(cfg Config, logger *slog.Logger, renderer animation.Renderer, sink Sink, opts ...Option) *Engine {
	if sink == nil {
		sink = nopSink{}
	}
	e := &Engine{
		cfg:        cfg,
		logger:     logger,
		normalizer: graph.NewNormalizer(logger),
		caster:     picking.SphereCaster{},
		sink:       sink,
		recorder:   nopRecorder{},
		scheduler:  animation.NewScheduler(cfg.Animation, renderer, logger),
		controller: interaction.NewController(cfg.Interaction, cfg.Viewport),
		store:      scene.NewStore(cfg.Scene, cfg.Seed),
		expansion:  expansion.NewStore(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BeginGeneration starts a new generation and clears the scene, expansion state and
// selection before returning. Only the returned ticket can resolve it.
func (e *Engine) BeginGeneration() Ticket {
	e.generation++
	e.used = false
	e.recorder.GenerationStarted()
	e.clear()
	e.logger.Debug("generation started", "generation", e.generation)
	return Ticket(e.generation)
}

// IsCurrent reports whether t belongs to the latest generation.
func (e *Engine) IsCurrent(t Ticket) bool {
	return uint64(t) == e.generation
}

func (e *Engine) clear() {
	hadSelection := !e.selection.IsEmpty()
	e.graph = nil
	e.store = scene.NewStore(e.cfg.Scene, e.cfg.Seed)
	e.expansion.Reset()
	e.selection = highlight.Selection{}
	e.controller.Forget()
	if hadSelection {
		e.sink.NodeSelected(nil)
	}
}

// Resolve builds the scene for t from payload. A ticket from a superseded generation
// returns ErrStaleGeneration and changes nothing, a ticket can only be resolved once.
// If the build fails the engine is left empty and a new generation can be started.
func (e *Engine) Resolve(t Ticket, payload []byte) error {
	if err := e.consume(t); err != nil {
		return err
	}

	g, err := e.normalizer.Normalize(payload)
	if err != nil {
		e.recorder.GenerationFailed()
		return fmt.Errorf("generation %d: %w", t, err)
	}

	var placements []layout.Placement
	if g.Shape == graph.ShapeFlat {
		placements = layout.Layered(g, e.cfg.Layout)
	} else {
		placements = layout.Radial(g.Root(), e.cfg.Layout)
	}

	store := scene.NewStore(e.cfg.Scene, e.cfg.Seed)
	if _, err := store.Insert(placements, g); err != nil {
		e.recorder.GenerationFailed()
		return fmt.Errorf("generation %d: %w", t, err)
	}

	e.graph = g
	e.store = store
	for _, p := range placements {
		if p.Pending {
			e.expansion.MarkPending(p.ID)
		}
	}
	highlight.Apply(e.store, e.selection, e.cfg.Highlight)
	e.recorder.GenerationResolved(store.Len())
	e.logger.Info("generation resolved",
		"generation", e.generation,
		"shape", g.Shape,
		"nodes", store.Len(),
		"edges", len(store.Edges()),
		"dropped", len(g.Dropped),
		"pending", len(e.expansion.Pending()),
	)
	return nil
}

// Fail records that fetching the payload for t failed. The scene stays empty.
func (e *Engine) Fail(t Ticket, cause error) error {
	if err := e.consume(t); err != nil {
		return err
	}
	e.recorder.GenerationFailed()
	return fmt.Errorf("generation %d: %w", t, cause)
}

func (e *Engine) consume(t Ticket) error {
	if !e.IsCurrent(t) {
		e.recorder.GenerationStale()
		e.logger.Debug("dropping stale generation", "ticket", uint64(t), "generation", e.generation)
		return ErrStaleGeneration
	}
	if e.used {
		return fmt.Errorf("generation %d: %w", t, ErrTicketUsed)
	}
	e.used = true
	return nil
}

// Load is BeginGeneration followed by Resolve.
func (e *Engine) Load(payload []byte) error {
	return e.Resolve(e.BeginGeneration(), payload)
}

// Expand reveals the children of a module node that were held back by the layout depth
// limit. They are placed around the node's current position.
func (e *Engine) Expand(id string) error {
	if e.graph == nil {
		return fmt.Errorf("%q: %w", id, ErrUnknownNode)
	}
	gn, ok := e.graph.Node(id)
	if !ok {
		return fmt.Errorf("%q: %w", id, ErrUnknownNode)
	}
	sn, ok := e.store.Node(id)
	if !ok {
		return fmt.Errorf("%q not materialized: %w", id, ErrUnknownNode)
	}
	if gn.Kind != graph.KindModule || gn.IsLeaf() || !e.expansion.IsPending(id) {
		return fmt.Errorf("%q (%s): %w", id, gn.Kind, ErrNotExpandable)
	}

	anchor := layout.Anchor{ID: id, Depth: sn.Depth, Position: sn.Position}
	if parentID, ok := e.graph.Parent(id); ok {
		if pn, ok := e.store.Node(parentID); ok {
			anchor.From, anchor.HasFrom = pn.Position, true
		}
	}

	placements := layout.Expand(anchor, gn.Children, e.cfg.Layout)
	added, err := e.store.Insert(placements, e.graph)
	if err != nil {
		return fmt.Errorf("expand %q: %w", id, err)
	}
	e.expansion.MarkExpanded(id)
	for _, p := range placements {
		if p.Pending {
			e.expansion.MarkPending(p.ID)
		}
	}
	e.recorder.Expanded(len(added))

	// The selected node's children may have just appeared.
	e.selection = highlight.Compute(e.store.Edges(), e.selection.SelectedID)
	highlight.Apply(e.store, e.selection, e.cfg.Highlight)
	return nil
}

// ExpandAll expands pending nodes, oldest first, until none are left. Nodes that turn
// out not to be expandable are skipped.
func (e *Engine) ExpandAll() int {
	n := 0
	for {
		id, ok := e.expansion.NextPending()
		if !ok {
			return n
		}
		if err := e.Expand(id); err != nil {
			e.logger.Debug("skipping pending node", "id", id, "error", err)
			continue
		}
		n++
	}
}

// Select makes id the selection, recomputes highlight and notifies the sink.
func (e *Engine) Select(id string) error {
	if id == "" {
		e.ClearSelection()
		return nil
	}
	if _, ok := e.store.Node(id); !ok {
		return fmt.Errorf("%q: %w", id, ErrUnknownNode)
	}
	e.selection = highlight.Compute(e.store.Edges(), id)
	highlight.Apply(e.store, e.selection, e.cfg.Highlight)
	e.sink.NodeSelected(e.payloadOf(id))
	return nil
}

// ClearSelection makes every entity active again. The sink only hears about it when
// something was selected.
func (e *Engine) ClearSelection() {
	had := !e.selection.IsEmpty()
	e.selection = highlight.Selection{}
	highlight.Apply(e.store, e.selection, e.cfg.Highlight)
	if had {
		e.sink.NodeSelected(nil)
	}
}

func (e *Engine) Selection() highlight.Selection { return e.selection }

// payloadOf returns a copy of the node's payload with its id filled in.
func (e *Engine) payloadOf(id string) map[string]any {
	out := map[string]any{}
	if e.graph != nil {
		if gn, ok := e.graph.Node(id); ok {
			for k, v := range gn.Payload {
				out[k] = v
			}
			if _, ok := out["title"]; !ok {
				out["title"] = gn.Title
			}
		}
	}
	out["id"] = id
	return out
}

// Tick advances animation by dt and renders.
func (e *Engine) Tick(dt time.Duration) error {
	start := time.Now()
	err := e.scheduler.Tick(dt, animation.World{
		Store:      e.store,
		Controller: e.controller,
		SelectedID: e.selection.SelectedID,
	})
	e.recorder.Ticked(time.Since(start))
	return err
}

// Reset restores neutral zoom, no rotation and no selection. Calling it again changes
// nothing.
func (e *Engine) Reset() {
	e.controller.Reset()
	e.store.Rotation = 0
	e.store.LabelRotation = 0
	e.ClearSelection()
}

// Snapshot returns a detached frame of the current scene and view.
func (e *Engine) Snapshot() scene.Frame {
	view := e.controller.View()
	f := e.store.Snapshot()
	f.Seq = e.scheduler.Seq()
	f.Time = e.scheduler.Time()
	f.Zoom, f.Yaw, f.Pitch = view.Zoom, view.Yaw, view.Pitch
	f.SelectedID = e.selection.SelectedID
	return f
}

// Graph returns the current generation's graph, nil before the first resolve.
func (e *Engine) Graph() *graph.Graph { return e.graph }

// Store returns the live scene store. It is replaced on every generation.
func (e *Engine) Store() *scene.Store { return e.store }

func (e *Engine) View() interaction.View { return e.controller.View() }

func (e *Engine) Generation() uint64 { return e.generation }

// Pending returns the ids of nodes whose children are still held back.
func (e *Engine) Pending() []string { return e.expansion.Pending() }

// Camera returns the camera the current view is picked and drawn with.
func (e *Engine) Camera() picking.Camera {
	view := e.controller.View()
	return picking.ViewCamera(view.Viewport, view.Zoom, view.Yaw, view.Pitch)
}
