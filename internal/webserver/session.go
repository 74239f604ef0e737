package webserver

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/psidex/learnpath/internal/engine"
	"github.com/psidex/learnpath/internal/events"
	"github.com/psidex/learnpath/internal/generator"
	"github.com/psidex/learnpath/internal/graphs"
	"github.com/psidex/learnpath/internal/graphs/graphologyws"
	"github.com/psidex/learnpath/internal/interaction"
)

// Conn is the part of lib.ThreadSafeWebSocket a session needs.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteJSON(v any) error
}

// Deps are shared by every session of a server.
type Deps struct {
	Engine          engine.Config
	Generator       generator.Generator
	Publisher       events.Publisher
	Subject         string
	TickInterval    time.Duration
	GenerateTimeout time.Duration
	// Recorder is optional.
	Recorder engine.Recorder
	Logger   *slog.Logger
}

type result struct {
	ticket  engine.Ticket
	payload []byte
	err     error
}

// Session owns one engine. Run handles ticks, client input and generation results on
// a single goroutine, only generator calls run elsewhere.
type Session struct {
	id       string
	deps     Deps
	conn     Conn
	logger   *slog.Logger
	renderer graphs.WebsocketRenderer
	engine   *engine.Engine

	inputs  chan []byte
	readErr chan error
	results chan result
}

func NewSession(id string, cfg SessionConfig, conn Conn, deps Deps) *Session {
	logger := deps.Logger.With("session", id)

	ecfg := deps.Engine
	ecfg.Viewport = cfg.viewport(ecfg.Viewport)
	if cfg.Mode == "orbit" {
		ecfg.Interaction.Orbit = true
	}

	renderer := graphologyws.NewGraphologyWs(conn, ecfg.Viewport, logger)

	var sink engine.Sink = engine.SinkFunc(renderer.NotifySelected)
	if deps.Publisher != nil {
		published := events.NewSink(deps.Publisher, deps.Subject, id, logger)
		sink = engine.SinkFunc(func(payload map[string]any) {
			renderer.NotifySelected(payload)
			published.NodeSelected(payload)
		})
	}

	var opts []engine.Option
	if deps.Recorder != nil {
		opts = append(opts, engine.WithRecorder(deps.Recorder))
	}

	return &Session{
		id:       id,
		deps:     deps,
		conn:     conn,
		logger:   logger,
		renderer: renderer,
		engine:   engine.New(ecfg, logger, renderer, sink, opts...),
		inputs:   make(chan []byte, 64),
		readErr:  make(chan error, 1),
		results:  make(chan result),
	}
}

// Run blocks until ctx is done or the client goes away. A normal close returns nil.
func (s *Session) Run(ctx context.Context, initial SessionConfig) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go s.read(ctx)

	if initial.Topic != "" {
		s.generate(ctx, initial.request())
	}

	ticker := time.NewTicker(s.deps.TickInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-s.readErr:
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err

		case msg := <-s.inputs:
			s.handle(ctx, msg)

		case r := <-s.results:
			s.resolve(r)

		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if err := s.engine.Tick(dt); err != nil {
				s.logger.Debug("tick failed", "err", err)
			}
		}
	}
}

func (s *Session) read(ctx context.Context) {
	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			s.readErr <- err
			return
		}
		select {
		case s.inputs <- msg:
		case <-ctx.Done():
			return
		}
	}
}

func (s *Session) handle(ctx context.Context, msg []byte) {
	cmd, err := decode(msg)
	if err != nil {
		s.logger.Debug("bad client message", "err", err)
		s.renderer.NotifyError(err)
		return
	}

	switch cmd := cmd.(type) {
	case interaction.Resize:
		s.renderer.SetViewport(cmd.Viewport)
		s.engine.Dispatch(cmd)
	case interaction.Event:
		s.engine.Dispatch(cmd)
	case resetCommand:
		s.engine.Reset()
	case generateCommand:
		s.generate(ctx, cmd.Request)
	case expandCommand:
		if err := s.engine.Expand(cmd.ID); err != nil {
			s.renderer.NotifyError(err)
		}
	}
}

// generate starts a new generation, superseding any in flight.
func (s *Session) generate(ctx context.Context, req generator.Request) {
	ticket := s.engine.BeginGeneration()
	s.logger.Info("generating", "topic", req.Topic, "level", req.Level, "generation", s.engine.Generation())

	go func() {
		genCtx, cancel := context.WithTimeout(ctx, s.deps.GenerateTimeout)
		defer cancel()
		payload, err := s.deps.Generator.Generate(genCtx, req)
		select {
		case s.results <- result{ticket: ticket, payload: payload, err: err}:
		case <-ctx.Done():
		}
	}()
}

func (s *Session) resolve(r result) {
	var err error
	if r.err != nil {
		err = s.engine.Fail(r.ticket, r.err)
	} else {
		err = s.engine.Resolve(r.ticket, r.payload)
	}

	switch {
	case errors.Is(err, engine.ErrStaleGeneration):
		s.logger.Debug("dropped stale generation")
		return
	case err != nil:
		s.logger.Warn("generation failed", "err", err)
		s.renderer.NotifyError(err)
		return
	}

	if chatbot, ok := s.engine.Graph().Meta["chatbot"]; ok && chatbot != nil {
		s.renderer.NotifyChatbot(chatbot)
	}
}
