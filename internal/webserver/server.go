// Package webserver serves the canvas client and runs one engine session per
// websocket connection.
package webserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	nanoid "github.com/matoous/go-nanoid/v2"

	"github.com/psidex/learnpath/internal/lib"
	"github.com/psidex/learnpath/internal/metrics"
)

const (
	sessionAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	sessionIDLength = 12
)

type Server struct {
	deps     Deps
	metrics  *metrics.Collector
	upgrader websocket.Upgrader
}

// NewServer serves sessions built from deps. collector may be nil, /metrics is then not
// mounted.
func NewServer(deps Deps, collector *metrics.Collector) *Server {
	if collector != nil {
		deps.Recorder = collector
	}
	return &Server{
		deps:    deps,
		metrics: collector,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) Router() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(requestLogger(s.deps.Logger))

	router.Get("/", serveClient)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	router.Get("/ws", s.session)
	if s.metrics != nil {
		router.Handle("/metrics", s.metrics.Handler())
	}

	return router
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) {
	logger := s.deps.Logger

	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("ws upgrade failed", "err", err)
		return
	}
	ws := lib.NewThreadSafeWebSocket(c)
	defer ws.Close()

	_, msg, err := ws.ReadMessage()
	if err != nil {
		logger.Warn("ws cfg read failed", "err", err)
		return
	}

	cfg := SessionConfig{}
	if err = json.Unmarshal(msg, &cfg); err != nil {
		logger.Warn("ws cfg unmarshal failed", "err", err)
		return
	}

	id, err := nanoid.Generate(sessionAlphabet, sessionIDLength)
	if err != nil {
		logger.Error("session id", "err", err)
		return
	}

	if s.metrics != nil {
		s.metrics.SessionOpened()
		defer s.metrics.SessionClosed()
	}

	logger.Info("session started", "session", id, "topic", cfg.Topic, "mode", cfg.Mode)
	err = NewSession(id, cfg, ws, s.deps).Run(r.Context(), cfg)
	logger.Info("session ended", "session", id, "err", err)
}

// requestLogger logs every request after it completes. Websocket sessions are logged
// once they close.
func requestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"requestID", middleware.GetReqID(r.Context()),
				"remoteAddr", r.RemoteAddr,
			)
		})
	}
}
