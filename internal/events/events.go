// Package events publishes node selection changes to a message bus so other
// services can follow what a learner is looking at.
package events

import (
	"context"
	"log/slog"
	"time"
)

const TopicNodeSelected = "learnpath.node.selected"

// NodeSelected is published whenever a session's selection changes. Node and
// Payload are empty when the selection was cleared.
type NodeSelected struct {
	Session string         `json:"session"`
	Node    string         `json:"node,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
	Time    time.Time      `json:"time"`
}

type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

// Sink adapts a Publisher to engine.Sink for a single session.
type Sink struct {
	pub     Publisher
	topic   string
	session string
	logger  *slog.Logger
	now     func() time.Time
}

func NewSink(pub Publisher, topic, session string, logger *slog.Logger) *Sink {
	if topic == "" {
		topic = TopicNodeSelected
	}
	return &Sink{
		pub:     pub,
		topic:   topic,
		session: session,
		logger:  logger,
		now:     time.Now,
	}
}

// NodeSelected publishes the change. Publish failures are logged and dropped,
// the selection itself has already happened.
func (s *Sink) NodeSelected(payload map[string]any) {
	ev := NodeSelected{Session: s.session, Payload: payload, Time: s.now().UTC()}
	if id, ok := payload["id"].(string); ok {
		ev.Node = id
	}
	if err := s.pub.Publish(context.Background(), s.topic, ev); err != nil {
		s.logger.Warn("publishing selection", "topic", s.topic, "err", err)
	}
}
