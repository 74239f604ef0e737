// Package generator produces learning-path payloads: a built-in mock roadmap, a
// knowledge-graph path builder, and clients for remote backends over HTTP and gRPC.
package generator

import (
	"context"
	"errors"
	"strings"
)

var ErrEmptyTopic = errors.New("generator: empty topic")

// Request asks for a path about Topic at Level (beginner, intermediate, advanced).
type Request struct {
	Topic        string `json:"topic"`
	Level        string `json:"level"`
	SelectedNode string `json:"selected_node,omitempty"`
}

func (r Request) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return ErrEmptyTopic
	}
	return nil
}

func (r Request) asMap() map[string]any {
	m := map[string]any{"topic": r.Topic, "level": r.Level}
	if r.SelectedNode != "" {
		m["selected_node"] = r.SelectedNode
	}
	return m
}

// Generator returns a JSON payload, nested or flat, for a request.
type Generator interface {
	Generate(ctx context.Context, req Request) ([]byte, error)
}

type Func func(ctx context.Context, req Request) ([]byte, error)

func (f Func) Generate(ctx context.Context, req Request) ([]byte, error) { return f(ctx, req) }
