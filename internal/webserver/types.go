package webserver

import (
	"github.com/psidex/learnpath/internal/generator"
	"github.com/psidex/learnpath/internal/picking"
)

// SessionConfig is the first message a client sends. Topic may be empty, the client
// then asks for a path later with a generate message. Mode "orbit" turns empty-space
// drags into camera orbit instead of scene rotation.
type SessionConfig struct {
	Topic  string  `json:"topic"`
	Level  string  `json:"level"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Mode   string  `json:"mode"`
}

func (c SessionConfig) viewport(fallback picking.Viewport) picking.Viewport {
	if c.Width <= 0 || c.Height <= 0 {
		return fallback
	}
	return picking.Viewport{Width: c.Width, Height: c.Height}
}

func (c SessionConfig) request() generator.Request {
	return generator.Request{Topic: c.Topic, Level: c.Level}
}
