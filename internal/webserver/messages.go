package webserver

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/psidex/learnpath/internal/generator"
	"github.com/psidex/learnpath/internal/interaction"
	"github.com/psidex/learnpath/internal/picking"
)

// inbound is every field any client message can carry, Type says which apply.
type inbound struct {
	Type string `json:"type"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	DeltaY float64 `json:"deltaY"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Topic        string `json:"topic"`
	Level        string `json:"level"`
	SelectedNode string `json:"selected_node"`

	ID string `json:"id"`
}

// Commands handled by the session rather than the interaction controller.
type (
	resetCommand    struct{}
	generateCommand struct{ Request generator.Request }
	expandCommand   struct{ ID string }
)

// decode turns a client message into an interaction.Event or one of the commands above.
func decode(msg []byte) (any, error) {
	var in inbound
	if err := json.Unmarshal(msg, &in); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}

	at := picking.Pointer{X: in.X, Y: in.Y}
	switch in.Type {
	case "pointerdown":
		return interaction.PointerDown{At: at}, nil
	case "pointermove":
		return interaction.PointerMove{At: at}, nil
	case "pointerup":
		return interaction.PointerUp{At: at}, nil
	case "click":
		return interaction.Click{At: at}, nil
	case "wheel":
		return interaction.Wheel{DeltaY: in.DeltaY}, nil
	case "zoomin":
		return interaction.ZoomIn{}, nil
	case "zoomout":
		return interaction.ZoomOut{}, nil
	case "resize":
		if in.Width <= 0 || in.Height <= 0 {
			return nil, fmt.Errorf("resize to %vx%v", in.Width, in.Height)
		}
		return interaction.Resize{Viewport: picking.Viewport{Width: in.Width, Height: in.Height}}, nil
	case "reset":
		return resetCommand{}, nil
	case "generate":
		req := generator.Request{Topic: in.Topic, Level: in.Level, SelectedNode: in.SelectedNode}
		if err := req.Validate(); err != nil {
			return nil, err
		}
		return generateCommand{Request: req}, nil
	case "expand":
		if in.ID == "" {
			return nil, errors.New("expand without id")
		}
		return expandCommand{ID: in.ID}, nil
	}
	return nil, fmt.Errorf("unknown message type %q", in.Type)
}
