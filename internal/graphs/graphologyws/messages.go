package graphologyws

import (
	"github.com/psidex/learnpath/internal/graphs/graphology"
)

const (
	TypeFrame    = "frame"
	TypeSelected = "selected"
	TypeChatbot  = "chatbot"
	TypeError    = "error"
)

// Message is the envelope of everything sent to the client.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type FrameData struct {
	Seq           uint64  `json:"seq"`
	Time          float64 `json:"time"`
	Zoom          float64 `json:"zoom"`
	LabelRotation float64 `json:"labelRotation"`
	Selected      string  `json:"selected,omitempty"`

	Graph graphology.SerializedGraph `json:"graph"`
}

type ErrorData struct {
	Message string `json:"message"`
}
