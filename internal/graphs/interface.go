package graphs

import (
	"fmt"

	"github.com/psidex/learnpath/internal/picking"
	"github.com/psidex/learnpath/internal/scene"
)

// Renderer receives every frame the engine draws. It satisfies animation.Renderer.
type Renderer interface {
	// Render is called from the session loop and must not block for long.
	Render(frame scene.Frame) error
}

// CliRenderer extends the Renderer interface to accommodate CLI functionality.
type CliRenderer interface {
	Renderer

	// RenderToFile writes the most recently rendered frame. It is not assumed to be
	// thread-safe. filename should be the desired file name without an extension.
	RenderToFile(filename string) error
}

// WebsocketRenderer extends the Renderer interface to accommodate WebSocket
// functionality.
type WebsocketRenderer interface {
	Renderer

	// SetViewport changes the pixel size frames are projected onto.
	SetViewport(vp picking.Viewport)

	// These send the messages only a live client needs: the selected node's payload
	// (nil when cleared), the chatbot block of a generation and request errors.
	NotifySelected(payload map[string]any)
	NotifyChatbot(chatbot any)
	NotifyError(err error)
}

// HexColor formats a 0xRRGGBB color as #RRGGBB.
func HexColor(c uint32) string {
	return fmt.Sprintf("#%06X", c&0xFFFFFF)
}
