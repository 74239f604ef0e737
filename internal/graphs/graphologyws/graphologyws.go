package graphologyws

import (
	"log/slog"
	"sync"

	"github.com/psidex/learnpath/internal/geom"
	"github.com/psidex/learnpath/internal/graphs"
	"github.com/psidex/learnpath/internal/graphs/graphology"
	"github.com/psidex/learnpath/internal/picking"
	"github.com/psidex/learnpath/internal/scene"
)

// JSONWriter is the part of lib.ThreadSafeWebSocket the renderer writes through.
type JSONWriter interface {
	WriteJSON(v any) error
}

// GraphologyWs defines a WebsocketRenderer that projects every frame to screen pixels
// and streams it to the canvas client as Graphology JSON.
type GraphologyWs struct {
	mu       *sync.Mutex
	ws       JSONWriter
	logger   *slog.Logger
	viewport picking.Viewport
}

var _ graphs.WebsocketRenderer = (*GraphologyWs)(nil)

func NewGraphologyWs(ws JSONWriter, vp picking.Viewport, logger *slog.Logger) *GraphologyWs {
	return &GraphologyWs{
		mu:       &sync.Mutex{},
		ws:       ws,
		logger:   logger,
		viewport: vp,
	}
}

func (g *GraphologyWs) SetViewport(vp picking.Viewport) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.viewport = vp
}

// Render returns write errors so the scheduler can report them, a closed socket ends
// the session anyway.
func (g *GraphologyWs) Render(frame scene.Frame) error {
	g.mu.Lock()
	vp := g.viewport
	g.mu.Unlock()

	return g.ws.WriteJSON(Message{
		Type: TypeFrame,
		Data: FrameData{
			Seq:           frame.Seq,
			Time:          frame.Time,
			Zoom:          frame.Zoom,
			LabelRotation: frame.LabelRotation,
			Selected:      frame.SelectedID,
			Graph:         graphology.Serialize(frame, Screen(frame, vp)),
		},
	})
}

// Screen projects through the camera a frame was drawn with onto vp's pixels.
func Screen(frame scene.Frame, vp picking.Viewport) graphology.Projector {
	cam := picking.ViewCamera(vp, frame.Zoom, frame.Yaw, frame.Pitch)
	return func(world geom.Vec3) (x, y, scale float64, ok bool) {
		ndcX, ndcY, ok := cam.Project(world)
		if !ok {
			return 0, 0, 0, false
		}
		x, y = picking.Pixel(ndcX, ndcY, vp)
		return x, y, cam.PixelsPerUnit(world, vp.Height), true
	}
}

func (g *GraphologyWs) NotifySelected(payload map[string]any) {
	g.send(Message{Type: TypeSelected, Data: payload})
}

func (g *GraphologyWs) NotifyChatbot(chatbot any) {
	g.send(Message{Type: TypeChatbot, Data: chatbot})
}

func (g *GraphologyWs) NotifyError(err error) {
	g.send(Message{Type: TypeError, Data: ErrorData{Message: err.Error()}})
}

func (g *GraphologyWs) send(m Message) {
	if err := g.ws.WriteJSON(m); err != nil {
		g.logger.Warn("ws.WriteJSON failed", "type", m.Type, "err", err)
	}
}
