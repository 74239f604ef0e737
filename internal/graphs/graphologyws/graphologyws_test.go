package graphologyws

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/learnpath/internal/geom"
	"github.com/psidex/learnpath/internal/lib"
	"github.com/psidex/learnpath/internal/picking"
	"github.com/psidex/learnpath/internal/scene"
)

type fakeWriter struct {
	sent []Message
	err  error
}

func (f *fakeWriter) WriteJSON(v any) error {
	f.sent = append(f.sent, v.(Message))
	return f.err
}

var vp = picking.Viewport{Width: 1280, Height: 720}

func TestRenderProjectsToPixels(t *testing.T) {
	w := &fakeWriter{}
	g := NewGraphologyWs(w, vp, lib.DiscardLogger())

	f := scene.Frame{
		Seq:        7,
		Zoom:       1,
		SelectedID: "b",
		Nodes: []scene.Node{
			{ID: "a", Size: 20, Scale: 1},
			{ID: "b", Position: geom.V(100, 50, 0), Size: 18, Scale: 1},
		},
	}
	require.NoError(t, g.Render(f))
	require.Len(t, w.sent, 1)
	assert.Equal(t, TypeFrame, w.sent[0].Type)

	data := w.sent[0].Data.(FrameData)
	assert.Equal(t, uint64(7), data.Seq)
	assert.Equal(t, "b", data.Selected)

	a, b := data.Graph.Nodes[0].Attributes, data.Graph.Nodes[1].Attributes
	assert.InDelta(t, 640, a.X, 1e-6)
	assert.InDelta(t, 360, a.Y, 1e-6)
	assert.Greater(t, b.X, a.X)
	assert.Less(t, b.Y, a.Y)
	assert.Greater(t, a.Size, 20.0)
}

func TestZoomEnlargesProjection(t *testing.T) {
	world := geom.V(100, 0, 0)
	x1, _, s1, ok := Screen(scene.Frame{Zoom: 1}, vp)(world)
	require.True(t, ok)
	x2, _, s2, ok := Screen(scene.Frame{Zoom: 2}, vp)(world)
	require.True(t, ok)

	assert.InDelta(t, 2*(x1-640), x2-640, 1e-6)
	assert.InDelta(t, 2*s1, s2, 1e-6)
}

func TestSetViewport(t *testing.T) {
	w := &fakeWriter{}
	g := NewGraphologyWs(w, vp, lib.DiscardLogger())
	g.SetViewport(picking.Viewport{Width: 200, Height: 100})

	require.NoError(t, g.Render(scene.Frame{Zoom: 1, Nodes: []scene.Node{{ID: "a", Scale: 1}}}))
	a := w.sent[0].Data.(FrameData).Graph.Nodes[0].Attributes
	assert.InDelta(t, 100, a.X, 1e-6)
	assert.InDelta(t, 50, a.Y, 1e-6)
}

func TestNotifications(t *testing.T) {
	w := &fakeWriter{}
	g := NewGraphologyWs(w, vp, lib.DiscardLogger())

	g.NotifySelected(map[string]any{"id": "x"})
	g.NotifySelected(nil)
	g.NotifyChatbot(map[string]any{"message": "hi"})
	g.NotifyError(errors.New("generation failed"))

	require.Len(t, w.sent, 4)
	assert.Equal(t, TypeSelected, w.sent[0].Type)
	assert.Nil(t, w.sent[1].Data)
	assert.Equal(t, TypeChatbot, w.sent[2].Type)
	assert.Equal(t, ErrorData{Message: "generation failed"}, w.sent[3].Data)
}

func TestRenderReturnsWriteErrors(t *testing.T) {
	w := &fakeWriter{err: errors.New("closed")}
	g := NewGraphologyWs(w, vp, lib.DiscardLogger())
	assert.Error(t, g.Render(scene.Frame{Zoom: 1}))
	assert.NotPanics(t, func() { g.NotifyError(errors.New("x")) })
}
