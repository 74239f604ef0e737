package webserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/learnpath/internal/generator"
	"github.com/psidex/learnpath/internal/interaction"
	"github.com/psidex/learnpath/internal/picking"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		msg  string
		want any
	}{
		{`{"type":"pointerdown","x":1,"y":2}`, interaction.PointerDown{At: picking.Pointer{X: 1, Y: 2}}},
		{`{"type":"pointermove","x":3,"y":4}`, interaction.PointerMove{At: picking.Pointer{X: 3, Y: 4}}},
		{`{"type":"pointerup","x":3,"y":4}`, interaction.PointerUp{At: picking.Pointer{X: 3, Y: 4}}},
		{`{"type":"click","x":5,"y":6}`, interaction.Click{At: picking.Pointer{X: 5, Y: 6}}},
		{`{"type":"wheel","deltaY":-120}`, interaction.Wheel{DeltaY: -120}},
		{`{"type":"zoomin"}`, interaction.ZoomIn{}},
		{`{"type":"zoomout"}`, interaction.ZoomOut{}},
		{`{"type":"resize","width":800,"height":600}`, interaction.Resize{Viewport: picking.Viewport{Width: 800, Height: 600}}},
		{`{"type":"reset"}`, resetCommand{}},
		{`{"type":"expand","id":"n0.1"}`, expandCommand{ID: "n0.1"}},
		{
			`{"type":"generate","topic":"go","level":"advanced","selected_node":"x"}`,
			generateCommand{Request: generator.Request{Topic: "go", Level: "advanced", SelectedNode: "x"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			got, err := decode([]byte(tt.msg))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, msg := range []string{
		`not json`,
		`{"type":"teleport"}`,
		`{"type":"resize","width":0,"height":600}`,
		`{"type":"generate","topic":"  "}`,
		`{"type":"expand"}`,
	} {
		_, err := decode([]byte(msg))
		assert.Error(t, err, msg)
	}

	_, err := decode([]byte(`{"type":"generate"}`))
	assert.ErrorIs(t, err, generator.ErrEmptyTopic)
}

func TestSessionConfigViewport(t *testing.T) {
	fallback := picking.Viewport{Width: 1280, Height: 720}
	assert.Equal(t, fallback, SessionConfig{}.viewport(fallback))
	assert.Equal(t, picking.Viewport{Width: 800, Height: 600}, SessionConfig{Width: 800, Height: 600}.viewport(fallback))
}
