package graphs

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/learnpath/internal/geom"
	"github.com/psidex/learnpath/internal/graph"
	"github.com/psidex/learnpath/internal/lib"
	"github.com/psidex/learnpath/internal/scene"
)

func testFrame() scene.Frame {
	node := func(id, parent, title string, pos geom.Vec3, depth int) scene.Node {
		return scene.Node{
			ID: id, ParentID: parent, Title: title, Kind: graph.KindModule, Depth: depth,
			Position: pos, Home: pos, Size: 20 - 2*float64(depth), Color: 0x3B82F6,
			Opacity: 1, Scale: 1,
		}
	}
	straight := func(a, b geom.Vec3) []geom.Vec3 {
		return []geom.Vec3{a, a.Lerp(b, 0.5), b}
	}
	root := geom.V(0, 0, 0)
	left := geom.V(-150, 0, 0)
	right := geom.V(150, 0, 0)
	return scene.Frame{
		Nodes: []scene.Node{
			node("root", "", "Python", root, 0),
			node("a", "root", "Basics", left, 1),
			node("b", "root", "Basics", right, 1),
		},
		Edges: []scene.Edge{
			{SourceID: "root", TargetID: "a", Control: root.Lerp(left, 0.5), Samples: straight(root, left), Opacity: 0.4, Color: 0x94A3B8},
			{SourceID: "root", TargetID: "b", Control: geom.V(75, 30, 0), Samples: straight(root, right), Opacity: 0.4, Color: 0x94A3B8},
		},
	}
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, "#312E81", HexColor(0x312E81))
	assert.Equal(t, "#000000", HexColor(0))
	assert.Equal(t, "#FFFFFF", HexColor(0xFFFFFFFF))
}

func TestGraphElementsPinsNodesAndDisambiguatesNames(t *testing.T) {
	nodes, links := graphElements(testFrame())
	require.Len(t, nodes, 3)
	require.Len(t, links, 2)

	assert.Equal(t, "Python", nodes[0].Name)
	assert.Equal(t, "Basics", nodes[1].Name)
	assert.Equal(t, "Basics (b)", nodes[2].Name)

	assert.Equal(t, float32(-150), nodes[1].X)
	assert.Equal(t, float32(150), nodes[2].X)
	assert.Equal(t, 40.0, nodes[0].SymbolSize)

	assert.Equal(t, "Python", links[1].Source)
	assert.Equal(t, "Basics (b)", links[1].Target)
	assert.Equal(t, float32(0), links[0].LineStyle.Curveness)
	assert.NotZero(t, links[1].LineStyle.Curveness)
}

func TestEChartsWrite(t *testing.T) {
	e := NewECharts("roadmap")
	require.NoError(t, e.Render(testFrame()))

	var buf bytes.Buffer
	require.NoError(t, e.Write(&buf))
	assert.Contains(t, buf.String(), "roadmap")
	assert.Contains(t, buf.String(), "Basics (b)")
}

func TestEChartsRenderToFile(t *testing.T) {
	e := NewECharts("")
	require.NoError(t, e.Render(testFrame()))

	name := filepath.Join(t.TempDir(), "out")
	require.NoError(t, e.RenderToFile(name))
	_, err := os.Stat(name + ".html")
	assert.NoError(t, err)
}

func TestAdjacency(t *testing.T) {
	a := NewAdjacency()
	require.NoError(t, a.Render(testFrame()))

	name := filepath.Join(t.TempDir(), "adj")
	require.NoError(t, a.RenderToFile(name))

	raw, err := os.ReadFile(name + ".json")
	require.NoError(t, err)
	var got map[string][]string
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, []string{"a", "b"}, got["root"])
	assert.Empty(t, got["a"])
	assert.Len(t, got, 3)
}

func TestScreenshotCapture(t *testing.T) {
	found := false
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "headless-shell"} {
		if _, err := exec.LookPath(name); err == nil {
			found = true
			break
		}
	}
	if !found {
		t.Skip("no Chrome available")
	}

	s := NewScreenshot("roadmap", 640, 480, 30*time.Second, lib.DiscardLogger())
	require.NoError(t, s.Render(testFrame()))
	png, err := s.Capture(t.Context())
	if err != nil {
		t.Skipf("chrome could not render the page: %v", err)
	}
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
