package vis

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/learnpath/internal/geom"
	"github.com/psidex/learnpath/internal/scene"
)

func TestRenderReplaysInRevealOrder(t *testing.T) {
	v := NewVis("Go <roadmap>")
	require.NoError(t, v.Render(scene.Frame{
		Nodes: []scene.Node{
			{ID: "root", Title: "Go", Scale: 1, Size: 20},
			{ID: "m1", Title: "Basics", Position: geom.V(150, 40, 0), Scale: 1, Size: 18},
		},
		Edges: []scene.Edge{{SourceID: "root", TargetID: "m1"}},
	}))

	name := filepath.Join(t.TempDir(), "replay")
	require.NoError(t, v.RenderToFile(name))

	raw, err := os.ReadFile(name + ".html")
	require.NoError(t, err)
	out := string(raw)

	rootAt := strings.Index(out, `"id":"root"`)
	m1At := strings.Index(out, `"id":"m1"`)
	edgeAt := strings.Index(out, `"from":"root","to":"m1"`)
	require.True(t, rootAt >= 0 && m1At >= 0 && edgeAt >= 0)
	assert.Less(t, rootAt, m1At)
	assert.Less(t, m1At, edgeAt)
	assert.Contains(t, out, `"y":-40`)
	assert.Contains(t, out, "vis-network")
	assert.Contains(t, out, "<title>Go &lt;roadmap&gt;</title>")
	assert.Regexp(t, `const delay = \s*120\s*;`, out)
}

func TestRenderReplacesPreviousFrame(t *testing.T) {
	v := NewVis("")
	require.NoError(t, v.Render(scene.Frame{Nodes: []scene.Node{{ID: "a"}, {ID: "b"}}}))
	require.NoError(t, v.Render(scene.Frame{Nodes: []scene.Node{{ID: "c"}}}))
	assert.Len(t, v.steps, 1)
}
