package graph

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/psidex/learnpath/internal/lib"
)

var (
	ErrEmptyPayload = errors.New("graph: empty payload")
	ErrUnknownShape = errors.New("graph: payload is neither a nested tree nor a flat node/edge list")
)

// Normalizer turns decoded payloads into Graphs. Malformed parts of a payload are
// dropped and logged rather than failing the whole build.
type Normalizer struct {
	logger *slog.Logger
}

func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = lib.DiscardLogger()
	}
	return &Normalizer{logger: logger}
}

// Normalize decodes a JSON payload and normalizes it.
func (n *Normalizer) Normalize(payload []byte) (*Graph, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, ErrEmptyPayload
	}
	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("graph: decode payload: %w", err)
	}
	if doc == nil {
		return nil, ErrEmptyPayload
	}
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, ErrUnknownShape
	}
	return n.NormalizeMap(m)
}

// NormalizeMap normalizes an already decoded payload. A "nodes" array selects the flat
// shape, a "tree" object (the /process response form) or node-like fields select the
// nested shape.
func (n *Normalizer) NormalizeMap(m map[string]any) (*Graph, error) {
	if rawNodes, ok := m["nodes"].([]any); ok {
		return n.flat(m, rawNodes), nil
	}
	if tree, ok := m["tree"].(map[string]any); ok {
		g := n.nested(tree)
		for k, v := range m {
			if k != "tree" {
				g.Meta[k] = v
			}
		}
		return g, nil
	}
	if looksLikeNode(m) {
		return n.nested(m), nil
	}
	return nil, ErrUnknownShape
}

func looksLikeNode(m map[string]any) bool {
	for _, k := range []string{"title", "children", "id", "current_node"} {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

func inferKind(m map[string]any, depth int, hasChildren bool) Kind {
	for _, key := range []string{"role", "type"} {
		if k, ok := ParseKind(stringOf(m[key])); ok {
			return k
		}
	}
	switch {
	case depth == 0:
		return KindRoot
	case hasChildren:
		return KindModule
	}
	return KindSubtopic
}

func contentFor(k Kind, m map[string]any) Content {
	explanation := plainText(firstString(m, "explanation", "description", "summary"))
	switch k {
	case KindRoot:
		return RootContent{Explanation: explanation}
	case KindModule:
		return ModuleContent{Explanation: explanation}
	case KindSuggestion:
		return SuggestionContent{Description: plainText(firstString(m, "description", "explanation", "summary"))}
	}
	return SubtopicContent{
		Explanation: explanation,
		Task:        plainText(stringOf(m["task"])),
		Quiz:        plainText(stringOf(m["quiz"])),
	}
}

// newNode fills everything but Kind/Content, which depend on where the node ends up.
func newNode(m map[string]any, id string, depth int) *Node {
	node := &Node{
		ID:      id,
		Title:   plainText(firstString(m, "title", "label", "name", "current_node")),
		Status:  stringOf(m["status"]),
		Depth:   depth,
		Payload: payloadOf(m),
	}
	if node.Title == "" {
		node.Title = id
	}
	if lvl, ok := intOf(m["level"]); ok {
		node.Level, node.HasLevel = lvl, true
	}
	return node
}

func finish(node *Node, m map[string]any) {
	node.Kind = inferKind(m, node.Depth, len(node.Children) > 0)
	node.Content = contentFor(node.Kind, m)
}

func payloadOf(m map[string]any) map[string]any {
	p := make(map[string]any, len(m))
	for k, v := range m {
		if k != "children" {
			p[k] = v
		}
	}
	return p
}

func idOf(m map[string]any) string {
	return stringOf(m["id"])
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := stringOf(m[k]); s != "" {
			return s
		}
	}
	return ""
}

func stringOf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	}
	return ""
}

func intOf(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case json.Number:
		i, err := t.Int64()
		return int(i), err == nil
	case string:
		i, err := strconv.Atoi(t)
		return i, err == nil
	}
	return 0, false
}
