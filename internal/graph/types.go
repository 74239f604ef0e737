// Package graph normalizes backend learning-path payloads, nested trees or flat
// node/edge lists, into one canonical acyclic graph.
package graph

import "strings"

// Kind is the closed set of node variants a learning path can contain.
type Kind int

const (
	KindRoot Kind = iota
	KindModule
	KindSubtopic
	KindSuggestion
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindModule:
		return "module"
	case KindSubtopic:
		return "subtopic"
	case KindSuggestion:
		return "suggestion"
	}
	return "unknown"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseKind maps the role/type tags the backends emit onto a Kind.
func ParseKind(tag string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "root":
		return KindRoot, true
	case "module", "parent":
		return KindModule, true
	case "subtopic", "leaf", "topic":
		return KindSubtopic, true
	case "suggestion", "ai_suggestion":
		return KindSuggestion, true
	}
	return 0, false
}

// Content is implemented only by the variant types below, each carrying the fields that
// are valid for its Kind.
type Content interface {
	Kind() Kind
}

type RootContent struct {
	Explanation string `json:"explanation,omitempty"`
}

type ModuleContent struct {
	Explanation string `json:"explanation,omitempty"`
}

type SubtopicContent struct {
	Explanation string `json:"explanation,omitempty"`
	Task        string `json:"task,omitempty"`
	Quiz        string `json:"quiz,omitempty"`
}

type SuggestionContent struct {
	Description string `json:"description,omitempty"`
}

func (RootContent) Kind() Kind       { return KindRoot }
func (ModuleContent) Kind() Kind     { return KindModule }
func (SubtopicContent) Kind() Kind   { return KindSubtopic }
func (SuggestionContent) Kind() Kind { return KindSuggestion }

// Node is a normalized GraphNode. Nodes are immutable once a Graph has been built.
type Node struct {
	ID       string
	Title    string
	Kind     Kind
	Content  Content
	Status   string
	Level    int
	HasLevel bool
	Depth    int
	Children []*Node
	// Payload is the node's original fields minus its children, handed to selection
	// sinks untouched.
	Payload map[string]any
}

// Summary returns the node's explanation or description, whichever its variant has.
func (n *Node) Summary() string {
	switch c := n.Content.(type) {
	case RootContent:
		return c.Explanation
	case ModuleContent:
		return c.Explanation
	case SubtopicContent:
		return c.Explanation
	case SuggestionContent:
		return c.Description
	}
	return ""
}

func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Shape records which payload form a Graph was built from.
type Shape int

const (
	ShapeNested Shape = iota
	ShapeFlat
)

func (s Shape) String() string {
	if s == ShapeFlat {
		return "flat"
	}
	return "nested"
}

// DroppedLink is a parent->child reference the normalizer refused to follow.
type DroppedLink struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Reason string `json:"reason"`
}

const (
	ReasonUnknownNode  = "unknown node"
	ReasonCycle        = "cycle"
	ReasonSecondParent = "second parent"
	ReasonMalformed    = "malformed"
)

// Graph is the canonical, acyclic form of a payload. Nested payloads always give one
// root, flat payloads may give several.
type Graph struct {
	Shape   Shape
	Roots   []*Node
	Nodes   []*Node
	Dropped []DroppedLink
	// Meta keeps top-level payload fields that are not part of the tree (chatbot,
	// domain, algorithms, ...).
	Meta map[string]any

	byID   map[string]*Node
	parent map[string]string
}

func newGraph(shape Shape) *Graph {
	return &Graph{
		Shape:  shape,
		Meta:   map[string]any{},
		byID:   map[string]*Node{},
		parent: map[string]string{},
	}
}

func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.byID[id]
	return n, ok
}

// Parent returns the id of the node's parent, ok is false for roots and unknown ids.
func (g *Graph) Parent(id string) (string, bool) {
	p, ok := g.parent[id]
	return p, ok
}

func (g *Graph) Len() int { return len(g.Nodes) }

// Root returns the first root, nil for an empty graph.
func (g *Graph) Root() *Node {
	if len(g.Roots) == 0 {
		return nil
	}
	return g.Roots[0]
}

func (g *Graph) drop(from, to, reason string) {
	g.Dropped = append(g.Dropped, DroppedLink{From: from, To: to, Reason: reason})
}

// isAncestor reports whether anc is id or one of id's ancestors.
func (g *Graph) isAncestor(anc, id string) bool {
	seen := map[string]bool{}
	for cur := id; ; {
		if cur == anc {
			return true
		}
		if seen[cur] {
			return false
		}
		seen[cur] = true
		p, ok := g.parent[cur]
		if !ok {
			return false
		}
		cur = p
	}
}
