package generator

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

var (
	//go:embed data/domains.json
	defaultDomains []byte
	//go:embed data/knowledge_graph.json
	defaultKnowledgeGraph []byte
)

type Domain struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

type PathNode struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Level       int    `json:"level"`
	Description string `json:"description,omitempty"`
}

type PathEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type DomainGraph struct {
	Nodes       []PathNode   `json:"nodes"`
	Edges       []PathEdge   `json:"edges"`
	Algorithms  []string     `json:"algorithms"`
	Suggestions []Suggestion `json:"suggestions"`
}

// PathResult is the flat payload the path builder produces.
type PathResult struct {
	Domain        string       `json:"domain"`
	Confidence    float64      `json:"confidence"`
	Nodes         []PathNode   `json:"nodes"`
	Edges         []PathEdge   `json:"edges"`
	Algorithms    []string     `json:"algorithms"`
	AISuggestions []Suggestion `json:"ai_suggestions"`
}

// MaxLevel is the deepest node level shown to a learner at level.
func MaxLevel(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "beginner":
		return 3
	case "intermediate":
		return 4
	}
	return 5
}

// PathBuilder picks a domain for the request text and returns that domain's knowledge
// graph trimmed to the learner's level.
type PathBuilder struct {
	tfidf  *TFIDF
	graphs map[string]DomainGraph
}

func NewPathBuilder(domains []Domain, graphs map[string]DomainGraph) *PathBuilder {
	return &PathBuilder{tfidf: NewTFIDF(domains), graphs: graphs}
}

// LoadPathBuilder reads a domain keyword list and a knowledge graph keyed by domain.
func LoadPathBuilder(domainsJSON, graphJSON []byte) (*PathBuilder, error) {
	var domains []Domain
	if err := json.Unmarshal(domainsJSON, &domains); err != nil {
		return nil, fmt.Errorf("decode domains: %w", err)
	}
	graphs := map[string]DomainGraph{}
	if err := json.Unmarshal(graphJSON, &graphs); err != nil {
		return nil, fmt.Errorf("decode knowledge graph: %w", err)
	}
	return NewPathBuilder(domains, graphs), nil
}

// DefaultPathBuilder uses the built-in knowledge graph.
func DefaultPathBuilder() *PathBuilder {
	pb, err := LoadPathBuilder(defaultDomains, defaultKnowledgeGraph)
	if err != nil {
		panic(err)
	}
	return pb
}

func (p *PathBuilder) Build(text, level string) PathResult {
	empty := PathResult{
		Domain:        "unknown",
		Nodes:         []PathNode{},
		Edges:         []PathEdge{},
		Algorithms:    []string{},
		AISuggestions: []Suggestion{},
	}

	domain, confidence := p.tfidf.Detect(text)
	g, ok := p.graphs[domain]
	if domain == "" || !ok {
		return empty
	}

	maxLevel := MaxLevel(level)
	res := empty
	res.Domain, res.Confidence = domain, confidence
	kept := map[string]bool{}
	for _, n := range g.Nodes {
		if n.Level <= maxLevel {
			res.Nodes = append(res.Nodes, n)
			kept[n.ID] = true
		}
	}
	for _, e := range g.Edges {
		if kept[e.From] && kept[e.To] {
			res.Edges = append(res.Edges, e)
		}
	}
	res.Algorithms = append(res.Algorithms, g.Algorithms...)
	res.AISuggestions = append(res.AISuggestions, g.Suggestions...)
	return res
}

func (p *PathBuilder) Generate(ctx context.Context, req Request) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return json.Marshal(p.Build(req.Topic, req.Level))
}
