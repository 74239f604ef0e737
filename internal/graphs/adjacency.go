package graphs

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/psidex/learnpath/internal/lib"
	"github.com/psidex/learnpath/internal/scene"
)

// Adjacency defines a CliRenderer that renders each node's children as a JSON map of
// id to child ids. Leaves are included with no children.
type Adjacency struct {
	mu       *sync.RWMutex
	children map[string]lib.Set
}

var _ CliRenderer = (*Adjacency)(nil)

func NewAdjacency() *Adjacency {
	return &Adjacency{
		mu:       &sync.RWMutex{},
		children: make(map[string]lib.Set),
	}
}

func (a *Adjacency) Render(frame scene.Frame) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.children = make(map[string]lib.Set, len(frame.Nodes))
	for _, n := range frame.Nodes {
		a.children[n.ID] = lib.NewSet()
	}
	for _, e := range frame.Edges {
		if _, ok := a.children[e.SourceID]; !ok {
			a.children[e.SourceID] = lib.NewSet()
		}
		a.children[e.SourceID].Add(e.TargetID)
	}
	return nil
}

func (a *Adjacency) toJson() ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	slicedSets := make(map[string][]string, len(a.children))
	for key, value := range a.children {
		slicedSets[key] = value.AsSlice()
	}

	return json.MarshalIndent(slicedSets, "", "  ")
}

func (a *Adjacency) RenderToFile(filename string) error {
	filename = filename + ".json"

	jsonData, err := a.toJson()
	if err != nil {
		return err
	}

	return os.WriteFile(filename, jsonData, 0o644)
}
