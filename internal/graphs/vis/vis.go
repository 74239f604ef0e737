package vis

import (
	"encoding/json"
	"html/template"
	"io"
	"os"
	"sync"
	"time"

	"github.com/psidex/learnpath/internal/graphs"
	"github.com/psidex/learnpath/internal/scene"
)

const defaultStep = 120 * time.Millisecond

var page = template.Must(template.New("vis").Parse(html))

// Vis defines a CliRenderer that renders to a HTML file which replays the order nodes
// were revealed in using vis.js. Each node is followed by the edge from its parent.
type Vis struct {
	mu    *sync.Mutex
	title string
	delay time.Duration
	steps []step
}

var _ graphs.CliRenderer = (*Vis)(nil)

func NewVis(title string) *Vis {
	return &Vis{mu: &sync.Mutex{}, title: title, delay: defaultStep}
}

func (v *Vis) Render(frame scene.Frame) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	incoming := make(map[string]scene.Edge, len(frame.Edges))
	for _, e := range frame.Edges {
		incoming[e.TargetID] = e
	}

	v.steps = v.steps[:0]
	for _, n := range frame.Nodes {
		v.steps = append(v.steps, nodeStep(n, frame.World(n.Position)))
		if e, ok := incoming[n.ID]; ok {
			v.steps = append(v.steps, edgeStep(e))
		}
	}
	return nil
}

// Write executes the page template for the last rendered frame.
func (v *Vis) Write(w io.Writer) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	steps, err := json.Marshal(v.steps)
	if err != nil {
		return err
	}
	return page.Execute(w, struct {
		Title     string
		Steps     template.JS
		StepDelay int64
	}{
		Title:     v.title,
		Steps:     template.JS(steps),
		StepDelay: v.delay.Milliseconds(),
	})
}

func (v *Vis) RenderToFile(filename string) error {
	file, err := os.Create(filename + ".html")
	if err != nil {
		return err
	}
	defer file.Close()
	return v.Write(file)
}
