package graphs

import (
	"io"
	"math"
	"os"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/psidex/learnpath/internal/lib"
	"github.com/psidex/learnpath/internal/scene"
)

// ECharts defines a CliRenderer that renders a go-echarts HTML file with every node
// pinned where the layout put it.
type ECharts struct {
	mu    *sync.Mutex
	title string
	frame scene.Frame
}

var _ CliRenderer = (*ECharts)(nil)

func NewECharts(title string) *ECharts {
	if title == "" {
		title = "learnpath"
	}
	return &ECharts{
		mu:    &sync.Mutex{},
		title: title,
	}
}

func (e *ECharts) Render(frame scene.Frame) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frame = frame
	return nil
}

func (e *ECharts) RenderToFile(filename string) error {
	filename = filename + ".html"

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return e.Write(f)
}

// Write renders the HTML page to w.
func (e *ECharts) Write(w io.Writer) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	nodes, links := graphElements(e.frame)

	page := components.NewPage()
	page.SetPageTitle(e.title)
	page.AddCharts(graphBase(e.title, nodes, links))

	return page.Render(w)
}

// graphElements converts a frame into echarts nodes and links. Echarts links nodes by
// name, so titles that repeat are suffixed with their id.
func graphElements(f scene.Frame) ([]opts.GraphNode, []opts.GraphLink) {
	names := make(map[string]string, len(f.Nodes))
	used := lib.NewSet()
	for _, n := range f.Nodes {
		name := n.Title
		if name == "" || used.Contains(name) {
			name = n.Title + " (" + n.ID + ")"
		}
		used.Add(name)
		names[n.ID] = name
	}

	nodes := make([]opts.GraphNode, 0, len(f.Nodes))
	for _, n := range f.Nodes {
		world := f.World(n.Position)
		style := &opts.ItemStyle{
			Color:   HexColor(n.Color),
			Opacity: opts.Float(float32(n.Opacity)),
		}
		if n.Ring {
			style.BorderColor = "#FFFFFF"
			style.BorderWidth = 2
		}
		nodes = append(nodes, opts.GraphNode{
			Name: names[n.ID],
			// Echarts y grows downwards.
			X:          float32(world.X),
			Y:          float32(-world.Y),
			Fixed:      opts.Bool(true),
			SymbolSize: 2 * n.Radius(),
			ItemStyle:  style,
		})
	}

	links := make([]opts.GraphLink, 0, len(f.Edges))
	for _, e := range f.Edges {
		links = append(links, opts.GraphLink{
			Source: names[e.SourceID],
			Target: names[e.TargetID],
			LineStyle: &opts.LineStyle{
				Color:     HexColor(e.Color),
				Opacity:   opts.Float(float32(e.Opacity)),
				Curveness: float32(curveness(f, e)),
			},
		})
	}
	return nodes, links
}

// curveness is the signed offset of the control point from the chord, relative to the
// chord length, with y flipped to match echarts.
func curveness(f scene.Frame, e scene.Edge) float64 {
	if len(e.Samples) < 2 {
		return 0
	}
	a, b := e.Samples[0], e.Samples[len(e.Samples)-1]
	d := b.Sub(a)
	l2 := d.X*d.X + d.Y*d.Y
	if l2 == 0 {
		return 0
	}
	off := e.Control.Sub(a.Lerp(b, 0.5))
	c := -(d.X*off.Y - d.Y*off.X) / l2
	return math.Max(-1, math.Min(1, c))
}

func graphBase(title string, nodes []opts.GraphNode, links []opts.GraphLink) *charts.Graph {
	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       title,
			Height:          "100vh",
			Width:           "100vw",
			BackgroundColor: "#0F172A",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
	)
	graph.AddSeries(
		"graph",
		nodes,
		links,
		charts.WithGraphChartOpts(
			opts.GraphChart{
				Layout:    "none",
				Draggable: opts.Bool(true),
				Roam:      opts.Bool(true),
				Animation: opts.Bool(false),
			},
		),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Color:    "white",
			Position: "top",
		}),
	)
	return graph
}
