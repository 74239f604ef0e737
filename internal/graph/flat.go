package graph

import (
	"github.com/psidex/learnpath/internal/lib"
)

func (n *Normalizer) flat(m map[string]any, rawNodes []any) *Graph {
	g := newGraph(ShapeFlat)
	for k, v := range m {
		if k != "nodes" && k != "edges" {
			g.Meta[k] = v
		}
	}

	raw := make(map[string]map[string]any, len(rawNodes))
	for i, rn := range rawNodes {
		nm, ok := rn.(map[string]any)
		if !ok {
			n.logger.Warn("Ignoring malformed node", "index", i)
			continue
		}
		id := idOf(nm)
		if id == "" {
			n.logger.Warn("Ignoring node without id", "index", i)
			continue
		}
		if _, dup := g.byID[id]; dup {
			n.logger.Warn("Ignoring duplicate node", "id", id)
			continue
		}
		node := newNode(nm, id, 0)
		g.byID[id] = node
		g.Nodes = append(g.Nodes, node)
		raw[id] = nm
	}

	rawEdges, _ := m["edges"].([]any)
	for i, re := range rawEdges {
		em, ok := re.(map[string]any)
		if !ok {
			n.logger.Warn("Ignoring malformed edge", "index", i)
			g.drop("", "", ReasonMalformed)
			continue
		}
		from := firstString(em, "from", "source")
		to := firstString(em, "to", "target")
		parent, okFrom := g.byID[from]
		child, okTo := g.byID[to]

		switch {
		case !okFrom || !okTo:
			n.logger.Warn("Dropping edge with unknown endpoint", "from", from, "to", to)
			g.drop(from, to, ReasonUnknownNode)
		case g.isAncestor(to, from):
			n.logger.Warn("Dropping cyclic edge", "from", from, "to", to)
			g.drop(from, to, ReasonCycle)
		case g.hasParent(to):
			n.logger.Warn("Dropping edge to node that already has a parent", "from", from, "to", to)
			g.drop(from, to, ReasonSecondParent)
		default:
			g.parent[to] = from
			parent.Children = append(parent.Children, child)
		}
	}

	for _, node := range g.Nodes {
		if !g.hasParent(node.ID) {
			g.Roots = append(g.Roots, node)
		}
	}

	// Breadth first from the roots gives every node its tree depth.
	q := lib.NewQueue()
	for _, r := range g.Roots {
		q.Enqueue(r.ID)
	}
	for {
		id, ok := q.Dequeue()
		if !ok {
			break
		}
		node := g.byID[id]
		for _, c := range node.Children {
			c.Depth = node.Depth + 1
			q.Enqueue(c.ID)
		}
	}

	for _, node := range g.Nodes {
		finish(node, raw[node.ID])
	}
	return g
}

func (g *Graph) hasParent(id string) bool {
	_, ok := g.parent[id]
	return ok
}
