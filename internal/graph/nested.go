package graph

import (
	"fmt"
)

func (n *Normalizer) nested(root map[string]any) *Graph {
	g := newGraph(ShapeNested)
	w := &nestedWalk{g: g, explicit: map[string]bool{}, ancestors: map[string]bool{}}
	collectIDs(root, w.explicit)
	r := n.nestedNode(w, root, "n0", 0, "")
	g.Roots = []*Node{r}
	return g
}

// nestedWalk is the state of one nested normalization. explicit holds every id the
// payload spells out, derived ids never take one of them. ancestors holds the ids on the
// current path so a child that would revisit one of them is dropped instead of followed.
type nestedWalk struct {
	g         *Graph
	explicit  map[string]bool
	ancestors map[string]bool
}

func collectIDs(m map[string]any, into map[string]bool) {
	if id := idOf(m); id != "" {
		into[id] = true
	}
	children, _ := m["children"].([]any)
	for _, raw := range children {
		if cm, ok := raw.(map[string]any); ok {
			collectIDs(cm, into)
		}
	}
}

// nestedNode walks one subtree depth first.
func (n *Normalizer) nestedNode(w *nestedWalk, m map[string]any, pathID string, depth int, parentID string) *Node {
	g, ancestors := w.g, w.ancestors
	id := idOf(m)
	if id == "" {
		id = freeID(g, pathID, w.explicit)
	}
	if _, taken := g.byID[id]; taken {
		fresh := freeID(g, pathID, w.explicit)
		n.logger.Warn("Duplicate node id, re-keying", "id", id, "newId", fresh)
		id = fresh
	}

	node := newNode(m, id, depth)
	g.byID[id] = node
	g.Nodes = append(g.Nodes, node)
	if parentID != "" {
		g.parent[id] = parentID
	}

	ancestors[id] = true
	defer delete(ancestors, id)

	// Anything other than an array of objects is treated as "no children".
	children, _ := m["children"].([]any)
	for i, raw := range children {
		cm, ok := raw.(map[string]any)
		if !ok {
			n.logger.Warn("Ignoring malformed child", "parent", id, "index", i)
			g.drop(id, "", ReasonMalformed)
			continue
		}
		if cid := idOf(cm); cid != "" && ancestors[cid] {
			n.logger.Warn("Dropping cyclic child link", "parent", id, "child", cid)
			g.drop(id, cid, ReasonCycle)
			continue
		}
		child := n.nestedNode(w, cm, fmt.Sprintf("%s.%d", pathID, i), depth+1, id)
		node.Children = append(node.Children, child)
	}

	finish(node, m)
	return node
}

// freeID returns base, or base with a ~N suffix, avoiding ids already in g and reserved.
func freeID(g *Graph, base string, reserved map[string]bool) string {
	id := base
	for i := 1; ; i++ {
		if _, taken := g.byID[id]; !taken && !reserved[id] {
			return id
		}
		id = fmt.Sprintf("%s~%d", base, i)
	}
}
