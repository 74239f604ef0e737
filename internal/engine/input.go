package engine

import (
	"github.com/psidex/learnpath/internal/geom"
	"github.com/psidex/learnpath/internal/interaction"
	"github.com/psidex/learnpath/internal/picking"
)

// Dispatch routes one input event through the interaction state machine.
func (e *Engine) Dispatch(ev interaction.Event) {
	e.controller.Dispatch(ev, target{e})
	view := e.controller.View()
	e.store.Rotation = view.Rotation
	e.store.LabelRotation = view.LabelRotation()
}

// Volumes returns a picking sphere per scene node, in insertion order.
func (e *Engine) Volumes() []picking.Volume {
	nodes := e.store.Nodes()
	out := make([]picking.Volume, len(nodes))
	for i, n := range nodes {
		out[i] = picking.Volume{
			ID:     n.ID,
			Center: e.store.World(n.Position),
			Radius: n.Radius(),
		}
	}
	return out
}

// PickAt returns the node under a pixel position.
func (e *Engine) PickAt(p picking.Pointer) (string, bool) {
	hit, ok := picking.Pick(e.caster, e.Camera(), p, e.controller.View().Viewport, e.Volumes())
	e.recorder.Picked(ok)
	return hit.ID, ok
}

// target adapts Engine to interaction.Target.
type target struct{ e *Engine }

func (t target) Pick(p picking.Pointer) (string, bool) {
	return t.e.PickAt(p)
}

// Drag moves id to where the pointer ray crosses the plane the node currently sits in.
func (t target) Drag(id string, p picking.Pointer) {
	e := t.e
	n, ok := e.store.Node(id)
	if !ok {
		return
	}
	vp := e.controller.View().Viewport
	ray := e.Camera().Ray(picking.NDC(p.X, p.Y, vp))
	world := e.store.World(n.Position)
	dist, ok := ray.IntersectPlane(world, geom.V(0, 0, 1))
	if !ok {
		return
	}
	local := e.store.Local(ray.At(dist))
	local.Z = n.Position.Z
	if err := e.store.MoveNode(id, local); err != nil {
		e.logger.Warn("drag failed", "id", id, "error", err)
	}
}

func (t target) Select(id string) {
	if err := t.e.Select(id); err != nil {
		t.e.logger.Warn("select failed", "id", id, "error", err)
	}
}
