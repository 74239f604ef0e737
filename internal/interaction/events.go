package interaction

import "github.com/psidex/learnpath/internal/picking"

// Event is one typed input event. The set is closed, see the types below.
type Event interface {
	isEvent()
}

type PointerDown struct{ At picking.Pointer }
type PointerMove struct{ At picking.Pointer }
type PointerUp struct{ At picking.Pointer }
type Click struct{ At picking.Pointer }

// Wheel is one scroll notch, only the sign of DeltaY matters.
type Wheel struct{ DeltaY float64 }

type ZoomIn struct{}
type ZoomOut struct{}
type Resize struct{ Viewport picking.Viewport }

func (PointerDown) isEvent() {}
func (PointerMove) isEvent() {}
func (PointerUp) isEvent()   {}
func (Click) isEvent()       {}
func (Wheel) isEvent()       {}
func (ZoomIn) isEvent()      {}
func (ZoomOut) isEvent()     {}
func (Resize) isEvent()      {}
