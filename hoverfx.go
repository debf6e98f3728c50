package hoverfx

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorTransparentWhite is the default surface clear color.
var ColorTransparentWhite = Color{1, 1, 1, 0}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Controller is the control surface exposed to callers of New.
type Controller interface {
	// Next reveals the second asset (pair mode) or advances to the next
	// asset (carousel mode).
	Next()
	// Previous reverts to the first asset (pair mode) or steps back to the
	// previous asset (carousel mode).
	Previous()
}

// AssetKind selects how asset sources are decoded.
type AssetKind uint8

const (
	AssetImage AssetKind = iota // static image, redrawn on change
	AssetVideo                  // looping muted clip, redrawn every frame
)

// String returns "image" or "video".
func (k AssetKind) String() string {
	if k == AssetVideo {
		return "video"
	}
	return "image"
}

// Mode distinguishes the two-asset hover effect from the multi-asset carousel.
type Mode uint8

const (
	ModePair     Mode = iota // exactly two assets, blend retargets freely
	ModeCarousel             // N >= 2 assets cycled with an in-flight guard
)

// RenderMode is the redraw scheduling policy of a stage.
type RenderMode uint8

const (
	RenderOnDemand   RenderMode = iota // draw only when state changes
	RenderContinuous                   // draw every frame (video textures)
)

// EventType identifies a kind of input event routed by the binder.
type EventType uint8

const (
	EventPointerEnter EventType = iota // mouse moved onto the container
	EventPointerLeave                  // mouse moved off the container
	EventTouchStart                    // touch began inside the container
	EventTouchEnd                      // a touch that began inside the container ended
)

// String returns a short lower-case name for the event type.
func (e EventType) String() string {
	switch e {
	case EventPointerEnter:
		return "pointerenter"
	case EventPointerLeave:
		return "pointerleave"
	case EventTouchStart:
		return "touchstart"
	case EventTouchEnd:
		return "touchend"
	default:
		return "unknown"
	}
}

// Direction is the direction of a transition.
type Direction uint8

const (
	DirectionForward  Direction = iota // blend towards the second / next asset
	DirectionBackward                  // blend back towards the first / previous asset
)
