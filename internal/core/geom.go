// Package core provides fundamental types shared by the simulation and its hosts.
// It contains no external dependencies (especially no Bubble Tea) to keep the
// simulation pure and testable.
package core

// Vec2 is a point or displacement in world units.
type Vec2 struct {
	X, Y float64
}

// Box is an axis-aligned bounding box in world space.
// Center holds the middle of the box; Size holds the full width and height.
// World y grows upward.
type Box struct {
	Center Vec2
	Size   Vec2
}

// NewBox creates a box centered on (x, y) with full extents w by h.
func NewBox(x, y, w, h float64) Box {
	return Box{Center: Vec2{X: x, Y: y}, Size: Vec2{X: w, Y: h}}
}

// Left returns the x-coordinate of the left edge.
func (b Box) Left() float64 {
	return b.Center.X - b.Size.X/2
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.Center.X + b.Size.X/2
}

// Bottom returns the y-coordinate of the lower edge.
func (b Box) Bottom() float64 {
	return b.Center.Y - b.Size.Y/2
}

// Top returns the y-coordinate of the upper edge.
func (b Box) Top() float64 {
	return b.Center.Y + b.Size.Y/2
}

// Intersects returns true if this box overlaps another on both axes.
// Edges that only touch do not count as an overlap.
func (b Box) Intersects(other Box) bool {
	if b.Left() >= other.Right() || other.Left() >= b.Right() {
		return false
	}
	if b.Bottom() >= other.Top() || other.Bottom() >= b.Top() {
		return false
	}
	return true
}

// Rect represents a cell-aligned rectangle on a Screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
