package entity

// Vec2 is a position or velocity in world pixels.
type Vec2 struct {
	X, Y float64
}

// Add returns the component-wise sum.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Rect is an axis-aligned rectangle. X, Y is the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Left returns the left edge
func (r Rect) Left() float64 { return r.X }

// Right returns the right edge
func (r Rect) Right() float64 { return r.X + r.W }

// Top returns the top edge
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the bottom edge
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the center point
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Intersects reports whether the two rectangles overlap.
// Rectangles that only share an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Facing directions
const (
	FacingLeft  = -1
	FacingRight = 1
)

// Body is the physical box shared by every character.
// Velocity is in pixels per tick.
type Body struct {
	Position Vec2
	Velocity Vec2
	Width    float64
	Height   float64
	Facing   int // FacingLeft or FacingRight
	Grounded bool

	// Inset shrinks the collision box on the left, right and top so that
	// sprite padding does not collide.
	Inset float64
}

// Bounds returns the full bounding box at the current position
func (b *Body) Bounds() Rect {
	return Rect{X: b.Position.X, Y: b.Position.Y, W: b.Width, H: b.Height}
}

// CollisionRect returns the collision box for a body placed at pos.
// The bottom edge is not inset: a body standing at platformTop-Height rests
// exactly on the platform.
func (b *Body) CollisionRect(pos Vec2) Rect {
	return Rect{
		X: pos.X + b.Inset,
		Y: pos.Y + b.Inset,
		W: b.Width - 2*b.Inset,
		H: b.Height - b.Inset,
	}
}

// Center returns the center of the bounding box
func (b *Body) Center() Vec2 {
	return b.Bounds().Center()
}

// FacingRight reports whether the body faces right
func (b *Body) FacingRight() bool {
	return b.Facing >= 0
}

// Face turns the body toward dir. Zero keeps the current facing.
func (b *Body) Face(dir int) {
	if dir > 0 {
		b.Facing = FacingRight
	} else if dir < 0 {
		b.Facing = FacingLeft
	}
}
