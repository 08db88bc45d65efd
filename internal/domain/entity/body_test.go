package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_Intersects(t *testing.T) {
	base := Rect{X: 0, Y: 0, W: 10, H: 10}

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlapping", Rect{X: 5, Y: 5, W: 10, H: 10}, true},
		{"contained", Rect{X: 2, Y: 2, W: 2, H: 2}, true},
		{"touching right edge", Rect{X: 10, Y: 0, W: 5, H: 5}, false},
		{"touching bottom edge", Rect{X: 0, Y: 10, W: 5, H: 5}, false},
		{"separate", Rect{X: 20, Y: 20, W: 5, H: 5}, false},
		{"overlap by fraction", Rect{X: 9.5, Y: 9.5, W: 5, H: 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Intersects(tt.other))
			assert.Equal(t, tt.want, tt.other.Intersects(base), "intersection must be symmetric")
		})
	}
}

func TestRect_Edges(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 40}

	assert.Equal(t, 10.0, r.Left())
	assert.Equal(t, 40.0, r.Right())
	assert.Equal(t, 20.0, r.Top())
	assert.Equal(t, 60.0, r.Bottom())
	assert.Equal(t, Vec2{X: 25, Y: 40}, r.Center())
}

func TestBody_CollisionRect(t *testing.T) {
	b := Body{Width: 128, Height: 128, Inset: 50}

	r := b.CollisionRect(Vec2{X: 100, Y: 200})

	assert.Equal(t, 150.0, r.X)
	assert.Equal(t, 250.0, r.Y)
	assert.Equal(t, 28.0, r.W)
	assert.Equal(t, 78.0, r.H)
	// Bottom is not inset
	assert.Equal(t, 328.0, r.Bottom())
}

func TestBody_Face(t *testing.T) {
	b := Body{Facing: FacingRight}

	b.Face(-3)
	assert.Equal(t, FacingLeft, b.Facing)
	assert.False(t, b.FacingRight())

	b.Face(0)
	assert.Equal(t, FacingLeft, b.Facing, "zero keeps facing")

	b.Face(1)
	assert.Equal(t, FacingRight, b.Facing)
	assert.True(t, b.FacingRight())
}
