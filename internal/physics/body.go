package physics

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidRadius is returned when a body is created with a radius <= 0.
var ErrInvalidRadius = errors.New("physics: radius must be positive")

// Body is a moving circle. Tag is an opaque label (the demo uses colour
// names) and has no effect on the physics.
type Body struct {
	Position mgl64.Vec2 `json:"position"`
	Velocity mgl64.Vec2 `json:"velocity"`
	Radius   float64    `json:"radius"`
	Tag      string     `json:"tag"`
}

// NewBody creates a body. The radius must be positive because the collision
// response divides by the sum of radii.
func NewBody(tag string, position, velocity mgl64.Vec2, radius float64) (*Body, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("%w: body %q has radius %v", ErrInvalidRadius, tag, radius)
	}
	return &Body{
		Position: position,
		Velocity: velocity,
		Radius:   radius,
		Tag:      tag,
	}, nil
}

// Move advances the body by one step of its velocity.
func (b *Body) Move() {
	b.Position = b.Position.Add(b.Velocity)
}

// BounceWithin reflects the velocity on each axis where the body touches or
// crosses the edge of a width x height box anchored at the origin.
func (b *Body) BounceWithin(width, height float64) {
	x, y := b.Position[0], b.Position[1]
	if x-b.Radius <= 0 || x+b.Radius >= width {
		b.Velocity[0] = -b.Velocity[0]
	}
	if y-b.Radius <= 0 || y+b.Radius >= height {
		b.Velocity[1] = -b.Velocity[1]
	}
}
