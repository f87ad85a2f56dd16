package physics

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// TangentMode selects which tangential velocity each body keeps after a
// collision.
type TangentMode int

const (
	// TangentOwn keeps each body's own tangential component. This is a true
	// elastic collision with the radii standing in for mass.
	TangentOwn TangentMode = iota
	// TangentShared reproduces the legacy demo: the relative velocity is
	// decomposed once and both bodies reuse the same relative tangent.
	TangentShared
)

func (m TangentMode) String() string {
	switch m {
	case TangentOwn:
		return "own"
	case TangentShared:
		return "shared"
	default:
		return fmt.Sprintf("TangentMode(%d)", int(m))
	}
}

// ParseTangentMode parses "own" or "shared" (case-insensitive).
func ParseTangentMode(s string) (TangentMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "own", "":
		return TangentOwn, nil
	case "shared":
		return TangentShared, nil
	default:
		return TangentOwn, fmt.Errorf("physics: unknown tangent mode %q", s)
	}
}

// CollisionEvent describes one resolved collision between bodies A and B.
type CollisionEvent struct {
	A         string     `json:"a"`
	B         string     `json:"b"`
	PositionA mgl64.Vec2 `json:"position_a"`
	PositionB mgl64.Vec2 `json:"position_b"`
	VelocityA mgl64.Vec2 `json:"velocity_a"` // after the collision
	VelocityB mgl64.Vec2 `json:"velocity_b"` // after the collision
	Midpoint  mgl64.Vec2 `json:"midpoint"`
	Normal    mgl64.Vec2 `json:"normal"`   // unit vector from B towards A
	Angle     float64    `json:"angle"`    // orientation of the centre line, degrees in [0, 180)
	Distance  float64    `json:"distance"` // between centres
}

// Collide checks two bodies for overlap and, if they overlap, computes their
// post-collision velocities. Neither body is modified.
//
// Concentric bodies are degenerate: atan2(0, 0) is 0, so the normal is +X.
func Collide(a, b Body, mode TangentMode) (CollisionEvent, bool) {
	if !CirclesOverlap(a.Position, a.Radius, b.Position, b.Radius) {
		return CollisionEvent{}, false
	}

	d := a.Position.Sub(b.Position)
	theta := math.Atan2(d[1], d[0])
	normal := unitAt(theta)
	tangent := unitAt(theta + math.Pi/2)

	var va, vb mgl64.Vec2
	switch mode {
	case TangentShared:
		va, vb = resolveShared(a, b, normal, tangent)
	default:
		va, vb = resolveOwn(a, b, normal, tangent)
	}

	return CollisionEvent{
		A:         a.Tag,
		B:         b.Tag,
		PositionA: a.Position,
		PositionB: b.Position,
		VelocityA: va,
		VelocityB: vb,
		Midpoint:  Midpoint(a.Position, b.Position),
		Normal:    normal,
		Angle:     lineOrientation(theta),
		Distance:  d.Len(),
	}, true
}

// resolveOwn applies the 1D elastic formula to each body's own normal
// component and leaves each tangential component untouched.
func resolveOwn(a, b Body, normal, tangent mgl64.Vec2) (mgl64.Vec2, mgl64.Vec2) {
	an, at := a.Velocity.Dot(normal), a.Velocity.Dot(tangent)
	bn, bt := b.Velocity.Dot(normal), b.Velocity.Dot(tangent)

	sum := a.Radius + b.Radius
	un := ((a.Radius-b.Radius)*an + 2*b.Radius*bn) / sum
	wn := ((b.Radius-a.Radius)*bn + 2*a.Radius*an) / sum

	va := normal.Mul(un).Add(tangent.Mul(at))
	vb := normal.Mul(wn).Add(tangent.Mul(bt))
	return va, vb
}

// resolveShared decomposes the relative velocity once. Both results carry
// the same relative tangent and the normal terms use squared radii.
func resolveShared(a, b Body, normal, tangent mgl64.Vec2) (mgl64.Vec2, mgl64.Vec2) {
	rel := a.Velocity.Sub(b.Velocity)
	vn, vt := rel.Dot(normal), rel.Dot(tangent)

	sum := a.Radius + b.Radius
	un := ((a.Radius-b.Radius)*vn + 2*b.Radius*b.Radius*vn) / sum
	wn := ((b.Radius-a.Radius)*vn + 2*a.Radius*a.Radius*vn) / sum

	shared := tangent.Mul(vt)
	return normal.Mul(un).Add(shared), normal.Mul(wn).Add(shared)
}

// Resolver applies collision responses to bodies in place.
type Resolver struct {
	Mode TangentMode

	// OnCollision, if set, is called with every resolved collision after
	// both velocities have been updated.
	OnCollision func(CollisionEvent)
}

// Resolve detects overlap between a and b and, on collision, overwrites
// both velocities. Positions are left alone; see Separate.
func (r Resolver) Resolve(a, b *Body) (CollisionEvent, bool) {
	ev, ok := Collide(*a, *b, r.Mode)
	if !ok {
		return ev, false
	}

	a.Velocity = ev.VelocityA
	b.Velocity = ev.VelocityB

	if r.OnCollision != nil {
		r.OnCollision(ev)
	}
	return ev, true
}

// Closing reports whether a and b move towards each other along normal, the
// unit vector from b towards a. Bodies sliding past or already parting are
// not closing.
func Closing(a, b Body, normal mgl64.Vec2) bool {
	return a.Velocity.Sub(b.Velocity).Dot(normal) < 0
}

// Separate pushes two overlapping bodies apart along the normal of ev until
// they just touch. Each body moves in proportion to the other's radius.
func Separate(a, b *Body, ev CollisionEvent) {
	sum := a.Radius + b.Radius
	overlap := sum - ev.Distance
	if overlap <= 0 {
		return
	}

	a.Position = a.Position.Add(ev.Normal.Mul(overlap * b.Radius / sum))
	b.Position = b.Position.Sub(ev.Normal.Mul(overlap * a.Radius / sum))
}
