// Package physics provides circle bodies, overlap tests and the two-body
// elastic collision response.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Distance calculates the Euclidean distance between two points.
func Distance(p1, p2 mgl64.Vec2) float64 {
	return math.Sqrt(DistanceSquared(p1, p2))
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(p1, p2 mgl64.Vec2) float64 {
	d := p2.Sub(p1)
	return d.Dot(d)
}

// Midpoint returns the point halfway between p1 and p2.
func Midpoint(p1, p2 mgl64.Vec2) mgl64.Vec2 {
	return p1.Add(p2).Mul(0.5)
}

// CirclesOverlap checks if two circles overlap. Touching circles count.
func CirclesOverlap(c1 mgl64.Vec2, r1 float64, c2 mgl64.Vec2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(c1, c2) <= minDist*minDist
}

// unitAt returns the unit vector at angle theta (radians).
func unitAt(theta float64) mgl64.Vec2 {
	return mgl64.Vec2{math.Cos(theta), math.Sin(theta)}
}

// lineOrientation folds a direction angle in radians onto the undirected
// line orientation in degrees, in [0, 180).
func lineOrientation(theta float64) float64 {
	deg := math.Mod(mgl64.RadToDeg(theta), 180)
	if deg < 0 {
		deg += 180
	}
	// -0 and values that round to 180 both fold to 0
	if deg >= 180 || deg == 0 {
		return 0
	}
	return deg
}
