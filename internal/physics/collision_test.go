package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const eps = 1e-9

func mustBody(t *testing.T, tag string, x, y, dx, dy, r float64) *Body {
	t.Helper()
	b, err := NewBody(tag, mgl64.Vec2{x, y}, mgl64.Vec2{dx, dy}, r)
	if err != nil {
		t.Fatalf("NewBody(%s): %v", tag, err)
	}
	return b
}

func vecClose(a, b mgl64.Vec2) bool {
	return math.Abs(a[0]-b[0]) <= eps && math.Abs(a[1]-b[1]) <= eps
}

func isFinite(v mgl64.Vec2) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func TestNewBodyRejectsNonPositiveRadius(t *testing.T) {
	for _, r := range []float64{0, -1, math.NaN()} {
		if _, err := NewBody("x", mgl64.Vec2{}, mgl64.Vec2{}, r); !errors.Is(err, ErrInvalidRadius) {
			t.Errorf("radius %v: got err %v, want ErrInvalidRadius", r, err)
		}
	}
}

func TestResolveHeadOnScenario(t *testing.T) {
	a := mustBody(t, "a", 100, 100, 1, 0, 10)
	b := mustBody(t, "b", 108, 100, -1, 0, 10)

	ev, ok := Resolver{}.Resolve(a, b)
	if !ok {
		t.Fatal("expected collision at distance 8 with radius sum 20")
	}
	if !vecClose(ev.Midpoint, mgl64.Vec2{104, 100}) {
		t.Errorf("midpoint = %v, want (104, 100)", ev.Midpoint)
	}
	if ev.Angle != 0 {
		t.Errorf("angle = %v, want 0", ev.Angle)
	}
	if math.Abs(ev.Distance-8) > eps {
		t.Errorf("distance = %v, want 8", ev.Distance)
	}

	// Equal radii head-on: velocities are exchanged.
	if !vecClose(a.Velocity, mgl64.Vec2{-1, 0}) {
		t.Errorf("a velocity = %v, want (-1, 0)", a.Velocity)
	}
	if !vecClose(b.Velocity, mgl64.Vec2{1, 0}) {
		t.Errorf("b velocity = %v, want (1, 0)", b.Velocity)
	}
	if a.Velocity != ev.VelocityA || b.Velocity != ev.VelocityB {
		t.Error("bodies were not updated with the event velocities")
	}
}

func TestResolveNoCollision(t *testing.T) {
	a := mustBody(t, "a", 50, 50, 0, 0, 5)
	b := mustBody(t, "b", 200, 50, 0, 0, 5)

	called := false
	r := Resolver{OnCollision: func(CollisionEvent) { called = true }}
	if _, ok := r.Resolve(a, b); ok {
		t.Fatal("expected no collision at distance 150")
	}
	if called {
		t.Error("OnCollision called without a collision")
	}
	if a.Velocity != (mgl64.Vec2{}) || b.Velocity != (mgl64.Vec2{}) {
		t.Errorf("velocities changed: a=%v b=%v", a.Velocity, b.Velocity)
	}
}

func TestResolveNoCollisionKeepsMovingVelocities(t *testing.T) {
	a := mustBody(t, "a", 0, 0, 3, -2, 1)
	b := mustBody(t, "b", 10, 10, -4, 5, 1)

	if _, ok := (Resolver{}).Resolve(a, b); ok {
		t.Fatal("unexpected collision")
	}
	if a.Velocity != (mgl64.Vec2{3, -2}) || b.Velocity != (mgl64.Vec2{-4, 5}) {
		t.Errorf("velocities changed: a=%v b=%v", a.Velocity, b.Velocity)
	}
}

func TestTouchingBodiesCollide(t *testing.T) {
	a := mustBody(t, "a", 0, 0, 1, 0, 5)
	b := mustBody(t, "b", 10, 0, 0, 0, 5)

	if _, ok := Collide(*a, *b, TangentOwn); !ok {
		t.Error("bodies at exactly the radius sum should collide")
	}
}

func TestResolveSymmetry(t *testing.T) {
	mk := func() (*Body, *Body) {
		return mustBody(t, "a", 10, 12, 2, -1, 4), mustBody(t, "b", 15, 9, -1, 0.5, 6)
	}

	a1, b1 := mk()
	ev1, ok1 := Resolver{}.Resolve(a1, b1)
	a2, b2 := mk()
	ev2, ok2 := Resolver{}.Resolve(b2, a2)

	if !ok1 || !ok2 {
		t.Fatalf("expected both orders to collide: %v %v", ok1, ok2)
	}
	if !vecClose(ev1.Midpoint, ev2.Midpoint) {
		t.Errorf("midpoints differ: %v vs %v", ev1.Midpoint, ev2.Midpoint)
	}
	if math.Abs(ev1.Angle-ev2.Angle) > eps {
		t.Errorf("angles differ: %v vs %v", ev1.Angle, ev2.Angle)
	}
	if !vecClose(a1.Velocity, a2.Velocity) || !vecClose(b1.Velocity, b2.Velocity) {
		t.Errorf("velocities differ: (%v, %v) vs (%v, %v)", a1.Velocity, b1.Velocity, a2.Velocity, b2.Velocity)
	}
	if !vecClose(ev1.VelocityA, ev2.VelocityB) || !vecClose(ev1.VelocityB, ev2.VelocityA) {
		t.Error("event velocities not swapped consistently with argument order")
	}
}

func TestResolveConcentric(t *testing.T) {
	a := mustBody(t, "a", 30, 30, 1, 2, 10)
	b := mustBody(t, "b", 30, 30, -3, 1, 10)

	for _, mode := range []TangentMode{TangentOwn, TangentShared} {
		ev, ok := Collide(*a, *b, mode)
		if !ok {
			t.Fatalf("%v: concentric bodies must collide", mode)
		}
		if ev.Angle != 0 {
			t.Errorf("%v: angle = %v, want 0", mode, ev.Angle)
		}
		if !isFinite(ev.VelocityA) || !isFinite(ev.VelocityB) {
			t.Errorf("%v: non-finite velocities %v %v", mode, ev.VelocityA, ev.VelocityB)
		}
	}
}

func TestOwnModeConservesMomentumAndEnergy(t *testing.T) {
	a := mustBody(t, "a", 0, 0, 3, 1, 2)
	b := mustBody(t, "b", 4, 3, -1, -2, 5)

	before := a.Velocity.Mul(a.Radius).Add(b.Velocity.Mul(b.Radius))
	energy := func() float64 {
		return a.Radius*a.Velocity.Dot(a.Velocity) + b.Radius*b.Velocity.Dot(b.Velocity)
	}
	e0 := energy()

	if _, ok := (Resolver{}).Resolve(a, b); !ok {
		t.Fatal("expected collision")
	}

	after := a.Velocity.Mul(a.Radius).Add(b.Velocity.Mul(b.Radius))
	if !vecClose(after, before) {
		t.Errorf("momentum changed: %v -> %v", before, after)
	}
	if e1 := energy(); math.Abs(e1-e0) > 1e-9 {
		t.Errorf("energy changed: %v -> %v", e0, e1)
	}
}

func TestOwnModeKeepsTangentialComponents(t *testing.T) {
	// Centres on the X axis, so the tangent is Y.
	a := mustBody(t, "a", 0, 0, 2, 5, 3)
	b := mustBody(t, "b", 5, 0, -1, -7, 3)

	ev, ok := Collide(*a, *b, TangentOwn)
	if !ok {
		t.Fatal("expected collision")
	}
	if math.Abs(ev.VelocityA[1]-5) > eps || math.Abs(ev.VelocityB[1]+7) > eps {
		t.Errorf("tangential components changed: %v %v", ev.VelocityA, ev.VelocityB)
	}
}

func TestSharedModeReproducesLegacyValues(t *testing.T) {
	a := mustBody(t, "a", 100, 100, 1, 0, 10)
	b := mustBody(t, "b", 108, 100, -1, 0, 10)

	ev, ok := Collide(*a, *b, TangentShared)
	if !ok {
		t.Fatal("expected collision")
	}
	// Relative normal speed -2 along (-1, 0); (0 + 2*100*-2) / 20 = -20.
	want := mgl64.Vec2{20, 0}
	if !vecClose(ev.VelocityA, want) || !vecClose(ev.VelocityB, want) {
		t.Errorf("shared velocities = %v, %v; want %v for both", ev.VelocityA, ev.VelocityB, want)
	}
}

func TestSharedModeReusesRelativeTangent(t *testing.T) {
	// Vertical centre line, so the relative tangent is the X part of (2, 3).
	a := mustBody(t, "a", 0, 0, 2, 3, 4)
	b := mustBody(t, "b", 0, 6, 0, 0, 4)

	ev, ok := Collide(*a, *b, TangentShared)
	if !ok {
		t.Fatal("expected collision")
	}
	tangent := unitAt(math.Atan2(-6, 0) + math.Pi/2)
	ta, tb := ev.VelocityA.Dot(tangent), ev.VelocityB.Dot(tangent)
	if math.Abs(ta-tb) > eps {
		t.Errorf("tangent components differ: %v vs %v", ta, tb)
	}
	if math.Abs(math.Abs(ta)-2) > eps {
		t.Errorf("tangent magnitude = %v, want 2", math.Abs(ta))
	}
}

func TestResolverCallback(t *testing.T) {
	a := mustBody(t, "blue", 0, 0, 1, 0, 1)
	b := mustBody(t, "yellow", 1, 0, 0, 0, 1)

	var got []CollisionEvent
	r := Resolver{OnCollision: func(ev CollisionEvent) { got = append(got, ev) }}
	ev, _ := r.Resolve(a, b)

	if len(got) != 1 {
		t.Fatalf("callback called %d times, want 1", len(got))
	}
	if got[0] != ev {
		t.Error("callback event differs from returned event")
	}
	if got[0].A != "blue" || got[0].B != "yellow" {
		t.Errorf("tags = %q, %q", got[0].A, got[0].B)
	}
}

func TestSeparate(t *testing.T) {
	a := mustBody(t, "a", 0, 0, 0, 0, 2)
	b := mustBody(t, "b", 3, 0, 0, 0, 6)

	ev, ok := Collide(*a, *b, TangentOwn)
	if !ok {
		t.Fatal("expected collision")
	}
	Separate(a, b, ev)

	if d := Distance(a.Position, b.Position); math.Abs(d-8) > eps {
		t.Errorf("distance after separation = %v, want 8", d)
	}
	// The smaller body moves further.
	if math.Abs(a.Position[0]) <= math.Abs(b.Position[0]-3) {
		t.Errorf("a moved %v, b moved %v", a.Position[0], b.Position[0]-3)
	}
}

func TestClosing(t *testing.T) {
	tests := []struct {
		name   string
		va, vb mgl64.Vec2
		want   bool
	}{
		{"head on", mgl64.Vec2{-1, 0}, mgl64.Vec2{1, 0}, true},
		{"one chasing", mgl64.Vec2{0, 0}, mgl64.Vec2{2, 0}, true},
		{"side by side", mgl64.Vec2{1, 0}, mgl64.Vec2{1, 0}, false},
		{"parting", mgl64.Vec2{1, 0}, mgl64.Vec2{-1, 0}, false},
		{"sliding", mgl64.Vec2{0, 3}, mgl64.Vec2{0, -3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// a sits right of b, so the normal is +X
			a := Body{Position: mgl64.Vec2{10, 0}, Velocity: tt.va, Radius: 5}
			b := Body{Position: mgl64.Vec2{0, 0}, Velocity: tt.vb, Radius: 5}
			if got := Closing(a, b, mgl64.Vec2{1, 0}); got != tt.want {
				t.Errorf("Closing = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseTangentMode(t *testing.T) {
	tests := []struct {
		in      string
		want    TangentMode
		wantErr bool
	}{
		{"own", TangentOwn, false},
		{"", TangentOwn, false},
		{"Shared", TangentShared, false},
		{" shared ", TangentShared, false},
		{"swap", TangentOwn, true},
	}
	for _, tt := range tests {
		got, err := ParseTangentMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTangentMode(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseTangentMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
