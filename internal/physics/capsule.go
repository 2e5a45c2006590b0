package physics

import (
	"collide3d/internal/vecmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Capsule is the set of points within Radius of the segment A-B.
type Capsule struct {
	A, B   rl.Vector3
	Radius float32

	center               rl.Vector3
	boundingSphereRadius float32
}

// NewCapsule creates an updated capsule.
func NewCapsule(a, b rl.Vector3, radius float32) *Capsule {
	c := &Capsule{A: a, B: b, Radius: radius}
	c.Update()
	return c
}

func (c *Capsule) Kind() ShapeKind { return KindCapsule }

func (c *Capsule) Center() rl.Vector3 { return c.center }

func (c *Capsule) BoundingSphereRadius() float32 { return c.boundingSphereRadius }

func (c *Capsule) Update() {
	c.center = rl.Vector3Scale(rl.Vector3Add(c.A, c.B), 0.5)
	c.boundingSphereRadius = vecmath.Length(rl.Vector3Subtract(c.B, c.A))/2 + c.Radius
}

func (c *Capsule) Clone() Volume {
	cp := *c
	return &cp
}

// FromVolumeWithTransform sets c to original transformed by m. As for
// spheres, the radius follows the transformed local X axis only.
func (c *Capsule) FromVolumeWithTransform(original *Capsule, m rl.Matrix) {
	c.A = vecmath.TransformPoint(original.A, m)
	c.B = vecmath.TransformPoint(original.B, m)
	c.Radius = original.Radius * vecmath.Length(vecmath.TransformDirection(vecmath.UnitX, m))
	c.Update()
}

// ClosestPoint returns the closest point on the core segment A-B. The
// radius is not applied; callers add it where they need the surface.
func (c *Capsule) ClosestPoint(p rl.Vector3) rl.Vector3 {
	out, _ := closestPointOnSegment(p, c.A, c.B)
	return out
}

func (c *Capsule) ContainsPoint(p rl.Vector3) bool {
	closest, _ := closestPointOnSegment(p, c.A, c.B)
	return vecmath.DistanceSquared(closest, p) <= c.Radius*c.Radius
}

func (c *Capsule) DimensionOnAxis(axis rl.Vector3) float32 {
	return vecmath.Abs(vecmath.Dot(rl.Vector3Subtract(c.B, c.A), axis)) + 2*c.Radius*vecmath.Length(axis)
}

func (c *Capsule) CollideWith(col *Collider, other Volume, movement rl.Vector3, resp *CollisionResponse) bool {
	return col.Collide(c, other, movement, resp)
}

// pointAt returns A + (B-A)*t.
func (c *Capsule) pointAt(t float32) rl.Vector3 {
	return rl.Vector3Lerp(c.A, c.B, t)
}

// closestPointOnSegment projects p onto a-b and clamps the parameter to
// [0, 1]. A degenerate segment yields a and t = 0.
func closestPointOnSegment(p, a, b rl.Vector3) (rl.Vector3, float32) {
	ab := rl.Vector3Subtract(b, a)
	denom := vecmath.LengthSquared(ab)
	if denom == 0 {
		return a, 0
	}
	t := vecmath.Clamp(vecmath.Dot(rl.Vector3Subtract(p, a), ab)/denom, 0, 1)
	out := a
	vecmath.AddScaled(&out, ab, t)
	return out, t
}

// closestPointsSegmentSegment returns the closest points between segments
// p1-q1 and p2-q2 with their parameters.
func closestPointsSegmentSegment(p1, q1, p2, q2 rl.Vector3, eps float32) (c1, c2 rl.Vector3, s, t float32) {
	d1 := rl.Vector3Subtract(q1, p1)
	d2 := rl.Vector3Subtract(q2, p2)
	r := rl.Vector3Subtract(p1, p2)
	a := vecmath.Dot(d1, d1)
	e := vecmath.Dot(d2, d2)
	f := vecmath.Dot(d2, r)

	switch {
	case a <= eps && e <= eps:
		return p1, p2, 0, 0
	case a <= eps:
		s = 0
		t = vecmath.Clamp(f/e, 0, 1)
	default:
		c := vecmath.Dot(d1, r)
		if e <= eps {
			t = 0
			s = vecmath.Clamp(-c/a, 0, 1)
		} else {
			b := vecmath.Dot(d1, d2)
			denom := a*e - b*b
			if denom > eps {
				s = vecmath.Clamp((b*f-c*e)/denom, 0, 1)
			} else {
				// parallel segments: any s works, pick the start
				s = 0
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = vecmath.Clamp(-c/a, 0, 1)
			} else if t > 1 {
				t = 1
				s = vecmath.Clamp((b-c)/a, 0, 1)
			}
		}
	}

	c1 = p1
	vecmath.AddScaled(&c1, d1, s)
	c2 = p2
	vecmath.AddScaled(&c2, d2, t)
	return c1, c2, s, t
}
