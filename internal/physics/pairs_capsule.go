package physics

import (
	"collide3d/internal/vecmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// segmentSearchIterations is the number of golden-section steps used to
// find the capsule core point nearest a convex volume. 40 steps shrink the
// parameter interval below 1e-8.
const segmentSearchIterations = 40

const invPhi = 0.6180339887

func collideCapsuleCapsule(c *Collider, a, b *Capsule, movement rl.Vector3, resp *CollisionResponse) bool {
	ca, cb, _, _ := closestPointsSegmentSegment(a.A, a.B, b.A, b.B, c.tol.General)
	if !c.collideSpheres(ca, a.Radius, cb, b.Radius, movement, resp) {
		return false
	}
	// parallel overlapping cores touch along a line; keep the ends of both
	c.addCapsuleEndContacts(a, func(p rl.Vector3) (rl.Vector3, bool) {
		return c.capsuleEndContact(p, a.Radius, b)
	}, resp)
	c.addCapsuleEndContacts(b, func(p rl.Vector3) (rl.Vector3, bool) {
		return c.capsuleEndContact(p, b.Radius, a)
	}, resp)
	return true
}

// capsuleEndContact projects the end p of a core with radius r onto the
// core of other and returns the point halfway between the two surfaces.
func (c *Collider) capsuleEndContact(p rl.Vector3, r float32, other *Capsule) (rl.Vector3, bool) {
	q, _ := closestPointOnSegment(p, other.A, other.B)
	d := vecmath.Length(rl.Vector3Subtract(p, q))
	if d > r+other.Radius {
		return rl.Vector3{}, false
	}
	if d <= c.tol.General {
		return q, true
	}
	vecmath.AddScaled(&q, rl.Vector3Subtract(p, q), (other.Radius-r+d)/(2*d))
	return q, true
}

func collideCapsuleAABB(c *Collider, a *Capsule, b *BoundingBox, movement rl.Vector3, resp *CollisionResponse) bool {
	b.toOriented(&c.obbB)
	return c.collideCapsuleBox(a, &c.obbB, movement, resp)
}

func collideCapsuleOBB(c *Collider, a *Capsule, b *OrientedBoundingBox, movement rl.Vector3, resp *CollisionResponse) bool {
	return c.collideCapsuleBox(a, b, movement, resp)
}

func (c *Collider) collideCapsuleBox(a *Capsule, box *OrientedBoundingBox, movement rl.Vector3, resp *CollisionResponse) bool {
	t := minimizeOnSegment(func(t float32) float32 {
		return box.signedDistance(a.pointAt(t))
	})
	if !c.collideSphereBox(a.pointAt(t), a.Radius, box, movement, resp) {
		return false
	}
	c.addCapsuleEndContacts(a, func(p rl.Vector3) (rl.Vector3, bool) {
		return box.ClosestPoint(p), box.signedDistance(p) <= a.Radius
	}, resp)
	return true
}

func collideCapsuleTriangle(c *Collider, a *Capsule, b *Triangle, movement rl.Vector3, resp *CollisionResponse) bool {
	t := minimizeOnSegment(func(t float32) float32 {
		p := a.pointAt(t)
		return vecmath.DistanceSquared(b.ClosestPoint(p), p)
	})
	p := a.pointAt(t)
	closest := b.ClosestPoint(p)
	dist := vecmath.Length(rl.Vector3Subtract(p, closest))
	if dist > a.Radius {
		return false
	}
	if dist > c.tol.General {
		return c.collideSphereTriangleAt(p, a.Radius, b, movement, resp)
	}

	// The core segment pierces the triangle: push the capsule out along the
	// face normal on the side of its center, by the depth of the far end.
	n := b.Normal()
	if n == (rl.Vector3{}) {
		return c.collideSphereTriangleAt(p, a.Radius, b, movement, resp)
	}
	side := vecmath.Dot(n, rl.Vector3Subtract(a.Center(), b.V0))
	switch {
	case side < -c.tol.General:
		n = rl.Vector3Negate(n)
	case side <= c.tol.General:
		n = orient(n, movement)
	}
	depth := float32(0)
	for _, end := range [2]rl.Vector3{a.A, a.B} {
		depth = max(depth, -vecmath.Dot(n, rl.Vector3Subtract(end, b.V0)))
	}
	resp.SetPenetration(n, a.Radius+depth)
	resp.AddHitPoint(p)
	return true
}

func collideCapsuleMesh(c *Collider, a *Capsule, b *ConvexMesh, movement rl.Vector3, resp *CollisionResponse) bool {
	t := minimizeOnSegment(func(t float32) float32 {
		return b.signedDistance(a.pointAt(t))
	})
	if !c.collideSphereMeshAt(a.pointAt(t), a.Radius, b, movement, resp) {
		return false
	}
	c.addCapsuleEndContacts(a, func(p rl.Vector3) (rl.Vector3, bool) {
		return b.ClosestPoint(p), b.signedDistance(p) <= a.Radius
	}, resp)
	return true
}

// addCapsuleEndContacts adds the contact point of each core endpoint that
// is itself within reach, so a capsule lying on a surface reports both ends.
func (c *Collider) addCapsuleEndContacts(a *Capsule, contact func(p rl.Vector3) (rl.Vector3, bool), resp *CollisionResponse) {
	for _, end := range [2]rl.Vector3{a.A, a.B} {
		if q, ok := contact(end); ok {
			resp.AddHitPoint(q)
		}
	}
}

// minimizeOnSegment returns the t in [0, 1] minimizing the convex function
// f, by golden-section search. Distances and signed distances to convex
// volumes are convex along a segment.
func minimizeOnSegment(f func(t float32) float32) float32 {
	lo, hi := float32(0), float32(1)
	x1 := hi - invPhi*(hi-lo)
	x2 := lo + invPhi*(hi-lo)
	f1, f2 := f(x1), f(x2)
	for i := 0; i < segmentSearchIterations; i++ {
		if f1 <= f2 {
			hi = x2
			x2, f2 = x1, f1
			x1 = hi - invPhi*(hi-lo)
			f1 = f(x1)
		} else {
			lo = x1
			x1, f1 = x2, f2
			x2 = lo + invPhi*(hi-lo)
			f2 = f(x2)
		}
	}

	// the ends are not sampled by the search itself
	t := (lo + hi) / 2
	ft := f(t)
	if f0 := f(0); f0 < ft {
		t, ft = 0, f0
	}
	if f(1) < ft {
		t = 1
	}
	return t
}
