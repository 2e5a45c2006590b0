package physics

import (
	"collide3d/internal/vecmath"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// faceEpsilon is how close a hit point must be to a box face to take its
// normal.
const faceEpsilon = 0.001

type RaycastHit struct {
	// Index of the volume hit in the slice passed to Raycast.
	Index    int
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// Raycast checks the ray against every volume and returns the closest hit
// within maxDistance. A ray starting inside a sphere or box reports where
// it leaves.
func Raycast(c *Collider, volumes []Volume, origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	direction = vecmath.Normalize(direction)
	if direction == (rl.Vector3{}) {
		return RaycastHit{}, false
	}

	var closestHit RaycastHit
	closestHit.Distance = maxDistance
	hit := false
	for i, v := range volumes {
		if v == nil {
			continue
		}
		if hitInfo, ok := c.raycastVolume(v, origin, direction, closestHit.Distance); ok {
			if !hit || hitInfo.Distance < closestHit.Distance {
				closestHit = hitInfo
				closestHit.Index = i
				hit = true
			}
		}
	}
	return closestHit, hit
}

// RaycastVolume checks the ray against a single volume.
func RaycastVolume(c *Collider, v Volume, origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	direction = vecmath.Normalize(direction)
	if direction == (rl.Vector3{}) {
		return RaycastHit{}, false
	}
	return c.raycastVolume(v, origin, direction, maxDistance)
}

func (c *Collider) raycastVolume(v Volume, origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	r := v.BoundingSphereRadius()
	if vecmath.DistanceSquared(origin, v.Center()) > r*r {
		if _, ok := raycastSphere(origin, direction, v.Center(), r, maxDistance); !ok {
			return RaycastHit{}, false
		}
	}

	switch v := v.(type) {
	case *Sphere:
		return raycastSphere(origin, direction, v.Center(), v.Radius, maxDistance)
	case *Capsule:
		return c.raycastCapsule(origin, direction, v, maxDistance)
	case *BoundingBox:
		return raycastBox(origin, direction, v.Min, v.Max, maxDistance)
	case *OrientedBoundingBox:
		return raycastOBB(origin, direction, v, maxDistance)
	case *Triangle:
		return c.raycastTriangle(origin, direction, v, maxDistance)
	case *ConvexMesh:
		var best RaycastHit
		found := false
		for _, t := range v.Triangles {
			if h, ok := c.raycastTriangle(origin, direction, t, maxDistance); ok && (!found || h.Distance < best.Distance) {
				best, found = h, true
			}
		}
		return best, found
	default:
		c.log.Warn("Physics: raycast against unsupported volume", "kind", v.Kind().String())
		return RaycastHit{}, false
	}
}

func raycastBox(origin, direction, min, max rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	for i := 0; i < 3; i++ {
		o := vecmath.Component(origin, i)
		d := vecmath.Component(direction, i)
		lo := vecmath.Component(min, i)
		hi := vecmath.Component(max, i)
		if d == 0 {
			if o < lo || o > hi {
				return RaycastHit{}, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return RaycastHit{}, false
		}
	}

	if tmax < 0 || tmin > maxDistance {
		return RaycastHit{}, false
	}

	t := tmin
	if t < 0 {
		t = tmax
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))

	// Calculate normal based on which face was hit
	var normal rl.Vector3
	switch {
	case vecmath.Abs(point.X-min.X) < faceEpsilon:
		normal = rl.Vector3{X: -1}
	case vecmath.Abs(point.X-max.X) < faceEpsilon:
		normal = rl.Vector3{X: 1}
	case vecmath.Abs(point.Y-min.Y) < faceEpsilon:
		normal = rl.Vector3{Y: -1}
	case vecmath.Abs(point.Y-max.Y) < faceEpsilon:
		normal = rl.Vector3{Y: 1}
	case vecmath.Abs(point.Z-min.Z) < faceEpsilon:
		normal = rl.Vector3{Z: -1}
	default:
		normal = rl.Vector3{Z: 1}
	}

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

// raycastOBB runs the box test in the box's axis frame.
func raycastOBB(origin, direction rl.Vector3, box *OrientedBoundingBox, maxDistance float32) (RaycastHit, bool) {
	localOrigin := box.toLocal(origin)
	localDir := rl.Vector3{
		X: vecmath.Dot(direction, box.Axes[0]),
		Y: vecmath.Dot(direction, box.Axes[1]),
		Z: vecmath.Dot(direction, box.Axes[2]),
	}
	h := box.HalfExtension
	hit, ok := raycastBox(localOrigin, localDir, rl.Vector3Negate(h), h, maxDistance)
	if !ok {
		return RaycastHit{}, false
	}
	hit.Point = box.fromLocal(hit.Point)
	n := rl.Vector3{}
	vecmath.AddScaled(&n, box.Axes[0], hit.Normal.X)
	vecmath.AddScaled(&n, box.Axes[1], hit.Normal.Y)
	vecmath.AddScaled(&n, box.Axes[2], hit.Normal.Z)
	hit.Normal = n
	return hit, true
}

func raycastSphere(origin, direction, center rl.Vector3, radius float32, maxDistance float32) (RaycastHit, bool) {
	oc := rl.Vector3Subtract(origin, center)
	a := vecmath.Dot(direction, direction)
	b := 2.0 * vecmath.Dot(oc, direction)
	c := vecmath.Dot(oc, oc) - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return RaycastHit{}, false
	}

	sq := math32.Sqrt(discriminant)
	t := (-b - sq) / (2 * a)
	if t < 0 {
		t = (-b + sq) / (2 * a)
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	normal := vecmath.Normalize(rl.Vector3Subtract(point, center))

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

// raycastCapsule takes the nearest of the two end caps and the cylinder
// body.
func (c *Collider) raycastCapsule(origin, direction rl.Vector3, capsule *Capsule, maxDistance float32) (RaycastHit, bool) {
	if capsule.ContainsPoint(origin) {
		return RaycastHit{Point: origin, Normal: rl.Vector3Negate(direction)}, true
	}

	best, found := raycastSphere(origin, direction, capsule.A, capsule.Radius, maxDistance)
	if h, ok := raycastSphere(origin, direction, capsule.B, capsule.Radius, maxDistance); ok && (!found || h.Distance < best.Distance) {
		best, found = h, true
	}

	axis := rl.Vector3Subtract(capsule.B, capsule.A)
	length := vecmath.Length(axis)
	if length < c.tol.General {
		return best, found
	}
	axis = rl.Vector3Scale(axis, 1/length)

	oc := rl.Vector3Subtract(origin, capsule.A)
	dPerp := direction
	vecmath.AddScaled(&dPerp, axis, -vecmath.Dot(direction, axis))
	ocPerp := oc
	vecmath.AddScaled(&ocPerp, axis, -vecmath.Dot(oc, axis))

	a := vecmath.Dot(dPerp, dPerp)
	if a < c.tol.General {
		// parallel to the axis: only the caps can be hit
		return best, found
	}
	b := 2 * vecmath.Dot(ocPerp, dPerp)
	cc := vecmath.Dot(ocPerp, ocPerp) - capsule.Radius*capsule.Radius
	discriminant := b*b - 4*a*cc
	if discriminant < 0 {
		return best, found
	}
	t := (-b - math32.Sqrt(discriminant)) / (2 * a)
	if t < 0 || t > maxDistance || (found && t >= best.Distance) {
		return best, found
	}
	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	s := vecmath.Dot(rl.Vector3Subtract(point, capsule.A), axis)
	if s < 0 || s > length {
		return best, found
	}
	onAxis := capsule.A
	vecmath.AddScaled(&onAxis, axis, s)
	return RaycastHit{
		Point:    point,
		Normal:   vecmath.Normalize(rl.Vector3Subtract(point, onAxis)),
		Distance: t,
	}, true
}

// raycastTriangle hits either side; the normal faces the ray.
func (c *Collider) raycastTriangle(origin, direction rl.Vector3, tri *Triangle, maxDistance float32) (RaycastHit, bool) {
	t, ok := intersectRayTriangle(origin, direction, tri.V0, tri.V1, tri.V2, c.tol.General)
	if !ok || t > maxDistance {
		return RaycastHit{}, false
	}
	normal := tri.Normal()
	if vecmath.Dot(normal, direction) > 0 {
		normal = rl.Vector3Negate(normal)
	}
	return RaycastHit{
		Point:    rl.Vector3Add(origin, rl.Vector3Scale(direction, t)),
		Normal:   normal,
		Distance: t,
	}, true
}

// intersectRayTriangle is the Moller-Trumbore test. t is in units of dir
// and is never negative; rays in the triangle's plane miss.
func intersectRayTriangle(origin, dir, v0, v1, v2 rl.Vector3, eps float32) (float32, bool) {
	e1 := rl.Vector3Subtract(v1, v0)
	e2 := rl.Vector3Subtract(v2, v0)
	p := vecmath.Cross(dir, e2)
	det := vecmath.Dot(e1, p)
	if vecmath.Abs(det) < eps*eps {
		return 0, false
	}
	inv := 1 / det
	s := rl.Vector3Subtract(origin, v0)
	u := vecmath.Dot(s, p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := vecmath.Cross(s, e1)
	v := vecmath.Dot(dir, q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := vecmath.Dot(e2, q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}
