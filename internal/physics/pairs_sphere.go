package physics

import (
	"collide3d/internal/vecmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func collideSphereSphere(c *Collider, a, b *Sphere, movement rl.Vector3, resp *CollisionResponse) bool {
	return c.collideSpheres(a.Center(), a.Radius, b.Center(), b.Radius, movement, resp)
}

func collideSphereCapsule(c *Collider, a *Sphere, b *Capsule, movement rl.Vector3, resp *CollisionResponse) bool {
	closest, _ := closestPointOnSegment(a.Center(), b.A, b.B)
	return c.collideSpheres(a.Center(), a.Radius, closest, b.Radius, movement, resp)
}

func collideSphereAABB(c *Collider, a *Sphere, b *BoundingBox, movement rl.Vector3, resp *CollisionResponse) bool {
	b.toOriented(&c.obbB)
	return c.collideSphereBox(a.Center(), a.Radius, &c.obbB, movement, resp)
}

func collideSphereOBB(c *Collider, a *Sphere, b *OrientedBoundingBox, movement rl.Vector3, resp *CollisionResponse) bool {
	return c.collideSphereBox(a.Center(), a.Radius, b, movement, resp)
}

func collideSphereTriangle(c *Collider, a *Sphere, b *Triangle, movement rl.Vector3, resp *CollisionResponse) bool {
	return c.collideSphereTriangleAt(a.Center(), a.Radius, b, movement, resp)
}

func collideSphereMesh(c *Collider, a *Sphere, b *ConvexMesh, movement rl.Vector3, resp *CollisionResponse) bool {
	return c.collideSphereMeshAt(a.Center(), a.Radius, b, movement, resp)
}

// collideSpheres tests the balls (ca, ra) and (cb, rb). Capsule routines
// reduce to this once they have found their closest core points.
func (c *Collider) collideSpheres(ca rl.Vector3, ra float32, cb rl.Vector3, rb float32, movement rl.Vector3, resp *CollisionResponse) bool {
	d := rl.Vector3Subtract(ca, cb)
	dist := vecmath.Length(d)
	sum := ra + rb
	if dist > sum {
		return false
	}

	var normal rl.Vector3
	if dist > c.tol.General {
		normal = rl.Vector3Scale(d, 1/dist)
	} else {
		normal = fallbackNormal(movement)
	}
	penetration := sum - dist
	resp.SetPenetration(normal, penetration)

	hit := cb
	vecmath.AddScaled(&hit, normal, rb-penetration/2)
	resp.AddHitPoint(hit)
	return true
}

// collideSphereBox tests the ball (center, radius) against box. A center
// inside the box is pushed out through the nearest face.
func (c *Collider) collideSphereBox(center rl.Vector3, radius float32, box *OrientedBoundingBox, movement rl.Vector3, resp *CollisionResponse) bool {
	local := box.toLocal(center)
	inside := vecmath.Abs(local.X) <= box.HalfExtension.X &&
		vecmath.Abs(local.Y) <= box.HalfExtension.Y &&
		vecmath.Abs(local.Z) <= box.HalfExtension.Z

	if !inside {
		closest := box.ClosestPoint(center)
		d := rl.Vector3Subtract(center, closest)
		dist := vecmath.Length(d)
		if dist > radius {
			return false
		}
		var normal rl.Vector3
		if dist > c.tol.General {
			normal = rl.Vector3Scale(d, 1/dist)
		} else {
			normal = vecmath.Normalize(rl.Vector3Subtract(center, box.Center()))
			if normal == (rl.Vector3{}) {
				normal = fallbackNormal(movement)
			}
		}
		resp.SetPenetration(normal, radius-dist)
		resp.AddHitPoint(closest)
		return true
	}

	// nearest face
	axis := 0
	depth := box.HalfExtension.X - vecmath.Abs(local.X)
	for i := 1; i < 3; i++ {
		if d := vecmath.Component(box.HalfExtension, i) - vecmath.Abs(vecmath.Component(local, i)); d < depth {
			axis, depth = i, d
		}
	}
	normal := box.Axes[axis]
	if vecmath.Component(local, axis) < 0 {
		normal = rl.Vector3Negate(normal)
	}
	resp.SetPenetration(normal, radius+depth)
	hit := center
	vecmath.AddScaled(&hit, normal, depth)
	resp.AddHitPoint(hit)
	return true
}

// collideSphereTriangleAt tests the ball (center, radius) against a
// triangle. A center lying on the triangle takes the face normal, signed
// against movement.
func (c *Collider) collideSphereTriangleAt(center rl.Vector3, radius float32, tri *Triangle, movement rl.Vector3, resp *CollisionResponse) bool {
	closest := tri.ClosestPoint(center)
	d := rl.Vector3Subtract(center, closest)
	dist := vecmath.Length(d)
	if dist > radius {
		return false
	}

	var normal rl.Vector3
	if dist > c.tol.General {
		normal = rl.Vector3Scale(d, 1/dist)
	} else if n := tri.Normal(); n != (rl.Vector3{}) {
		normal = orient(n, movement)
	} else {
		normal = fallbackNormal(movement)
	}
	resp.SetPenetration(normal, radius-dist)
	resp.AddHitPoint(closest)
	return true
}

// collideSphereMeshAt tests the ball (center, radius) against a mesh. A
// center inside the mesh is pushed out through the nearest surface point.
func (c *Collider) collideSphereMeshAt(center rl.Vector3, radius float32, mesh *ConvexMesh, movement rl.Vector3, resp *CollisionResponse) bool {
	closest, d2 := mesh.closestPointOnSurface(center)
	dist := vecmath.Sqrt(d2)
	inside := mesh.containsPointTol(center, 0)
	if !inside && dist > radius {
		return false
	}

	var normal rl.Vector3
	var penetration float32
	switch {
	case dist <= c.tol.General:
		normal = vecmath.Normalize(rl.Vector3Subtract(center, mesh.Center()))
		if normal == (rl.Vector3{}) {
			normal = fallbackNormal(movement)
		}
		penetration = radius
	case inside:
		normal = rl.Vector3Scale(rl.Vector3Subtract(closest, center), 1/dist)
		penetration = radius + dist
	default:
		normal = rl.Vector3Scale(rl.Vector3Subtract(center, closest), 1/dist)
		penetration = radius - dist
	}
	resp.SetPenetration(normal, penetration)
	resp.AddHitPoint(closest)
	return true
}
