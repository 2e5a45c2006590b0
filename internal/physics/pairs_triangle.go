package physics

import (
	"collide3d/internal/vecmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// collideTriangleTriangle reports coplanar overlap as touching: zero
// penetration, hit points at the vertices lying on the other triangle.
func collideTriangleTriangle(c *Collider, a, b *Triangle, movement rl.Vector3, resp *CollisionResponse) bool {
	result, p1, p2 := c.triangles.Intersect(a, b)
	switch result {
	case NoIntersection:
		return false

	case CoplanarIntersection:
		n := a.Normal()
		if n == (rl.Vector3{}) {
			n = fallbackNormal(movement)
		}
		resp.SetPenetration(orient(n, movement), 0)
		c.sat.clipCount = 0
		c.addTriangleVerticesOn(a, b)
		c.addTriangleVerticesOn(b, a)
		if c.sat.clipCount == 0 {
			c.sat.addClip(b.ClosestPoint(a.Center()))
		}
		for i := 0; i < c.sat.clipCount; i++ {
			resp.AddHitPoint(c.sat.clip[i])
		}
		return true
	}

	c.resetAxes()
	c.addAxes(a.Normal(), b.Normal())
	ea, eb := triangleEdges(a), triangleEdges(b)
	c.addCrossAxes(ea[:], eb[:])
	if !c.sat.CheckConvex(a.Vertices(), b.Vertices(), c.axes, movement, resp) {
		// the plane test snaps near-touching vertices that SAT sees apart
		n := a.Normal()
		if n == (rl.Vector3{}) {
			n = fallbackNormal(movement)
		}
		resp.SetPenetration(orient(n, movement), 0)
	}
	resp.AddHitPoint(p1)
	resp.AddHitPoint(p2)
	return true
}

func collideTriangleMesh(c *Collider, a *Triangle, b *ConvexMesh, movement rl.Vector3, resp *CollisionResponse) bool {
	if len(b.Triangles) == 0 {
		return false
	}
	c.resetAxes()
	c.addAxes(a.Normal())
	c.addAxes(b.faceNormals...)
	edges := triangleEdges(a)
	c.addCrossAxes(edges[:], b.edgeDirections)
	if !c.sat.CheckConvex(a.Vertices(), b.Vertices(), c.axes, movement, resp) {
		return false
	}

	c.sat.clipCount = 0
	for _, v := range a.Vertices() {
		if b.containsPointTol(v, c.tol.Containment) {
			c.sat.addClip(v)
		}
	}
	for _, t := range b.Triangles {
		c.clipTriangles(a, t)
	}
	if c.sat.clipCount == 0 {
		c.sat.addClip(b.ClosestPoint(a.Center()))
	}
	c.sat.calculateHitPointsConvex(a.Vertices(), resp)
	return true
}

func collideMeshMesh(c *Collider, a, b *ConvexMesh, movement rl.Vector3, resp *CollisionResponse) bool {
	if len(a.Triangles) == 0 || len(b.Triangles) == 0 {
		return false
	}
	c.resetAxes()
	c.addAxes(a.faceNormals...)
	c.addAxes(b.faceNormals...)
	c.addCrossAxes(a.edgeDirections, b.edgeDirections)
	if !c.sat.CheckConvex(a.Vertices(), b.Vertices(), c.axes, movement, resp) {
		return false
	}

	c.sat.clipCount = 0
	for _, v := range a.Vertices() {
		if b.containsPointTol(v, c.tol.Containment) {
			c.sat.addClip(v)
		}
	}
	for _, v := range b.Vertices() {
		if a.containsPointTol(v, c.tol.Containment) {
			c.sat.addClip(v)
		}
	}
	for _, ta := range a.Triangles {
		for _, tb := range b.Triangles {
			c.clipTriangles(ta, tb)
		}
	}
	if c.sat.clipCount == 0 {
		c.sat.addClip(b.ClosestPoint(a.Center()))
	}
	c.sat.calculateHitPointsConvex(a.Vertices(), resp)
	return true
}

// clipTriangles adds the intersection segment of two crossing triangles.
func (c *Collider) clipTriangles(a, b *Triangle) {
	r := a.BoundingSphereRadius() + b.BoundingSphereRadius()
	if vecmath.DistanceSquared(a.Center(), b.Center()) > r*r {
		return
	}
	if result, p1, p2 := c.triangles.Intersect(a, b); result == Intersection {
		c.sat.addClip(p1)
		c.sat.addClip(p2)
	}
}

// addTriangleVerticesOn adds the vertices of a that lie on b.
func (c *Collider) addTriangleVerticesOn(a, b *Triangle) {
	for _, v := range a.Vertices() {
		if b.ContainsPoint(v) {
			c.sat.addClip(v)
		}
	}
}

func triangleEdges(t *Triangle) [3]rl.Vector3 {
	return [3]rl.Vector3{
		rl.Vector3Subtract(t.V1, t.V0),
		rl.Vector3Subtract(t.V2, t.V1),
		rl.Vector3Subtract(t.V0, t.V2),
	}
}
