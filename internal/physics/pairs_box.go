package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

func collideAABBAABB(c *Collider, a, b *BoundingBox, movement rl.Vector3, resp *CollisionResponse) bool {
	if !a.Intersects(b) {
		return false
	}
	a.toOriented(&c.obbA)
	b.toOriented(&c.obbB)
	return c.sat.CheckOBB(&c.obbA, &c.obbB, movement, resp)
}

func collideAABBOBB(c *Collider, a *BoundingBox, b *OrientedBoundingBox, movement rl.Vector3, resp *CollisionResponse) bool {
	a.toOriented(&c.obbA)
	return c.sat.CheckOBB(&c.obbA, b, movement, resp)
}

func collideOBBOBB(c *Collider, a, b *OrientedBoundingBox, movement rl.Vector3, resp *CollisionResponse) bool {
	return c.sat.CheckOBB(a, b, movement, resp)
}

func collideAABBTriangle(c *Collider, a *BoundingBox, b *Triangle, movement rl.Vector3, resp *CollisionResponse) bool {
	a.toOriented(&c.obbA)
	return c.collideBoxTriangle(&c.obbA, b, movement, resp)
}

func collideOBBTriangle(c *Collider, a *OrientedBoundingBox, b *Triangle, movement rl.Vector3, resp *CollisionResponse) bool {
	return c.collideBoxTriangle(a, b, movement, resp)
}

func collideAABBMesh(c *Collider, a *BoundingBox, b *ConvexMesh, movement rl.Vector3, resp *CollisionResponse) bool {
	a.toOriented(&c.obbA)
	return c.collideBoxMesh(&c.obbA, b, movement, resp)
}

func collideOBBMesh(c *Collider, a *OrientedBoundingBox, b *ConvexMesh, movement rl.Vector3, resp *CollisionResponse) bool {
	return c.collideBoxMesh(a, b, movement, resp)
}

// collideBoxTriangle runs the 13-axis test: the box axes, the triangle
// normal and the box axes crossed with the triangle edges.
func (c *Collider) collideBoxTriangle(box *OrientedBoundingBox, tri *Triangle, movement rl.Vector3, resp *CollisionResponse) bool {
	triVerts := tri.Vertices()
	c.resetAxes()
	c.addAxes(box.Axes[:]...)
	c.addAxes(tri.Normal())
	edges := triangleEdges(tri)
	c.addCrossAxes(box.Axes[:], edges[:])

	if !c.sat.CheckConvex(box.Vertices(), triVerts, c.axes, movement, resp) {
		return false
	}

	c.sat.clipCount = 0
	for _, v := range triVerts {
		if box.containsPointTol(v, c.tol.Containment) {
			c.sat.addClip(v)
		}
	}
	for i := range triVerts {
		c.clipSegmentByBox(triVerts[i], triVerts[(i+1)%3], box)
	}
	c.clipBoxEdgesByTriangle(box, tri.V0, tri.V1, tri.V2)
	if c.sat.clipCount == 0 {
		c.sat.addClip(box.ClosestPoint(tri.Center()))
	}
	c.sat.calculateHitPoints(box.Vertices(), box.Center(), resp)
	return true
}

// collideBoxMesh tests the box axes, the mesh face normals and the box
// axes crossed with the mesh edge directions.
func (c *Collider) collideBoxMesh(box *OrientedBoundingBox, mesh *ConvexMesh, movement rl.Vector3, resp *CollisionResponse) bool {
	if len(mesh.Triangles) == 0 {
		return false
	}
	c.resetAxes()
	c.addAxes(box.Axes[:]...)
	c.addAxes(mesh.faceNormals...)
	c.addCrossAxes(box.Axes[:], mesh.edgeDirections)

	if !c.sat.CheckConvex(box.Vertices(), mesh.Vertices(), c.axes, movement, resp) {
		return false
	}

	c.sat.clipCount = 0
	for _, v := range mesh.Vertices() {
		if box.containsPointTol(v, c.tol.Containment) {
			c.sat.addClip(v)
		}
	}
	for _, v := range box.Vertices() {
		if mesh.containsPointTol(v, c.tol.Containment) {
			c.sat.addClip(v)
		}
	}
	for _, t := range mesh.Triangles {
		c.clipSegmentByBox(t.V0, t.V1, box)
		c.clipSegmentByBox(t.V1, t.V2, box)
		c.clipSegmentByBox(t.V2, t.V0, box)
		c.clipBoxEdgesByTriangle(box, t.V0, t.V1, t.V2)
	}
	if c.sat.clipCount == 0 {
		c.sat.addClip(box.ClosestPoint(mesh.Center()))
	}
	c.sat.calculateHitPoints(box.Vertices(), box.Center(), resp)
	return true
}

// clipSegmentByBox adds where p-q enters and leaves box.
func (c *Collider) clipSegmentByBox(p, q rl.Vector3, box *OrientedBoundingBox) {
	if !c.segments.SegmentOBB(p, q, box, &c.segHit) {
		return
	}
	c.sat.addClip(c.segHit.Entry)
	c.sat.addClip(c.segHit.Exit)
}

// clipBoxEdgesByTriangle adds where the edges of box cross the triangle.
func (c *Collider) clipBoxEdgesByTriangle(box *OrientedBoundingBox, v0, v1, v2 rl.Vector3) {
	verts := box.Vertices()
	for _, e := range boxEdges {
		p, q := verts[e[0]], verts[e[1]]
		if t, ok := intersectRayTriangle(p, rl.Vector3Subtract(q, p), v0, v1, v2, c.tol.General); ok && t <= 1 {
			hit := rl.Vector3Lerp(p, q, t)
			c.sat.addClip(hit)
		}
	}
}
