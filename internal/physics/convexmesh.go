package physics

import (
	"collide3d/internal/vecmath"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/samber/lo"
)

// meshVertexEpsilon is the distance under which two mesh vertices are
// merged into one.
const meshVertexEpsilon = 1e-4

// ConvexMesh is a closed convex polyhedron given as triangles. The mesh
// owns its triangles; queries scan all of them.
type ConvexMesh struct {
	Triangles []*Triangle

	center               rl.Vector3
	boundingSphereRadius float32
	vertices             []rl.Vector3
	faceNormals          []rl.Vector3
	facePlaneDistances   []float32
	edgeDirections       []rl.Vector3
}

// NewConvexMesh creates an updated mesh that takes ownership of triangles.
func NewConvexMesh(triangles []*Triangle) *ConvexMesh {
	m := &ConvexMesh{Triangles: triangles}
	m.Update()
	return m
}

// NewConvexMeshFromVertices builds a mesh from an indexed triangle list.
// Indices are read three at a time; a trailing partial triangle is ignored.
func NewConvexMeshFromVertices(vertices []rl.Vector3, indices []int) *ConvexMesh {
	triangles := make([]*Triangle, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		triangles = append(triangles, NewTriangle(vertices[indices[i]], vertices[indices[i+1]], vertices[indices[i+2]]))
	}
	return NewConvexMesh(triangles)
}

func (m *ConvexMesh) Kind() ShapeKind { return KindConvexMesh }

// Center returns the cached mean of all triangle vertices.
func (m *ConvexMesh) Center() rl.Vector3 { return m.center }

func (m *ConvexMesh) BoundingSphereRadius() float32 { return m.boundingSphereRadius }

// Vertices returns the cached de-duplicated vertex set.
func (m *ConvexMesh) Vertices() []rl.Vector3 { return m.vertices }

// Update refreshes every owned triangle and then the mesh cache.
func (m *ConvexMesh) Update() {
	m.vertices = m.vertices[:0]
	m.faceNormals = m.faceNormals[:0]
	m.facePlaneDistances = m.facePlaneDistances[:0]
	m.edgeDirections = m.edgeDirections[:0]

	var sum rl.Vector3
	count := 0
	for _, t := range m.Triangles {
		t.Update()
		for _, v := range t.vertices {
			vecmath.AddTo(&sum, v)
			count++
			if !lo.ContainsBy(m.vertices, func(u rl.Vector3) bool {
				return vecmath.ApproxEqual(u, v, meshVertexEpsilon)
			}) {
				m.vertices = append(m.vertices, v)
			}
		}
	}
	if count > 0 {
		m.center = rl.Vector3Scale(sum, 1/float32(count))
	} else {
		m.center = rl.Vector3{}
	}

	m.boundingSphereRadius = 0
	for _, t := range m.Triangles {
		for _, v := range t.vertices {
			m.boundingSphereRadius = max(m.boundingSphereRadius, vecmath.Length(rl.Vector3Subtract(v, m.center)))
		}
	}

	for _, t := range m.Triangles {
		n := t.normal
		if n == (rl.Vector3{}) {
			continue
		}
		if vecmath.Dot(n, rl.Vector3Subtract(t.center, m.center)) < 0 {
			n = rl.Vector3Negate(n)
		}
		m.faceNormals = append(m.faceNormals, n)
		m.facePlaneDistances = append(m.facePlaneDistances, vecmath.Dot(n, t.V0))

		for i := 0; i < 3; i++ {
			e := vecmath.Normalize(rl.Vector3Subtract(t.vertices[(i+1)%3], t.vertices[i]))
			if !lo.ContainsBy(m.edgeDirections, func(u rl.Vector3) bool {
				return math32.Abs(vecmath.Dot(u, e)) >= 1-meshVertexEpsilon
			}) {
				m.edgeDirections = append(m.edgeDirections, e)
			}
		}
	}
}

// Clone deep-copies the mesh and its triangles.
func (m *ConvexMesh) Clone() Volume {
	triangles := lo.Map(m.Triangles, func(t *Triangle, _ int) *Triangle {
		c := *t
		return &c
	})
	return NewConvexMesh(triangles)
}

// FromVolumeWithTransform sets m to original with every triangle
// transformed by m. Triangles are reallocated only when the counts differ.
func (m *ConvexMesh) FromVolumeWithTransform(original *ConvexMesh, transform rl.Matrix) {
	if len(m.Triangles) != len(original.Triangles) {
		m.Triangles = make([]*Triangle, len(original.Triangles))
		for i := range m.Triangles {
			m.Triangles[i] = &Triangle{}
		}
	}
	for i, t := range original.Triangles {
		m.Triangles[i].FromVolumeWithTransform(t, transform)
	}
	m.Update()
}

// ClosestPoint returns the closest point on the mesh surface.
func (m *ConvexMesh) ClosestPoint(p rl.Vector3) rl.Vector3 {
	out, _ := m.closestPointOnSurface(p)
	return out
}

func (m *ConvexMesh) closestPointOnSurface(p rl.Vector3) (rl.Vector3, float32) {
	best := m.center
	bestDist := float32(math32.MaxFloat32)
	for _, t := range m.Triangles {
		q := t.ClosestPoint(p)
		if d := vecmath.DistanceSquared(q, p); d < bestDist {
			best, bestDist = q, d
		}
	}
	return best, bestDist
}

// ContainsPoint reports whether p is inside or on every face plane.
func (m *ConvexMesh) ContainsPoint(p rl.Vector3) bool {
	return m.containsPointTol(p, triangleContainsEpsilon)
}

func (m *ConvexMesh) containsPointTol(p rl.Vector3, tol float32) bool {
	if len(m.faceNormals) == 0 {
		return false
	}
	for i, n := range m.faceNormals {
		if vecmath.Dot(n, p)-m.facePlaneDistances[i] > tol {
			return false
		}
	}
	return true
}

func (m *ConvexMesh) DimensionOnAxis(axis rl.Vector3) float32 {
	if len(m.vertices) == 0 {
		return 0
	}
	min, max := vecmath.Project(m.vertices, axis)
	return max - min
}

func (m *ConvexMesh) CollideWith(c *Collider, other Volume, movement rl.Vector3, resp *CollisionResponse) bool {
	return c.Collide(m, other, movement, resp)
}

// signedDistance returns the distance from p to the surface, negative
// inside.
func (m *ConvexMesh) signedDistance(p rl.Vector3) float32 {
	_, d2 := m.closestPointOnSurface(p)
	d := math32.Sqrt(d2)
	if m.containsPointTol(p, 0) {
		return -d
	}
	return d
}
