package physics

import (
	"collide3d/internal/vecmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// triangleContainsEpsilon is how far from its plane a point may lie and
// still count as on the triangle.
const triangleContainsEpsilon = 1e-5

// Triangle is a flat, double-sided triangle.
type Triangle struct {
	V0, V1, V2 rl.Vector3

	center               rl.Vector3
	boundingSphereRadius float32
	normal               rl.Vector3
	vertices             [3]rl.Vector3
}

// NewTriangle creates an updated triangle.
func NewTriangle(v0, v1, v2 rl.Vector3) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2}
	t.Update()
	return t
}

func (t *Triangle) Kind() ShapeKind { return KindTriangle }

// Center returns the cached centroid.
func (t *Triangle) Center() rl.Vector3 { return t.center }

func (t *Triangle) BoundingSphereRadius() float32 { return t.boundingSphereRadius }

// Normal returns the cached unit normal, (V1-V0)x(V2-V0) normalized. It is
// the zero vector for a degenerate triangle.
func (t *Triangle) Normal() rl.Vector3 { return t.normal }

// Vertices returns the cached vertices. The slice aliases the triangle.
func (t *Triangle) Vertices() []rl.Vector3 { return t.vertices[:] }

func (t *Triangle) Update() {
	t.vertices = [3]rl.Vector3{t.V0, t.V1, t.V2}
	t.center = rl.Vector3Scale(rl.Vector3Add(rl.Vector3Add(t.V0, t.V1), t.V2), 1.0/3.0)
	t.boundingSphereRadius = 0
	for _, v := range t.vertices {
		t.boundingSphereRadius = max(t.boundingSphereRadius, vecmath.Length(rl.Vector3Subtract(v, t.center)))
	}
	t.normal = vecmath.Normalize(vecmath.Cross(rl.Vector3Subtract(t.V1, t.V0), rl.Vector3Subtract(t.V2, t.V0)))
}

func (t *Triangle) Clone() Volume {
	c := *t
	return &c
}

// FromVolumeWithTransform sets t to original with every vertex transformed
// by m.
func (t *Triangle) FromVolumeWithTransform(original *Triangle, m rl.Matrix) {
	t.V0 = vecmath.TransformPoint(original.V0, m)
	t.V1 = vecmath.TransformPoint(original.V1, m)
	t.V2 = vecmath.TransformPoint(original.V2, m)
	t.Update()
}

func (t *Triangle) ClosestPoint(p rl.Vector3) rl.Vector3 {
	return closestPointOnTriangle(p, t.V0, t.V1, t.V2)
}

// ContainsPoint reports whether p lies on the triangle.
func (t *Triangle) ContainsPoint(p rl.Vector3) bool {
	return vecmath.DistanceSquared(t.ClosestPoint(p), p) <= triangleContainsEpsilon*triangleContainsEpsilon
}

func (t *Triangle) DimensionOnAxis(axis rl.Vector3) float32 {
	min, max := vecmath.Project(t.vertices[:], axis)
	return max - min
}

func (t *Triangle) CollideWith(c *Collider, other Volume, movement rl.Vector3, resp *CollisionResponse) bool {
	return c.Collide(t, other, movement, resp)
}

// closestPointOnTriangle finds the closest point on triangle abc to p by
// classifying p into one of the seven Voronoi regions (three vertices, three
// edges, face).
func closestPointOnTriangle(p, a, b, c rl.Vector3) rl.Vector3 {
	// Check if P in vertex region outside A
	ab := rl.Vector3Subtract(b, a)
	ac := rl.Vector3Subtract(c, a)
	ap := rl.Vector3Subtract(p, a)

	d1 := vecmath.Dot(ab, ap)
	d2 := vecmath.Dot(ac, ap)
	if d1 <= 0 && d2 <= 0 {
		return a // barycentric coordinates (1,0,0)
	}

	// Check if P in vertex region outside B
	bp := rl.Vector3Subtract(p, b)
	d3 := vecmath.Dot(ab, bp)
	d4 := vecmath.Dot(ac, bp)
	if d3 >= 0 && d4 <= d3 {
		return b // barycentric coordinates (0,1,0)
	}

	// Check if P in edge region of AB
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		out := a
		vecmath.AddScaled(&out, ab, v) // barycentric coordinates (1-v,v,0)
		return out
	}

	// Check if P in vertex region outside C
	cp := rl.Vector3Subtract(p, c)
	d5 := vecmath.Dot(ab, cp)
	d6 := vecmath.Dot(ac, cp)
	if d6 >= 0 && d5 <= d6 {
		return c // barycentric coordinates (0,0,1)
	}

	// Check if P in edge region of AC
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		out := a
		vecmath.AddScaled(&out, ac, w) // barycentric coordinates (1-w,0,w)
		return out
	}

	// Check if P in edge region of BC
	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		out := b
		vecmath.AddScaled(&out, rl.Vector3Subtract(c, b), w) // barycentric coordinates (0,1-w,w)
		return out
	}

	sum := va + vb + vc
	if sum == 0 {
		// Collinear vertices leave no face region; fall back to the edges.
		return closestPointOnEdges(p, a, b, c)
	}

	// P inside face region
	denom := 1 / sum
	v := vb * denom
	w := vc * denom
	out := a
	vecmath.AddScaled(&out, ab, v)
	vecmath.AddScaled(&out, ac, w)
	return out
}

func closestPointOnEdges(p, a, b, c rl.Vector3) rl.Vector3 {
	best, _ := closestPointOnSegment(p, a, b)
	bestDist := vecmath.DistanceSquared(best, p)
	for _, e := range [2][2]rl.Vector3{{b, c}, {c, a}} {
		q, _ := closestPointOnSegment(p, e[0], e[1])
		if d := vecmath.DistanceSquared(q, p); d < bestDist {
			best, bestDist = q, d
		}
	}
	return best
}
