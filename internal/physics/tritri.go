package physics

import (
	"collide3d/internal/vecmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// TriTriResult is the verdict of a triangle-triangle test.
type TriTriResult int

const (
	NoIntersection TriTriResult = iota
	// CoplanarIntersection means both triangles share a plane and overlap.
	// No intersection segment is produced.
	CoplanarIntersection
	// Intersection comes with the two endpoints of the intersection segment.
	Intersection
)

func (r TriTriResult) String() string {
	switch r {
	case NoIntersection:
		return "NoIntersection"
	case CoplanarIntersection:
		return "CoplanarIntersection"
	case Intersection:
		return "Intersection"
	default:
		return "Unknown"
	}
}

// TriangleIntersector tests triangle pairs with the plane/plane
// intersection-line method. Signed distances to the unit-normal planes
// below the TriangleTriangle tolerance snap to zero. The struct holds scratch state;
// use one per goroutine.
type TriangleIntersector struct {
	eps float32

	n1, n2         rl.Vector3
	isect1, isect2 [2]float32
	pointA1        rl.Vector3
	pointA2        rl.Vector3
	pointB1        rl.Vector3
	pointB2        rl.Vector3

	// projection axes of the coplanar test
	i0, i1 int
}

// NewTriangleIntersector creates an intersector with the given tolerances.
func NewTriangleIntersector(tol Tolerances) *TriangleIntersector {
	return &TriangleIntersector{eps: tol.withDefaults().TriangleTriangle}
}

// Intersect tests t1 against t2. For Intersection the returned points are
// the endpoints of the shared segment.
func (ti *TriangleIntersector) Intersect(t1, t2 *Triangle) (TriTriResult, rl.Vector3, rl.Vector3) {
	return ti.IntersectVertices(t1.V0, t1.V1, t1.V2, t2.V0, t2.V1, t2.V2)
}

// IntersectVertices is Intersect on raw vertices.
func (ti *TriangleIntersector) IntersectVertices(v0, v1, v2, u0, u1, u2 rl.Vector3) (TriTriResult, rl.Vector3, rl.Vector3) {
	// plane of triangle (v0,v1,v2)
	ti.n1 = vecmath.Normalize(vecmath.Cross(rl.Vector3Subtract(v1, v0), rl.Vector3Subtract(v2, v0)))
	d1 := -vecmath.Dot(ti.n1, v0)

	du0 := ti.snap(vecmath.Dot(ti.n1, u0) + d1)
	du1 := ti.snap(vecmath.Dot(ti.n1, u1) + d1)
	du2 := ti.snap(vecmath.Dot(ti.n1, u2) + d1)
	du0du1 := du0 * du1
	du0du2 := du0 * du2
	if du0du1 > 0 && du0du2 > 0 {
		return NoIntersection, rl.Vector3{}, rl.Vector3{}
	}

	// plane of triangle (u0,u1,u2)
	ti.n2 = vecmath.Normalize(vecmath.Cross(rl.Vector3Subtract(u1, u0), rl.Vector3Subtract(u2, u0)))
	d2 := -vecmath.Dot(ti.n2, u0)

	dv0 := ti.snap(vecmath.Dot(ti.n2, v0) + d2)
	dv1 := ti.snap(vecmath.Dot(ti.n2, v1) + d2)
	dv2 := ti.snap(vecmath.Dot(ti.n2, v2) + d2)
	dv0dv1 := dv0 * dv1
	dv0dv2 := dv0 * dv2
	if dv0dv1 > 0 && dv0dv2 > 0 {
		return NoIntersection, rl.Vector3{}, rl.Vector3{}
	}

	// direction of the intersection line and its dominant axis
	dir := vecmath.Cross(ti.n1, ti.n2)
	index := 0
	maxc := vecmath.Abs(dir.X)
	if b := vecmath.Abs(dir.Y); b > maxc {
		maxc, index = b, 1
	}
	if c := vecmath.Abs(dir.Z); c > maxc {
		index = 2
	}

	vp0 := vecmath.Component(v0, index)
	vp1 := vecmath.Component(v1, index)
	vp2 := vecmath.Component(v2, index)
	up0 := vecmath.Component(u0, index)
	up1 := vecmath.Component(u1, index)
	up2 := vecmath.Component(u2, index)

	var coplanar bool
	ti.isect1[0], ti.isect1[1], ti.pointA1, ti.pointA2, coplanar = computeIntervalsIsectLine(
		v0, v1, v2, vp0, vp1, vp2, dv0, dv1, dv2, dv0dv1, dv0dv2)
	if coplanar {
		if ti.coplanarTriTri(ti.n1, v0, v1, v2, u0, u1, u2) {
			return CoplanarIntersection, rl.Vector3{}, rl.Vector3{}
		}
		return NoIntersection, rl.Vector3{}, rl.Vector3{}
	}

	ti.isect2[0], ti.isect2[1], ti.pointB1, ti.pointB2, _ = computeIntervalsIsectLine(
		u0, u1, u2, up0, up1, up2, du0, du1, du2, du0du1, du0du2)

	smallest1 := sort2(&ti.isect1)
	smallest2 := sort2(&ti.isect2)

	if ti.isect1[1] < ti.isect2[0] || ti.isect2[1] < ti.isect1[0] {
		return NoIntersection, rl.Vector3{}, rl.Vector3{}
	}

	var p1, p2 rl.Vector3
	if ti.isect2[0] < ti.isect1[0] {
		p1 = pick(smallest1, ti.pointA1, ti.pointA2)
		if ti.isect2[1] < ti.isect1[1] {
			p2 = pick(smallest2, ti.pointB2, ti.pointB1)
		} else {
			p2 = pick(smallest1, ti.pointA2, ti.pointA1)
		}
	} else {
		p1 = pick(smallest2, ti.pointB1, ti.pointB2)
		if ti.isect2[1] > ti.isect1[1] {
			p2 = pick(smallest1, ti.pointA2, ti.pointA1)
		} else {
			p2 = pick(smallest2, ti.pointB2, ti.pointB1)
		}
	}
	return Intersection, p1, p2
}

func (ti *TriangleIntersector) snap(d float32) float32 {
	if vecmath.Abs(d) < ti.eps {
		return 0
	}
	return d
}

// sort2 orders the pair ascending and reports whether it swapped.
func sort2(v *[2]float32) bool {
	if v[0] > v[1] {
		v[0], v[1] = v[1], v[0]
		return true
	}
	return false
}

func pick(swapped bool, ifSorted, ifSwapped rl.Vector3) rl.Vector3 {
	if swapped {
		return ifSwapped
	}
	return ifSorted
}

// computeIntervalsIsectLine finds where the triangle crosses the other
// plane, as an interval on the projected line and as 3D points. coplanar is
// true when every vertex lies on the other plane.
func computeIntervalsIsectLine(v0, v1, v2 rl.Vector3, vv0, vv1, vv2, d0, d1, d2, d0d1, d0d2 float32) (
	isect0, isect1 float32, point0, point1 rl.Vector3, coplanar bool) {
	switch {
	case d0d1 > 0:
		// d0, d1 on the same side, d2 on the other side or on the plane
		isect0, isect1, point0, point1 = isect2(v2, v0, v1, vv2, vv0, vv1, d2, d0, d1)
	case d0d2 > 0:
		isect0, isect1, point0, point1 = isect2(v1, v0, v2, vv1, vv0, vv2, d1, d0, d2)
	case d1*d2 > 0 || d0 != 0:
		isect0, isect1, point0, point1 = isect2(v0, v1, v2, vv0, vv1, vv2, d0, d1, d2)
	case d1 != 0:
		isect0, isect1, point0, point1 = isect2(v1, v0, v2, vv1, vv0, vv2, d1, d0, d2)
	case d2 != 0:
		isect0, isect1, point0, point1 = isect2(v2, v0, v1, vv2, vv0, vv1, d2, d0, d1)
	default:
		coplanar = true
	}
	return
}

// isect2 interpolates the two edges leaving vtx0 to the plane crossing.
func isect2(vtx0, vtx1, vtx2 rl.Vector3, vv0, vv1, vv2, d0, d1, d2 float32) (float32, float32, rl.Vector3, rl.Vector3) {
	tmp := d0 / (d0 - d1)
	isect0 := vv0 + (vv1-vv0)*tmp
	point0 := vtx0
	vecmath.AddScaled(&point0, rl.Vector3Subtract(vtx1, vtx0), tmp)

	tmp = d0 / (d0 - d2)
	isect1 := vv0 + (vv2-vv0)*tmp
	point1 := vtx0
	vecmath.AddScaled(&point1, rl.Vector3Subtract(vtx2, vtx0), tmp)
	return isect0, isect1, point0, point1
}

// coplanarTriTri projects both triangles onto the plane best aligned with n
// and tests edge/edge crossings, then containment of one vertex in the
// other triangle.
func (ti *TriangleIntersector) coplanarTriTri(n, v0, v1, v2, u0, u1, u2 rl.Vector3) bool {
	a := rl.Vector3{X: vecmath.Abs(n.X), Y: vecmath.Abs(n.Y), Z: vecmath.Abs(n.Z)}
	if a.X > a.Y {
		if a.X > a.Z {
			ti.i0, ti.i1 = 1, 2 // a.X is greatest
		} else {
			ti.i0, ti.i1 = 0, 1 // a.Z is greatest
		}
	} else {
		if a.Z > a.Y {
			ti.i0, ti.i1 = 0, 1 // a.Z is greatest
		} else {
			ti.i0, ti.i1 = 0, 2 // a.Y is greatest
		}
	}

	if ti.edgeAgainstTriEdges(v0, v1, u0, u1, u2) ||
		ti.edgeAgainstTriEdges(v1, v2, u0, u1, u2) ||
		ti.edgeAgainstTriEdges(v2, v0, u0, u1, u2) {
		return true
	}
	return ti.pointInTri(v0, u0, u1, u2) || ti.pointInTri(u0, v0, v1, v2)
}

func (ti *TriangleIntersector) edgeAgainstTriEdges(v0, v1, u0, u1, u2 rl.Vector3) bool {
	ax := vecmath.Component(v1, ti.i0) - vecmath.Component(v0, ti.i0)
	ay := vecmath.Component(v1, ti.i1) - vecmath.Component(v0, ti.i1)
	return ti.edgeEdgeTest(v0, u0, u1, ax, ay) ||
		ti.edgeEdgeTest(v0, u1, u2, ax, ay) ||
		ti.edgeEdgeTest(v0, u2, u0, ax, ay)
}

func (ti *TriangleIntersector) edgeEdgeTest(v0, u0, u1 rl.Vector3, ax, ay float32) bool {
	bx := vecmath.Component(u0, ti.i0) - vecmath.Component(u1, ti.i0)
	by := vecmath.Component(u0, ti.i1) - vecmath.Component(u1, ti.i1)
	cx := vecmath.Component(v0, ti.i0) - vecmath.Component(u0, ti.i0)
	cy := vecmath.Component(v0, ti.i1) - vecmath.Component(u0, ti.i1)
	f := ay*bx - ax*by
	d := by*cx - bx*cy
	if (f > 0 && d >= 0 && d <= f) || (f < 0 && d <= 0 && d >= f) {
		e := ax*cy - ay*cx
		if f > 0 {
			return e >= 0 && e <= f
		}
		return e <= 0 && e >= f
	}
	return false
}

func (ti *TriangleIntersector) pointInTri(p, u0, u1, u2 rl.Vector3) bool {
	side := func(from, to rl.Vector3) float32 {
		a := vecmath.Component(to, ti.i1) - vecmath.Component(from, ti.i1)
		b := -(vecmath.Component(to, ti.i0) - vecmath.Component(from, ti.i0))
		c := -a*vecmath.Component(from, ti.i0) - b*vecmath.Component(from, ti.i1)
		return a*vecmath.Component(p, ti.i0) + b*vecmath.Component(p, ti.i1) + c
	}
	d0 := side(u0, u1)
	d1 := side(u1, u2)
	d2 := side(u2, u0)
	return d0*d1 > 0 && d0*d2 > 0
}
