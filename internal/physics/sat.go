package physics

import (
	"collide3d/internal/vecmath"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// maxClipPoints bounds the candidates of one edge/face clipping run:
// 6 planes x 12 edges, in both directions.
const maxClipPoints = 2 * 6 * 12

// SAT runs separating axis tests. Its scratch buffers make a SAT value
// unsafe for concurrent use; keep one per goroutine.
type SAT struct {
	tol Tolerances

	axes      [15]rl.Vector3
	clip      [maxClipPoints]rl.Vector3
	clipCount int
}

// NewSAT creates a SAT engine with the given tolerances.
func NewSAT(tol Tolerances) *SAT {
	return &SAT{tol: tol.withDefaults()}
}

// CheckAxis projects both vertex sets onto axis and returns the contact
// normal candidate and overlap on it. valid is false for near-zero or
// non-finite axes, which must be skipped rather than treated as
// separating. An overlap <= 0 on a valid axis means the sets are disjoint.
//
// The normal is axis or its negation, chosen so that moving the A set by
// normal*overlap separates the intervals. When both directions need the
// same push, movement (A relative to B) breaks the tie, then the interval
// centers.
func (s *SAT) CheckAxis(vertsA, vertsB []rl.Vector3, axis, movement rl.Vector3) (normal rl.Vector3, overlap float32, valid bool) {
	if !vecmath.IsFinite(axis) {
		return rl.Vector3{}, 0, false
	}
	l := vecmath.Length(axis)
	if l < s.tol.General {
		return rl.Vector3{}, 0, false
	}
	axis = rl.Vector3Scale(axis, 1/l)

	minA, maxA := vecmath.Project(vertsA, axis)
	minB, maxB := vecmath.Project(vertsB, axis)

	pushPositive := maxB - minA
	pushNegative := maxA - minB

	switch {
	case pushPositive < pushNegative:
		return axis, pushPositive, true
	case pushNegative < pushPositive:
		return rl.Vector3Negate(axis), pushNegative, true
	}

	dm := vecmath.Dot(movement, axis)
	switch {
	case dm > s.tol.General:
		return rl.Vector3Negate(axis), pushNegative, true
	case dm < -s.tol.General:
		return axis, pushPositive, true
	case minA+maxA >= minB+maxB:
		return axis, pushPositive, true
	default:
		return rl.Vector3Negate(axis), pushNegative, true
	}
}

// CheckConvex tests the vertex sets of two convex volumes against the given
// candidate axes. On overlap it stores the axis of minimum positive overlap
// in resp and returns true.
func (s *SAT) CheckConvex(vertsA, vertsB []rl.Vector3, axes []rl.Vector3, movement rl.Vector3, resp *CollisionResponse) bool {
	bestOverlap := float32(math32.MaxFloat32)
	var bestNormal rl.Vector3
	found := false

	for _, axis := range axes {
		normal, overlap, valid := s.CheckAxis(vertsA, vertsB, axis, movement)
		if !valid {
			continue
		}
		if overlap <= 0 {
			return false
		}
		if overlap < bestOverlap {
			bestOverlap = overlap
			bestNormal = normal
			found = true
		}
	}
	if !found {
		return false
	}
	resp.SetPenetration(bestNormal, bestOverlap)
	return true
}

// CheckOBB runs the 15-axis test for two oriented boxes and, on overlap,
// fills resp with the normal, penetration and contact manifold.
func (s *SAT) CheckOBB(a, b *OrientedBoundingBox, movement rl.Vector3, resp *CollisionResponse) bool {
	n := 0
	for i := 0; i < 3; i++ {
		s.axes[n] = a.Axes[i]
		n++
	}
	for i := 0; i < 3; i++ {
		s.axes[n] = b.Axes[i]
		n++
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s.axes[n] = vecmath.Cross(a.Axes[i], b.Axes[j])
			n++
		}
	}

	if !s.CheckConvex(a.Vertices(), b.Vertices(), s.axes[:n], movement, resp) {
		return false
	}

	s.clipCount = 0
	s.computeEdgeFaceHitPlanes(a, b)
	s.computeEdgeFaceHitPlanes(b, a)
	if s.clipCount == 0 {
		// One box swallowed the other: no edge crosses a face.
		s.addContainedVertices(a, b)
		s.addContainedVertices(b, a)
	}
	s.calculateHitPoints(a.Vertices(), a.Center(), resp)
	return true
}

// computeEdgeFaceHitPlanes clips every edge of other against the six face
// planes of box and keeps crossings that lie within box.
func (s *SAT) computeEdgeFaceHitPlanes(box, other *OrientedBoundingBox) {
	verts := other.Vertices()
	for axis := 0; axis < 3; axis++ {
		h := vecmath.Component(box.HalfExtension, axis)
		for _, sign := range [2]float32{1, -1} {
			planeNormal := rl.Vector3Scale(box.Axes[axis], sign)
			planeDist := vecmath.Dot(planeNormal, box.Center()) + h
			for _, e := range boxEdges {
				p, q := verts[e[0]], verts[e[1]]
				hit, ok := s.segmentPlane(p, q, planeNormal, planeDist)
				if !ok || !box.containsPointTol(hit, s.tol.Containment) {
					continue
				}
				s.addClip(hit)
			}
		}
	}
}

// segmentPlane intersects segment p-q with the plane n·x = d.
func (s *SAT) segmentPlane(p, q, n rl.Vector3, d float32) (rl.Vector3, bool) {
	dp := vecmath.Dot(n, p) - d
	dq := vecmath.Dot(n, q) - d
	denom := dp - dq
	if vecmath.Abs(denom) < s.tol.General {
		return rl.Vector3{}, false
	}
	t := dp / denom
	if t < -s.tol.General || t > 1+s.tol.General {
		return rl.Vector3{}, false
	}
	hit := p
	vecmath.AddScaled(&hit, rl.Vector3Subtract(q, p), vecmath.Clamp(t, 0, 1))
	return hit, true
}

func (s *SAT) addContainedVertices(box, other *OrientedBoundingBox) {
	for _, v := range other.Vertices() {
		if box.containsPointTol(v, s.tol.Containment) {
			s.addClip(v)
		}
	}
}

func (s *SAT) addClip(p rl.Vector3) {
	if s.clipCount < len(s.clip) {
		s.clip[s.clipCount] = p
		s.clipCount++
	}
}

// calculateHitPoints projects the clipped candidates onto the contact
// plane: the plane through the middle of the overlap, offset from A's
// center by distAlongA = (max-min)/2 - penetration/2 against the normal.
func (s *SAT) calculateHitPoints(vertsA []rl.Vector3, centerA rl.Vector3, resp *CollisionResponse) {
	min, max := vecmath.Project(vertsA, resp.Normal)
	distAlongA := (max-min)/2 - resp.Penetration/2
	s.emitClipped(vecmath.Dot(centerA, resp.Normal)-distAlongA, resp)
}

// calculateHitPointsConvex is calculateHitPoints for volumes whose center
// is not the middle of their extent along the normal. The contact plane
// sits half the penetration above A's lowest point.
func (s *SAT) calculateHitPointsConvex(vertsA []rl.Vector3, resp *CollisionResponse) {
	min, _ := vecmath.Project(vertsA, resp.Normal)
	s.emitClipped(min+resp.Penetration/2, resp)
}

func (s *SAT) emitClipped(planeDist float32, resp *CollisionResponse) {
	normal := resp.Normal
	for i := 0; i < s.clipCount; i++ {
		p := s.clip[i]
		vecmath.AddScaled(&p, normal, planeDist-vecmath.Dot(p, normal))
		resp.AddHitPoint(p)
	}
}
