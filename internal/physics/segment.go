package physics

import (
	"collide3d/internal/vecmath"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// SegmentHit describes where a segment p->q enters and leaves a box.
// TMin and TMax are parameters along the segment in [0, 1].
type SegmentHit struct {
	TMin, TMax  float32
	Entry, Exit rl.Vector3
}

// SegmentTester runs slab-method segment tests against boxes. It keeps
// scratch state between calls; use one per goroutine.
type SegmentTester struct {
	tol Tolerances

	d      rl.Vector3
	origin rl.Vector3
	dir    rl.Vector3
}

// NewSegmentTester creates a tester with the given tolerances.
func NewSegmentTester(tol Tolerances) *SegmentTester {
	return &SegmentTester{tol: tol.withDefaults()}
}

// SegmentAABB intersects segment p->q with box and fills hit on success.
func (s *SegmentTester) SegmentAABB(p, q rl.Vector3, box *BoundingBox, hit *SegmentHit) bool {
	s.d = rl.Vector3Subtract(q, p)
	tmin := float32(0)
	tmax := float32(1)
	for i := 0; i < 3; i++ {
		var ok bool
		tmin, tmax, ok = s.slab(
			vecmath.Component(p, i), vecmath.Component(s.d, i),
			vecmath.Component(box.Min, i), vecmath.Component(box.Max, i),
			tmin, tmax)
		if !ok {
			return false
		}
	}
	s.fill(p, tmin, tmax, hit)
	return true
}

// SegmentOBB intersects segment p->q with box. The segment is expressed in
// the box's axis frame first, then the AABB slab logic runs per axis.
func (s *SegmentTester) SegmentOBB(p, q rl.Vector3, box *OrientedBoundingBox, hit *SegmentHit) bool {
	s.d = rl.Vector3Subtract(q, p)
	s.origin = box.toLocal(p)
	vecmath.Set(&s.dir,
		vecmath.Dot(s.d, box.Axes[0]),
		vecmath.Dot(s.d, box.Axes[1]),
		vecmath.Dot(s.d, box.Axes[2]))

	tmin := float32(0)
	tmax := float32(1)
	for i := 0; i < 3; i++ {
		h := vecmath.Component(box.HalfExtension, i)
		var ok bool
		tmin, tmax, ok = s.slab(
			vecmath.Component(s.origin, i), vecmath.Component(s.dir, i),
			-h, h, tmin, tmax)
		if !ok {
			return false
		}
	}
	s.fill(p, tmin, tmax, hit)
	return true
}

// slab narrows [tmin, tmax] by the slab [lo, hi] on one axis. A direction
// component near zero is resolved by checking the start point against the
// slab instead of dividing.
func (s *SegmentTester) slab(start, dir, lo, hi, tmin, tmax float32) (float32, float32, bool) {
	if math32.Abs(dir) < s.tol.General {
		return tmin, tmax, start >= lo && start <= hi
	}
	ood := 1 / dir
	t1 := (lo - start) * ood
	t2 := (hi - start) * ood
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	if t1 > tmin {
		tmin = t1
	}
	if t2 < tmax {
		tmax = t2
	}
	return tmin, tmax, tmin <= tmax
}

func (s *SegmentTester) fill(p rl.Vector3, tmin, tmax float32, hit *SegmentHit) {
	if hit == nil {
		return
	}
	hit.TMin = tmin
	hit.TMax = tmax
	hit.Entry = p
	vecmath.AddScaled(&hit.Entry, s.d, tmin)
	hit.Exit = p
	vecmath.AddScaled(&hit.Exit, s.d, tmax)
}
