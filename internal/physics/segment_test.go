package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentAABB(t *testing.T) {
	s := NewSegmentTester(DefaultTolerances())
	box := NewBoundingBox(vec(0, 0, 0), vec(1, 1, 1))
	var hit SegmentHit

	require.True(t, s.SegmentAABB(vec(-5, 0.5, 0.5), vec(5, 0.5, 0.5), box, &hit))
	assert.InDelta(t, 0.5, hit.TMin, testDelta)
	assert.InDelta(t, 0.6, hit.TMax, testDelta)
	assertVec(t, vec(0, 0.5, 0.5), hit.Entry)
	assertVec(t, vec(1, 0.5, 0.5), hit.Exit)
}

func TestSegmentAABBEdgeCases(t *testing.T) {
	s := NewSegmentTester(DefaultTolerances())
	box := NewBoundingBox(vec(0, 0, 0), vec(1, 1, 1))
	var hit SegmentHit

	cases := []struct {
		name string
		p, q [3]float32
		want bool
	}{
		{"parallel outside slab", [3]float32{-5, 2, 0.5}, [3]float32{5, 2, 0.5}, false},
		{"parallel inside slab", [3]float32{-5, 1, 0.5}, [3]float32{5, 1, 0.5}, true},
		{"stops short", [3]float32{-5, 0.5, 0.5}, [3]float32{-1, 0.5, 0.5}, false},
		{"starts past", [3]float32{2, 0.5, 0.5}, [3]float32{5, 0.5, 0.5}, false},
		{"diagonal miss", [3]float32{-1, 2, 0.5}, [3]float32{2, 1.5, 0.5}, false},
		{"zero length inside", [3]float32{0.5, 0.5, 0.5}, [3]float32{0.5, 0.5, 0.5}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := vec(tc.p[0], tc.p[1], tc.p[2])
			q := vec(tc.q[0], tc.q[1], tc.q[2])
			assert.Equal(t, tc.want, s.SegmentAABB(p, q, box, &hit))
		})
	}

	require.True(t, s.SegmentAABB(vec(0.2, 0.2, 0.2), vec(0.8, 0.8, 0.8), box, &hit))
	assert.Zero(t, hit.TMin)
	assert.Equal(t, float32(1), hit.TMax)
	assert.True(t, s.SegmentAABB(vec(0.2, 0.2, 0.2), vec(3, 0.2, 0.2), box, nil))
}

func TestSegmentOBB(t *testing.T) {
	s := NewSegmentTester(DefaultTolerances())
	box := NewOrientedBoundingBoxFromEuler(vec(0, 0, 0), vec(2, 2, 2), vec(0, 0, 45))
	var hit SegmentHit

	// the rotated box reaches sqrt(2) along world X
	require.True(t, s.SegmentOBB(vec(-5, 0, 0), vec(5, 0, 0), box, &hit))
	assertVec(t, vec(-1.4142135, 0, 0), hit.Entry)
	assertVec(t, vec(1.4142135, 0, 0), hit.Exit)

	assert.False(t, s.SegmentOBB(vec(-5, 1.5, 0), vec(5, 1.5, 0), box, &hit))

	aligned := NewOrientedBoundingBoxFromBoundingBox(NewBoundingBox(vec(0, 0, 0), vec(1, 1, 1)))
	require.True(t, s.SegmentOBB(vec(-5, 0.5, 0.5), vec(5, 0.5, 0.5), aligned, &hit))
	assert.InDelta(t, 0.5, hit.TMin, testDelta)
	assert.InDelta(t, 0.6, hit.TMax, testDelta)
}
