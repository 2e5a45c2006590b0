package physics

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestCheckAxisRejectsDegenerateAxes(t *testing.T) {
	s := NewSAT(DefaultTolerances())
	a := NewBoundingBox(vec(-1, -1, -1), vec(1, 1, 1)).Vertices()
	b := NewBoundingBox(vec(5, -1, -1), vec(7, 1, 1)).Vertices()

	for _, axis := range []rl.Vector3{
		{},
		vec(1e-7, 0, 0),
		vec(math32.NaN(), 0, 0),
		vec(0, math32.Inf(1), 0),
	} {
		_, _, valid := s.CheckAxis(a, b, axis, rl.Vector3{})
		assert.False(t, valid, "axis %v", axis)
	}

	// only degenerate axes: nothing proves an overlap
	resp := NewCollisionResponse()
	assert.False(t, s.CheckConvex(a, a, []rl.Vector3{{}, vec(math32.NaN(), 0, 0)}, rl.Vector3{}, resp))

	// a degenerate axis is skipped, not taken as separating
	assert.True(t, s.CheckConvex(a, a, []rl.Vector3{{}, vec(0, 2, 0)}, rl.Vector3{}, resp))
	assert.InDelta(t, 2, resp.Penetration, testDelta)
}

func TestCheckAxisSign(t *testing.T) {
	s := NewSAT(DefaultTolerances())
	a := NewBoundingBox(vec(-1, -1, -1), vec(1, 1, 1)).Vertices()
	right := NewBoundingBox(vec(0.5, -1, -1), vec(2.5, 1, 1)).Vertices()

	normal, overlap, valid := s.CheckAxis(a, right, vec(3, 0, 0), rl.Vector3{})
	assert.True(t, valid)
	assert.InDelta(t, 0.5, overlap, testDelta)
	assertVec(t, vec(-1, 0, 0), normal, "normal points from B toward A")

	// identical intervals: movement decides
	normal, overlap, _ = s.CheckAxis(a, a, vec(1, 0, 0), vec(1, 0, 0))
	assert.InDelta(t, 2, overlap, testDelta)
	assertVec(t, vec(-1, 0, 0), normal)
	normal, _, _ = s.CheckAxis(a, a, vec(1, 0, 0), vec(-1, 0, 0))
	assertVec(t, vec(1, 0, 0), normal)

	disjoint := NewBoundingBox(vec(3, -1, -1), vec(5, 1, 1)).Vertices()
	_, overlap, valid = s.CheckAxis(a, disjoint, vec(1, 0, 0), rl.Vector3{})
	assert.True(t, valid)
	assert.LessOrEqual(t, overlap, float32(0))
}
