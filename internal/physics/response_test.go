package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestResponseMergesNearbyHitPoints(t *testing.T) {
	r := NewCollisionResponse()
	assert.True(t, r.AddHitPoint(vec(0, 0, 0)))
	assert.False(t, r.AddHitPoint(vec(0.0005, 0, 0)))
	assert.True(t, r.AddHitPoint(vec(0.01, 0, 0)))
	assert.Equal(t, 2, r.HitPointCount())
}

func TestResponseIsBounded(t *testing.T) {
	r := NewCollisionResponse()
	for i := 0; i < MaxHitPoints+10; i++ {
		r.AddHitPoint(vec(float32(i), 0, 0))
	}
	assert.Equal(t, MaxHitPoints, r.HitPointCount())
	assert.Len(t, r.HitPoints(), MaxHitPoints)
}

func TestResponsePenetrationFlag(t *testing.T) {
	r := NewCollisionResponse()
	r.SetPenetration(vec(0, 1, 0), 0.25)
	assert.True(t, r.HasPenetration)

	r.SetPenetration(vec(0, 1, 0), 0)
	assert.False(t, r.HasPenetration)

	r.SetPenetration(vec(0, 1, 0), -1)
	assert.False(t, r.HasPenetration)
	assert.Zero(t, r.Penetration)
}

func TestResponseResetAndInvert(t *testing.T) {
	r := NewCollisionResponse()
	r.SetPenetration(vec(1, 0, 0), 1)
	r.AddHitPoint(vec(1, 2, 3))
	r.invert()
	assert.Equal(t, vec(-1, 0, 0), r.Normal)

	r.Reset()
	assert.Equal(t, rl.Vector3{}, r.Normal)
	assert.Zero(t, r.Penetration)
	assert.False(t, r.HasPenetration)
	assert.Empty(t, r.HitPoints())
}
