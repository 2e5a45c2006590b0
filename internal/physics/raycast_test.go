package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaycastShapes(t *testing.T) {
	c := newCollider()
	forward := vec(0, 0, 1)

	cases := []struct {
		name     string
		volume   Volume
		origin   rl.Vector3
		dir      rl.Vector3
		distance float32
		point    rl.Vector3
		normal   rl.Vector3
	}{
		{"sphere", NewSphere(vec(0, 0, 5), 1), vec(0, 0, 0), forward, 4, vec(0, 0, 4), vec(0, 0, -1)},
		{"sphere from inside", NewSphere(vec(0, 0, 0), 1), vec(0, 0, 0), vec(1, 0, 0), 1, vec(1, 0, 0), vec(1, 0, 0)},
		{"box", NewBoundingBox(vec(-1, -1, 4), vec(1, 1, 6)), vec(0, 0, 0), forward, 4, vec(0, 0, 4), vec(0, 0, -1)},
		{"box from inside", NewBoundingBox(vec(-1, -1, -1), vec(1, 1, 1)), vec(0, 0, 0), vec(1, 0, 0), 1, vec(1, 0, 0), vec(1, 0, 0)},
		{"capsule body", NewCapsule(vec(0, -1, 5), vec(0, 1, 5), 0.5), vec(0, 0, 0), forward, 4.5, vec(0, 0, 4.5), vec(0, 0, -1)},
		{"capsule cap", NewCapsule(vec(0, -1, 5), vec(0, 1, 5), 0.5), vec(0, 5, 5), vec(0, -1, 0), 3.5, vec(0, 1.5, 5), vec(0, 1, 0)},
		{"triangle from above", NewTriangle(vec(-1, 0, -1), vec(1, 0, -1), vec(0, 0, 1)), vec(0, 5, 0), vec(0, -1, 0), 5, vec(0, 0, 0), vec(0, 1, 0)},
		{"triangle from below", NewTriangle(vec(-1, 0, -1), vec(1, 0, -1), vec(0, 0, 1)), vec(0, -5, 0), vec(0, 1, 0), 5, vec(0, 0, 0), vec(0, -1, 0)},
		{"mesh", newBoxMesh(vec(0, 0, 10), vec(1, 1, 1)), vec(0, 0, 0), forward, 9, vec(0, 0, 9), vec(0, 0, -1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hit, ok := RaycastVolume(c, tc.volume, tc.origin, tc.dir, 100)
			require.True(t, ok)
			assert.InDelta(t, tc.distance, hit.Distance, testDelta)
			assertVec(t, tc.point, hit.Point)
			assertVec(t, tc.normal, hit.Normal)
		})
	}
}

func TestRaycastOBB(t *testing.T) {
	c := newCollider()
	box := NewOrientedBoundingBoxFromEuler(vec(5, 0, 0), vec(2, 2, 2), vec(0, 0, 45))

	hit, ok := RaycastVolume(c, box, vec(0, 0, 0), vec(1, 0, 0), 100)
	require.True(t, ok)
	assert.InDelta(t, 5-1.4142135, hit.Distance, testDelta)
	assertVec(t, vec(5-1.4142135, 0, 0), hit.Point)

	_, ok = RaycastVolume(c, box, vec(0, 1.5, 0), vec(1, 0, 0), 100)
	assert.False(t, ok)
}

func TestRaycastCapsuleFromInside(t *testing.T) {
	c := newCollider()
	hit, ok := RaycastVolume(c, NewCapsule(vec(0, -1, 0), vec(0, 1, 0), 0.5), vec(0, 0.5, 0), vec(1, 0, 0), 10)
	require.True(t, ok)
	assert.Zero(t, hit.Distance)
	assertVec(t, vec(0, 0.5, 0), hit.Point)
}

func TestRaycastNearest(t *testing.T) {
	c := newCollider()
	volumes := []Volume{
		NewSphere(vec(0, 0, 10), 1),
		NewBoundingBox(vec(-1, -1, 4), vec(1, 1, 6)),
		nil,
		NewSphere(vec(0, 5, 2), 1),
	}

	hit, ok := Raycast(c, volumes, vec(0, 0, 0), vec(0, 0, 2), 100)
	require.True(t, ok)
	assert.Equal(t, 1, hit.Index)
	assert.InDelta(t, 4, hit.Distance, testDelta)

	_, ok = Raycast(c, volumes, vec(0, 0, 0), vec(0, 0, 1), 3)
	assert.False(t, ok, "beyond max distance")

	_, ok = Raycast(c, volumes, vec(0, 0, 0), vec(0, 0, -1), 100)
	assert.False(t, ok, "pointing away")

	_, ok = Raycast(c, volumes, vec(0, 0, 0), rl.Vector3{}, 100)
	assert.False(t, ok, "zero direction")
}

func TestIntersectRayTriangle(t *testing.T) {
	v0, v1, v2 := vec(0, 0, 0), vec(1, 0, 0), vec(0, 1, 0)

	tt, ok := intersectRayTriangle(vec(0.25, 0.25, -2), vec(0, 0, 1), v0, v1, v2, 1e-5)
	require.True(t, ok)
	assert.InDelta(t, 2, tt, testDelta)

	_, ok = intersectRayTriangle(vec(0.75, 0.75, -2), vec(0, 0, 1), v0, v1, v2, 1e-5)
	assert.False(t, ok, "outside the hypotenuse")

	_, ok = intersectRayTriangle(vec(0.25, 0.25, 2), vec(0, 0, 1), v0, v1, v2, 1e-5)
	assert.False(t, ok, "behind the origin")

	_, ok = intersectRayTriangle(vec(-1, 0.25, 0), vec(1, 0, 0), v0, v1, v2, 1e-5)
	assert.False(t, ok, "in the plane")
}
