package physics

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"collide3d/internal/vecmath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphereSphere(t *testing.T) {
	c := newCollider()
	resp := NewCollisionResponse()
	a := NewSphere(vec(0, 0, 0), 1)
	b := NewSphere(vec(1.5, 0, 0), 1)

	require.True(t, a.CollideWith(c, b, rl.Vector3{}, resp))
	assert.True(t, resp.HasPenetration)
	assert.InDelta(t, 0.5, resp.Penetration, testDelta)
	assertVec(t, vec(-1, 0, 0), resp.Normal)
	require.Equal(t, 1, resp.HitPointCount())
	assertVec(t, vec(0.75, 0, 0), resp.HitPoints()[0])

	require.True(t, c.Collide(b, a, rl.Vector3{}, resp))
	assertVec(t, vec(1, 0, 0), resp.Normal)
	assert.InDelta(t, 0.5, resp.Penetration, testDelta)

	far := NewSphere(vec(3, 0, 0), 1)
	assert.False(t, c.Collide(a, far, rl.Vector3{}, resp))
	assert.False(t, resp.HasPenetration)
	assert.Zero(t, resp.HitPointCount())
}

func TestCoincidentSpheresUseMovement(t *testing.T) {
	c := newCollider()
	resp := NewCollisionResponse()
	a := NewSphere(vec(0, 0, 0), 1)
	b := NewSphere(vec(0, 0, 0), 1)

	require.True(t, c.Collide(a, b, vec(0, 0, 2), resp))
	assertVec(t, vec(0, 0, -1), resp.Normal)
	assert.InDelta(t, 2, resp.Penetration, testDelta)

	require.True(t, c.Collide(a, b, rl.Vector3{}, resp))
	assertVec(t, vec(0, 1, 0), resp.Normal)
}

func TestOBBSeparatingAxis(t *testing.T) {
	c := newCollider()
	resp := NewCollisionResponse()
	a := NewOrientedBoundingBox(vec(0, 0, 0), axisAligned(), vec(1, 1, 1))
	b := NewOrientedBoundingBox(vec(3, 0, 0), axisAligned(), vec(1, 1, 1))

	assert.False(t, c.Collide(a, b, rl.Vector3{}, resp))

	b.Position = vec(1.5, 0, 0)
	b.Update()
	require.True(t, c.Collide(a, b, rl.Vector3{}, resp))
	assert.InDelta(t, 0.5, resp.Penetration, testDelta)
	assertVec(t, vec(-1, 0, 0), resp.Normal)
}

func TestOBBFaceContactManifold(t *testing.T) {
	c := newCollider()
	resp := NewCollisionResponse()
	a := NewOrientedBoundingBox(vec(0, 0, 0), axisAligned(), vec(1, 1, 1))
	b := NewOrientedBoundingBox(vec(0, 1.9, 0), axisAligned(), vec(1, 1, 1))

	require.True(t, c.Collide(a, b, rl.Vector3{}, resp))
	assertVec(t, vec(0, -1, 0), resp.Normal)
	assert.InDelta(t, 0.1, resp.Penetration, testDelta)
	assert.GreaterOrEqual(t, resp.HitPointCount(), 4)
	for _, p := range resp.HitPoints() {
		assert.InDelta(t, 0.95, p.Y, testDelta, "hit points lie on the contact plane")
	}
}

func TestAABBTouchingFacesDoNotCollide(t *testing.T) {
	c := newCollider()
	resp := NewCollisionResponse()
	a := NewBoundingBox(vec(-1, -1, -1), vec(1, 1, 1))
	b := NewBoundingBox(vec(1, -1, -1), vec(3, 1, 1))
	assert.False(t, c.Collide(a, b, rl.Vector3{}, resp))

	b = NewBoundingBox(vec(0.5, -1, -1), vec(2.5, 1, 1))
	require.True(t, c.Collide(a, b, rl.Vector3{}, resp))
	assertVec(t, vec(-1, 0, 0), resp.Normal)
	assert.InDelta(t, 0.5, resp.Penetration, testDelta)
	assert.GreaterOrEqual(t, resp.HitPointCount(), 4)
}

func TestAABBAgainstRotatedOBB(t *testing.T) {
	c := newCollider()
	resp := NewCollisionResponse()
	a := NewBoundingBox(vec(-1, -1, -1), vec(1, 1, 1))
	b := NewOrientedBoundingBoxFromEuler(vec(2.2, 0, 0), vec(2, 2, 2), vec(0, 45, 0))

	require.True(t, c.Collide(a, b, rl.Vector3{}, resp))
	assertVec(t, vec(-1, 0, 0), resp.Normal)
	assert.InDelta(t, 1-(2.2-1.4142135), resp.Penetration, 1e-3)
	assert.NotZero(t, resp.HitPointCount())

	b.Position = vec(2.5, 0, 0)
	b.Update()
	assert.False(t, c.Collide(a, b, rl.Vector3{}, resp))
}

func TestSphereBox(t *testing.T) {
	c := newCollider()
	resp := NewCollisionResponse()
	box := NewBoundingBox(vec(-1, -1, -1), vec(1, 1, 1))

	require.True(t, c.Collide(NewSphere(vec(0, 1.5, 0), 1), box, rl.Vector3{}, resp))
	assertVec(t, vec(0, 1, 0), resp.Normal)
	assert.InDelta(t, 0.5, resp.Penetration, testDelta)
	assertVec(t, vec(0, 1, 0), resp.HitPoints()[0])

	// center inside: out through the nearest face
	require.True(t, c.Collide(NewSphere(vec(0, 0.8, 0), 0.5), box, rl.Vector3{}, resp))
	assertVec(t, vec(0, 1, 0), resp.Normal)
	assert.InDelta(t, 0.7, resp.Penetration, testDelta)

	obb := NewOrientedBoundingBoxFromEuler(vec(0, 0, 0), vec(2, 2, 2), vec(0, 0, 45))
	require.True(t, c.Collide(NewSphere(vec(0, 1.6, 0), 0.5), obb, rl.Vector3{}, resp))
	assertVec(t, vec(0, 1, 0), resp.Normal)
	assert.InDelta(t, 0.5-(1.6-1.4142135), resp.Penetration, 1e-3)
}

func TestSphereTriangle(t *testing.T) {
	c := newCollider()
	resp := NewCollisionResponse()
	tri := NewTriangle(vec(-1, 0, -1), vec(1, 0, -1), vec(0, 0, 1))

	require.True(t, c.Collide(NewSphere(vec(0, 0.5, 0), 1), tri, rl.Vector3{}, resp))
	assertVec(t, vec(0, 1, 0), resp.Normal)
	assert.InDelta(t, 0.5, resp.Penetration, testDelta)
	assertVec(t, vec(0, 0, 0), resp.HitPoints()[0])

	// center on the face: the normal opposes the motion
	require.True(t, c.Collide(NewSphere(vec(0, 0, 0), 1), tri, vec(0, -1, 0), resp))
	assertVec(t, vec(0, 1, 0), resp.Normal)
	assert.InDelta(t, 1, resp.Penetration, testDelta)

	assert.False(t, c.Collide(NewSphere(vec(0, 1.5, 0), 1), tri, rl.Vector3{}, resp))
}

func TestSphereMesh(t *testing.T) {
	c := newCollider()
	resp := NewCollisionResponse()
	mesh := newBoxMesh(vec(0, 0, 0), vec(1, 1, 1))

	require.True(t, c.Collide(NewSphere(vec(0, 1.5, 0), 1), mesh, rl.Vector3{}, resp))
	assertVec(t, vec(0, 1, 0), resp.Normal)
	assert.InDelta(t, 0.5, resp.Penetration, testDelta)

	require.True(t, c.Collide(NewSphere(vec(0, 0.7, 0), 0.5), mesh, rl.Vector3{}, resp))
	assertVec(t, vec(0, 1, 0), resp.Normal)
	assert.InDelta(t, 0.8, resp.Penetration, testDelta)

	assert.False(t, c.Collide(NewSphere(vec(0, 2.5, 0), 1), mesh, rl.Vector3{}, resp))
}

func TestCapsuleCapsuleParallel(t *testing.T) {
	c := newCollider()
	resp := NewCollisionResponse()
	a := NewCapsule(vec(0, 0, 0), vec(0, 2, 0), 0.5)
	b := NewCapsule(vec(0.8, 0, 0), vec(0.8, 2, 0), 0.5)

	require.True(t, c.Collide(a, b, rl.Vector3{}, resp))
	assertVec(t, vec(-1, 0, 0), resp.Normal)
	assert.InDelta(t, 0.2, resp.Penetration, testDelta)
	require.Equal(t, 2, resp.HitPointCount())
	assertVec(t, vec(0.4, 0, 0), resp.HitPoints()[0])
	assertVec(t, vec(0.4, 2, 0), resp.HitPoints()[1])

	b = NewCapsule(vec(1.1, 0, 0), vec(1.1, 2, 0), 0.5)
	assert.False(t, c.Collide(a, b, rl.Vector3{}, resp))
}

func TestCapsuleCapsuleShortInsideLong(t *testing.T) {
	c := newCollider()
	resp := NewCollisionResponse()
	long := NewCapsule(vec(-5, 0, 0), vec(5, 0, 0), 0.5)
	short := NewCapsule(vec(-1, 0.8, 0), vec(1, 0.8, 0), 0.5)

	require.True(t, c.Collide(long, short, rl.Vector3{}, resp))
	assertVec(t, vec(0, -1, 0), resp.Normal)
	assert.InDelta(t, 0.2, resp.Penetration, testDelta)
	require.Equal(t, 2, resp.HitPointCount())
	assertContainsVec(t, resp.HitPoints(), vec(-1, 0.4, 0))
	assertContainsVec(t, resp.HitPoints(), vec(1, 0.4, 0))

	require.True(t, c.Collide(short, long, rl.Vector3{}, resp))
	assertVec(t, vec(0, 1, 0), resp.Normal)
	assert.InDelta(t, 0.2, resp.Penetration, testDelta)
	require.Equal(t, 2, resp.HitPointCount())
	assertContainsVec(t, resp.HitPoints(), vec(-1, 0.4, 0))
	assertContainsVec(t, resp.HitPoints(), vec(1, 0.4, 0))
}

func TestSmallParallelTrianglesApart(t *testing.T) {
	c := newCollider()
	resp := NewCollisionResponse()
	a := NewTriangle(vec(0, 0, 0), vec(0.1, 0, 0), vec(0, 0, 0.1))
	b := NewTriangle(vec(0, 0.05, 0), vec(0.1, 0.05, 0), vec(0, 0.05, 0.1))

	assert.False(t, c.Collide(a, b, rl.Vector3{}, resp))
	assert.Zero(t, resp.HitPointCount())
}

func TestCapsuleLyingOnBox(t *testing.T) {
	c := newCollider()
	resp := NewCollisionResponse()
	capsule := NewCapsule(vec(-0.5, 1.3, 0), vec(0.5, 1.3, 0), 0.5)

	for _, box := range []Volume{
		NewBoundingBox(vec(-1, -1, -1), vec(1, 1, 1)),
		NewOrientedBoundingBox(vec(0, 0, 0), axisAligned(), vec(1, 1, 1)),
		newBoxMesh(vec(0, 0, 0), vec(1, 1, 1)),
	} {
		t.Run(box.Kind().String(), func(t *testing.T) {
			require.True(t, c.Collide(capsule, box, rl.Vector3{}, resp))
			assertVec(t, vec(0, 1, 0), resp.Normal)
			assert.InDelta(t, 0.2, resp.Penetration, testDelta)
			assert.GreaterOrEqual(t, resp.HitPointCount(), 2)
			for _, p := range resp.HitPoints() {
				assert.InDelta(t, 1, p.Y, testDelta)
			}
		})
	}
}

func TestCapsulePiercingTriangle(t *testing.T) {
	c := newCollider()
	resp := NewCollisionResponse()
	tri := NewTriangle(vec(-5, 0, -5), vec(5, 0, -5), vec(0, 0, 5))
	capsule := NewCapsule(vec(0, -0.2, 0), vec(0, 2, 0), 0.3)

	require.True(t, c.Collide(capsule, tri, rl.Vector3{}, resp))
	assertVec(t, vec(0, 1, 0), resp.Normal)
	assert.InDelta(t, 0.5, resp.Penetration, testDelta)

	above := NewCapsule(vec(0, 0.2, 0), vec(0, 2, 0), 0.3)
	require.True(t, c.Collide(above, tri, rl.Vector3{}, resp))
	assertVec(t, vec(0, 1, 0), resp.Normal)
	assert.InDelta(t, 0.1, resp.Penetration, testDelta)
}

func TestBoxTriangle(t *testing.T) {
	c := newCollider()
	resp := NewCollisionResponse()
	box := NewOrientedBoundingBox(vec(0, 0, 0), axisAligned(), vec(1, 1, 1))
	tri := NewTriangle(vec(-3, -0.8, -3), vec(3, -0.8, -3), vec(0, -0.8, 3))

	require.True(t, c.Collide(box, tri, rl.Vector3{}, resp))
	assertVec(t, vec(0, 1, 0), resp.Normal)
	assert.InDelta(t, 0.2, resp.Penetration, testDelta)
	assert.GreaterOrEqual(t, resp.HitPointCount(), 2)
	for _, p := range resp.HitPoints() {
		assert.InDelta(t, -0.9, p.Y, testDelta)
	}

	below := NewTriangle(vec(-3, -1.5, -3), vec(3, -1.5, -3), vec(0, -1.5, 3))
	assert.False(t, c.Collide(box, below, rl.Vector3{}, resp))
}

func TestBoxMesh(t *testing.T) {
	c := newCollider()
	resp := NewCollisionResponse()
	box := NewBoundingBox(vec(-1, -1, -1), vec(1, 1, 1))
	mesh := newBoxMesh(vec(0, 1.8, 0), vec(1, 1, 1))

	require.True(t, c.Collide(box, mesh, rl.Vector3{}, resp))
	assertVec(t, vec(0, -1, 0), resp.Normal)
	assert.InDelta(t, 0.2, resp.Penetration, testDelta)
	assert.GreaterOrEqual(t, resp.HitPointCount(), 4)
	for _, p := range resp.HitPoints() {
		assert.InDelta(t, 0.9, p.Y, testDelta)
	}

	mesh = newBoxMesh(vec(0, 2.5, 0), vec(1, 1, 1))
	assert.False(t, c.Collide(box, mesh, rl.Vector3{}, resp))
}

func TestMeshMesh(t *testing.T) {
	c := newCollider()
	resp := NewCollisionResponse()
	a := newBoxMesh(vec(0, 0, 0), vec(1, 1, 1))
	b := newBoxMesh(vec(1.8, 0, 0), vec(1, 1, 1))

	require.True(t, c.Collide(a, b, rl.Vector3{}, resp))
	assertVec(t, vec(-1, 0, 0), resp.Normal)
	assert.InDelta(t, 0.2, resp.Penetration, testDelta)
	assert.GreaterOrEqual(t, resp.HitPointCount(), 4)
	for _, p := range resp.HitPoints() {
		assert.InDelta(t, 0.9, p.X, testDelta)
	}

	b = newBoxMesh(vec(2.1, 0, 0), vec(1, 1, 1))
	assert.False(t, c.Collide(a, b, rl.Vector3{}, resp))
}

func TestTriangleMesh(t *testing.T) {
	c := newCollider()
	resp := NewCollisionResponse()
	mesh := newBoxMesh(vec(0, 0, 0), vec(1, 1, 1))
	tri := NewTriangle(vec(-3, 0.9, -3), vec(3, 0.9, -3), vec(0, 0.9, 3))

	require.True(t, c.Collide(tri, mesh, rl.Vector3{}, resp))
	assertVec(t, vec(0, 1, 0), resp.Normal)
	assert.InDelta(t, 0.1, resp.Penetration, testDelta)
	assert.NotZero(t, resp.HitPointCount())

	tri = NewTriangle(vec(-3, 1.2, -3), vec(3, 1.2, -3), vec(0, 1.2, 3))
	assert.False(t, c.Collide(tri, mesh, rl.Vector3{}, resp))
}

func TestTriangleTrianglePair(t *testing.T) {
	c := newCollider()
	resp := NewCollisionResponse()
	a := NewTriangle(vec(-1, 0, -1), vec(1, 0, -1), vec(0, 0, 1))

	crossing := NewTriangle(vec(0, -1, -0.5), vec(0, 1, -0.5), vec(0, 1, 0.5))
	require.True(t, c.Collide(a, crossing, rl.Vector3{}, resp))
	require.Equal(t, 2, resp.HitPointCount())
	assertContainsVec(t, resp.HitPoints(), vec(0, 0, -0.5))
	assertContainsVec(t, resp.HitPoints(), vec(0, 0, 0))

	coplanar := NewTriangle(vec(-0.5, 0, -1), vec(1.5, 0, -1), vec(0.5, 0, 1))
	require.True(t, c.Collide(a, coplanar, rl.Vector3{}, resp))
	assert.False(t, resp.HasPenetration, "coplanar triangles touch without depth")
	assert.NotZero(t, resp.HitPointCount())

	above := NewTriangle(vec(0, 0.5, -0.5), vec(0, 1, -0.5), vec(0, 2, 0.5))
	assert.False(t, c.Collide(a, above, rl.Vector3{}, resp))
}

func TestDispatchTableIsComplete(t *testing.T) {
	for ka := ShapeKind(0); ka < NumShapeKinds; ka++ {
		for kb := ShapeKind(0); kb < NumShapeKinds; kb++ {
			assert.NotNil(t, pairTable[ka][kb], "%s vs %s", ka, kb)
		}
	}
}

// overlappingVolumes returns one volume of each kind, all overlapping near
// the origin.
func overlappingVolumes() []Volume {
	return []Volume{
		NewSphere(vec(0.3, 0.1, 0), 1),
		NewCapsule(vec(-1, 0.2, 0), vec(1, 0.2, 0), 0.5),
		NewBoundingBoxFromCenter(vec(0, 0, 0), vec(1.5, 1.5, 1.5)),
		NewOrientedBoundingBoxFromEuler(vec(0.1, 0, 0), vec(1.5, 1.5, 1.5), vec(0, 30, 0)),
		NewTriangle(vec(-1, -0.2, -1), vec(1, -0.2, -1), vec(0, 0.3, 1)),
		newBoxMesh(vec(0.2, 0.1, 0.1), vec(0.7, 0.7, 0.7)),
	}
}

func TestSwappedDispatchInvertsNormal(t *testing.T) {
	c := newCollider()
	forward := NewCollisionResponse()
	backward := NewCollisionResponse()
	volumes := overlappingVolumes()
	movement := vec(0.1, -0.3, 0.2)

	for i, a := range volumes {
		for j, b := range volumes {
			if i == j {
				continue
			}
			t.Run(fmt.Sprintf("%s-%s", a.Kind(), b.Kind()), func(t *testing.T) {
				hitAB := c.Collide(a, b, movement, forward)
				hitBA := c.Collide(b, a, rl.Vector3Negate(movement), backward)
				require.Equal(t, hitAB, hitBA)
				if !hitAB {
					return
				}
				assert.Equal(t, rl.Vector3Negate(forward.Normal), backward.Normal)
				assert.Equal(t, forward.Penetration, backward.Penetration)
				assert.Equal(t, forward.HitPoints(), backward.HitPoints())
			})
		}
	}
}

func TestEveryKindPairDetectsOverlap(t *testing.T) {
	c := newCollider()
	resp := NewCollisionResponse()
	volumes := overlappingVolumes()
	for _, a := range volumes {
		for _, b := range volumes {
			if a.Kind() == KindTriangle && b.Kind() == KindTriangle {
				continue
			}
			assert.True(t, c.Collide(a, b, rl.Vector3{}, resp), "%s vs %s", a.Kind(), b.Kind())
			assert.True(t, vecmath.IsFinite(resp.Normal))
			assert.GreaterOrEqual(t, resp.Penetration, float32(0))
		}
	}
}

type unknownVolume struct {
	*Sphere
}

func (unknownVolume) Kind() ShapeKind { return ShapeKind(42) }

func TestUnsupportedPairLogsAndReportsNoCollision(t *testing.T) {
	var buf bytes.Buffer
	c := NewCollider(DefaultTolerances(), slog.New(slog.NewTextHandler(&buf, nil)))
	resp := NewCollisionResponse()

	odd := unknownVolume{NewSphere(vec(0, 0, 0), 1)}
	assert.False(t, c.Collide(odd, NewSphere(vec(0, 0, 0), 1), rl.Vector3{}, resp))
	assert.Contains(t, buf.String(), "unsupported shape pair")
	assert.False(t, resp.HasPenetration)
}

type mislabeledVolume struct {
	*Sphere
}

func (mislabeledVolume) Kind() ShapeKind { return KindCapsule }

func TestMislabeledVolumeReportsNoCollision(t *testing.T) {
	var buf bytes.Buffer
	c := NewCollider(DefaultTolerances(), slog.New(slog.NewTextHandler(&buf, nil)))
	resp := NewCollisionResponse()

	odd := mislabeledVolume{NewSphere(vec(0, 0, 0), 1)}
	assert.False(t, c.Collide(odd, NewSphere(vec(0, 0, 0), 1), rl.Vector3{}, resp))
	assert.Contains(t, buf.String(), "does not match its kind")
}

func assertContainsVec(t *testing.T, points []rl.Vector3, want rl.Vector3) {
	t.Helper()
	for _, p := range points {
		if vecmath.ApproxEqual(p, want, testDelta) {
			return
		}
	}
	assert.Failf(t, "point not found", "%v not in %v", want, points)
}
