package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// pairFunc is a narrow-phase routine for one ordered pair of kinds.
type pairFunc func(c *Collider, a, b Volume, movement rl.Vector3, resp *CollisionResponse) bool

// pairTable holds one routine per ordered kind pair. Each unordered pair
// has a single implementation; the mirrored entry swaps the arguments and
// inverts the normal.
var pairTable [NumShapeKinds][NumShapeKinds]pairFunc

func init() {
	register(KindSphere, KindSphere, typed(collideSphereSphere))
	register(KindSphere, KindCapsule, typed(collideSphereCapsule))
	register(KindSphere, KindBoundingBox, typed(collideSphereAABB))
	register(KindSphere, KindOrientedBoundingBox, typed(collideSphereOBB))
	register(KindSphere, KindTriangle, typed(collideSphereTriangle))
	register(KindSphere, KindConvexMesh, typed(collideSphereMesh))

	register(KindCapsule, KindCapsule, typed(collideCapsuleCapsule))
	register(KindCapsule, KindBoundingBox, typed(collideCapsuleAABB))
	register(KindCapsule, KindOrientedBoundingBox, typed(collideCapsuleOBB))
	register(KindCapsule, KindTriangle, typed(collideCapsuleTriangle))
	register(KindCapsule, KindConvexMesh, typed(collideCapsuleMesh))

	register(KindBoundingBox, KindBoundingBox, typed(collideAABBAABB))
	register(KindBoundingBox, KindOrientedBoundingBox, typed(collideAABBOBB))
	register(KindBoundingBox, KindTriangle, typed(collideAABBTriangle))
	register(KindBoundingBox, KindConvexMesh, typed(collideAABBMesh))

	register(KindOrientedBoundingBox, KindOrientedBoundingBox, typed(collideOBBOBB))
	register(KindOrientedBoundingBox, KindTriangle, typed(collideOBBTriangle))
	register(KindOrientedBoundingBox, KindConvexMesh, typed(collideOBBMesh))

	register(KindTriangle, KindTriangle, typed(collideTriangleTriangle))
	register(KindTriangle, KindConvexMesh, typed(collideTriangleMesh))

	register(KindConvexMesh, KindConvexMesh, typed(collideMeshMesh))
}

// register installs fn for (ka, kb) and its mirror for (kb, ka).
func register(ka, kb ShapeKind, fn pairFunc) {
	pairTable[ka][kb] = fn
	if ka == kb {
		return
	}
	pairTable[kb][ka] = func(c *Collider, a, b Volume, movement rl.Vector3, resp *CollisionResponse) bool {
		if !fn(c, b, a, rl.Vector3Negate(movement), resp) {
			return false
		}
		resp.invert()
		return true
	}
}

// typed adapts a routine on concrete volume types to a pairFunc.
func typed[A, B Volume](fn func(c *Collider, a A, b B, movement rl.Vector3, resp *CollisionResponse) bool) pairFunc {
	return func(c *Collider, a, b Volume, movement rl.Vector3, resp *CollisionResponse) bool {
		ta, okA := a.(A)
		tb, okB := b.(B)
		if !okA || !okB {
			c.log.Warn("Physics: volume type does not match its kind", "a", a.Kind().String(), "b", b.Kind().String())
			return false
		}
		return fn(c, ta, tb, movement, resp)
	}
}
