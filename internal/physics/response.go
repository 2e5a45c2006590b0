package physics

import (
	"collide3d/internal/vecmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// MaxHitPoints bounds the contact manifold of a single response.
const MaxHitPoints = 32

// CollisionResponse is the result record of one narrow-phase test.
//
// Normal points from the second volume of the test toward the first:
// translating the first volume by Normal*Penetration separates the pair.
// A response is meant to be allocated once and reused for every pair the
// caller tests; Collider.Collide resets it on entry.
type CollisionResponse struct {
	Normal      rl.Vector3
	Penetration float32

	// HasPenetration is false when the volumes touch but yield no usable
	// separation (coincident surfaces, coplanar triangles). Solvers should
	// skip impulses for such responses.
	HasPenetration bool

	hitPoints  [MaxHitPoints]rl.Vector3
	hitCount   int
	mergeDist2 float32
}

// NewCollisionResponse creates an empty response.
func NewCollisionResponse() *CollisionResponse {
	r := &CollisionResponse{}
	r.Reset()
	return r
}

// Reset clears the response for reuse.
func (r *CollisionResponse) Reset() {
	r.Normal = rl.Vector3{}
	r.Penetration = 0
	r.HasPenetration = false
	r.hitCount = 0
	if r.mergeDist2 == 0 {
		d := DefaultTolerances().HitPointMerge
		r.mergeDist2 = d * d
	}
}

// SetPenetration records the contact normal and depth. A non-positive depth
// clears HasPenetration.
func (r *CollisionResponse) SetPenetration(normal rl.Vector3, penetration float32) {
	r.Normal = normal
	if penetration < 0 {
		penetration = 0
	}
	r.Penetration = penetration
	r.HasPenetration = penetration > 0
}

// AddHitPoint appends p unless it is within the merge distance of an
// existing point or the manifold is full. It reports whether p was stored.
func (r *CollisionResponse) AddHitPoint(p rl.Vector3) bool {
	for i := 0; i < r.hitCount; i++ {
		if vecmath.DistanceSquared(r.hitPoints[i], p) <= r.mergeDist2 {
			return false
		}
	}
	if r.hitCount == MaxHitPoints {
		return false
	}
	r.hitPoints[r.hitCount] = p
	r.hitCount++
	return true
}

// HitPoints returns the world-space contact points. The slice aliases the
// response and is only valid until the next Reset.
func (r *CollisionResponse) HitPoints() []rl.Vector3 {
	return r.hitPoints[:r.hitCount]
}

// HitPointCount returns the number of stored hit points.
func (r *CollisionResponse) HitPointCount() int {
	return r.hitCount
}

// setMergeDistance is called by the owning Collider.
func (r *CollisionResponse) setMergeDistance(d float32) {
	r.mergeDist2 = d * d
}

// invert flips the normal so the response describes the swapped pair.
func (r *CollisionResponse) invert() {
	r.Normal = rl.Vector3Negate(r.Normal)
}
