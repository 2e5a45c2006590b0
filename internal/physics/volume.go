package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ShapeKind identifies one of the six concrete volume types.
type ShapeKind int

const (
	KindSphere ShapeKind = iota
	KindCapsule
	KindBoundingBox
	KindOrientedBoundingBox
	KindTriangle
	KindConvexMesh

	// NumShapeKinds is the size of the dispatch table in each dimension.
	NumShapeKinds
)

func (k ShapeKind) String() string {
	switch k {
	case KindSphere:
		return "Sphere"
	case KindCapsule:
		return "Capsule"
	case KindBoundingBox:
		return "BoundingBox"
	case KindOrientedBoundingBox:
		return "OrientedBoundingBox"
	case KindTriangle:
		return "Triangle"
	case KindConvexMesh:
		return "ConvexMesh"
	default:
		return "Unknown"
	}
}

// Volume is a convex collision shape.
//
// Every implementation keeps its primary fields exported and its derived
// state (center, bounding sphere radius, vertices) in a cache. Mutating a
// primary field does NOT refresh the cache: call Update once after a batch
// of mutations and before the volume is used in any query.
type Volume interface {
	Kind() ShapeKind

	// Center returns the cached center.
	Center() rl.Vector3

	// BoundingSphereRadius returns the cached radius of a sphere around
	// Center that encloses the whole volume.
	BoundingSphereRadius() float32

	// Update recomputes the derived cache from the primary fields.
	Update()

	Clone() Volume

	// ClosestPoint returns the point of the volume nearest to p. Spheres and
	// boxes return p itself when it is inside; capsules answer for their
	// core segment and meshes for their surface.
	ClosestPoint(p rl.Vector3) rl.Vector3

	ContainsPoint(p rl.Vector3) bool

	// DimensionOnAxis returns the length of the volume projected onto axis.
	DimensionOnAxis(axis rl.Vector3) float32

	// CollideWith tests this volume against other using the scratch context
	// c and writes the result into resp. The normal in resp points from
	// other toward this volume.
	CollideWith(c *Collider, other Volume, movement rl.Vector3, resp *CollisionResponse) bool
}

// TransformVolume sets dst to src transformed by m. Both must be of the same
// kind; it reports false and leaves dst untouched otherwise.
func TransformVolume(dst, src Volume, m rl.Matrix) bool {
	switch d := dst.(type) {
	case *Sphere:
		if s, ok := src.(*Sphere); ok {
			d.FromVolumeWithTransform(s, m)
			return true
		}
	case *Capsule:
		if s, ok := src.(*Capsule); ok {
			d.FromVolumeWithTransform(s, m)
			return true
		}
	case *BoundingBox:
		if s, ok := src.(*BoundingBox); ok {
			d.FromVolumeWithTransform(s, m)
			return true
		}
	case *OrientedBoundingBox:
		if s, ok := src.(*OrientedBoundingBox); ok {
			d.FromVolumeWithTransform(s, m)
			return true
		}
	case *Triangle:
		if s, ok := src.(*Triangle); ok {
			d.FromVolumeWithTransform(s, m)
			return true
		}
	case *ConvexMesh:
		if s, ok := src.(*ConvexMesh); ok {
			d.FromVolumeWithTransform(s, m)
			return true
		}
	}
	return false
}
