package physics

import (
	"collide3d/internal/vecmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OrientedBoundingBox is a box with its own orthonormal axes.
//
// Axes must stay orthonormal. Nothing in this package breaks that; a
// transform with shear applied from outside does.
type OrientedBoundingBox struct {
	Position      rl.Vector3    // World-space center
	Axes          [3]rl.Vector3 // Local X, Y, Z axes (rotated)
	HalfExtension rl.Vector3    // Half-extents along local axes

	center               rl.Vector3
	boundingSphereRadius float32
	vertices             [8]rl.Vector3
}

// NewOrientedBoundingBox creates an updated box.
func NewOrientedBoundingBox(center rl.Vector3, axes [3]rl.Vector3, halfExtension rl.Vector3) *OrientedBoundingBox {
	o := &OrientedBoundingBox{Position: center, Axes: axes, HalfExtension: halfExtension}
	o.Update()
	return o
}

// NewOrientedBoundingBoxFromEuler creates a box from center, full size and
// euler rotation in degrees (X, then Y, then Z).
func NewOrientedBoundingBoxFromEuler(center, size, rotation rl.Vector3) *OrientedBoundingBox {
	rotX := rl.MatrixRotateX(rotation.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(rotation.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(rotation.Z * rl.Deg2rad)
	rotMatrix := rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)

	axes := [3]rl.Vector3{
		vecmath.Normalize(vecmath.Axis(rotMatrix, 0)),
		vecmath.Normalize(vecmath.Axis(rotMatrix, 1)),
		vecmath.Normalize(vecmath.Axis(rotMatrix, 2)),
	}
	return NewOrientedBoundingBox(center, axes, rl.Vector3Scale(size, 0.5))
}

// NewOrientedBoundingBoxFromBoundingBox creates an axis-aligned oriented box
// covering b.
func NewOrientedBoundingBoxFromBoundingBox(b *BoundingBox) *OrientedBoundingBox {
	o := &OrientedBoundingBox{}
	b.toOriented(o)
	return o
}

func (o *OrientedBoundingBox) Kind() ShapeKind { return KindOrientedBoundingBox }

func (o *OrientedBoundingBox) Center() rl.Vector3 { return o.center }

func (o *OrientedBoundingBox) BoundingSphereRadius() float32 { return o.boundingSphereRadius }

// Vertices returns the cached corners. The slice aliases the box.
func (o *OrientedBoundingBox) Vertices() []rl.Vector3 { return o.vertices[:] }

func (o *OrientedBoundingBox) Update() {
	o.center = o.Position
	o.boundingSphereRadius = vecmath.Length(o.HalfExtension)
	ex := rl.Vector3Scale(o.Axes[0], o.HalfExtension.X)
	ey := rl.Vector3Scale(o.Axes[1], o.HalfExtension.Y)
	ez := rl.Vector3Scale(o.Axes[2], o.HalfExtension.Z)
	for i := range o.vertices {
		v := o.Position
		if i&1 != 0 {
			vecmath.AddTo(&v, ex)
		} else {
			vecmath.SubFrom(&v, ex)
		}
		if i&2 != 0 {
			vecmath.AddTo(&v, ey)
		} else {
			vecmath.SubFrom(&v, ey)
		}
		if i&4 != 0 {
			vecmath.AddTo(&v, ez)
		} else {
			vecmath.SubFrom(&v, ez)
		}
		o.vertices[i] = v
	}
}

func (o *OrientedBoundingBox) Clone() Volume {
	c := *o
	return &c
}

// FromVolumeWithTransform sets o to original transformed by m. Each axis is
// transformed without translation and re-normalized; the matching half
// extension is scaled by the axis length before normalization.
func (o *OrientedBoundingBox) FromVolumeWithTransform(original *OrientedBoundingBox, m rl.Matrix) {
	o.Position = vecmath.TransformPoint(original.Position, m)
	for i := 0; i < 3; i++ {
		axis := vecmath.TransformDirection(original.Axes[i], m)
		l := vecmath.Length(axis)
		if l > 0 {
			vecmath.ScaleBy(&axis, 1/l)
		}
		o.Axes[i] = axis
		vecmath.SetComponent(&o.HalfExtension, i, vecmath.Component(original.HalfExtension, i)*l)
	}
	o.Update()
}

// toLocal returns p relative to the center in the box's axis frame.
func (o *OrientedBoundingBox) toLocal(p rl.Vector3) rl.Vector3 {
	d := rl.Vector3Subtract(p, o.center)
	return rl.Vector3{
		X: vecmath.Dot(d, o.Axes[0]),
		Y: vecmath.Dot(d, o.Axes[1]),
		Z: vecmath.Dot(d, o.Axes[2]),
	}
}

// fromLocal is the inverse of toLocal.
func (o *OrientedBoundingBox) fromLocal(l rl.Vector3) rl.Vector3 {
	result := o.center
	vecmath.AddScaled(&result, o.Axes[0], l.X)
	vecmath.AddScaled(&result, o.Axes[1], l.Y)
	vecmath.AddScaled(&result, o.Axes[2], l.Z)
	return result
}

func (o *OrientedBoundingBox) ClosestPoint(p rl.Vector3) rl.Vector3 {
	local := o.toLocal(p)
	local.X = vecmath.Clamp(local.X, -o.HalfExtension.X, o.HalfExtension.X)
	local.Y = vecmath.Clamp(local.Y, -o.HalfExtension.Y, o.HalfExtension.Y)
	local.Z = vecmath.Clamp(local.Z, -o.HalfExtension.Z, o.HalfExtension.Z)
	return o.fromLocal(local)
}

func (o *OrientedBoundingBox) ContainsPoint(p rl.Vector3) bool {
	return o.containsPointTol(p, 0)
}

func (o *OrientedBoundingBox) containsPointTol(p rl.Vector3, tol float32) bool {
	local := o.toLocal(p)
	return vecmath.Abs(local.X) <= o.HalfExtension.X+tol &&
		vecmath.Abs(local.Y) <= o.HalfExtension.Y+tol &&
		vecmath.Abs(local.Z) <= o.HalfExtension.Z+tol
}

func (o *OrientedBoundingBox) DimensionOnAxis(axis rl.Vector3) float32 {
	return 2 * (o.HalfExtension.X*vecmath.Abs(vecmath.Dot(o.Axes[0], axis)) +
		o.HalfExtension.Y*vecmath.Abs(vecmath.Dot(o.Axes[1], axis)) +
		o.HalfExtension.Z*vecmath.Abs(vecmath.Dot(o.Axes[2], axis)))
}

func (o *OrientedBoundingBox) CollideWith(c *Collider, other Volume, movement rl.Vector3, resp *CollisionResponse) bool {
	return c.Collide(o, other, movement, resp)
}

// signedDistance returns the distance from p to the box surface, negative
// inside.
func (o *OrientedBoundingBox) signedDistance(p rl.Vector3) float32 {
	local := o.toLocal(p)
	qx := vecmath.Abs(local.X) - o.HalfExtension.X
	qy := vecmath.Abs(local.Y) - o.HalfExtension.Y
	qz := vecmath.Abs(local.Z) - o.HalfExtension.Z
	outside := vecmath.Length(rl.Vector3{X: max(qx, 0), Y: max(qy, 0), Z: max(qz, 0)})
	return outside + min(max(qx, max(qy, qz)), 0)
}
