package physics

import (
	"collide3d/internal/vecmath"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// boxEdges lists the 12 edges of a box whose vertex i has bit 0 set for the
// max X corner, bit 1 for max Y and bit 2 for max Z.
var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7}, // along X
	{0, 2}, {1, 3}, {4, 6}, {5, 7}, // along Y
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // along Z
}

// BoundingBox is an axis-aligned box. Min[i] <= Max[i] must hold on every
// axis.
type BoundingBox struct {
	Min rl.Vector3
	Max rl.Vector3

	center               rl.Vector3
	halfExtension        rl.Vector3
	boundingSphereRadius float32
	vertices             [8]rl.Vector3
}

// NewBoundingBox creates an updated box from its corners.
func NewBoundingBox(min, max rl.Vector3) *BoundingBox {
	b := &BoundingBox{Min: min, Max: max}
	b.Update()
	return b
}

// NewBoundingBoxFromCenter creates a box from a center point and full size.
func NewBoundingBoxFromCenter(center, size rl.Vector3) *BoundingBox {
	half := rl.Vector3Scale(size, 0.5)
	return NewBoundingBox(rl.Vector3Subtract(center, half), rl.Vector3Add(center, half))
}

func (b *BoundingBox) Kind() ShapeKind { return KindBoundingBox }

func (b *BoundingBox) Center() rl.Vector3 { return b.center }

func (b *BoundingBox) BoundingSphereRadius() float32 { return b.boundingSphereRadius }

// HalfExtension returns the cached half size.
func (b *BoundingBox) HalfExtension() rl.Vector3 { return b.halfExtension }

// Vertices returns the cached corners. The slice aliases the box.
func (b *BoundingBox) Vertices() []rl.Vector3 { return b.vertices[:] }

func (b *BoundingBox) Update() {
	b.center = rl.Vector3Scale(rl.Vector3Add(b.Min, b.Max), 0.5)
	b.halfExtension = rl.Vector3Scale(rl.Vector3Subtract(b.Max, b.Min), 0.5)
	b.boundingSphereRadius = vecmath.Length(b.halfExtension)
	for i := range b.vertices {
		v := b.Min
		if i&1 != 0 {
			v.X = b.Max.X
		}
		if i&2 != 0 {
			v.Y = b.Max.Y
		}
		if i&4 != 0 {
			v.Z = b.Max.Z
		}
		b.vertices[i] = v
	}
}

func (b *BoundingBox) Clone() Volume {
	c := *b
	return &c
}

// FromVolumeWithTransform sets b to the tightest axis-aligned box around
// original's corners transformed by m.
func (b *BoundingBox) FromVolumeWithTransform(original *BoundingBox, m rl.Matrix) {
	min := rl.Vector3{X: math32.MaxFloat32, Y: math32.MaxFloat32, Z: math32.MaxFloat32}
	max := rl.Vector3{X: -math32.MaxFloat32, Y: -math32.MaxFloat32, Z: -math32.MaxFloat32}
	for _, v := range original.vertices {
		v = vecmath.TransformPoint(v, m)
		min = vecmath.Min(min, v)
		max = vecmath.Max(max, v)
	}
	b.Min = min
	b.Max = max
	b.Update()
}

func (b *BoundingBox) ClosestPoint(p rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: vecmath.Clamp(p.X, b.Min.X, b.Max.X),
		Y: vecmath.Clamp(p.Y, b.Min.Y, b.Max.Y),
		Z: vecmath.Clamp(p.Z, b.Min.Z, b.Max.Z),
	}
}

// ContainsPoint is inclusive on every face.
func (b *BoundingBox) ContainsPoint(p rl.Vector3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

func (b *BoundingBox) DimensionOnAxis(axis rl.Vector3) float32 {
	size := rl.Vector3Subtract(b.Max, b.Min)
	return size.X*vecmath.Abs(axis.X) + size.Y*vecmath.Abs(axis.Y) + size.Z*vecmath.Abs(axis.Z)
}

func (b *BoundingBox) CollideWith(c *Collider, other Volume, movement rl.Vector3, resp *CollisionResponse) bool {
	return c.Collide(b, other, movement, resp)
}

// Intersects reports whether the two boxes overlap, touching included.
func (b *BoundingBox) Intersects(o *BoundingBox) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y &&
		b.Min.Z <= o.Max.Z && b.Max.Z >= o.Min.Z
}

// toOriented writes b as an oriented box into dst.
func (b *BoundingBox) toOriented(dst *OrientedBoundingBox) {
	dst.Position = b.center
	dst.Axes = [3]rl.Vector3{vecmath.UnitX, vecmath.UnitY, vecmath.UnitZ}
	dst.HalfExtension = b.halfExtension
	dst.Update()
}
