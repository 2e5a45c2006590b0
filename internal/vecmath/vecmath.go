// Package vecmath extends raylib's vector, matrix and quaternion types with
// the in-place helpers the collision code uses in its hot loops.
//
// Values are rl.Vector3 / rl.Matrix / rl.Quaternion. Functions that take a
// pointer mutate their first argument and never allocate.
package vecmath

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Unit axes.
var (
	UnitX = rl.Vector3{X: 1}
	UnitY = rl.Vector3{Y: 1}
	UnitZ = rl.Vector3{Z: 1}
)

// Set overwrites all three components of dst.
func Set(dst *rl.Vector3, x, y, z float32) {
	dst.X, dst.Y, dst.Z = x, y, z
}

// AddTo adds v to dst.
func AddTo(dst *rl.Vector3, v rl.Vector3) {
	dst.X += v.X
	dst.Y += v.Y
	dst.Z += v.Z
}

// SubFrom subtracts v from dst.
func SubFrom(dst *rl.Vector3, v rl.Vector3) {
	dst.X -= v.X
	dst.Y -= v.Y
	dst.Z -= v.Z
}

// ScaleBy multiplies every component of dst by s.
func ScaleBy(dst *rl.Vector3, s float32) {
	dst.X *= s
	dst.Y *= s
	dst.Z *= s
}

// AddScaled adds v*s to dst.
func AddScaled(dst *rl.Vector3, v rl.Vector3, s float32) {
	dst.X += v.X * s
	dst.Y += v.Y * s
	dst.Z += v.Z * s
}

// Component returns component i (0=X, 1=Y, 2=Z).
func Component(v rl.Vector3, i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// SetComponent sets component i (0=X, 1=Y, 2=Z) of dst.
func SetComponent(dst *rl.Vector3, i int, f float32) {
	switch i {
	case 0:
		dst.X = f
	case 1:
		dst.Y = f
	default:
		dst.Z = f
	}
}

// Dot is a shorthand for rl.Vector3DotProduct.
func Dot(a, b rl.Vector3) float32 {
	return rl.Vector3DotProduct(a, b)
}

// Cross is a shorthand for rl.Vector3CrossProduct.
func Cross(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3CrossProduct(a, b)
}

// LengthSquared returns |v|².
func LengthSquared(v rl.Vector3) float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns |v|.
func Length(v rl.Vector3) float32 {
	return math32.Sqrt(LengthSquared(v))
}

// DistanceSquared returns |a-b|².
func DistanceSquared(a, b rl.Vector3) float32 {
	return LengthSquared(rl.Vector3Subtract(a, b))
}

// Normalize returns v/|v|, or the zero vector when |v| is zero.
func Normalize(v rl.Vector3) rl.Vector3 {
	l := Length(v)
	if l == 0 {
		return rl.Vector3{}
	}
	return rl.Vector3Scale(v, 1/l)
}

// IsFinite reports whether no component is NaN or ±Inf.
func IsFinite(v rl.Vector3) bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// ApproxEqual compares componentwise with an absolute tolerance.
func ApproxEqual(a, b rl.Vector3, eps float32) bool {
	return math32.Abs(a.X-b.X) <= eps &&
		math32.Abs(a.Y-b.Y) <= eps &&
		math32.Abs(a.Z-b.Z) <= eps
}

// Min returns the componentwise minimum.
func Min(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: math32.Min(a.X, b.X), Y: math32.Min(a.Y, b.Y), Z: math32.Min(a.Z, b.Z)}
}

// Max returns the componentwise maximum.
func Max(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: math32.Max(a.X, b.X), Y: math32.Max(a.Y, b.Y), Z: math32.Max(a.Z, b.Z)}
}

// Abs returns |x|.
func Abs(x float32) float32 {
	return math32.Abs(x)
}

// Sqrt returns √x.
func Sqrt(x float32) float32 {
	return math32.Sqrt(x)
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Project returns the interval covered by points projected onto axis.
func Project(points []rl.Vector3, axis rl.Vector3) (min, max float32) {
	min = math32.MaxFloat32
	max = -math32.MaxFloat32
	for i := range points {
		d := Dot(points[i], axis)
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}
