package physics

import (
	"collide3d/internal/vecmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sphere is a solid ball. Radius is its only shape parameter.
type Sphere struct {
	Position rl.Vector3
	Radius   float32

	center               rl.Vector3
	boundingSphereRadius float32
}

// NewSphere creates an updated sphere.
func NewSphere(center rl.Vector3, radius float32) *Sphere {
	s := &Sphere{Position: center, Radius: radius}
	s.Update()
	return s
}

func (s *Sphere) Kind() ShapeKind { return KindSphere }

func (s *Sphere) Center() rl.Vector3 { return s.center }

func (s *Sphere) BoundingSphereRadius() float32 { return s.boundingSphereRadius }

func (s *Sphere) Update() {
	s.center = s.Position
	s.boundingSphereRadius = s.Radius
}

func (s *Sphere) Clone() Volume {
	c := *s
	return &c
}

// FromVolumeWithTransform sets s to original transformed by m. The radius
// is scaled by the length of the transformed local X axis only, which is
// exact for uniform scale and an approximation otherwise.
func (s *Sphere) FromVolumeWithTransform(original *Sphere, m rl.Matrix) {
	s.Position = vecmath.TransformPoint(original.Position, m)
	s.Radius = original.Radius * vecmath.Length(vecmath.TransformDirection(vecmath.UnitX, m))
	s.Update()
}

func (s *Sphere) ClosestPoint(p rl.Vector3) rl.Vector3 {
	d := rl.Vector3Subtract(p, s.center)
	l := vecmath.Length(d)
	if l <= s.Radius {
		return p
	}
	out := s.center
	vecmath.AddScaled(&out, d, s.Radius/l)
	return out
}

func (s *Sphere) ContainsPoint(p rl.Vector3) bool {
	return vecmath.DistanceSquared(p, s.center) <= s.Radius*s.Radius
}

func (s *Sphere) DimensionOnAxis(axis rl.Vector3) float32 {
	return 2 * s.Radius * vecmath.Length(axis)
}

func (s *Sphere) CollideWith(c *Collider, other Volume, movement rl.Vector3, resp *CollisionResponse) bool {
	return c.Collide(s, other, movement, resp)
}
