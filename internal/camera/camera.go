package camera

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OrbitCamera circles a target point. Yaw and Pitch are in degrees.
type OrbitCamera struct {
	Target   rl.Vector3
	Distance float32
	Yaw      float32
	Pitch    float32

	LookSpeed float32
	ZoomSpeed float32
	PanSpeed  float32

	MinDistance float32
	MaxDistance float32
}

func New(target rl.Vector3, distance float32) *OrbitCamera {
	return &OrbitCamera{
		Target:      target,
		Distance:    distance,
		Yaw:         -135.0,
		Pitch:       30.0,
		LookSpeed:   0.3,
		ZoomSpeed:   1.0, // Units per wheel step
		PanSpeed:    0.01,
		MinDistance: 1,
		MaxDistance: 500,
	}
}

// Update reads the mouse: right drag orbits, middle drag pans and the
// wheel zooms.
func (c *OrbitCamera) Update() {
	delta := rl.GetMouseDelta()
	switch {
	case rl.IsMouseButtonDown(rl.MouseButtonRight):
		c.Orbit(delta.X*c.LookSpeed, -delta.Y*c.LookSpeed)
	case rl.IsMouseButtonDown(rl.MouseButtonMiddle):
		c.Pan(-delta.X*c.PanSpeed*c.Distance, delta.Y*c.PanSpeed*c.Distance)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		c.Zoom(-wheel * c.ZoomSpeed)
	}
}

// Orbit rotates around the target. Pitch is clamped short of the poles.
func (c *OrbitCamera) Orbit(yaw, pitch float32) {
	c.Yaw += yaw
	c.Pitch += pitch

	// Clamp pitch
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}
}

// Zoom moves toward or away from the target.
func (c *OrbitCamera) Zoom(amount float32) {
	c.Distance += amount
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// Pan shifts the target in the view plane.
func (c *OrbitCamera) Pan(right, up float32) {
	forward := rl.Vector3Normalize(rl.Vector3Subtract(c.Target, c.Position()))
	r := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, rl.Vector3{Y: 1}))
	u := rl.Vector3CrossProduct(r, forward)
	c.Target = rl.Vector3Add(c.Target, rl.Vector3Add(rl.Vector3Scale(r, right), rl.Vector3Scale(u, up)))
}

// Position returns the eye position.
func (c *OrbitCamera) Position() rl.Vector3 {
	yawRad := c.Yaw * rl.Deg2rad
	pitchRad := c.Pitch * rl.Deg2rad
	return rl.Vector3{
		X: c.Target.X + c.Distance*math32.Cos(yawRad)*math32.Cos(pitchRad),
		Y: c.Target.Y + c.Distance*math32.Sin(pitchRad),
		Z: c.Target.Z + c.Distance*math32.Sin(yawRad)*math32.Cos(pitchRad),
	}
}

func (c *OrbitCamera) GetRaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position(),
		Target:     c.Target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}
