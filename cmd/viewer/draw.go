package main

import (
	"log/slog"

	"collide3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func drawVolume(v physics.Volume, color rl.Color) {
	switch v := v.(type) {
	case *physics.Sphere:
		rl.DrawSphereWires(v.Center(), v.Radius, 8, 8, color)
	case *physics.Capsule:
		rl.DrawCapsuleWires(v.A, v.B, v.Radius, 8, 4, color)
	case *physics.BoundingBox:
		drawBoxEdges(v.Vertices(), color)
	case *physics.OrientedBoundingBox:
		drawBoxEdges(v.Vertices(), color)
	case *physics.Triangle:
		drawTriangle(v, color)
	case *physics.ConvexMesh:
		for _, t := range v.Triangles {
			drawTriangle(t, color)
		}
	}
}

// drawBoxEdges draws the 12 edges of a box whose vertex i has bit 0 set for
// +X, bit 1 for +Y and bit 2 for +Z: corners differing in one bit share an
// edge.
func drawBoxEdges(corners []rl.Vector3, color rl.Color) {
	for i := range corners {
		for bit := 1; bit < 8; bit <<= 1 {
			if i&bit == 0 {
				rl.DrawLine3D(corners[i], corners[i|bit], color)
			}
		}
	}
}

func drawTriangle(t *physics.Triangle, color rl.Color) {
	rl.DrawLine3D(t.V0, t.V1, color)
	rl.DrawLine3D(t.V1, t.V2, color)
	rl.DrawLine3D(t.V2, t.V0, color)
}

// eventLog logs contact transitions.
type eventLog struct {
	log *slog.Logger
}

func newEventLog(log *slog.Logger) *eventLog {
	return &eventLog{log: log}
}

func (e *eventLog) OnContactEnter(c *physics.Contact) {
	e.log.Info("Viewer: contact enter", "a", c.A.Name, "b", c.B.Name, "penetration", c.Penetration)
}

func (e *eventLog) OnContactStay(c *physics.Contact) {}

func (e *eventLog) OnContactExit(a, b *physics.Body) {
	e.log.Info("Viewer: contact exit", "a", a.Name, "b", b.Name)
}
