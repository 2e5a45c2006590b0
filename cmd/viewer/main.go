// Viewer draws a scene file with its live contacts. Right drag orbits,
// middle drag pans, the wheel zooms and Tab selects the next body.
package main

import (
	"fmt"
	"os"

	"collide3d/internal/camera"
	"collide3d/internal/logx"
	"collide3d/internal/physics"
	"collide3d/internal/scene"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	flag "github.com/spf13/pflag"
)

const (
	screenWidth  = 1280
	screenHeight = 720
)

type viewer struct {
	scene    *scene.File
	world    *physics.World
	camera   *camera.OrbitCamera
	contacts []physics.Contact

	selected   int
	offsetX    float32
	showPoints bool
	showNormal bool
}

func main() {
	verbose := flag.BoolP("verbose", "v", false, "log contact events")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: viewer [-v] <scene>")
		os.Exit(2)
	}
	logx.SetLevel(logx.LevelFromFlags(false, *verbose, false))

	f, err := scene.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "viewer: %v\n", err)
		os.Exit(1)
	}
	w, err := f.Build(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "viewer: %v\n", err)
		os.Exit(1)
	}
	w.SetHandler(newEventLog(logx.For("viewer")))

	v := &viewer{
		scene:      f,
		world:      w,
		camera:     camera.New(rl.Vector3{}, 15),
		showPoints: true,
		showNormal: true,
	}

	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(screenWidth, screenHeight, "collide3d viewer - "+flag.Arg(0))
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		v.update()
		v.draw()
	}
}

func (v *viewer) update() {
	v.camera.Update()
	bodies := v.world.Bodies()
	if len(bodies) > 0 && rl.IsKeyPressed(rl.KeyTab) {
		v.selected = (v.selected + 1) % len(bodies)
		v.offsetX = 0
	}
	if v.selected < len(v.scene.Bodies) {
		def := v.scene.Bodies[v.selected]
		def.Position[0] += v.offsetX
		v.world.SetTransform(bodies[v.selected].ID, def.Transform())
	}
	v.contacts = v.world.Step(v.world.AllPairs())
}

func (v *viewer) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(18, 18, 24, 255))

	rl.BeginMode3D(v.camera.GetRaylibCamera())
	rl.DrawGrid(20, 1)
	for i, b := range v.world.Bodies() {
		drawVolume(b.WorldVolume(), v.bodyColor(i, b))
	}
	for _, c := range v.contacts {
		for _, p := range c.HitPoints {
			if v.showPoints {
				rl.DrawSphere(p, 0.05, rl.Red)
			}
			if v.showNormal {
				rl.DrawLine3D(p, rl.Vector3Add(p, rl.Vector3Scale(c.Normal, 0.5+c.Penetration)), rl.Yellow)
			}
		}
	}
	rl.EndMode3D()

	v.drawPanel()
	rl.EndDrawing()
}

func (v *viewer) bodyColor(i int, b *physics.Body) rl.Color {
	if i == v.selected {
		return rl.SkyBlue
	}
	for _, c := range v.contacts {
		if c.A == b || c.B == b {
			return rl.Orange
		}
	}
	if b.Static {
		return rl.Gray
	}
	return rl.LightGray
}

func (v *viewer) drawPanel() {
	rl.DrawRectangleRec(rl.Rectangle{X: 10, Y: 10, Width: 240, Height: 150}, rl.NewColor(28, 28, 38, 230))
	rl.DrawText("Contacts", 20, 18, 16, rl.RayWhite)

	v.showPoints = gui.CheckBox(rl.Rectangle{X: 20, Y: 45, Width: 16, Height: 16}, "Hit points", v.showPoints)
	v.showNormal = gui.CheckBox(rl.Rectangle{X: 20, Y: 70, Width: 16, Height: 16}, "Normals", v.showNormal)

	name := "-"
	if bodies := v.world.Bodies(); v.selected < len(bodies) {
		name = bodies[v.selected].Name
	}
	rl.DrawText("Selected: "+name, 20, 95, 10, rl.RayWhite)
	v.offsetX = gui.Slider(rl.Rectangle{X: 70, Y: 115, Width: 120, Height: 16}, "Move X", fmt.Sprintf("%.2f", v.offsetX), v.offsetX, -5, 5)

	rl.DrawText(fmt.Sprintf("%d contacts", len(v.contacts)), 20, 140, 10, rl.RayWhite)
}
