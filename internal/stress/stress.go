// Package stress times the narrow phase over random scenes of mixed
// volumes.
package stress

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"collide3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
)

// DefaultCounts are the volume counts run when Config.Counts is empty.
var DefaultCounts = []int{100, 250, 500, 1000, 2000}

type Config struct {
	Counts     []int
	Seed       int64
	Iterations int
	Tolerances physics.Tolerances
}

// Result is the timing of one volume count.
type Result struct {
	Count int
	// Candidates is the number of pairs whose bounding spheres overlap.
	Candidates int
	// Contacts is the number of pairs the narrow phase reported.
	Contacts  int
	HitPoints int
	// PerStep is the average time of one full pass over all pairs.
	PerStep time.Duration
}

// Run generates a scene per count and times Collider.Collide over every
// pair. Results are printed to w as they complete, when w is not nil.
func Run(cfg Config, w io.Writer) ([]Result, error) {
	if cfg.Iterations <= 0 {
		cfg.Iterations = 10
	}
	counts := cfg.Counts
	if len(counts) == 0 {
		counts = DefaultCounts
	}

	results := make([]Result, 0, len(counts))
	for _, count := range counts {
		if count < 2 {
			return results, errors.Errorf("volume count must be at least 2, got %d", count)
		}
		r := runCount(cfg, count)
		if w != nil {
			fmt.Fprintf(w, "%5d volumes: %10v per step | %6d candidates | %6d contacts | %7d hit points\n",
				r.Count, r.PerStep.Round(time.Microsecond), r.Candidates, r.Contacts, r.HitPoints)
		}
		results = append(results, r)
	}
	return results, nil
}

func runCount(cfg Config, count int) Result {
	rng := rand.New(rand.NewSource(cfg.Seed)) // Consistent results
	volumes := RandomVolumes(rng, count)
	c := physics.NewCollider(cfg.Tolerances, nil)
	resp := physics.NewCollisionResponse()

	r := Result{Count: count}
	for i := 0; i < len(volumes); i++ {
		for j := i + 1; j < len(volumes); j++ {
			d := rl.Vector3Distance(volumes[i].Center(), volumes[j].Center())
			if d <= volumes[i].BoundingSphereRadius()+volumes[j].BoundingSphereRadius() {
				r.Candidates++
			}
		}
	}

	// Warm up
	pass(c, volumes, resp)

	start := time.Now()
	for iter := 0; iter < cfg.Iterations; iter++ {
		r.Contacts, r.HitPoints = pass(c, volumes, resp)
	}
	r.PerStep = time.Since(start) / time.Duration(cfg.Iterations)
	return r
}

// pass runs the naive O(n^2) loop over all pairs.
func pass(c *physics.Collider, volumes []physics.Volume, resp *physics.CollisionResponse) (contacts, hitPoints int) {
	for i := 0; i < len(volumes); i++ {
		for j := i + 1; j < len(volumes); j++ {
			if c.Collide(volumes[i], volumes[j], rl.Vector3{}, resp) {
				contacts++
				hitPoints += resp.HitPointCount()
			}
		}
	}
	return contacts, hitPoints
}

// RandomVolumes spawns count volumes of every kind in a cube whose size
// scales with count to keep density reasonable.
func RandomVolumes(rng *rand.Rand, count int) []physics.Volume {
	spawnSize := float32(20.0) + float32(count)/25.0
	volumes := make([]physics.Volume, count)
	for i := range volumes {
		center := rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: rng.Float32()*spawnSize - spawnSize/2,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}
		size := 0.5 + rng.Float32() // 0.5 to 1.5
		rotation := rl.Vector3{X: rng.Float32() * 360, Y: rng.Float32() * 360, Z: rng.Float32() * 360}

		switch physics.ShapeKind(i % int(physics.NumShapeKinds)) {
		case physics.KindSphere:
			volumes[i] = physics.NewSphere(center, size/2)
		case physics.KindCapsule:
			half := rl.Vector3{Y: size / 2}
			volumes[i] = physics.NewCapsule(rl.Vector3Subtract(center, half), rl.Vector3Add(center, half), size/4)
		case physics.KindBoundingBox:
			half := rl.Vector3{X: size / 2, Y: size / 2, Z: size / 2}
			volumes[i] = physics.NewBoundingBox(rl.Vector3Subtract(center, half), rl.Vector3Add(center, half))
		case physics.KindOrientedBoundingBox:
			volumes[i] = physics.NewOrientedBoundingBoxFromEuler(center, rl.Vector3{X: size, Y: size / 2, Z: size}, rotation)
		case physics.KindTriangle:
			volumes[i] = physics.NewTriangle(
				rl.Vector3Add(center, rl.Vector3{X: -size}),
				rl.Vector3Add(center, rl.Vector3{X: size}),
				rl.Vector3Add(center, rl.Vector3{Z: size}))
		default:
			volumes[i] = tetrahedron(center, size)
		}
	}
	return volumes
}

func tetrahedron(center rl.Vector3, size float32) *physics.ConvexMesh {
	vertices := []rl.Vector3{
		rl.Vector3Add(center, rl.Vector3{X: size, Y: size, Z: size}),
		rl.Vector3Add(center, rl.Vector3{X: size, Y: -size, Z: -size}),
		rl.Vector3Add(center, rl.Vector3{X: -size, Y: size, Z: -size}),
		rl.Vector3Add(center, rl.Vector3{X: -size, Y: -size, Z: size}),
	}
	return physics.NewConvexMeshFromVertices(vertices, []int{0, 1, 2, 0, 3, 1, 0, 2, 3, 1, 3, 2})
}
