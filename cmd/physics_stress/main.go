// Stress test timing the narrow phase over random scenes of mixed volumes
package main

import (
	"fmt"
	"os"

	"collide3d/internal/logx"
	"collide3d/internal/stress"

	flag "github.com/spf13/pflag"
)

func main() {
	counts := flag.IntSliceP("counts", "n", stress.DefaultCounts, "volume counts to run")
	seed := flag.Int64("seed", 42, "random seed")
	frames := flag.IntP("frames", "f", 10, "timed passes per count")
	verbose := flag.BoolP("verbose", "v", false, "log at info level")
	flag.Parse()

	logx.SetLevel(logx.LevelFromFlags(false, *verbose, false))

	cfg := stress.Config{Counts: *counts, Seed: *seed, Iterations: *frames}
	if _, err := stress.Run(cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "physics_stress: %v\n", err)
		os.Exit(1)
	}
}
