package main

import (
	"fmt"

	"collide3d/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newRaycastCmd() *cobra.Command {
	var (
		origin, direction []float32
		maxDistance       float32
	)
	cmd := &cobra.Command{
		Use:   "raycast <scene>",
		Short: "Cast the scene's rays, or one given on the command line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, f, err := loadWorld(args[0])
			if err != nil {
				return err
			}
			rays := f.Rays
			if cmd.Flags().Changed("origin") || cmd.Flags().Changed("dir") {
				if len(origin) != 3 || len(direction) != 3 {
					return errors.New("--origin and --dir take three comma separated values")
				}
				rays = []scene.RayDef{{
					Name:        "ray",
					Origin:      [3]float32{origin[0], origin[1], origin[2]},
					Direction:   [3]float32{direction[0], direction[1], direction[2]},
					MaxDistance: maxDistance,
				}}
			}
			if len(rays) == 0 {
				return errors.Errorf("%s has no rays; pass --origin and --dir", args[0])
			}

			out := cmd.OutOrStdout()
			for _, r := range rays {
				o := vec3(r.Origin)
				body, hit, ok := w.Raycast(o, vec3(r.Direction), r.Distance())
				if !ok {
					fmt.Fprintf(out, "%s: miss\n", r.Name)
					continue
				}
				fmt.Fprintf(out, "%s: hit %s at %s normal %s distance %.4f\n",
					r.Name, body.Name, formatVec(hit.Point), formatVec(hit.Normal), hit.Distance)
			}
			return nil
		},
	}
	cmd.Flags().Float32SliceVar(&origin, "origin", nil, "ray origin x,y,z")
	cmd.Flags().Float32SliceVar(&direction, "dir", nil, "ray direction x,y,z")
	cmd.Flags().Float32Var(&maxDistance, "max", 0, "maximum distance (default 1000)")
	return cmd
}

func vec3(a [3]float32) rl.Vector3 {
	return rl.Vector3{X: a[0], Y: a[1], Z: a[2]}
}
