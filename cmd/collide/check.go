package main

import (
	"fmt"
	"io"

	"collide3d/internal/logx"
	"collide3d/internal/physics"
	"collide3d/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var showPoints bool
	cmd := &cobra.Command{
		Use:   "check <scene>",
		Short: "Test every body pair once and print the contacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, _, err := loadWorld(args[0])
			if err != nil {
				return err
			}
			contacts := w.Step(w.AllPairs())
			printContacts(cmd.OutOrStdout(), contacts, showPoints)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&showPoints, "points", "p", false, "print every hit point")
	return cmd
}

func loadWorld(path string) (*physics.World, *scene.File, error) {
	f, err := scene.Load(path)
	if err != nil {
		return nil, nil, err
	}
	w, err := f.Build(logx.For("physics"))
	if err != nil {
		return nil, nil, err
	}
	return w, f, nil
}

func printContacts(out io.Writer, contacts []physics.Contact, showPoints bool) {
	if len(contacts) == 0 {
		fmt.Fprintln(out, "no contacts")
		return
	}
	for _, c := range contacts {
		fmt.Fprintf(out, "%s <-> %s: normal %s penetration %.4f hit points %d\n",
			c.A.Name, c.B.Name, formatVec(c.Normal), c.Penetration, len(c.HitPoints))
		if !showPoints {
			continue
		}
		for _, p := range c.HitPoints {
			fmt.Fprintf(out, "    %s\n", formatVec(p))
		}
	}
}

func formatVec(v rl.Vector3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", unsigned(v.X), unsigned(v.Y), unsigned(v.Z))
}

// unsigned maps values that print as -0.000 to 0.
func unsigned(f float32) float32 {
	if f > -0.0005 && f < 0.0005 {
		return 0
	}
	return f
}
