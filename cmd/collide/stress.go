package main

import (
	"collide3d/internal/stress"

	"github.com/spf13/cobra"
)

func newStressCmd() *cobra.Command {
	var cfg stress.Config
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Time the narrow phase over random scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := stress.Run(cfg, cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().IntSliceVarP(&cfg.Counts, "counts", "n", stress.DefaultCounts, "volume counts to run")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", 42, "random seed")
	cmd.Flags().IntVarP(&cfg.Iterations, "frames", "f", 10, "timed passes per count")
	return cmd
}
