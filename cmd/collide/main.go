// Command collide runs the narrow phase over scene files.
package main

import (
	"fmt"
	"os"

	"collide3d/internal/logx"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "collide: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		level          string
		verbose, quiet bool
	)
	root := &cobra.Command{
		Use:           "collide",
		Short:         "Narrow-phase collision checks for scene files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logx.SetOutput(cmd.ErrOrStderr())
			if level != "" {
				l, err := logx.ParseLevel(level)
				if err != nil {
					return err
				}
				logx.SetLevel(l)
				return nil
			}
			if verbose || quiet {
				logx.SetLevel(logx.LevelFromFlags(false, verbose, quiet))
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&level, "log-level", "", "log level (debug, info, warn, error); overrides -v and -q")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at info level")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log errors")

	root.AddCommand(newCheckCmd(), newRaycastCmd(), newStressCmd())
	return root
}
