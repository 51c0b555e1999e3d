package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/labelsync/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Label pull requests until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			once, _ := cmd.Flags().GetBool("once")
			return c.app.Run(cmd.Context(), app.RunOptions{
				Config: configOptions(cmd),
				Once:   once,
			})
		},
	}
	cmd.Flags().Bool("once", false, "Run a single pass and exit")
	return cmd
}

func (c *CLI) newInvalidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invalidate",
		Short: "Evict cached components of tickets updated since the last pass",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Invalidate(cmd.Context(), configOptions(cmd))
		},
	}
}
