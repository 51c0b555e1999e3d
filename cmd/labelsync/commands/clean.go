package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/labelsync/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the persisted caches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			labels, _ := cmd.Flags().GetBool("labels")
			components, _ := cmd.Flags().GetBool("components")

			return c.app.Clean(cmd.Context(), app.CleanOptions{
				Config:     configOptions(cmd),
				Labels:     labels,
				Components: components,
			})
		},
	}

	cmd.Flags().BoolP("labels", "l", false, "Clean the pull request label cache and cached GitHub responses")
	cmd.Flags().Bool("components", false, "Clean the ticket component cache and invalidation marker")

	return cmd
}
