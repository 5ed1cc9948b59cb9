package main

import (
	"javafixtures/internal/programs"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered fixture programs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderPrograms(cmd.OutOrStdout(), programs.All(), func(p *programs.Program) programs.Bounds {
				if b, ok := cfg.BoundsFor(p.Name); ok {
					return b
				}
				return p.Defaults
			})
			return nil
		},
	}
}
