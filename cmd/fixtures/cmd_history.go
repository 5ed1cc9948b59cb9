package main

import (
	"fmt"

	"javafixtures/internal/programs"
	"javafixtures/internal/store"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var (
		program string
		limit   int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded verification runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cfg.History.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("History is disabled (history.enabled: false)."))
				return nil
			}
			hs, err := store.Open(cfg.History.DatabasePath)
			if err != nil {
				return err
			}
			defer hs.Close()

			var runs []store.Run
			if program != "" {
				p, err := programs.Lookup(program)
				if err != nil {
					return err
				}
				runs, err = hs.RunsForProgram(cmd.Context(), p.Name, limit)
				if err != nil {
					return err
				}
			} else if runs, err = hs.RecentRuns(cmd.Context(), limit); err != nil {
				return err
			}

			renderRuns(cmd.OutOrStdout(), runs)
			return nil
		},
	}
	cmd.Flags().StringVarP(&program, "program", "p", "", "Only show runs of this program")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}
