package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently applied transforms, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, cleanup, err := openEngine(false)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			entries := eng.History()
			if len(entries) == 0 {
				fmt.Fprintln(out, mutedText("No transforms applied yet"))
				return nil
			}
			if limit > 0 && limit < len(entries) {
				entries = entries[:limit]
			}
			for i, h := range entries {
				fmt.Fprintf(out, "%3d  %s  %s\n", i+1, h.Spec().String(), mutedText(humanize.Time(h.Timestamp)))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most N entries")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every history entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, cleanup, err := openEngine(false)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := eng.ClearHistory(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successText("History cleared"))
			return nil
		},
	})

	return cmd
}
