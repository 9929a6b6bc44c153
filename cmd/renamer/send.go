package main

import (
	"fmt"

	"renamer/internal/inbox"

	"github.com/spf13/cobra"
)

// NewSendCmd creates the send command
func NewSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send FILES...",
		Short: "Hand files to the running renamer TUI",
		Long: `Replace the selection of the running renamer TUI with FILES. When no TUI is
running the selection waits in the inbox and is picked up by the next one.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := selectionFromArgs(args)
			if err != nil {
				return err
			}
			return forward(cmd, paths)
		},
	}
}

func forward(cmd *cobra.Command, paths []string) error {
	dir := cfg.InboxDir()
	msg, err := inbox.Send(dir, paths)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if pid, ok := inbox.Running(dir); ok {
		fmt.Fprintln(out, successText(fmt.Sprintf("Sent %d files to renamer (pid %d)", len(msg.Paths), pid)))
		return nil
	}
	fmt.Fprintln(out, warningText(fmt.Sprintf("No renamer TUI is running; %d files queued in %s", len(msg.Paths), dir)))
	return nil
}
