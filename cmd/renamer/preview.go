package main

import (
	"fmt"

	"renamer/internal/errors"

	"github.com/spf13/cobra"
)

// NewPreviewCmd creates the preview command
func NewPreviewCmd() *cobra.Command {
	var flags transformFlags

	cmd := &cobra.Command{
		Use:   "preview -p PATTERN [-r REPLACEMENT] FILES...",
		Short: "Show what a transform would rename",
		Long: `Show the new name of every file without renaming anything. An invalid
pattern is reported and every file is listed unchanged.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := selectionFromArgs(args)
			if err != nil {
				return err
			}

			eng, cleanup, err := openEngine(false)
			if err != nil {
				return err
			}
			defer cleanup()

			eng.SetSelection(paths)
			set, err := eng.Preview(cmd.Context(), flags.spec(cmd))
			if err != nil && !errors.IsInvalidPattern(err) {
				return err
			}
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), errorText(err.Error()))
			}

			printPreview(cmd.OutOrStdout(), set)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
