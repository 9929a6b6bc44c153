package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"renamer/internal/engine"
	"renamer/internal/errors"

	"github.com/spf13/cobra"
)

// errRenameFailures makes the process exit non-zero after the outcome,
// which already lists every failure, has been printed
var errRenameFailures = errors.New("some files could not be renamed")

// NewApplyCmd creates the apply command
func NewApplyCmd() *cobra.Command {
	var (
		flags  transformFlags
		dryRun bool
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "apply -p PATTERN [-r REPLACEMENT] FILES...",
		Short: "Preview a transform, confirm and rename the files",
		Long: `Preview the transform, ask for confirmation and rename every changed file.
Files whose target already exists are skipped and reported; the exit code is 1
when any rename failed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := selectionFromArgs(args)
			if err != nil {
				return err
			}

			eng, cleanup, err := openEngine(dryRun)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			eng.SetSelection(paths)
			set, err := eng.Preview(cmd.Context(), flags.spec(cmd))
			if err != nil {
				return err
			}
			printPreview(out, set)

			if set.ChangedCount() == 0 {
				fmt.Fprintln(out, infoText("Nothing to rename"))
				return nil
			}
			if !yes && !dryRun && !confirm(cmd.InOrStdin(), out, fmt.Sprintf("Rename %d files?", set.ChangedCount())) {
				fmt.Fprintln(out, warningText("Operation cancelled"))
				return nil
			}

			outcome, err := eng.Execute(cmd.Context())
			if errors.Is(err, engine.ErrNothingToDo) {
				fmt.Fprintln(out, infoText("Nothing to rename"))
				return nil
			}
			if err != nil {
				return err
			}

			printOutcome(out, outcome, dryRun)
			if outcome.HasFailures() {
				return errRenameFailures
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be renamed without renaming")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// confirm asks a yes/no question on in; anything but y/yes is a no
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s %s ", primaryText(prompt), mutedText("[y/N]"))
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
