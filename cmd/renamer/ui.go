package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"renamer/internal/config"
	"renamer/internal/preview"
	"renamer/internal/rename"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// palette is the CLI colour theme; set from config before any output
var palette = config.GetTheme("default")

// colorEnabled is false when output does not go to a terminal
var colorEnabled = isTerminal(os.Stdout)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func colorize(text string, color lipgloss.Color) string {
	if !colorEnabled {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func primaryText(text string) string  { return colorize(text, lipgloss.Color(palette["primary"])) }
func successText(text string) string  { return colorize(text, lipgloss.Color(palette["success"])) }
func warningText(text string) string  { return colorize(text, lipgloss.Color(palette["warning"])) }
func errorText(text string) string    { return colorize(text, lipgloss.Color(palette["error"])) }
func infoText(text string) string     { return colorize(text, lipgloss.Color(palette["info"])) }
func emphasisText(text string) string { return colorize(text, lipgloss.Color(palette["emphasis"])) }
func mutedText(text string) string    { return colorize(text, lipgloss.Color(palette["muted"])) }

// printPreview writes one line per file: "* old -> new" for changed files,
// the bare name for unchanged ones
func printPreview(w io.Writer, set preview.Set) {
	if set.Len() == 0 {
		fmt.Fprintln(w, mutedText("No files selected"))
		return
	}

	width := 0
	for _, e := range set.Entries {
		if len(e.OriginalName) > width {
			width = len(e.OriginalName)
		}
	}

	for _, e := range set.Entries {
		if !e.HasChanged {
			fmt.Fprintln(w, mutedText("  "+e.OriginalName))
			continue
		}
		pad := strings.Repeat(" ", width-len(e.OriginalName))
		fmt.Fprintf(w, "%s %s%s %s %s\n",
			emphasisText("*"), e.OriginalName, pad, primaryText("->"), emphasisText(e.NewName))
	}
	fmt.Fprintln(w, infoText(fmt.Sprintf("%d of %d files will be renamed", set.ChangedCount(), set.Len())))
}

// printOutcome writes the batch counts followed by every failure
func printOutcome(w io.Writer, o rename.Outcome, dryRun bool) {
	verb := "Renamed"
	if dryRun {
		verb = "Would rename"
	}
	summary := fmt.Sprintf("%s %d files", verb, o.SuccessCount)
	if !o.HasFailures() {
		fmt.Fprintln(w, successText(summary))
		return
	}
	fmt.Fprintln(w, warningText(fmt.Sprintf("%s, %d failed:", summary, o.FailureCount)))
	for _, e := range o.Errors {
		fmt.Fprintln(w, errorText("  ✗ "+e))
	}
}
