package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"renamer/internal/errors"
	"renamer/internal/inbox"
	"renamer/internal/log"
	"renamer/internal/tui"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// NewTUICmd creates the tui command
func NewTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [FILES...]",
		Short: "Open the interactive rename screen",
		Long: `Open the interactive rename screen on FILES. Only one screen runs at a time:
when another is already open, FILES are handed to it instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := selectionFromArgs(args)
			if err != nil {
				return err
			}

			dir := cfg.InboxDir()
			lock := inbox.NewLock(dir)
			if err := lock.Acquire(); err != nil {
				if errors.Is(err, inbox.ErrLocked) && len(paths) > 0 {
					return forward(cmd, paths)
				}
				return err
			}
			defer lock.Release()

			// the screen owns the terminal; logs go to a file
			if err := redirectLogs(); err != nil {
				return err
			}

			eng, cleanup, err := openEngine(false)
			if err != nil {
				return err
			}
			defer cleanup()
			eng.SetSelection(paths)

			ctx := cmd.Context()
			opts := []tui.Option{
				tui.WithContext(ctx),
				tui.WithTheme(cfg.Theme.Name),
				tui.WithToggles(cfg.Defaults.Regex, cfg.Defaults.CaseInsensitive),
			}

			if cfg.Inbox.Enabled {
				watcher, err := inbox.NewWatcher(dir)
				if err != nil {
					return err
				}
				if err := watcher.Start(); err != nil {
					return err
				}
				defer watcher.Stop()
				opts = append(opts, tui.WithSelections(eng.Subscribe(ctx, watcher.Selections())))
			}

			p := tea.NewProgram(tui.New(eng, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
}

// redirectLogs sends log output to the configured log file, or to
// $XDG_STATE_HOME/renamer/renamer.log
func redirectLogs() error {
	path := cfg.Log.File
	if path == "" {
		path = filepath.Join(xdg.StateHome, "renamer", "renamer.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	opts := []log.Option{log.WithOutput(io.Discard), log.WithFile(path)}
	if jsonLog || cfg.Log.Format == "json" {
		opts = append(opts, log.WithJSON())
	}
	log.Configure(opts...)
	return nil
}
