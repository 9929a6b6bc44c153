package main

import (
	"fmt"
	"io"
	"os"

	"renamer/internal/config"
	"renamer/internal/engine"
	"renamer/internal/history"
	"renamer/internal/log"
	"renamer/internal/rename"
	"renamer/internal/selection"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
	verbose bool
	jsonLog bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "renamer",
		Short: "Batch rename files with a text or regex pattern",
		Long: `renamer previews and applies a find/replace transform over the names of
a set of files. Directories are never touched, only the final name component
changes, and nothing is overwritten: a rename whose target exists fails.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadConfigFile(configPath())
			if err != nil {
				return err
			}
			palette = config.GetTheme(cfg.Theme.Name)
			colorEnabled = isTerminal(cmd.OutOrStdout())
			return setupLogging(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/renamer/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "write logs as JSON")

	rootCmd.AddCommand(NewPreviewCmd())
	rootCmd.AddCommand(NewApplyCmd())
	rootCmd.AddCommand(NewHistoryCmd())
	rootCmd.AddCommand(NewTUICmd())
	rootCmd.AddCommand(NewSendCmd())
	rootCmd.AddCommand(NewConfigCmd())

	return rootCmd
}

// setupLogging applies the log section of the config and the global flags
func setupLogging(stderr io.Writer) error {
	opts := []log.Option{log.WithOutput(stderr)}
	if jsonLog || cfg.Log.Format == "json" {
		opts = append(opts, log.WithJSON())
	}
	if cfg.Log.File != "" {
		opts = append(opts, log.WithFile(cfg.Log.File))
	}
	log.Configure(opts...)

	if err := log.SetLevel(cfg.Log.Level); err != nil {
		return err
	}
	if verbose {
		log.SetDebug(true)
	}
	return nil
}

// openEngine wires the configured history backend, selection filter and
// executor into an engine. The returned func closes the history backend.
func openEngine(dryRun bool) (*engine.Engine, func(), error) {
	storage, closer, err := history.Open(cfg.History.Backend, cfg.HistoryPath())
	if err != nil {
		return nil, nil, err
	}
	store := history.NewStore(storage, history.WithCapacity(cfg.History.MaxEntries))

	filter, err := cfg.SelectionFilter()
	if err != nil {
		closer.Close()
		return nil, nil, err
	}

	eng := engine.New(store,
		engine.WithFilter(filter),
		engine.WithExecutor(rename.New(rename.WithDryRun(dryRun))),
	)
	cleanup := func() {
		if err := closer.Close(); err != nil {
			log.Warnf("closing history: %v", err)
		}
	}
	return eng, cleanup, nil
}

// selectionFromArgs makes the command line paths absolute, dropping duplicates
func selectionFromArgs(args []string) ([]string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("error getting current directory: %w", err)
	}
	return selection.Normalize(args, cwd), nil
}
