package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"nmjcat/internal/config"
	"nmjcat/internal/logging"
	"nmjcat/internal/nmjsync"
	"nmjcat/internal/provider"
	"nmjcat/internal/provider/tmdb"
	"nmjcat/internal/store"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	var configFlag string
	var cleanNames bool
	var logLevel string
	var logFormat string

	rootCmd := &cobra.Command{
		Use:           "nmjcat ROOT",
		Short:         "Synchronize a media directory with its NMJ jukebox catalog",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd.Context(), args[0], configFlag, cleanNames, logLevel, logFormat)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().BoolVarP(&cleanNames, "clean-names", "n", false, "Rename video files to their cleaned titles before scanning")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Override the configured log level")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "", "Override the configured log format (console or json)")

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newConfigCommand(&configFlag))

	return rootCmd
}

// runSync is best effort end to end: once the run starts, failures are
// logged and reflected in the summary rather than aborting, and the run
// lock is always released on the way out.
func runSync(parent context.Context, root, configPath string, cleanNames bool, logLevel, logFormat string) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		return err
	}

	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("scan root %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("scan root %s is not a directory", root)
	}

	st, err := store.Open(root, cfg.Library.DeviceName, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	movies, tv := newProviders(cfg, logger)
	updater := nmjsync.New(root, st, movies, tv, logger)

	if cleanNames {
		if err := updater.CleanNames(); err != nil {
			logger.Error("filename cleanup failed", "error", err)
		}
	}

	summary, err := updater.Run(ctx)
	if err != nil {
		logger.Error("synchronization failed", "error", err)
	}
	printSummary(summary)
	return nil
}

// newProviders builds the metadata providers the configuration allows. No
// API key means no providers; every file then gets default metadata.
func newProviders(cfg *config.Config, logger *slog.Logger) (provider.MovieProvider, provider.TVProvider) {
	if cfg.TMDB.APIKey == "" {
		logger.Warn("no tmdb api key configured, cataloguing with default metadata only")
		return nil, nil
	}
	movies, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
	if err != nil {
		logger.Error("tmdb client init failed", "error", err)
		return nil, nil
	}
	tv, err := tmdb.NewTV(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
	if err != nil {
		logger.Error("tmdb tv client init failed", "error", err)
		return movies, nil
	}
	return movies, tv
}

func printSummary(summary nmjsync.Summary) {
	writer := table.NewWriter()
	writer.SetOutputMirror(os.Stdout)
	if isatty.IsTerminal(os.Stdout.Fd()) {
		writer.SetStyle(table.StyleRounded)
	} else {
		writer.SetStyle(table.StyleDefault)
	}
	writer.AppendHeader(table.Row{"Found", "Processed", "Failed", "Cleaned"})
	writer.AppendRow(table.Row{summary.Found, summary.Processed, summary.Failed, summary.Cleaned})
	writer.Render()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the nmjcat version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "nmjcat", version)
		},
	}
}

func newConfigCommand(configFlag *string) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the nmjcat configuration",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a sample configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := *configFlag
			if path == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				path = defaultPath
			}
			if err := config.WriteSample(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			return nil
		},
	})
	return configCmd
}
