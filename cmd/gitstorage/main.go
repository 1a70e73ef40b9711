package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/odvcencio/gitstorage/internal/config"
	"github.com/odvcencio/gitstorage/pkg/repo"
	"github.com/odvcencio/gitstorage/pkg/storage"
	"github.com/spf13/cobra"
)

const version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gitstorage",
		Short:         "Versioned file storage with commit history",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringP("repo", "C", ".", "repository directory (env GITSTORAGE_REPO)")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("log-format", config.LogFormatText, "log format: text or json")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newSaveCmd())
	root.AddCommand(newRmCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newCommitCmd())
	root.AddCommand(newLogCmd())
	root.AddCommand(newChangelogCmd())
	root.AddCommand(newReflogCmd())
	root.AddCommand(newDiffCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newLsCmd())
	root.AddCommand(newStatCmd())
	root.AddCommand(newVerifyCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gitstorage %s\n", version)
		},
	}
}

// loadSettings resolves settings for cmd and builds the logger on its
// error stream.
func loadSettings(cmd *cobra.Command) (*config.Settings, *slog.Logger, error) {
	settings, err := config.LoadSettingsWithFlags(cmd.Flags())
	if err != nil {
		return nil, nil, fmt.Errorf("load settings: %w", err)
	}
	if err := config.ValidateSettings(settings); err != nil {
		return nil, nil, err
	}
	logger, err := config.NewLogger(cmd.ErrOrStderr(), settings.Log)
	if err != nil {
		return nil, nil, err
	}
	config.LogWithLogger(settings, logger)
	return settings, logger, nil
}

// openStorage opens the repository named by --repo.
func openStorage(cmd *cobra.Command) (*storage.Storage, *config.Settings, error) {
	settings, logger, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}
	st, err := storage.Open(settings.Repo, repo.Options{Logger: logger})
	if err != nil {
		return nil, nil, err
	}
	return st, settings, nil
}

func shortHash(h string) string {
	if len(h) > 8 {
		return h[:8]
	}
	return h
}
