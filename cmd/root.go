package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gitlab-time-tracker/internal/config"
	"gitlab-time-tracker/internal/gitlab"
	"gitlab-time-tracker/internal/storage"
	"gitlab-time-tracker/internal/timer"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "gtt",
	Short: "GitLab time tracker: timer, /spend submission and reports",
	Long: `gtt tracks work time against GitLab issues. It records timer sessions,
submits tracked time as "/spend" quick-action notes, and reports time spent
per project, issue and day straight from GitLab's timelog API.
Configuration lives in ~/.gtt/config.json.`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log API requests")
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(issuesCmd)
	rootCmd.AddCommand(spendCmd)
	rootCmd.AddCommand(serveCmd)
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// newGitLabClient builds an API client from ~/.gtt/config.json.
func newGitLabClient(ctx context.Context, cfg config.Config) (*gitlab.Client, error) {
	if cfg.GitLab.Token == "" {
		return nil, errors.New("gitlab.token is not set; edit ~/.gtt/config.json")
	}
	return gitlab.NewClient(ctx, cfg.GitLab.URL, cfg.GitLab.Token, newLogger()), nil
}

// newTimerClient picks the timestamp service when one is configured and a
// local file store otherwise.
func newTimerClient(cfg config.Config) (timer.Client, error) {
	if cfg.Timer.ServerURL != "" {
		if cfg.Timer.ServiceToken == "" {
			return nil, errors.New("timer.service_token is not set; edit ~/.gtt/config.json")
		}
		return timer.NewRemote(cfg.Timer.ServerURL, cfg.Timer.ServiceToken), nil
	}
	base, err := config.BaseDir()
	if err != nil {
		return nil, err
	}
	return timer.NewLocal(storage.NewFile(filepath.Join(base, "timer.json"))), nil
}

// username resolves the reporting user: flag/config first, then the token's
// own user via the API.
func username(ctx context.Context, cfg config.Config, client *gitlab.Client) (string, error) {
	if cfg.GitLab.Username != "" {
		return cfg.GitLab.Username, nil
	}
	return client.CurrentUser(ctx)
}
