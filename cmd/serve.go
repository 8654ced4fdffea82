package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gitlab-time-tracker/internal/server"
)

var (
	servePort  int
	serveStore string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the timer session service",
	Long: `Runs the backend that holds the "timer started" timestamp per service
token, so timers survive browser reloads and follow you across machines.
Configured through GTT_* environment variables; flags override.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (overrides GTT_PORT)")
	serveCmd.Flags().StringVar(&serveStore, "store", "", "Session store: memory, file or redis (overrides GTT_STORE)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := server.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if serveStore != "" {
		cfg.Store = serveStore
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	store, err := cfg.OpenStore(cmd.Context())
	if err != nil {
		logger.Fatal("opening session store", zap.Error(err))
	}
	logger.Info("session store ready", zap.String("store", cfg.Store))

	if err := server.New(store, logger).Run(cfg.Port); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
	return nil
}
