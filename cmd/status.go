package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"gitlab-time-tracker/internal/config"
	"gitlab-time-tracker/internal/timer"
	"gitlab-time-tracker/internal/timeutil"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current timer status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	client, err := newTimerClient(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	started, err := client.Current(cmd.Context())
	if errors.Is(err, timer.ErrNotRunning) {
		fmt.Println("No active timer.")
		return nil
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	elapsed := int64(time.Since(started).Seconds())
	fmt.Println("Running:")
	fmt.Printf("  Since: %s\n", started.Format("15:04"))
	fmt.Printf("  Elapsed: %s\n", timeutil.FormatDurationHHMMSS(elapsed))
	return nil
}
