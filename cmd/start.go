package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gitlab-time-tracker/internal/config"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the work timer",
	Args:  cobra.NoArgs,
	RunE:  runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
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

	started, err := client.Start(cmd.Context())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("Timer started at %s\n", started.Format("15:04:05"))
	return nil
}
