package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"gitlab-time-tracker/internal/config"
	"gitlab-time-tracker/internal/timeutil"
)

var spendSummary string

var spendCmd = &cobra.Command{
	Use:   "spend <issue-id> <duration>",
	Short: "Log time on an issue as a /spend note",
	Long: `Submits a "/spend" quick-action note against an issue, identified by its
global id (see "gtt issues"). Durations use Go syntax, e.g. 1h30m; a negative
duration such as -30m removes previously logged time.`,
	Args: cobra.ExactArgs(2),
	RunE: runSpend,
}

func init() {
	spendCmd.Flags().StringVar(&spendSummary, "summary", "", "Note text below the quick action")
}

func runSpend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	issueID := args[0]

	if !strings.HasPrefix(issueID, "gid://") {
		fmt.Fprintf(os.Stderr, "%q is not a global issue id; find it with: gtt issues <search>\n", issueID)
		os.Exit(2)
	}

	duration, err := time.ParseDuration(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid duration %q: %v\n", args[1], err)
		os.Exit(2)
	}
	if duration == 0 {
		fmt.Fprintln(os.Stderr, "duration must be non-zero")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	client, err := newGitLabClient(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	body := timeutil.SpendNote(duration.Milliseconds(), spendSummary)
	if err := client.AddSpentTime(ctx, issueID, body); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	verb := "Logged"
	if duration < 0 {
		verb = "Removed"
	}
	fmt.Printf("%s %s on %s\n", verb, timeutil.FormatDuration(int64(duration.Seconds())), issueID)
	return nil
}
