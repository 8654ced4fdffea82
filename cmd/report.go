package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"gitlab-time-tracker/internal/config"
	"gitlab-time-tracker/internal/gitlab"
	"gitlab-time-tracker/internal/report"
	"gitlab-time-tracker/internal/timeutil"
)

var (
	reportFrom   string
	reportTo     string
	reportBy     string
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show time spent per project, issue and day",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "Range start, YYYY-MM-DD (default: 7 days ago)")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "Range end (exclusive), YYYY-MM-DD (default: tomorrow)")
	reportCmd.Flags().StringVar(&reportBy, "by", "all", "Series: project, issue, day or all")
	reportCmd.Flags().StringVar(&reportFormat, "format", "table", "Output format: table, csv, json")
}

// reportRange applies the dashboard default of "last week through tomorrow".
func reportRange(now time.Time) (time.Time, time.Time, error) {
	from := timeutil.StartOfDay(now).AddDate(0, 0, -7)
	to := timeutil.StartOfDay(now).AddDate(0, 0, 1)

	var err error
	if reportFrom != "" {
		from, err = time.ParseInLocation("2006-01-02", reportFrom, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date: %w", err)
		}
	}
	if reportTo != "" {
		to, err = time.ParseInLocation("2006-01-02", reportTo, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to date: %w", err)
		}
	}
	if !from.Before(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("--from must be before --to")
	}
	return from, to, nil
}

// projectIDs collects the distinct project global IDs the timelogs refer to,
// in order of first appearance.
func projectIDs(logs []gitlab.Timelog) []gitlab.ProjectID {
	var ids []gitlab.ProjectID
	seen := map[gitlab.ProjectID]bool{}
	for _, log := range logs {
		if log.Issue == nil {
			continue
		}
		id := gitlab.NewProjectID(log.Issue.ProjectID)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	from, to, err := reportRange(time.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
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

	user, err := username(ctx, cfg, client)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logs, err := client.Timelogs(ctx, user, from, to)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	projects, err := client.Projects(ctx, projectIDs(logs))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	keep := report.ByUser(user)
	opts := report.Options{
		Palette:  cfg.Report.Palette,
		MinValue: cfg.Report.MinSeconds * 1000,
	}

	series := map[string][]report.Entry{}
	switch reportBy {
	case "project":
		series["projects"] = report.ByProject(projects, logs, keep, opts)
	case "issue":
		series["issues"] = report.ByIssue(logs, keep, opts)
	case "day":
		series["days"] = report.ByDay(logs, keep, report.DateRange{From: from, To: to}, opts)
	case "all":
		series["projects"] = report.ByProject(projects, logs, keep, opts)
		series["issues"] = report.ByIssue(logs, keep, opts)
		series["days"] = report.ByDay(logs, keep, report.DateRange{From: from, To: to}, opts)
	default:
		fmt.Fprintf(os.Stderr, "unknown --by value %q (expected project, issue, day or all)\n", reportBy)
		os.Exit(2)
	}

	switch reportFormat {
	case "json":
		data, err := json.MarshalIndent(series, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "error encoding JSON:", err)
			os.Exit(2)
		}
		fmt.Println(string(data))
	case "csv":
		printSeriesCSV(series)
	default: // table
		fmt.Printf("%s to %s (user %s)\n\n", from.Format("2006-01-02"), to.Format("2006-01-02"), user)
		for _, name := range []string{"projects", "issues", "days"} {
			if entries, ok := series[name]; ok {
				printSeriesTable(name, entries)
			}
		}
	}

	return nil
}

func printSeriesTable(title string, entries []report.Entry) {
	fmt.Printf("By %s\n", title)
	fmt.Println("--------------------------------")
	var total int64
	for _, e := range entries {
		fmt.Printf("%-22s%s\n", e.Title, timeutil.FormatDuration(e.Value/1000))
		total += e.Value
	}
	fmt.Println("--------------------------------")
	fmt.Printf("%-22s%s\n\n", "Total", timeutil.FormatDuration(total/1000))
}

func printSeriesCSV(series map[string][]report.Entry) {
	fmt.Println("series,title,duration_minutes,url")
	for _, name := range []string{"projects", "issues", "days"} {
		for _, e := range series[name] {
			fmt.Printf("%s,%s,%d,%s\n",
				name,
				csvEscape(e.Title),
				e.Value/60_000,
				csvEscape(e.URL),
			)
		}
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	needsQuote := false
	for _, c := range s {
		if c == ',' || c == '"' || c == '\n' || c == '\r' {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return s
	}
	// Escape internal double quotes by doubling them.
	escaped := ""
	for _, c := range s {
		if c == '"' {
			escaped += "\""
		}
		escaped += string(c)
	}
	return `"` + escaped + `"`
}
