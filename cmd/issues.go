package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gitlab-time-tracker/internal/config"
	"gitlab-time-tracker/internal/gitlab"
)

var issuesCmd = &cobra.Command{
	Use:   "issues <search>",
	Short: "Search issues across your projects",
	Long: `Searches issues in every project you are a member of, most recently
updated projects first. The printed id is what "gtt spend" expects.`,
	Args: cobra.ExactArgs(1),
	RunE: runIssues,
}

func runIssues(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

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

	issues, err := client.SearchIssues(ctx, args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if len(issues) == 0 {
		fmt.Println("No matching issues.")
		return nil
	}

	for _, issue := range issues {
		fmt.Printf("%s (%s)\n", gitlab.FormatTitle(issue.IID, issue.Title), issue.ProjectName)
		fmt.Printf("  url: %s\n", issue.WebURL)
		fmt.Printf("  id:  %s\n", issue.ID)
	}
	return nil
}
