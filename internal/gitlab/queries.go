package gitlab

import (
	"context"
	"fmt"
	"time"
)

// Timelog is one unit of logged work time, as returned by the timelogs
// connection. It is never mutated locally. Issue is nil when the timelog is
// not linked to a resolvable issue.
type Timelog struct {
	SpentAt   time.Time `json:"spentAt"`
	TimeSpent int64     `json:"timeSpent"` // seconds; negative for removed time
	User      struct {
		Username string `json:"username"`
	} `json:"user"`
	Issue *IssueRef `json:"issue"`
}

// IssueRef identifies the issue a timelog belongs to.
type IssueRef struct {
	ID        string `json:"id"`
	IID       string `json:"iid"`
	Title     string `json:"title"`
	WebURL    string `json:"webUrl"`
	ProjectID int64  `json:"projectId"`
}

// Project is a GitLab project, keyed by its global ID.
type Project struct {
	ID   ProjectID `json:"id"`
	Name string    `json:"name"`
}

// Issue is a search result from the membership-project issue search,
// annotated with the name of the project it belongs to.
type Issue struct {
	ID          string `json:"id"`
	IID         string `json:"iid"`
	Title       string `json:"title"`
	WebURL      string `json:"webUrl"`
	ProjectName string `json:"-"`
}

// FormatTitle renders the chart/listing label for an issue, e.g. "#42: Fix thing".
func FormatTitle(iid, title string) string {
	return fmt.Sprintf("#%s: %s", iid, title)
}

const queryTimelogs = `
query GetTimelogs($username: String, $startDate: Time, $endDate: Time, $after: String) {
  timelogs(username: $username, startDate: $startDate, endDate: $endDate, after: $after) {
    pageInfo {
      hasNextPage
      endCursor
    }
    nodes {
      spentAt
      timeSpent
      user {
        username
      }
      issue {
        iid
        id
        webUrl
        title
        projectId
      }
    }
  }
}`

const queryProjects = `
query GetProjects($ids: [ID!], $after: String) {
  projects(ids: $ids, after: $after) {
    pageInfo {
      hasNextPage
      endCursor
    }
    nodes {
      name
      id
    }
  }
}`

const queryIssueSearch = `
query SearchIssues($search: String, $after: String) {
  projects(membership: true, sort: "updated_desc", after: $after) {
    pageInfo {
      hasNextPage
      endCursor
    }
    nodes {
      name
      issues(search: $search) {
        nodes {
          title
          iid
          id
          webUrl
        }
      }
    }
  }
}`

const queryCurrentUser = `
query {
  currentUser {
    username
  }
}`

const mutationCreateNote = `
mutation AddSpentTime($id: NoteableID!, $body: String!) {
  createNote(input: { noteableId: $id, body: $body }) {
    errors
  }
}`

type timelogsResponse struct {
	Timelogs struct {
		PageInfo *PageInfo `json:"pageInfo"`
		Nodes    []Timelog `json:"nodes"`
	} `json:"timelogs"`
}

type projectsResponse struct {
	Projects struct {
		PageInfo *PageInfo `json:"pageInfo"`
		Nodes    []Project `json:"nodes"`
	} `json:"projects"`
}

type issueSearchResponse struct {
	Projects struct {
		PageInfo *PageInfo `json:"pageInfo"`
		Nodes    []struct {
			Name   string `json:"name"`
			Issues struct {
				Nodes []Issue `json:"nodes"`
			} `json:"issues"`
		} `json:"nodes"`
	} `json:"projects"`
}

// requirePageInfo guards against a response missing its pageInfo block,
// which would otherwise terminate pagination early with wrong totals.
func requirePageInfo(info *PageInfo, connection string) (PageInfo, error) {
	if info == nil {
		return PageInfo{}, fmt.Errorf("malformed response: %s connection has no pageInfo", connection)
	}
	return *info, nil
}

// Timelogs fetches every timelog for username in [from, to], following
// cursors until the server reports no further pages.
func (c *Client) Timelogs(ctx context.Context, username string, from, to time.Time) ([]Timelog, error) {
	resp, err := FetchAll(ctx,
		func(ctx context.Context, after string) (*timelogsResponse, error) {
			variables := map[string]any{
				"username":  username,
				"startDate": from.Format(time.RFC3339),
				"endDate":   to.Format(time.RFC3339),
			}
			if after != "" {
				variables["after"] = after
			}
			var out timelogsResponse
			if err := c.Execute(ctx, queryTimelogs, variables, &out); err != nil {
				return nil, err
			}
			return &out, nil
		},
		func(r *timelogsResponse) (PageInfo, error) {
			return requirePageInfo(r.Timelogs.PageInfo, "timelogs")
		},
		func(acc, next *timelogsResponse) *timelogsResponse {
			acc.Timelogs.Nodes = append(acc.Timelogs.Nodes, next.Timelogs.Nodes...)
			return acc
		},
	)
	if err != nil {
		return nil, err
	}
	return resp.Timelogs.Nodes, nil
}

// Projects resolves the given project global IDs to projects.
func (c *Client) Projects(ctx context.Context, ids []ProjectID) ([]Project, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	resp, err := FetchAll(ctx,
		func(ctx context.Context, after string) (*projectsResponse, error) {
			variables := map[string]any{"ids": ids}
			if after != "" {
				variables["after"] = after
			}
			var out projectsResponse
			if err := c.Execute(ctx, queryProjects, variables, &out); err != nil {
				return nil, err
			}
			return &out, nil
		},
		func(r *projectsResponse) (PageInfo, error) {
			return requirePageInfo(r.Projects.PageInfo, "projects")
		},
		func(acc, next *projectsResponse) *projectsResponse {
			acc.Projects.Nodes = append(acc.Projects.Nodes, next.Projects.Nodes...)
			return acc
		},
	)
	if err != nil {
		return nil, err
	}
	return resp.Projects.Nodes, nil
}

// SearchIssues searches issues across all membership projects, most recently
// updated projects first.
func (c *Client) SearchIssues(ctx context.Context, search string) ([]Issue, error) {
	resp, err := FetchAll(ctx,
		func(ctx context.Context, after string) (*issueSearchResponse, error) {
			variables := map[string]any{"search": search}
			if after != "" {
				variables["after"] = after
			}
			var out issueSearchResponse
			if err := c.Execute(ctx, queryIssueSearch, variables, &out); err != nil {
				return nil, err
			}
			return &out, nil
		},
		func(r *issueSearchResponse) (PageInfo, error) {
			return requirePageInfo(r.Projects.PageInfo, "projects")
		},
		func(acc, next *issueSearchResponse) *issueSearchResponse {
			acc.Projects.Nodes = append(acc.Projects.Nodes, next.Projects.Nodes...)
			return acc
		},
	)
	if err != nil {
		return nil, err
	}

	var issues []Issue
	for _, project := range resp.Projects.Nodes {
		for _, issue := range project.Issues.Nodes {
			issue.ProjectName = project.Name
			issues = append(issues, issue)
		}
	}
	return issues, nil
}

// CurrentUser returns the username the access token belongs to.
func (c *Client) CurrentUser(ctx context.Context) (string, error) {
	var out struct {
		CurrentUser *struct {
			Username string `json:"username"`
		} `json:"currentUser"`
	}
	if err := c.Execute(ctx, queryCurrentUser, nil, &out); err != nil {
		return "", err
	}
	if out.CurrentUser == nil {
		return "", fmt.Errorf("gitlab did not resolve the token to a user")
	}
	return out.CurrentUser.Username, nil
}

// AddSpentTime submits a note body (a "/spend" quick action, optionally with
// a summary line) against the issue identified by its global noteable ID.
func (c *Client) AddSpentTime(ctx context.Context, issueID, body string) error {
	var out struct {
		CreateNote struct {
			Errors []string `json:"errors"`
		} `json:"createNote"`
	}
	variables := map[string]any{"id": issueID, "body": body}
	if err := c.Execute(ctx, mutationCreateNote, variables, &out); err != nil {
		return err
	}
	if len(out.CreateNote.Errors) > 0 {
		return fmt.Errorf("creating note: %v", out.CreateNote.Errors)
	}
	return nil
}
