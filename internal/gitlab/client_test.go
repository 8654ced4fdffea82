package gitlab_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab-time-tracker/internal/gitlab"
)

type recordedRequest struct {
	query     string
	variables map[string]any
	authz     string
}

// graphQLServer serves canned JSON bodies in order and records each request.
func graphQLServer(t *testing.T, responses []string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	requests := []recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/graphql", r.URL.Path)

		var body struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		requests = append(requests, recordedRequest{
			query:     body.Query,
			variables: body.Variables,
			authz:     r.Header.Get("Authorization"),
		})

		require.Less(t, len(requests)-1, len(responses), "more requests than scripted responses")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, responses[len(requests)-1])
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func timelogsPage(hasNext bool, cursor string, nodes string) string {
	return fmt.Sprintf(`{"data":{"timelogs":{"pageInfo":{"hasNextPage":%t,"endCursor":%q},"nodes":[%s]}}}`,
		hasNext, cursor, nodes)
}

func TestTimelogsPaginates(t *testing.T) {
	server, requests := graphQLServer(t, []string{
		timelogsPage(true, "cur-1", `{"spentAt":"2026-02-23T10:00:00Z","timeSpent":3600,"user":{"username":"dev"},"issue":{"iid":"1","id":"gid://gitlab/Issue/11","webUrl":"https://git.example/i/1","title":"First","projectId":42}}`),
		timelogsPage(false, "cur-2", `{"spentAt":"2026-02-24T09:00:00Z","timeSpent":1800,"user":{"username":"dev"},"issue":null}`),
	})

	client := gitlab.NewClient(context.Background(), server.URL, "test-token", nil)
	from := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	logs, err := client.Timelogs(context.Background(), "dev", from, to)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	assert.Equal(t, int64(3600), logs[0].TimeSpent)
	require.NotNil(t, logs[0].Issue)
	assert.Equal(t, int64(42), logs[0].Issue.ProjectID)
	assert.Nil(t, logs[1].Issue)

	require.Len(t, *requests, 2)
	first, second := (*requests)[0], (*requests)[1]
	assert.Equal(t, "Bearer test-token", first.authz)
	assert.NotContains(t, first.variables, "after", "first page must omit the cursor")
	assert.Equal(t, "cur-1", second.variables["after"])
	assert.Equal(t, "dev", second.variables["username"])
}

func TestTimelogsMissingPageInfo(t *testing.T) {
	server, _ := graphQLServer(t, []string{`{"data":{"timelogs":{"nodes":[]}}}`})
	client := gitlab.NewClient(context.Background(), server.URL, "test-token", nil)

	_, err := client.Timelogs(context.Background(), "dev", time.Now().Add(-time.Hour), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pageInfo")
}

func TestExecuteGraphQLError(t *testing.T) {
	server, _ := graphQLServer(t, []string{`{"errors":[{"message":"field does not exist"}]}`})
	client := gitlab.NewClient(context.Background(), server.URL, "test-token", nil)

	err := client.Execute(context.Background(), "query { broken }", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field does not exist")
}

func TestExecuteAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := gitlab.NewClient(context.Background(), server.URL, "bad-token", nil)
	err := client.Execute(context.Background(), "query { currentUser { username } }", nil, nil)

	var authErr *gitlab.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
}

func TestProjectsEmptyIDs(t *testing.T) {
	// No request must be issued at all.
	client := gitlab.NewClient(context.Background(), "http://127.0.0.1:0", "test-token", nil)
	projects, err := client.Projects(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestProjects(t *testing.T) {
	server, requests := graphQLServer(t, []string{
		`{"data":{"projects":{"pageInfo":{"hasNextPage":false,"endCursor":""},"nodes":[{"id":"gid://gitlab/Project/42","name":"infra"}]}}}`,
	})
	client := gitlab.NewClient(context.Background(), server.URL, "test-token", nil)

	projects, err := client.Projects(context.Background(), []gitlab.ProjectID{gitlab.NewProjectID(42)})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, gitlab.NewProjectID(42), projects[0].ID)
	assert.Equal(t, "infra", projects[0].Name)

	ids := (*requests)[0].variables["ids"].([]any)
	assert.Equal(t, "gid://gitlab/Project/42", ids[0])
}

func TestSearchIssuesFlattens(t *testing.T) {
	server, _ := graphQLServer(t, []string{
		`{"data":{"projects":{"pageInfo":{"hasNextPage":false,"endCursor":""},"nodes":[
			{"name":"infra","issues":{"nodes":[{"title":"Fix thing","iid":"42","id":"gid://gitlab/Issue/7","webUrl":"https://git.example/i/42"}]}},
			{"name":"web","issues":{"nodes":[]}}
		]}}}`,
	})
	client := gitlab.NewClient(context.Background(), server.URL, "test-token", nil)

	issues, err := client.SearchIssues(context.Background(), "thing")
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "infra", issues[0].ProjectName)
	assert.Equal(t, "#42: Fix thing", gitlab.FormatTitle(issues[0].IID, issues[0].Title))
}

func TestAddSpentTimeReportsNoteErrors(t *testing.T) {
	server, requests := graphQLServer(t, []string{
		`{"data":{"createNote":{"errors":["commands only"]}}}`,
	})
	client := gitlab.NewClient(context.Background(), server.URL, "test-token", nil)

	err := client.AddSpentTime(context.Background(), "gid://gitlab/Issue/7", "/spend 1h0m0s")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commands only")
	assert.Equal(t, "gid://gitlab/Issue/7", (*requests)[0].variables["id"])
}

func TestCurrentUser(t *testing.T) {
	server, _ := graphQLServer(t, []string{`{"data":{"currentUser":{"username":"dev"}}}`})
	client := gitlab.NewClient(context.Background(), server.URL, "test-token", nil)

	username, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dev", username)
}
