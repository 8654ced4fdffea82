package gitlab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab-time-tracker/internal/gitlab"
)

func TestNewProjectID(t *testing.T) {
	id := gitlab.NewProjectID(278964)
	assert.Equal(t, gitlab.ProjectID("gid://gitlab/Project/278964"), id)
	assert.True(t, id.Valid())

	n, err := id.Number()
	require.NoError(t, err)
	assert.Equal(t, int64(278964), n)
}

func TestProjectIDMalformed(t *testing.T) {
	for _, raw := range []string{"", "278964", "gid://gitlab/Issue/278964", "gid://gitlab/Project/abc"} {
		id := gitlab.ProjectID(raw)
		assert.False(t, id.Valid(), "expected %q to be invalid", raw)
		_, err := id.Number()
		assert.Error(t, err)
	}
}
