package gitlab

import (
	"fmt"
	"strconv"
	"strings"
)

// ProjectID is a GitLab global project identifier in its prefixed string
// form, e.g. "gid://gitlab/Project/278964". The GraphQL API returns projects
// keyed by this form while timelog issues carry only the numeric id, so
// comparisons must always go through NewProjectID rather than comparing raw
// numbers against the string.
type ProjectID string

const projectIDPrefix = "gid://gitlab/Project/"

// NewProjectID builds the global ID for a numeric project id.
func NewProjectID(n int64) ProjectID {
	return ProjectID(fmt.Sprintf("%s%d", projectIDPrefix, n))
}

// Valid reports whether the ID is in the expected prefixed format.
func (id ProjectID) Valid() bool {
	_, err := id.Number()
	return err == nil
}

// Number extracts the numeric project id from the global ID.
func (id ProjectID) Number() (int64, error) {
	rest, ok := strings.CutPrefix(string(id), projectIDPrefix)
	if !ok {
		return 0, fmt.Errorf("malformed project global ID %q", string(id))
	}
	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed project global ID %q: %w", string(id), err)
	}
	return n, nil
}
