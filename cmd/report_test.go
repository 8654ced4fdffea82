package cmd

import (
	"testing"
	"time"

	"gitlab-time-tracker/internal/gitlab"
)

func TestCsvEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"with space", "with space"},
		{"with,comma", `"with,comma"`},
		{`with"quote`, `"with""quote"`},
		{"with\nnewline", "\"with\nnewline\""},
		{"", ""},
	}
	for _, tt := range tests {
		got := csvEscape(tt.input)
		if got != tt.want {
			t.Errorf("csvEscape(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestReportRangeDefaults(t *testing.T) {
	reportFrom, reportTo = "", ""
	now := time.Date(2026, 8, 31, 15, 4, 0, 0, time.UTC)

	from, to, err := reportRange(now)
	if err != nil {
		t.Fatal(err)
	}
	if want := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC); !from.Equal(want) {
		t.Errorf("from = %v, want %v", from, want)
	}
	if want := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC); !to.Equal(want) {
		t.Errorf("to = %v, want %v", to, want)
	}
}

func TestReportRangeFlags(t *testing.T) {
	reportFrom, reportTo = "2026-08-01", "2026-08-15"
	defer func() { reportFrom, reportTo = "", "" }()

	from, to, err := reportRange(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if from.Format("2006-01-02") != "2026-08-01" || to.Format("2006-01-02") != "2026-08-15" {
		t.Errorf("got range %v to %v", from, to)
	}

	reportFrom, reportTo = "2026-08-15", "2026-08-01"
	if _, _, err := reportRange(time.Now()); err == nil {
		t.Error("expected error for inverted range")
	}

	reportFrom, reportTo = "not-a-date", ""
	if _, _, err := reportRange(time.Now()); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestProjectIDs(t *testing.T) {
	logs := []gitlab.Timelog{
		{Issue: &gitlab.IssueRef{ProjectID: 7}},
		{Issue: nil},
		{Issue: &gitlab.IssueRef{ProjectID: 3}},
		{Issue: &gitlab.IssueRef{ProjectID: 7}},
	}

	ids := projectIDs(logs)
	want := []gitlab.ProjectID{gitlab.NewProjectID(7), gitlab.NewProjectID(3)}
	if len(ids) != len(want) {
		t.Fatalf("got %d ids, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}
