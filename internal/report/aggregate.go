package report

import (
	"sort"
	"time"

	"gitlab-time-tracker/internal/gitlab"
	"gitlab-time-tracker/internal/timeutil"
)

// ByProject rolls timelogs up into one entry per project. Timelogs are
// matched to projects through the constructed project global ID, never by
// raw numeric comparison. Projects whose total falls below the threshold are
// dropped; colors cycle over the surviving groups in project order.
func ByProject(projects []gitlab.Project, logs []gitlab.Timelog, keep Filter, opts Options) []Entry {
	var entries []Entry
	for _, project := range projects {
		var total int64
		for _, log := range logs {
			if !keep(log) || log.Issue == nil {
				continue
			}
			if project.ID != gitlab.NewProjectID(log.Issue.ProjectID) {
				continue
			}
			total += log.TimeSpent * 1000
		}
		if total < opts.minValue() {
			continue
		}
		entries = append(entries, Entry{
			Title: project.Name,
			Value: total,
			Color: opts.color(len(entries)),
		})
	}
	return entries
}

// ByIssue rolls timelogs up into one entry per issue, in first-seen order.
// Timelogs without a resolvable issue are skipped. The stable issue global
// ID is preferred as the group key, with the iid as fallback.
func ByIssue(logs []gitlab.Timelog, keep Filter, opts Options) []Entry {
	var order []string
	totals := map[string]int64{}
	issues := map[string]*gitlab.IssueRef{}

	for _, log := range logs {
		if !keep(log) || log.Issue == nil {
			continue
		}
		key := log.Issue.ID
		if key == "" {
			key = log.Issue.IID
		}
		if key == "" {
			continue
		}
		if _, seen := totals[key]; !seen {
			order = append(order, key)
			issues[key] = log.Issue
		}
		totals[key] += log.TimeSpent * 1000
	}

	var entries []Entry
	for _, key := range order {
		if totals[key] < opts.minValue() {
			continue
		}
		issue := issues[key]
		entries = append(entries, Entry{
			Title: gitlab.FormatTitle(issue.IID, issue.Title),
			Value: totals[key],
			Color: opts.color(len(entries)),
			URL:   issue.WebURL,
		})
	}
	return entries
}

// ByDay buckets timelogs per calendar day over [rng.From, rng.To). Every day
// in the range is emitted in chronological order, days without activity as
// explicit zero entries. Timelog timestamps are interpreted in the range's
// location so buckets line up with the caller's calendar. No threshold
// applies here.
func ByDay(logs []gitlab.Timelog, keep Filter, rng DateRange, opts Options) []Entry {
	now := time.Now()
	days := timeutil.DaysInRange(rng.From, rng.To)
	totals := make([]int64, len(days))

	var kept []gitlab.Timelog
	for _, log := range logs {
		if keep(log) && log.TimeSpent != 0 {
			kept = append(kept, log)
		}
	}
	// Deterministic summation order, independent of server page ordering.
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].SpentAt.Before(kept[j].SpentAt)
	})

	loc := rng.From.Location()
	for _, log := range kept {
		spent := log.SpentAt.In(loc)
		for i, day := range days {
			if timeutil.SameDay(day, spent) {
				totals[i] += log.TimeSpent * 1000
				break
			}
		}
	}

	entries := make([]Entry, len(days))
	for i, day := range days {
		entries[i] = Entry{
			Title: DayLabel(day, now),
			Value: totals[i],
			Color: opts.palette()[0],
		}
	}
	return entries
}

// DayLabel renders a day-bucket label: "today" when date falls on the same
// calendar day as now, otherwise a fixed MM/DD form.
func DayLabel(date, now time.Time) string {
	if timeutil.SameDay(date, now) {
		return "today"
	}
	return date.Format("01/02")
}
