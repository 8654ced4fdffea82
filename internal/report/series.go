package report

import (
	"time"

	"gitlab-time-tracker/internal/gitlab"
)

// Entry is one chart-ready series entry. Value is a total in milliseconds.
// URL is only set for series whose groups have a web location (issues);
// consumers must render entries without a URL as plain labels.
type Entry struct {
	Title string `json:"title"`
	Value int64  `json:"value"`
	Color string `json:"color"`
	URL   string `json:"url,omitempty"`
}

// Filter selects which timelogs count toward a series. Aggregators apply it
// before any grouping; callers own identity rules such as "current user only".
type Filter func(gitlab.Timelog) bool

// KeepAll is the no-op filter.
func KeepAll(gitlab.Timelog) bool { return true }

// ByUser keeps only timelogs attributed to username.
func ByUser(username string) Filter {
	return func(log gitlab.Timelog) bool {
		return log.User.Username == username
	}
}

// DateRange is a half-open range of calendar days: From is inclusive, To is
// exclusive at day granularity.
type DateRange struct {
	From time.Time
	To   time.Time
}

// DefaultPalette mirrors the dashboard chart colors.
var DefaultPalette = []string{"#6b4fbb", "#ff9a9a"}

// Options configures series construction.
type Options struct {
	// Palette is cycled by group index modulo its length. A single color is
	// valid; every group then shares it. Empty falls back to DefaultPalette.
	Palette []string
	// MinValue drops project and issue groups whose total is below this many
	// milliseconds. Zero keeps everything except totals that round to zero.
	// The by-day series never applies it.
	MinValue int64
}

func (o Options) palette() []string {
	if len(o.Palette) == 0 {
		return DefaultPalette
	}
	return o.Palette
}

func (o Options) color(index int) string {
	p := o.palette()
	return p[index%len(p)]
}

func (o Options) minValue() int64 {
	if o.MinValue <= 0 {
		return 1
	}
	return o.MinValue
}
