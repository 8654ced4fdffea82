// Package timer manipulates the "timer started" session timestamp, either
// through the timestamp service or a local store when no service is
// configured.
package timer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrNotRunning is returned when no timer has been started.
var ErrNotRunning = errors.New("timer: no timer running")

// Client starts, inspects and stops the single timer session.
type Client interface {
	// Start records "now" as the session start and returns it. An already
	// running timer is overwritten.
	Start(ctx context.Context) (time.Time, error)
	// Current returns the running timer's start time, or ErrNotRunning.
	Current(ctx context.Context) (time.Time, error)
	// Stop clears the timer and returns the elapsed duration, or
	// ErrNotRunning when none was started.
	Stop(ctx context.Context) (time.Duration, error)
}

func parseMillis(value string) (time.Time, error) {
	millis, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed timestamp %q: %w", value, err)
	}
	return time.UnixMilli(millis), nil
}
