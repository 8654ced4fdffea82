package timer

import (
	"context"
	"errors"
	"strconv"
	"time"

	"gitlab-time-tracker/internal/storage"
)

const localKey = "timer"

// Local keeps the timer session in a store on this machine, for use without
// a timestamp service.
type Local struct {
	store storage.Store
	now   func() time.Time
}

// NewLocal creates a timer client on top of the given store.
func NewLocal(store storage.Store) *Local {
	return &Local{store: store, now: time.Now}
}

func (c *Local) Start(ctx context.Context) (time.Time, error) {
	started := c.now()
	value := strconv.FormatInt(started.UnixMilli(), 10)
	if err := c.store.Set(ctx, localKey, value); err != nil {
		return time.Time{}, err
	}
	return started, nil
}

func (c *Local) Current(ctx context.Context) (time.Time, error) {
	value, err := c.store.Get(ctx, localKey)
	if errors.Is(err, storage.ErrNotFound) {
		return time.Time{}, ErrNotRunning
	}
	if err != nil {
		return time.Time{}, err
	}
	return parseMillis(value)
}

func (c *Local) Stop(ctx context.Context) (time.Duration, error) {
	started, err := c.Current(ctx)
	if err != nil {
		return 0, err
	}
	if err := c.store.Delete(ctx, localKey); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return 0, err
	}
	return c.now().Sub(started), nil
}
