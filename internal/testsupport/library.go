package testsupport

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"crunchlist/internal/config"
	"crunchlist/internal/library"
	"crunchlist/internal/store"
)

// Clock is a manually advanced time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a clock frozen at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock by d, which may be negative.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// SequentialIDs returns a generator yielding prefix-1, prefix-2, ...
func SequentialIDs(prefix string) func() string {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// NewLibrary opens a store for cfg and wraps it in a Library using a fake
// clock and sequential ids. Extra options are applied last.
func NewLibrary(t testing.TB, cfg *config.Config, clock *Clock, opts ...library.Option) (*library.Library, *store.Store) {
	t.Helper()

	st := MustOpenStore(t, cfg)
	base := []library.Option{
		library.WithClock(clock.Now),
		library.WithIDGenerator(SequentialIDs("id")),
		library.WithLocale(cfg.LocaleTag()),
		library.WithDefaultStatus(cfg.DefaultStatusValue()),
	}
	return library.New(st, append(base, opts...)...), st
}
