package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// ExecStats holds statement execution statistics.
type ExecStats struct {
	// Execs is the number of statements executed.
	Execs atomic.Int64
	// Duration is the time spent executing statements.
	Duration atomic.Int64 // nanoseconds
	// Slow is the number of statements exceeding the slow threshold.
	Slow atomic.Int64
	// Errors is the number of failed statements.
	Errors atomic.Int64
}

// Snapshot returns a copy of the current statistics.
func (s *ExecStats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Execs:    s.Execs.Load(),
		Duration: time.Duration(s.Duration.Load()),
		Slow:     s.Slow.Load(),
		Errors:   s.Errors.Load(),
	}
}

// Reset sets all statistics to zero.
func (s *ExecStats) Reset() {
	s.Execs.Store(0)
	s.Duration.Store(0)
	s.Slow.Store(0)
	s.Errors.Store(0)
}

// StatsSnapshot is a point-in-time copy of ExecStats.
type StatsSnapshot struct {
	Execs    int64
	Duration time.Duration
	Slow     int64
	Errors   int64
}

// Avg returns the average statement duration.
func (s StatsSnapshot) Avg() time.Duration {
	if s.Execs == 0 {
		return 0
	}
	return s.Duration / time.Duration(s.Execs)
}

func (s StatsSnapshot) String() string {
	return fmt.Sprintf("execs=%d duration=%s avg=%s slow=%d errors=%d",
		s.Execs, s.Duration, s.Avg(), s.Slow, s.Errors)
}

// SlowHook is called for every statement slower than the threshold.
type SlowHook func(ctx context.Context, query string, args []any, d time.Duration)

// StatsExecer wraps an Execer and records statistics of the statements it
// executes. Generated Insert and Create functions accept it in place of the
// database handle.
type StatsExecer struct {
	Execer
	stats *ExecStats

	mu            sync.RWMutex
	slowThreshold time.Duration
	slowHook      SlowHook
}

// StatsOption configures a StatsExecer.
type StatsOption func(*StatsExecer)

// WithSlowThreshold sets the slow statement threshold. Default is 100ms.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(e *StatsExecer) {
		e.slowThreshold = d
	}
}

// WithSlowHook sets the callback for slow statements.
func WithSlowHook(hook SlowHook) StatsOption {
	return func(e *StatsExecer) {
		e.slowHook = hook
	}
}

// WithSlowLog logs slow statements to logger, or slog.Default() when nil.
func WithSlowLog(logger *slog.Logger) StatsOption {
	if logger == nil {
		logger = slog.Default()
	}
	return WithSlowHook(func(ctx context.Context, query string, args []any, d time.Duration) {
		logger.WarnContext(ctx, "slow statement", "duration", d, "query", query, "args", len(args))
	})
}

// NewStatsExecer wraps e with statistics collection:
//
//	db := adapter.NewStatsExecer(sqlDB, adapter.WithSlowLog(logger))
//	if err := person.Insert(ctx, db, p); err != nil {
//		return err
//	}
//	logger.Info("done", "stats", db.Stats().Snapshot())
func NewStatsExecer(e Execer, opts ...StatsOption) *StatsExecer {
	s := &StatsExecer{
		Execer:        e,
		stats:         &ExecStats{},
		slowThreshold: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats returns the statistics recorded so far.
func (e *StatsExecer) Stats() *ExecStats { return e.stats }

// SlowThreshold returns the slow statement threshold.
func (e *StatsExecer) SlowThreshold() time.Duration {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.slowThreshold
}

// SetSlowThreshold updates the slow statement threshold.
func (e *StatsExecer) SetSlowThreshold(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.slowThreshold = d
}

// ExecContext executes query and records its statistics.
func (e *StatsExecer) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := e.Execer.ExecContext(ctx, query, args...)
	d := time.Since(start)

	e.stats.Execs.Add(1)
	e.stats.Duration.Add(int64(d))
	if err != nil {
		e.stats.Errors.Add(1)
	}
	e.mu.RLock()
	threshold, hook := e.slowThreshold, e.slowHook
	e.mu.RUnlock()
	if d > threshold {
		e.stats.Slow.Add(1)
		if hook != nil {
			hook(ctx, query, args, d)
		}
	}
	return res, err
}
