package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"chirper/internal/pool"
)

// ErrInvalidRange is returned for hour windows outside [0,23] or reversed.
var ErrInvalidRange = errors.New("invalid schedule range")

// Action is invoked once per fire. Its error is logged, never retried.
type Action func(ctx context.Context) error

// Scheduler fires an action once per day at a random minute between
// Earliest:00 and Latest:59 local time.
type Scheduler struct {
	Earliest int
	Latest   int
	// CatchUpToday fires immediately when today's first target already
	// passed. When false that day is skipped.
	CatchUpToday bool

	Rand pool.Rand
	Now  func() time.Time
	// Wait blocks until the wall clock reaches t or ctx is done.
	Wait func(ctx context.Context, t time.Time) error
}

// New returns a scheduler on the real clock.
func New(earliest, latest int, catchUp bool) *Scheduler {
	return &Scheduler{Earliest: earliest, Latest: latest, CatchUpToday: catchUp}
}

// Validate checks the hour window.
func (s *Scheduler) Validate() error {
	return ValidateRange(s.Earliest, s.Latest)
}

// ValidateRange checks 0 <= earliest <= latest <= 23.
func ValidateRange(earliest, latest int) error {
	if earliest < 0 || earliest > 23 || latest < 0 || latest > 23 {
		return fmt.Errorf("%w: hours must be within 0-23, got %d-%d", ErrInvalidRange, earliest, latest)
	}
	if earliest > latest {
		return fmt.Errorf("%w: earliest hour %d is after latest hour %d", ErrInvalidRange, earliest, latest)
	}
	return nil
}

// Today returns a random target on now's date.
func (s *Scheduler) Today(now time.Time) time.Time {
	return s.at(now.Year(), now.Month(), now.Day(), now.Location())
}

// NextTarget returns a random target on the day after prev's date.
func (s *Scheduler) NextTarget(prev time.Time) time.Time {
	return s.at(prev.Year(), prev.Month(), prev.Day()+1, prev.Location())
}

func (s *Scheduler) at(y int, m time.Month, d int, loc *time.Location) time.Time {
	rnd := s.rand()
	hour := s.Earliest + rnd.IntN(s.Latest-s.Earliest+1)
	minute := rnd.IntN(60)
	return time.Date(y, m, d, hour, minute, 0, 0, loc)
}

// Run fires action at today's target, then once per following day, until
// ctx is cancelled. It returns nil on cancellation and ErrInvalidRange
// before any wait when the window is invalid.
func (s *Scheduler) Run(ctx context.Context, action Action) error {
	if err := s.Validate(); err != nil {
		return err
	}
	now := s.now()
	target := s.Today(now)
	switch {
	case target.After(now):
		if !s.fireAt(ctx, target, action) {
			return nil
		}
	case s.CatchUpToday:
		slog.Info("schedule: today's target already passed, firing now", "target", target)
		s.fire(ctx, action)
	default:
		slog.Info("schedule: today's target already passed, skipping to tomorrow", "target", target)
	}
	for {
		target = s.NextTarget(target)
		if !s.fireAt(ctx, target, action) {
			return nil
		}
	}
}

// fireAt waits for t then fires once. It reports false when ctx ended.
func (s *Scheduler) fireAt(ctx context.Context, t time.Time, action Action) bool {
	slog.Info("schedule: sleeping until target", "target", t)
	if err := s.wait(ctx, t); err != nil {
		slog.Info("schedule: stopped", "reason", err)
		return false
	}
	s.fire(ctx, action)
	return ctx.Err() == nil
}

func (s *Scheduler) fire(ctx context.Context, action Action) {
	if err := action(ctx); err != nil {
		slog.Error("schedule: action failed", "error", err)
	}
}

func (s *Scheduler) rand() pool.Rand {
	if s.Rand == nil {
		return pool.GlobalRand
	}
	return s.Rand
}

func (s *Scheduler) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Scheduler) wait(ctx context.Context, t time.Time) error {
	if s.Wait == nil {
		return SleepUntil(ctx, t)
	}
	return s.Wait(ctx, t)
}

// maxSleep bounds a single timer so a wall-clock jump (suspend, NTP step)
// delays a wait by at most this much.
var maxSleep = time.Minute

// SleepUntil blocks until t or until ctx is done. A past t returns
// immediately.
func SleepUntil(ctx context.Context, t time.Time) error {
	return sleepUntil(ctx, t, time.Now, maxSleep)
}

func sleepUntil(ctx context.Context, t time.Time, now func() time.Time, step time.Duration) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		d := t.Sub(now())
		if d <= 0 {
			return nil
		}
		if d > step {
			d = step
		}
		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
