package worker

import (
	"context"
	"log/slog"

	"chirper/internal/chirper"
	"chirper/internal/schedule"
)

// DailyChirp sends one chirp per day on the scheduler's random slot.
type DailyChirp struct {
	Chirper   *chirper.Chirper
	Scheduler *schedule.Scheduler
}

func (w *DailyChirp) Start(ctx context.Context) error {
	slog.Info("daily-chirp: starting",
		"recipient", w.Chirper.Recipient,
		"earliest_hour", w.Scheduler.Earliest,
		"latest_hour", w.Scheduler.Latest)
	return w.Scheduler.Run(ctx, w.Chirper.Chirp)
}
