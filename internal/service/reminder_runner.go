package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/JayR61/congregation-connect/internal/models"
)

type reminderProcessor interface {
	Process(ctx context.Context) (*models.ProcessResult, error)
}

// ReminderRunner periodically drives reminder processing.
type ReminderRunner struct {
	processor reminderProcessor
	interval  time.Duration
	logger    *zap.Logger
}

// NewReminderRunner constructs a runner; interval defaults to one minute.
func NewReminderRunner(processor reminderProcessor, interval time.Duration, logger *zap.Logger) *ReminderRunner {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderRunner{processor: processor, interval: interval, logger: logger}
}

// Start boots a goroutine that processes reminders until ctx is cancelled.
// The returned channel closes once the goroutine exits.
func (r *ReminderRunner) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	ticker := time.NewTicker(r.interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		r.RunOnce(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.RunOnce(ctx)
			}
		}
	}()
	r.logger.Sugar().Infow("reminder runner started", "interval", r.interval.String())
	return done
}

// RunOnce performs a single processing pass and logs the outcome.
func (r *ReminderRunner) RunOnce(ctx context.Context) {
	result, err := r.processor.Process(ctx)
	if err != nil {
		r.logger.Sugar().Warnw("reminder processing failed", "error", err)
		return
	}
	if len(result.Sent) > 0 || len(result.Failed) > 0 {
		r.logger.Sugar().Infow("reminders processed", "sent", len(result.Sent), "failed", len(result.Failed), "total", len(result.Reminders))
	}
}
