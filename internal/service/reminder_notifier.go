package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/JayR61/congregation-connect/pkg/jobs"
)

// Notifier delivers a sent reminder to its recipients.
type Notifier interface {
	Notify(ctx context.Context, notification ReminderNotification) error
}

// LogNotifier records deliveries in the application log.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier constructs a LogNotifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(_ context.Context, notification ReminderNotification) error {
	n.logger.Info("reminder delivered",
		zap.String("reminder_id", notification.Reminder.ID),
		zap.String("programme_id", notification.Programme.ID),
		zap.String("programme", notification.Programme.Name),
		zap.Time("starts_at", notification.Programme.StartDate),
		zap.Strings("recipients", notification.Reminder.Recipients),
	)
	return nil
}

// NewReminderNotificationHandler adapts a Notifier into a queue handler.
// Delivery errors are retried by the queue and never change reminder status.
func NewReminderNotificationHandler(notifier Notifier) jobs.Handler {
	return func(ctx context.Context, job jobs.Job) error {
		notification, ok := job.Payload.(ReminderNotification)
		if !ok {
			return fmt.Errorf("unexpected payload %T for job %s", job.Payload, job.ID)
		}
		return notifier.Notify(ctx, notification)
	}
}
