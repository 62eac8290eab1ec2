package service

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"
	"time"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

const sendgridEndpoint = "/v3/mail/send"

// SendGridConfig configures the SendGrid delivery channel.
type SendGridConfig struct {
	APIKey    string
	Host      string
	FromEmail string
	FromName  string
}

// SendGridNotifier emails reminder recipients that look like email addresses.
// Other recipients, such as member ids, are skipped.
type SendGridNotifier struct {
	key    string
	host   string
	from   *sgmail.Email
	logger *zap.Logger
}

// NewSendGridNotifier constructs a SendGridNotifier.
func NewSendGridNotifier(cfg SendGridConfig, logger *zap.Logger) *SendGridNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	host := cfg.Host
	if host == "" {
		host = "https://api.sendgrid.com"
	}
	return &SendGridNotifier{
		key:    cfg.APIKey,
		host:   host,
		from:   sgmail.NewEmail(cfg.FromName, cfg.FromEmail),
		logger: logger,
	}
}

// Notify implements Notifier.
func (n *SendGridNotifier) Notify(_ context.Context, notification ReminderNotification) error {
	message, recipients := n.prepare(notification)
	if recipients == 0 {
		n.logger.Debug("reminder has no email recipients", zap.String("reminder_id", notification.Reminder.ID))
		return nil
	}

	req := sendgrid.GetRequest(n.key, sendgridEndpoint, n.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(message)

	res, err := sendgrid.API(req)
	if err != nil {
		return fmt.Errorf("sending reminder %s: %w", notification.Reminder.ID, err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sending reminder %s: status %d: %s", notification.Reminder.ID, res.StatusCode, res.Body)
	}

	n.logger.Info("reminder emailed",
		zap.String("reminder_id", notification.Reminder.ID),
		zap.Int("recipients", recipients),
	)
	return nil
}

func (n *SendGridNotifier) prepare(notification ReminderNotification) (*sgmail.SGMailV3, int) {
	p := sgmail.NewPersonalization()
	p.Subject = "Reminder: " + notification.Programme.Name

	count := 0
	for _, raw := range notification.Reminder.Recipients {
		addr, err := mail.ParseAddress(raw)
		if err != nil {
			continue
		}
		p.AddTos(sgmail.NewEmail(addr.Name, addr.Address))
		count++
	}

	m := sgmail.NewV3Mail()
	m.SetFrom(n.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", reminderText(notification)))
	return m, count
}

func reminderText(notification ReminderNotification) string {
	if notification.Reminder.Message != "" {
		return notification.Reminder.Message
	}
	start := notification.Programme.StartDate.UTC().Format(time.RFC1123)
	if notification.Programme.Location != "" {
		return fmt.Sprintf("%s starts %s at %s.", notification.Programme.Name, start, notification.Programme.Location)
	}
	return fmt.Sprintf("%s starts %s.", notification.Programme.Name, start)
}
