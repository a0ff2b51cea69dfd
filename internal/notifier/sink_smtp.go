package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"booking_service/internal/models"

	"gopkg.in/gomail.v2"
)

// SMTPSink delivers email events over SMTP. SMS events are logged until an
// SMS gateway is provisioned.
type SMTPSink struct {
	dialer *gomail.Dialer
	from   string
	log    *slog.Logger
}

func NewSMTPSink(host string, port int, username, password string, log *slog.Logger) *SMTPSink {
	return &SMTPSink{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   username,
		log:    log,
	}
}

func (s *SMTPSink) Publish(_ context.Context, event models.NotificationEvent) error {
	const op = "notifier.SMTPSink.Publish"

	switch event.Channel {
	case models.ChannelEmail:
		msg := gomail.NewMessage()
		msg.SetHeader("From", s.from)
		msg.SetHeader("To", event.To)
		msg.SetHeader("Subject", event.Subject)
		msg.SetBody("text/plain", event.Body)

		if err := s.dialer.DialAndSend(msg); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		return nil
	case models.ChannelSMS:
		s.log.Info("sms dispatched",
			slog.String("to", event.To),
			slog.String("body", event.Body),
		)

		return nil
	default:
		return fmt.Errorf("%s: unknown channel %q", op, event.Channel)
	}
}
