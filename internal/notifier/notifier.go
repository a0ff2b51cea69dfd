package notifier

import (
	"context"
	"fmt"
	"strings"

	"booking_service/internal/models"
)

const (
	clientSubject = "Agendamento Confirmado - Barbearia"
	barberSubject = "Novo Agendamento - Barbearia"
)

// Sink delivers a single notification event. Delivery mechanics (SMTP, SMS
// gateway, plain logging) live behind this interface.
type Sink interface {
	Publish(ctx context.Context, event models.NotificationEvent) error
}

type DispatchResult struct {
	Event models.NotificationEvent
	Err   error
}

type Notifier struct {
	sink   Sink
	domain string // mailbox domain for barber addresses
}

func New(sink Sink, domain string) *Notifier {
	return &Notifier{
		sink:   sink,
		domain: domain,
	}
}

// Notify fans a confirmed booking out into three events: email to the
// client, SMS to the client, email to the barber. Every event is dispatched
// independently; a failed send never stops the remaining ones. The caller
// gets one result per event.
func (n *Notifier) Notify(ctx context.Context, req models.BookingRequest) []DispatchResult {
	events := n.buildEvents(req)

	results := make([]DispatchResult, 0, len(events))
	for _, event := range events {
		results = append(results, DispatchResult{
			Event: event,
			Err:   n.sink.Publish(ctx, event),
		})
	}

	return results
}

func (n *Notifier) buildEvents(req models.BookingRequest) []models.NotificationEvent {
	clientEmail := models.NotificationEvent{
		Channel: models.ChannelEmail,
		To:      req.ClientEmail,
		Subject: clientSubject,
		Body: fmt.Sprintf(
			"Olá %s,\n\nSeu agendamento foi confirmado com sucesso!\n\nDetalhes:\n- Barbeiro: %s\n- Data: %s\n- Horário: %s\n\nAguardamos você!",
			req.ClientName, req.Barber, req.Date, req.Time,
		),
	}

	clientSMS := models.NotificationEvent{
		Channel: models.ChannelSMS,
		To:      req.ClientPhone,
		Body: fmt.Sprintf(
			"Agendamento confirmado! Barbeiro: %s, Data: %s, Horário: %s",
			req.Barber, req.Date, req.Time,
		),
	}

	barberEmail := models.NotificationEvent{
		Channel: models.ChannelEmail,
		To:      n.barberAddress(req.Barber),
		Subject: barberSubject,
		Body: fmt.Sprintf(
			"Olá %s,\n\nVocê tem um novo agendamento!\n\nDetalhes:\n- Cliente: %s\n- Email: %s\n- Celular: %s\n- Data: %s\n- Horário: %s",
			req.Barber, req.ClientName, req.ClientEmail, req.ClientPhone, req.Date, req.Time,
		),
	}

	return []models.NotificationEvent{clientEmail, clientSMS, barberEmail}
}

// barberAddress derives the barber's mailbox: name lowercased, spaces
// stripped, at the configured domain ("Carlos" -> carlos@barbearia.com).
func (n *Notifier) barberAddress(barber string) string {
	return strings.ToLower(strings.ReplaceAll(barber, " ", "")) + "@" + n.domain
}
