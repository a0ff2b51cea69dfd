package notifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"booking_service/internal/models"

	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	published []models.NotificationEvent
	failOn    models.Channel
}

func (s *recordingSink) Publish(_ context.Context, event models.NotificationEvent) error {
	if s.failOn != "" && event.Channel == s.failOn {
		return errors.New("sink unavailable")
	}

	s.published = append(s.published, event)
	return nil
}

func confirmedRequest() models.BookingRequest {
	return models.BookingRequest{
		ClientEmail: "a@x.com",
		ClientName:  "Ana Souza",
		ClientPhone: "+5511999999999",
		Barber:      "Carlos",
		Date:        "2024-01-15",
		Time:        "14:00",
	}
}

func TestNotifyFansOutThreeEvents(t *testing.T) {
	sink := &recordingSink{}
	n := New(sink, "barbearia.com")

	results := n.Notify(context.Background(), confirmedRequest())
	require.Len(t, results, 3)
	for _, res := range results {
		require.NoError(t, res.Err)
	}

	require.Len(t, sink.published, 3)

	clientEmail := sink.published[0]
	require.Equal(t, models.ChannelEmail, clientEmail.Channel)
	require.Equal(t, "a@x.com", clientEmail.To)
	require.Equal(t, "Agendamento Confirmado - Barbearia", clientEmail.Subject)
	require.Contains(t, clientEmail.Body, "Carlos")
	require.Contains(t, clientEmail.Body, "2024-01-15")
	require.Contains(t, clientEmail.Body, "14:00")

	clientSMS := sink.published[1]
	require.Equal(t, models.ChannelSMS, clientSMS.Channel)
	require.Equal(t, "+5511999999999", clientSMS.To)
	require.Contains(t, clientSMS.Body, "Carlos")
	require.Contains(t, clientSMS.Body, "2024-01-15")
	require.Contains(t, clientSMS.Body, "14:00")

	barberEmail := sink.published[2]
	require.Equal(t, models.ChannelEmail, barberEmail.Channel)
	require.Equal(t, "carlos@barbearia.com", barberEmail.To)
	require.Equal(t, "Novo Agendamento - Barbearia", barberEmail.Subject)
	require.Contains(t, barberEmail.Body, "Ana Souza")
	require.Contains(t, barberEmail.Body, "a@x.com")
	require.Contains(t, barberEmail.Body, "+5511999999999")
}

func TestBarberAddressDerivation(t *testing.T) {
	n := New(&recordingSink{}, "barbearia.com")

	cases := map[string]string{
		"Carlos":        "carlos@barbearia.com",
		"Joao Silva":    "joaosilva@barbearia.com",
		"PEDRO AUGUSTO": "pedroaugusto@barbearia.com",
	}

	for barber, want := range cases {
		require.Equal(t, want, n.barberAddress(barber))
	}
}

func TestNotifyPartialFailureDoesNotBlockOthers(t *testing.T) {
	sink := &recordingSink{failOn: models.ChannelSMS}
	n := New(sink, "barbearia.com")

	results := n.Notify(context.Background(), confirmedRequest())
	require.Len(t, results, 3)

	require.NoError(t, results[0].Err)
	require.Error(t, results[1].Err)
	require.NoError(t, results[2].Err)

	// Both emails still went out.
	require.Len(t, sink.published, 2)
	for _, event := range sink.published {
		require.Equal(t, models.ChannelEmail, event.Channel)
	}
}

func TestNotifyEventBodiesAreSingleLineForSMS(t *testing.T) {
	sink := &recordingSink{}
	n := New(sink, "barbearia.com")

	n.Notify(context.Background(), confirmedRequest())

	require.False(t, strings.Contains(sink.published[1].Body, "\n"))
}
