package booking

import (
	"context"
	"testing"

	"booking_service/internal/models"
	"booking_service/internal/storage"
	"booking_service/internal/storage/memory"

	"github.com/stretchr/testify/require"
)

type captureQueue struct {
	items []models.BookingRequest
}

func (q *captureQueue) Enqueue(ctx context.Context, req models.BookingRequest) error {
	q.items = append(q.items, req)
	return nil
}

func registeredClientService(t *testing.T) (*Service, *captureQueue) {
	t.Helper()

	store := memory.New()
	_, err := store.CreateClient(context.Background(), models.Client{
		FirstName: "Ana",
		LastName:  "Souza",
		Email:     "a@x.com",
		Phone:     "+5511999999999",
	})
	require.NoError(t, err)

	q := &captureQueue{}
	return NewService(store, q), q
}

func TestSubmitEnrichesEnvelopeFromClientRecord(t *testing.T) {
	svc, q := registeredClientService(t)

	envelope, err := svc.Submit(context.Background(), "a@x.com", "Carlos", "2024-01-15", "14:00")
	require.NoError(t, err)

	require.Equal(t, "Ana Souza", envelope.ClientName)
	require.Equal(t, "+5511999999999", envelope.ClientPhone)
	require.Equal(t, "Carlos", envelope.Barber)

	require.Len(t, q.items, 1)
	require.Equal(t, envelope, q.items[0])
}

func TestSubmitRejectsUnknownClient(t *testing.T) {
	svc, q := registeredClientService(t)

	_, err := svc.Submit(context.Background(), "missing@x.com", "Carlos", "2024-01-15", "14:00")
	require.ErrorIs(t, err, storage.ErrClientNotFound)
	require.Empty(t, q.items)
}

func TestSubmitRejectsMalformedDateAndTime(t *testing.T) {
	svc, q := registeredClientService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, "a@x.com", "Carlos", "15/01/2024", "14:00")
	require.ErrorIs(t, err, ErrBadDate)

	_, err = svc.Submit(ctx, "a@x.com", "Carlos", "2024-01-15", "2pm")
	require.ErrorIs(t, err, ErrBadTime)

	require.Empty(t, q.items)
}

func TestRegisterClientRejectsDuplicate(t *testing.T) {
	store := memory.New()
	svc := NewService(store, &captureQueue{})
	ctx := context.Background()

	client := models.Client{FirstName: "Ana", LastName: "Souza", Email: "a@x.com", Phone: "1"}

	_, err := svc.RegisterClient(ctx, client)
	require.NoError(t, err)

	_, err = svc.RegisterClient(ctx, client)
	require.ErrorIs(t, err, storage.ErrClientExists)

	clients, err := svc.Clients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
}
