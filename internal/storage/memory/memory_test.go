package memory

import (
	"context"
	"sync"
	"testing"

	"booking_service/internal/models"
	"booking_service/internal/storage"

	"github.com/stretchr/testify/require"
)

func TestCreateClientRejectsDuplicateEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	client := models.Client{FirstName: "Ana", LastName: "Souza", Email: "a@x.com", Phone: "+5511999999999"}

	id, err := s.CreateClient(ctx, client)
	require.NoError(t, err)
	require.Equal(t, int64(1), id)

	_, err = s.CreateClient(ctx, client)
	require.ErrorIs(t, err, storage.ErrClientExists)

	clients, err := s.Clients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
}

func TestClientByEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.ClientByEmail(ctx, "missing@x.com")
	require.ErrorIs(t, err, storage.ErrClientNotFound)

	_, err = s.CreateClient(ctx, models.Client{FirstName: "Ana", LastName: "Souza", Email: "a@x.com", Phone: "1"})
	require.NoError(t, err)

	got, err := s.ClientByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "Ana", got.FirstName)
}

func TestCreateBookingRejectsTakenSlot(t *testing.T) {
	s := New()
	ctx := context.Background()

	booking := models.Booking{
		ID:          "b1",
		ClientEmail: "a@x.com",
		Barber:      "Carlos",
		Date:        "2024-01-15",
		Time:        "14:00",
		Status:      models.StatusConfirmed,
	}

	require.NoError(t, s.CreateBooking(ctx, booking))

	booking.ID = "b2"
	booking.ClientEmail = "b@x.com"
	require.ErrorIs(t, s.CreateBooking(ctx, booking), storage.ErrSlotTaken)
}

func TestCreateBookingSameSlotConcurrently(t *testing.T) {
	const workers = 8

	s := New()
	ctx := context.Background()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		confirmed int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			err := s.CreateBooking(ctx, models.Booking{
				ID:     string(rune('a' + i)),
				Barber: "Carlos",
				Date:   "2024-01-15",
				Time:   "14:00",
				Status: models.StatusConfirmed,
			})
			if err == nil {
				mu.Lock()
				confirmed++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, confirmed)

	bookings, err := s.Bookings(ctx, "Carlos", "2024-01-15")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
}

func TestBookingsFilterAndOrder(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, b := range []models.Booking{
		{ID: "1", Barber: "Carlos", Date: "2024-01-15", Time: "15:30"},
		{ID: "2", Barber: "Carlos", Date: "2024-01-15", Time: "09:00"},
		{ID: "3", Barber: "Carlos", Date: "2024-01-16", Time: "08:00"},
		{ID: "4", Barber: "Pedro", Date: "2024-01-15", Time: "09:00"},
	} {
		require.NoError(t, s.CreateBooking(ctx, b))
	}

	carlosDay, err := s.Bookings(ctx, "Carlos", "2024-01-15")
	require.NoError(t, err)
	require.Len(t, carlosDay, 2)
	require.Equal(t, "09:00", carlosDay[0].Time)
	require.Equal(t, "15:30", carlosDay[1].Time)

	all, err := s.Bookings(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, all, 4)
}
