package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"booking_service/internal/models"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

var (
	ErrBadDate = errors.New("date must be in YYYY-MM-DD format")
	ErrBadTime = errors.New("time must be in HH:MM format")
)

type Store interface {
	CreateClient(ctx context.Context, client models.Client) (int64, error)
	ClientByEmail(ctx context.Context, email string) (models.Client, error)
	Clients(ctx context.Context) ([]models.Client, error)
	CreateBooking(ctx context.Context, booking models.Booking) error
	Bookings(ctx context.Context, barber, date string) ([]models.Booking, error)
}

type Queue interface {
	Enqueue(ctx context.Context, req models.BookingRequest) error
}

// Service is the synchronous ingestion boundary used by the HTTP handlers.
// Submit only checks what can be checked without touching other bookings;
// conflict detection happens later in the Validator.
type Service struct {
	store Store
	queue Queue
}

func NewService(store Store, queue Queue) *Service {
	return &Service{
		store: store,
		queue: queue,
	}
}

func (s *Service) RegisterClient(ctx context.Context, client models.Client) (int64, error) {
	const op = "booking.Service.RegisterClient"

	id, err := s.store.CreateClient(ctx, client)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// Submit accepts a booking request for asynchronous processing. The client
// must already be registered; its name and phone are copied into the queue
// envelope so downstream stages need no client lookup. The returned envelope
// only means "accepted for processing" — the conflict check has not run yet.
func (s *Service) Submit(ctx context.Context, email, barber, date, slot string) (models.BookingRequest, error) {
	const op = "booking.Service.Submit"

	if _, err := time.Parse(dateLayout, date); err != nil {
		return models.BookingRequest{}, ErrBadDate
	}
	if _, err := time.Parse(timeLayout, slot); err != nil {
		return models.BookingRequest{}, ErrBadTime
	}

	client, err := s.store.ClientByEmail(ctx, email)
	if err != nil {
		return models.BookingRequest{}, fmt.Errorf("%s: %w", op, err)
	}

	req := models.BookingRequest{
		ClientEmail: client.Email,
		ClientName:  client.FirstName + " " + client.LastName,
		ClientPhone: client.Phone,
		Barber:      barber,
		Date:        date,
		Time:        slot,
	}

	if err := s.queue.Enqueue(ctx, req); err != nil {
		return models.BookingRequest{}, fmt.Errorf("%s: %w", op, err)
	}

	return req, nil
}

func (s *Service) Bookings(ctx context.Context, barber, date string) ([]models.Booking, error) {
	return s.store.Bookings(ctx, barber, date)
}

func (s *Service) Clients(ctx context.Context) ([]models.Client, error) {
	return s.store.Clients(ctx)
}
