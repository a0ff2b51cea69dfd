package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"booking_service/internal/models"
	"booking_service/internal/storage"
)

// Store keeps clients and bookings in process memory. It is the default
// backend and the one used by tests; the postgres store is the durable
// alternative.
type Store struct {
	mu       sync.RWMutex
	clients  map[string]models.Client  // keyed by email
	bookings map[string]models.Booking // keyed by barber|date|time
	nextID   int64
}

func New() *Store {
	return &Store{
		clients:  make(map[string]models.Client),
		bookings: make(map[string]models.Booking),
	}
}

func (s *Store) CreateClient(ctx context.Context, client models.Client) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[client.Email]; ok {
		return 0, storage.ErrClientExists
	}

	s.nextID++
	client.ID = s.nextID
	s.clients[client.Email] = client

	return client.ID, nil
}

func (s *Store) ClientByEmail(ctx context.Context, email string) (models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	client, ok := s.clients[email]
	if !ok {
		return models.Client{}, storage.ErrClientNotFound
	}

	return client, nil
}

func (s *Store) Clients(ctx context.Context) ([]models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	clients := make([]models.Client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}

	sort.Slice(clients, func(i, j int) bool { return clients[i].ID < clients[j].ID })

	return clients, nil
}

// CreateBooking inserts the booking only if its slot is free. Check and
// insert happen under one lock, so two requests racing for the same
// (barber, date, time) can never both succeed.
func (s *Store) CreateBooking(ctx context.Context, booking models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := slotKey(booking.Barber, booking.Date, booking.Time)
	if _, ok := s.bookings[key]; ok {
		return storage.ErrSlotTaken
	}

	s.bookings[key] = booking

	return nil
}

// Bookings returns bookings matching the given barber and date; an empty
// string matches everything.
func (s *Store) Bookings(ctx context.Context, barber, date string) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var bookings []models.Booking
	for _, b := range s.bookings {
		if barber != "" && b.Barber != barber {
			continue
		}
		if date != "" && b.Date != date {
			continue
		}
		bookings = append(bookings, b)
	}

	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].Date != bookings[j].Date {
			return bookings[i].Date < bookings[j].Date
		}
		return bookings[i].Time < bookings[j].Time
	})

	return bookings, nil
}

func slotKey(barber, date, slot string) string {
	return fmt.Sprintf("%s|%s|%s", barber, date, slot)
}
