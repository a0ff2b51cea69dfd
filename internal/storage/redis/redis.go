package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SlotGuard is a fast-path reservation check in front of the main store.
// Reserving a slot is a single SETNX, so two racing requests for the same
// (barber, date, time) can never both pass. Keys expire at the end of the
// booked day.
type SlotGuard struct {
	client *redis.Client
}

func New(ctx context.Context, address string, password string, db int) (*SlotGuard, error) {
	const op = "storage.redis.New"

	rdb := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &SlotGuard{client: rdb}, nil
}

// Reserve marks the slot as taken and reports whether it was free before.
func (g *SlotGuard) Reserve(ctx context.Context, barber, date, slot string) (bool, error) {
	const op = "storage.redis.Reserve"

	key := fmt.Sprintf("booking:%s:%s:%s", barber, date, slot)

	free, err := g.client.SetNX(ctx, key, 1, reservationTTL(date)).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return free, nil
}

// reservationTTL держит ключ до конца забронированного дня.
func reservationTTL(date string) time.Duration {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return 24 * time.Hour
	}

	endOfDay := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, time.Local)

	ttl := time.Until(endOfDay)
	if ttl <= 0 {
		// Bookings for past dates are not rejected elsewhere, so keep the
		// guard working for them too.
		return time.Hour
	}

	return ttl
}

// Close закрывает соединение с базой данных.
func (g *SlotGuard) Close() {
	g.client.Close()
}
