package queue

import (
	"context"
	"sync"

	"booking_service/internal/models"
)

// Memory is an unbounded in-process FIFO between the ingestion handlers
// (many producers) and the pipeline (single consumer). Enqueue never blocks;
// Dequeue suspends on a signal channel until an item arrives instead of
// polling. Contents do not survive a process restart.
type Memory struct {
	mu     sync.Mutex
	items  []models.BookingRequest
	notify chan struct{}
}

func NewMemory() *Memory {
	return &Memory{
		notify: make(chan struct{}, 1),
	}
}

func (q *Memory) Enqueue(ctx context.Context, req models.BookingRequest) error {
	q.mu.Lock()
	q.items = append(q.items, req)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}

	return nil
}

// Dequeue removes and returns the head of the queue, blocking until an item
// is available or ctx is done.
func (q *Memory) Dequeue(ctx context.Context) (models.BookingRequest, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			req := q.items[0]
			q.items = q.items[1:]
			q.mu.Unlock()
			return req, nil
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return models.BookingRequest{}, ctx.Err()
		case <-q.notify:
		}
	}
}

func (q *Memory) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}
