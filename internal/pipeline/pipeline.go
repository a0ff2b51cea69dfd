package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"booking_service/internal/booking"
	"booking_service/internal/lib/logger/sl"
	"booking_service/internal/models"
	"booking_service/internal/notifier"
)

type Queue interface {
	Dequeue(ctx context.Context) (models.BookingRequest, error)
}

type Validator interface {
	Validate(ctx context.Context, req models.BookingRequest) (booking.Outcome, error)
}

type Notifier interface {
	Notify(ctx context.Context, req models.BookingRequest) []notifier.DispatchResult
}

// Pipeline is the single consumer of the request queue: dequeue, validate,
// and on confirmation fan out notifications. All collaborators are injected
// at construction.
type Pipeline struct {
	log       *slog.Logger
	queue     Queue
	validator Validator
	notifier  Notifier
}

func New(log *slog.Logger, queue Queue, validator Validator, notifier Notifier) *Pipeline {
	return &Pipeline{
		log:       log,
		queue:     queue,
		validator: validator,
		notifier:  notifier,
	}
}

// Run consumes requests until ctx is cancelled. Terminal outcomes are logged
// only: the submitter already got its "accepted" response at enqueue time
// and has no channel for the eventual result.
func (p *Pipeline) Run(ctx context.Context) error {
	const op = "pipeline.Run"

	for {
		req, err := p.queue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		p.process(ctx, req)
	}
}

func (p *Pipeline) process(ctx context.Context, req models.BookingRequest) {
	log := p.log.With(
		slog.String("barber", req.Barber),
		slog.String("date", req.Date),
		slog.String("time", req.Time),
		slog.String("client_email", req.ClientEmail),
	)

	outcome, err := p.validator.Validate(ctx, req)
	if err != nil {
		// No retry here: the request is dropped and the failure logged.
		log.Error("storage failure while validating", sl.Err(err))
		return
	}

	switch outcome.Status {
	case booking.StatusConfirmed:
		log.Info("booking confirmed", slog.String("booking_id", outcome.Booking.ID))

		for _, res := range p.notifier.Notify(ctx, req) {
			if res.Err != nil {
				log.Error("notification dispatch failed",
					slog.String("channel", string(res.Event.Channel)),
					slog.String("to", res.Event.To),
					sl.Err(res.Err),
				)
			}
		}
	case booking.StatusConflict:
		log.Warn("slot already booked",
			slog.Int("available_slots", len(outcome.AvailableSlots)),
		)
	case booking.StatusInvalidSlot:
		log.Warn("time is not on a 30-minute boundary")
	}
}
