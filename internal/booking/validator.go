package booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"booking_service/internal/models"
	"booking_service/internal/storage"

	"github.com/google/uuid"
)

type Status string

const (
	StatusConfirmed   Status = "confirmed"
	StatusConflict    Status = "conflict"
	StatusInvalidSlot Status = "invalid_slot"
)

// Outcome is the terminal result of validating one queued request.
// Booking is set only on StatusConfirmed, AvailableSlots only on
// StatusConflict.
type Outcome struct {
	Status         Status
	Booking        models.Booking
	AvailableSlots []string
}

// SlotGuard is an optional fast-path reservation check in front of the
// store, e.g. redis SETNX. Reserve reports whether the slot was free.
type SlotGuard interface {
	Reserve(ctx context.Context, barber, date, slot string) (bool, error)
}

type Validator struct {
	store Store
	guard SlotGuard
}

// NewValidator builds the validator. guard may be nil; the store's atomic
// check-and-insert is the authority on conflicts either way.
func NewValidator(store Store, guard SlotGuard) *Validator {
	return &Validator{
		store: store,
		guard: guard,
	}
}

// Validate runs the conflict check for one queued request. A non-nil error
// means the storage layer failed; the outcome is meaningless then and the
// caller decides what to do with the request.
func (v *Validator) Validate(ctx context.Context, req models.BookingRequest) (Outcome, error) {
	const op = "booking.Validator.Validate"

	if !onGrid(req.Time) {
		return Outcome{Status: StatusInvalidSlot}, nil
	}

	if v.guard != nil {
		free, err := v.guard.Reserve(ctx, req.Barber, req.Date, req.Time)
		if err != nil {
			return Outcome{}, fmt.Errorf("%s: %w", op, err)
		}
		if !free {
			return v.conflict(ctx, req)
		}
	}

	b := models.Booking{
		ID:          uuid.NewString(),
		ClientEmail: req.ClientEmail,
		Barber:      req.Barber,
		Date:        req.Date,
		Time:        req.Time,
		Status:      models.StatusConfirmed,
	}

	err := v.store.CreateBooking(ctx, b)
	if errors.Is(err, storage.ErrSlotTaken) {
		return v.conflict(ctx, req)
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("%s: %w", op, err)
	}

	return Outcome{Status: StatusConfirmed, Booking: b}, nil
}

func (v *Validator) conflict(ctx context.Context, req models.BookingRequest) (Outcome, error) {
	const op = "booking.Validator.conflict"

	booked, err := v.store.Bookings(ctx, req.Barber, req.Date)
	if err != nil {
		return Outcome{}, fmt.Errorf("%s: %w", op, err)
	}

	return Outcome{Status: StatusConflict, AvailableSlots: availableSlots(booked)}, nil
}

// onGrid reports whether the time lands on a 30-minute boundary.
func onGrid(slot string) bool {
	parts := strings.SplitN(slot, ":", 2)
	if len(parts) != 2 {
		return false
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}

	return minute == 0 || minute == 30
}
