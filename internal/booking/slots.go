package booking

import (
	"fmt"

	"booking_service/internal/models"
)

// Business hours: 08:00 up to (not including) 18:00, 30-minute grid,
// 20 slots per barber per day.
const (
	openingHour = 8
	closingHour = 18
)

func slotUniverse() []string {
	slots := make([]string, 0, (closingHour-openingHour)*2)
	for h := openingHour; h < closingHour; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h), fmt.Sprintf("%02d:30", h))
	}

	return slots
}

// availableSlots returns the slot universe minus the times already booked,
// in ascending order. It is recomputed for every conflict since bookings
// mutate between requests.
func availableSlots(booked []models.Booking) []string {
	occupied := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		occupied[b.Time] = struct{}{}
	}

	var free []string
	for _, slot := range slotUniverse() {
		if _, ok := occupied[slot]; !ok {
			free = append(free, slot)
		}
	}

	return free
}
