package storage

import "errors"

var (
	ErrSlotTaken      = errors.New("slot is already booked")
	ErrClientExists   = errors.New("client is already registered")
	ErrClientNotFound = errors.New("client is not found")
)
