package models

// StatusConfirmed is the only booking status in this design: bookings are
// created confirmed and never updated or cancelled.
const StatusConfirmed = "confirmed"

type Client struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type Booking struct {
	ID          string `json:"id"`
	ClientEmail string `json:"client_email"`
	Barber      string `json:"barber"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status"`
}

// BookingRequest is the envelope that travels through the queue between
// ingestion and the validator. Client name and phone are resolved at submit
// time so the notifier never needs its own store access.
type BookingRequest struct {
	ClientEmail string `json:"client_email"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	Barber      string `json:"barber"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

type NotificationEvent struct {
	Channel Channel `json:"channel"`
	To      string  `json:"to"`
	Subject string  `json:"subject,omitempty"`
	Body    string  `json:"body"`
}
