package notifications

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies a booking lifecycle event on the wire
type EventType string

const (
	EventBookingCreated   EventType = "booking.created"
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingRejected  EventType = "booking.rejected"
	EventBookingCancelled EventType = "booking.cancelled"
	EventBookingCompleted EventType = "booking.completed"
)

// BookingEvent is the payload published for every booking status change.
// Keyed by booking id so all events for one booking land on one partition.
type BookingEvent struct {
	EventType  EventType `json:"event_type"`
	BookingID  uuid.UUID `json:"booking_id"`
	BookingRef string    `json:"booking_ref"`
	UserID     uuid.UUID `json:"user_id"`
	InstanceID uuid.UUID `json:"instance_id"`
	SeatCount  int       `json:"seat_count"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurred_at"`
}
