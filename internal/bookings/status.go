package bookings

import "github.com/go-playground/validator/v10"

// Status is the booking lifecycle state
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed
func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo enforces the booking state machine:
// PENDING -> CONFIRMED | REJECTED | CANCELLED
// CONFIRMED -> COMPLETED | CANCELLED
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusConfirmed || target == StatusRejected || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusCompleted || target == StatusCancelled
	}
	return false
}

// HoldsSeats reports whether the status contributes to an instance's held
// seat counter. Only pending bookings hold seats.
func (s Status) HoldsSeats() bool {
	return s == StatusPending
}

// OccupiesCapacity reports whether the status contributes to seats_booked
func (s Status) OccupiesCapacity() bool {
	return s == StatusConfirmed || s == StatusCompleted
}

// StatusValidator backs the "bookingstatus" binding tag, registered at startup
func StatusValidator(fl validator.FieldLevel) bool {
	return Status(fl.Field().String()).IsValid()
}

// PaymentStatus is the lifecycle of a payment record
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted:
		return true
	}
	return false
}
