package tours

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name        string
		capacity    int
		seatsBooked int
		current     InstanceStatus
		want        InstanceStatus
	}{
		{"open with free seats", 10, 4, InstanceStatusOpen, InstanceStatusOpen},
		{"sold out at capacity", 10, 10, InstanceStatusOpen, InstanceStatusSoldOut},
		{"sold out over capacity", 10, 12, InstanceStatusOpen, InstanceStatusSoldOut},
		{"reopens when seats free up", 10, 9, InstanceStatusSoldOut, InstanceStatusOpen},
		{"closed is never overridden", 10, 0, InstanceStatusClosed, InstanceStatusClosed},
		{"closed stays closed at capacity", 10, 10, InstanceStatusClosed, InstanceStatusClosed},
		{"zero capacity is sold out", 0, 0, InstanceStatusOpen, InstanceStatusSoldOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(tt.capacity, tt.seatsBooked, tt.current)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAvailableSeats(t *testing.T) {
	instance := &TourInstance{Capacity: 10, SeatsBooked: 6, SeatsHeld: 20}
	assert.Equal(t, 4, instance.AvailableSeats())

	// held seats never reduce availability
	instance.SeatsHeld = 100
	assert.Equal(t, 4, instance.AvailableSeats())

	instance.SeatsBooked = 12
	assert.Equal(t, 0, instance.AvailableSeats())
}

func TestIsOpen(t *testing.T) {
	assert.True(t, (&TourInstance{Status: InstanceStatusOpen}).IsOpen())
	assert.False(t, (&TourInstance{Status: InstanceStatusSoldOut}).IsOpen())
	assert.False(t, (&TourInstance{Status: InstanceStatusClosed}).IsOpen())
}
