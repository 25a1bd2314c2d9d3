package tours

type InstanceStatus string

const (
	InstanceStatusOpen    InstanceStatus = "OPEN"
	InstanceStatusSoldOut InstanceStatus = "SOLD_OUT"
	InstanceStatusClosed  InstanceStatus = "CLOSED"
)

// IsValid checks if the instance status is valid
func (s InstanceStatus) IsValid() bool {
	switch s {
	case InstanceStatusOpen, InstanceStatusSoldOut, InstanceStatusClosed:
		return true
	}
	return false
}

// String returns the string representation of InstanceStatus
func (s InstanceStatus) String() string {
	return string(s)
}

// DeriveStatus computes the derived instance status from confirmed seats.
// SOLD_OUT iff seatsBooked >= capacity; a sold-out instance reopens when
// confirmed seats free up. CLOSED is an operator decision and is never
// overridden here. Held seats do not affect the derived status.
func DeriveStatus(capacity, seatsBooked int, current InstanceStatus) InstanceStatus {
	if current == InstanceStatusClosed {
		return InstanceStatusClosed
	}
	if seatsBooked >= capacity {
		return InstanceStatusSoldOut
	}
	return InstanceStatusOpen
}
