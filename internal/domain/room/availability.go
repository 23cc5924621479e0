package room

import (
	"time"

	"roomledger/internal/domain/booking"
	"roomledger/internal/pkg/clock"
)

// Status is derived from the room's bookings and never set by clients.
type Status string

const (
	StatusAvailable Status = "available"
	StatusBooked    Status = "booked"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusBooked:
		return true
	default:
		return false
	}
}

// IsActive reports whether o keeps a room booked on today: an occupying status
// and a checkout on or after today.
func IsActive(o booking.Occupancy, today time.Time) bool {
	return booking.OccupyingStatuses.Contains(o.Status) && !o.Period.CheckOut().Before(clock.DateOf(today))
}

// DeriveStatus is booked iff at least one occupancy is active.
func DeriveStatus(occupancies []booking.Occupancy, today time.Time) Status {
	for _, o := range occupancies {
		if IsActive(o, today) {
			return StatusBooked
		}
	}
	return StatusAvailable
}

// ApplyDerived records the derived status, reporting whether it changed.
func (r *Room) ApplyDerived(derived Status) bool {
	if r.status == derived {
		return false
	}
	r.status = derived
	return true
}

// EnsureDeletable rejects deletion while an active booking references the room.
func EnsureDeletable(occupancies []booking.Occupancy, today time.Time) error {
	if DeriveStatus(occupancies, today) == StatusBooked {
		return ErrHasActiveBooking
	}
	return nil
}
