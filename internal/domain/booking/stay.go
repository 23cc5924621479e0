package booking

import (
	"strings"
	"time"

	"roomledger/internal/pkg/clock"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// StayPeriod is the half-open night range [checkIn, checkOut).
type StayPeriod struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayPeriod(checkIn, checkOut time.Time) (StayPeriod, error) {
	in, out := clock.DateOf(checkIn), clock.DateOf(checkOut)
	if !out.After(in) {
		return StayPeriod{}, ErrCheckOutNotAfter
	}
	return StayPeriod{checkIn: in, checkOut: out}, nil
}

func ParseStayPeriod(checkIn, checkOut string) (StayPeriod, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return StayPeriod{}, err
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return StayPeriod{}, err
	}
	return NewStayPeriod(in, out)
}

func (p StayPeriod) CheckIn() time.Time  { return p.checkIn }
func (p StayPeriod) CheckOut() time.Time { return p.checkOut }

func (p StayPeriod) Nights() int {
	return int(p.checkOut.Sub(p.checkIn).Hours() / 24)
}

func (p StayPeriod) IsZero() bool {
	return p.checkIn.IsZero() && p.checkOut.IsZero()
}

// ValidateStart rejects periods that begin before today.
func (p StayPeriod) ValidateStart(today time.Time) error {
	if p.checkIn.Before(clock.DateOf(today)) {
		return ErrCheckInInPast
	}
	return nil
}

// Overlaps reports whether two periods share at least one night. A checkout on
// day D and a check-in on day D do not conflict.
func (p StayPeriod) Overlaps(other StayPeriod) bool {
	return p.checkIn.Before(other.checkOut) && p.checkOut.After(other.checkIn)
}

// Includes reports whether day falls within [checkIn, checkOut] inclusive.
func (p StayPeriod) Includes(day time.Time) bool {
	d := clock.DateOf(day)
	return !d.Before(p.checkIn) && !d.After(p.checkOut)
}

func (p StayPeriod) String() string {
	return p.checkIn.Format(DateLayout) + "/" + p.checkOut.Format(DateLayout)
}

// Occupancy is the slice of a booking the overlap and room-status rules need.
type Occupancy struct {
	BookingID uuid.UUID
	RoomID    uuid.UUID
	Period    StayPeriod
	Status    Status
}

// FirstConflict returns the first occupancy in existing that blocks candidate.
// Entries whose status is outside occupying, or whose id equals exclude, never
// block.
func FirstConflict(existing []Occupancy, candidate StayPeriod, occupying StatusSet, exclude uuid.UUID) (Occupancy, bool) {
	if len(occupying) == 0 {
		occupying = OccupyingStatuses
	}
	for _, o := range existing {
		if exclude != uuid.Nil && o.BookingID == exclude {
			continue
		}
		if !occupying.Contains(o.Status) {
			continue
		}
		if o.Period.Overlaps(candidate) {
			return o, true
		}
	}
	return Occupancy{}, false
}

func Overlaps(existing []Occupancy, candidate StayPeriod, occupying StatusSet, exclude uuid.UUID) bool {
	_, found := FirstConflict(existing, candidate, occupying, exclude)
	return found
}
