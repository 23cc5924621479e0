package shared

import (
	"context"

	"roomledger/internal/domain/booking"
	"roomledger/internal/pkg/errs"

	"github.com/google/uuid"
)

type OverlapQuery struct {
	RoomID    uuid.UUID
	Period    booking.StayPeriod
	Occupying booking.StatusSet
	// Exclude skips the booking being modified.
	Exclude uuid.UUID
}

// HasOverlap loads the room's candidate occupancies through reads, then applies
// the half-open overlap rule. Call it inside the unit of work that will write.
func HasOverlap(ctx context.Context, reads CommandReads, q OverlapQuery) (bool, error) {
	_, found, err := firstConflict(ctx, reads, q)
	return found, err
}

// EnsureNoOverlap returns booking.ErrRoomBooked when the room is taken.
func EnsureNoOverlap(ctx context.Context, reads CommandReads, q OverlapQuery) error {
	conflict, found, err := firstConflict(ctx, reads, q)
	if err != nil {
		return err
	}
	if found {
		return errs.Wrapf(booking.ErrRoomBooked, "room %s %s overlaps booking %s (%s)",
			q.RoomID, q.Period, conflict.BookingID, conflict.Period)
	}
	return nil
}

func firstConflict(ctx context.Context, reads CommandReads, q OverlapQuery) (booking.Occupancy, bool, error) {
	occupying := q.Occupying
	if len(occupying) == 0 {
		occupying = booking.OccupyingStatuses
	}
	// existing.check_out > new.check_in is half of the predicate; prefilter on it
	existing, err := reads.RoomOccupancies(ctx, q.RoomID, occupying, q.Period.CheckIn())
	if err != nil {
		return booking.Occupancy{}, false, err
	}
	conflict, found := booking.FirstConflict(existing, q.Period, occupying, q.Exclude)
	return conflict, found, nil
}
