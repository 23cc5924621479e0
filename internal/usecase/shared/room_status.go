package shared

import (
	"context"
	"time"

	"roomledger/internal/domain/booking"
	"roomledger/internal/domain/room"

	"github.com/google/uuid"
)

// RefreshRoomStatus re-derives the room's status from its active bookings and
// writes it only when it changed. Must run in the same Tx as the booking write.
func RefreshRoomStatus(ctx context.Context, tx Tx, roomID uuid.UUID, today time.Time) (room.Status, bool, error) {
	r, err := tx.Reads().RoomByID(ctx, roomID)
	if err != nil {
		return "", false, NotFoundAs(err, room.ErrNotFound)
	}

	// checkout >= today  <=>  checkout > yesterday
	occs, err := tx.Reads().RoomOccupancies(ctx, roomID, booking.OccupyingStatuses, today.AddDate(0, 0, -1))
	if err != nil {
		return "", false, err
	}

	derived := room.DeriveStatus(occs, today)
	if !r.ApplyDerived(derived) {
		return derived, false, nil
	}
	if err := tx.Rooms().UpdateStatus(ctx, roomID, derived); err != nil {
		return "", false, err
	}
	return derived, true, nil
}

// RefreshRooms refreshes each distinct non-nil room once.
func RefreshRooms(ctx context.Context, tx Tx, today time.Time, roomIDs ...*uuid.UUID) error {
	seen := make(map[uuid.UUID]struct{}, len(roomIDs))
	for _, id := range roomIDs {
		if id == nil || *id == uuid.Nil {
			continue
		}
		if _, dup := seen[*id]; dup {
			continue
		}
		seen[*id] = struct{}{}
		if _, _, err := RefreshRoomStatus(ctx, tx, *id, today); err != nil {
			return err
		}
	}
	return nil
}
