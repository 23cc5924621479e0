package shared

import (
	"context"
	"time"

	"roomledger/internal/domain/booking"
	"roomledger/internal/domain/guest"
	"roomledger/internal/domain/room"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: serializable transaction for writes, retried on transient contention
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: read-only transaction for consistent multi-row reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, reads CommandReads) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Rooms() RoomRepository
	Guests() GuestRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	CheckLogs() CheckLogRepository
	Reads() CommandReads
	// Nested runs fn inside a savepoint. An error from fn rolls back only the
	// writes made inside it and is returned unchanged.
	Nested(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// CommandReads are the reads a command needs to validate its guards. Inside a
// Tx they observe the transaction's own writes.
type CommandReads interface {
	RoomByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
	RoomByNumber(ctx context.Context, number string) (*room.Room, error)
	RoomIDs(ctx context.Context) ([]uuid.UUID, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	BookingByReference(ctx context.Context, ref booking.Reference) (*booking.Booking, error)
	ReferenceExists(ctx context.Context, ref booking.Reference) (bool, error)
	// RoomOccupancies lists bookings on the room whose status is in statuses
	// and whose check-out is strictly after endingAfter.
	RoomOccupancies(ctx context.Context, roomID uuid.UUID, statuses booking.StatusSet, endingAfter time.Time) ([]booking.Occupancy, error)
	GuestByID(ctx context.Context, id uuid.UUID) (*guest.Guest, error)
	GuestByEmail(ctx context.Context, email guest.Email) (*guest.Guest, error)
	IdempotencyByKey(ctx context.Context, key string, scope IdempotencyScope) (*IdempotencyRecord, error)
}

type BookingRepository interface {
	Insert(ctx context.Context, b *booking.Booking) error
	Update(ctx context.Context, b *booking.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type RoomRepository interface {
	Insert(ctx context.Context, r *room.Room) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status room.Status) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GuestRepository interface {
	Insert(ctx context.Context, g *guest.Guest) error
	UpdateCredential(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type IdempotencyRepository interface {
	// TryInsert returns false when (key, scope) is already recorded.
	TryInsert(ctx context.Context, rec IdempotencyRecord) (bool, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}

type CheckLogRepository interface {
	Append(ctx context.Context, entry CheckLogEntry) error
}
