package readstore

import (
	"context"
	"time"

	"roomledger/internal/domain/booking"
	"roomledger/internal/domain/guest"
	"roomledger/internal/domain/room"
	"roomledger/internal/infra"
	"roomledger/internal/infra/db"
	"roomledger/internal/pkg/pgconv"
	"roomledger/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// CommandReadStore loads domain entities for command guards. Bound to a
// transaction it observes that transaction's own writes.
type CommandReadStore struct {
	db db.DBTX
}

func NewCommandReadStore(db db.DBTX) *CommandReadStore {
	return &CommandReadStore{db: db}
}

var _ shared.CommandReads = (*CommandReadStore)(nil)

const roomColumns = `id, room_number, category, price::text, description, status, created_at`

func (r *CommandReadStore) RoomByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	row := r.db.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = @id`, pgx.NamedArgs{"id": id})
	return scanRoom(row, "failed to find room by ID")
}

func (r *CommandReadStore) RoomByNumber(ctx context.Context, number string) (*room.Room, error) {
	row := r.db.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE room_number = @number`, pgx.NamedArgs{"number": number})
	return scanRoom(row, "failed to find room by number")
}

func (r *CommandReadStore) RoomIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM rooms ORDER BY room_number`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list room ids", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan room ids", err)
	}
	return ids, nil
}

func scanRoom(row pgx.Row, msg string) (*room.Room, error) {
	var (
		id                 uuid.UUID
		number, category   string
		price, description string
		status             string
		createdAt          time.Time
	)
	if err := row.Scan(&id, &number, &category, &price, &description, &status, &createdAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr(msg, err)
	}
	amount, err := pgconv.DecimalFromText(price)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid room price", err)
	}
	return room.Reconstruct(id, number, category, amount, description, room.Status(status), createdAt), nil
}

const bookingColumns = `id, reference, guest_id, room_id, check_in_date, check_out_date,
	status, payment_status, created_at, updated_at`

func (r *CommandReadStore) BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = @id`, pgx.NamedArgs{"id": id})
	return scanBooking(row, "failed to find booking by ID")
}

func (r *CommandReadStore) BookingByReference(ctx context.Context, ref booking.Reference) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE reference = @reference`,
		pgx.NamedArgs{"reference": ref.String()})
	return scanBooking(row, "failed to find booking by reference")
}

func scanBooking(row pgx.Row, msg string) (*booking.Booking, error) {
	var (
		id, guestID          uuid.UUID
		reference            string
		roomID               pgtype.UUID
		checkIn, checkOut    pgtype.Date
		status, payment      string
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&id, &reference, &guestID, &roomID, &checkIn, &checkOut, &status, &payment, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr(msg, err)
	}

	period, err := booking.NewStayPeriod(pgconv.DateFromPgtype(checkIn), pgconv.DateFromPgtype(checkOut))
	if err != nil {
		return nil, infra.WrapRepoErr("invalid stored stay period", err)
	}
	return booking.Reconstruct(
		id,
		booking.Reference(reference),
		guestID,
		pgconv.UUIDPtrFromPgtype(roomID),
		period,
		booking.Status(status),
		booking.PaymentStatus(payment),
		createdAt,
		updatedAt,
	), nil
}

func (r *CommandReadStore) ReferenceExists(ctx context.Context, ref booking.Reference) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE reference = @reference)`,
		pgx.NamedArgs{"reference": ref.String()}).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check booking reference", err)
	}
	return exists, nil
}

func (r *CommandReadStore) RoomOccupancies(
	ctx context.Context,
	roomID uuid.UUID,
	statuses booking.StatusSet,
	endingAfter time.Time,
) ([]booking.Occupancy, error) {
	const q = `
		SELECT id, check_in_date, check_out_date, status
		FROM bookings
		WHERE room_id = @room_id
		  AND status = ANY(@statuses)
		  AND check_out_date > @ending_after
		ORDER BY check_in_date`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"room_id":      roomID,
		"statuses":     statuses.Strings(),
		"ending_after": pgconv.DateToPgtype(endingAfter),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list room occupancies", err)
	}
	defer rows.Close()

	var result []booking.Occupancy
	for rows.Next() {
		var (
			id                uuid.UUID
			checkIn, checkOut pgtype.Date
			status            string
		)
		if err := rows.Scan(&id, &checkIn, &checkOut, &status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan occupancy", err)
		}
		period, err := booking.NewStayPeriod(pgconv.DateFromPgtype(checkIn), pgconv.DateFromPgtype(checkOut))
		if err != nil {
			return nil, infra.WrapRepoErr("invalid stored stay period", err)
		}
		result = append(result, booking.Occupancy{
			BookingID: id,
			RoomID:    roomID,
			Period:    period,
			Status:    booking.Status(status),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate occupancies", err)
	}
	return result, nil
}

const guestColumns = `id, full_name, email, phone, password_hash, created_at`

func (r *CommandReadStore) GuestByID(ctx context.Context, id uuid.UUID) (*guest.Guest, error) {
	row := r.db.QueryRow(ctx, `SELECT `+guestColumns+` FROM guests WHERE id = @id`, pgx.NamedArgs{"id": id})
	return scanGuest(row, "failed to find guest by ID")
}

func (r *CommandReadStore) GuestByEmail(ctx context.Context, email guest.Email) (*guest.Guest, error) {
	row := r.db.QueryRow(ctx, `SELECT `+guestColumns+` FROM guests WHERE lower(email) = @email`,
		pgx.NamedArgs{"email": email.Value()})
	return scanGuest(row, "failed to find guest by email")
}

func scanGuest(row pgx.Row, msg string) (*guest.Guest, error) {
	var (
		id                     uuid.UUID
		fullName, email, phone string
		passwordHash           pgtype.Text
		createdAt              time.Time
	)
	if err := row.Scan(&id, &fullName, &email, &phone, &passwordHash, &createdAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("guest not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr(msg, err)
	}
	addr, err := guest.NewEmail(email)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid stored guest email", err)
	}
	return guest.Reconstruct(id, fullName, addr, phone, pgconv.StringPtrFromPgtype(passwordHash), createdAt), nil
}

func (r *CommandReadStore) IdempotencyByKey(ctx context.Context, key string, scope shared.IdempotencyScope) (*shared.IdempotencyRecord, error) {
	const q = `
		SELECT key, scope, request_hash, booking_id, created_at
		FROM idempotency_keys
		WHERE key = @key AND scope = @scope`

	var (
		rec      shared.IdempotencyRecord
		rawScope string
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key, "scope": string(scope)}).
		Scan(&rec.Key, &rawScope, &rec.RequestHash, &rec.BookingID, &rec.CreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}
	rec.Scope = shared.IdempotencyScope(rawScope)
	return &rec, nil
}
