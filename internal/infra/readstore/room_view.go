package readstore

import (
	"context"
	"time"

	"roomledger/internal/domain/booking"
	"roomledger/internal/infra"
	"roomledger/internal/infra/db"
	"roomledger/internal/pkg/pgconv"
	"roomledger/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

type RoomViewStore struct {
	db db.DBTX
}

func NewRoomViewStore(db db.DBTX) *RoomViewStore {
	return &RoomViewStore{db: db}
}

var _ queries.RoomViewRepo = (*RoomViewStore)(nil)

// FindAvailable applies the half-open overlap rule in SQL so the scan stays
// on the bookings_room_dates_idx index.
func (s *RoomViewStore) FindAvailable(ctx context.Context, filter queries.AvailabilityFilter) ([]*queries.RoomView, error) {
	const q = `
		SELECT r.id, r.room_number, r.category, r.price::text, r.description, r.status,
		       (SELECT count(*) FROM bookings b
		         WHERE b.room_id = r.id
		           AND b.status = ANY(@occupying)
		           AND b.check_out_date >= @today),
		       r.created_at
		FROM rooms r
		WHERE (@category = '' OR lower(r.category) = lower(@category))
		  AND NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.room_id = r.id
			  AND b.status = ANY(@occupying)
			  AND b.id <> @exclude
			  AND b.check_in_date < @check_out
			  AND b.check_out_date > @check_in
		  )
		ORDER BY r.room_number`

	rows, err := s.db.Query(ctx, q, pgx.NamedArgs{
		"category":  filter.Category,
		"occupying": booking.OccupyingStatuses.Strings(),
		"exclude":   filter.ExcludeBookingID,
		"check_in":  pgconv.DateToPgtype(filter.Period.CheckIn()),
		"check_out": pgconv.DateToPgtype(filter.Period.CheckOut()),
		"today":     pgconv.DateToPgtype(filter.Today),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search available rooms", err)
	}
	return collectRoomViews(rows)
}

func (s *RoomViewStore) List(ctx context.Context, today time.Time, limit, offset int) ([]*queries.RoomView, int, error) {
	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM rooms`).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count rooms", err)
	}

	const q = `
		SELECT r.id, r.room_number, r.category, r.price::text, r.description, r.status,
		       (SELECT count(*) FROM bookings b
		         WHERE b.room_id = r.id
		           AND b.status = ANY(@occupying)
		           AND b.check_out_date >= @today),
		       r.created_at
		FROM rooms r
		ORDER BY r.room_number
		LIMIT @limit OFFSET @offset`

	rows, err := s.db.Query(ctx, q, pgx.NamedArgs{
		"occupying": booking.OccupyingStatuses.Strings(),
		"today":     pgconv.DateToPgtype(today),
		"limit":     limit,
		"offset":    offset,
	})
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list rooms", err)
	}
	items, err := collectRoomViews(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func collectRoomViews(rows pgx.Rows) ([]*queries.RoomView, error) {
	defer rows.Close()

	var items []*queries.RoomView
	for rows.Next() {
		var (
			v     queries.RoomView
			price string
		)
		if err := rows.Scan(&v.ID, &v.Number, &v.Category, &price, &v.Description, &v.Status,
			&v.ActiveBookings, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room view", err)
		}
		amount, err := pgconv.DecimalFromText(price)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid room price", err)
		}
		v.Price = amount
		items = append(items, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate rooms", err)
	}
	return items, nil
}
