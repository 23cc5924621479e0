package readstore

import (
	"context"
	"strings"
	"time"

	"roomledger/internal/infra"
	"roomledger/internal/infra/db"
	"roomledger/internal/pkg/pgconv"
	"roomledger/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingViewStore struct {
	db db.DBTX
}

func NewBookingViewStore(db db.DBTX) *BookingViewStore {
	return &BookingViewStore{db: db}
}

var _ queries.BookingViewRepo = (*BookingViewStore)(nil)

const bookingViewSelect = `
	SELECT b.id, b.reference, b.guest_id, g.full_name, g.email, g.phone,
	       b.room_id, r.room_number, r.category, r.price::text,
	       b.check_in_date, b.check_out_date, b.status, b.payment_status,
	       b.created_at, b.updated_at
	FROM bookings b
	JOIN guests g ON g.id = b.guest_id
	LEFT JOIN rooms r ON r.id = b.room_id`

func (s *BookingViewStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := s.db.QueryRow(ctx, bookingViewSelect+` WHERE b.id = @id`, pgx.NamedArgs{"id": id})
	return scanBookingView(row, "failed to find booking view by ID")
}

func (s *BookingViewStore) FindByReference(ctx context.Context, ref string) (*queries.BookingView, error) {
	row := s.db.QueryRow(ctx, bookingViewSelect+` WHERE b.reference = @reference`,
		pgx.NamedArgs{"reference": strings.ToUpper(ref)})
	return scanBookingView(row, "failed to find booking view by reference")
}

func (s *BookingViewStore) List(ctx context.Context, filter queries.BookingFilter, limit, offset int) ([]*queries.BookingView, int, error) {
	where, args := bookingListWhere(filter)

	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM bookings b WHERE `+where, args).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count bookings", err)
	}

	args["limit"] = limit
	args["offset"] = offset
	q := bookingViewSelect + ` WHERE ` + where + `
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT @limit OFFSET @offset`

	rows, err := s.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	items := make([]*queries.BookingView, 0, limit)
	for rows.Next() {
		v, err := scanBookingView(rows, "failed to scan booking view")
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return items, total, nil
}

// bookingListWhere builds the filter over alias b. Only fixed fragments are
// concatenated; every value is a named argument.
func bookingListWhere(filter queries.BookingFilter) (string, pgx.NamedArgs) {
	today := clockDate(filter.Today)
	conds := []string{"TRUE"}
	args := pgx.NamedArgs{
		"today":    today,
		"week_ago": clockDate(filter.Today.AddDate(0, 0, -queries.UpcomingDays)),
		"horizon":  clockDate(filter.Today.AddDate(0, 0, queries.UpcomingDays)),
	}

	if len(filter.Statuses) > 0 {
		conds = append(conds, "b.status = ANY(@statuses)")
		args["statuses"] = filter.Statuses.Strings()
	}

	switch filter.Window {
	case queries.WindowToday:
		conds = append(conds, "b.check_in_date <= @today AND b.check_out_date >= @today")
	case queries.WindowWeek:
		conds = append(conds, "b.created_at >= @week_ago")
	case queries.WindowUpcoming:
		conds = append(conds, "b.check_in_date BETWEEN @today AND @horizon AND b.status = 'booked'")
	}

	if filter.Search != "" {
		conds = append(conds, "b.reference ILIKE @search")
		args["search"] = "%" + escapeLike(filter.Search) + "%"
	}

	return strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func clockDate(t time.Time) pgtype.Date {
	return pgconv.DateToPgtype(t)
}

func (s *BookingViewStore) CountPriorities(ctx context.Context, today time.Time) (*queries.Priorities, error) {
	const q = `
		SELECT
			count(*) FILTER (WHERE check_in_date = @today AND status = 'booked'),
			count(*) FILTER (WHERE check_out_date = @today AND status = 'checked-in'),
			count(*) FILTER (WHERE payment_status = 'pending' AND check_in_date <= @today
			                   AND status IN ('booked', 'checked-in')),
			count(*) FILTER (WHERE created_at >= @week_ago),
			count(*) FILTER (WHERE check_in_date BETWEEN @today AND @horizon AND status = 'booked'),
			count(*) FILTER (WHERE check_in_date <= @today AND check_out_date >= @today
			                   AND status IN ('booked', 'checked-in'))
		FROM bookings`

	var p queries.Priorities
	err := s.db.QueryRow(ctx, q, pgx.NamedArgs{
		"today":    clockDate(today),
		"week_ago": clockDate(today.AddDate(0, 0, -queries.UpcomingDays)),
		"horizon":  clockDate(today.AddDate(0, 0, queries.UpcomingDays)),
	}).Scan(
		&p.CheckInsToday,
		&p.CheckOutsToday,
		&p.OverduePayments,
		&p.RecentBookings,
		&p.UpcomingCheckIns,
		&p.TotalBookingsToday,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count dashboard priorities", err)
	}
	return &p, nil
}

func scanBookingView(row pgx.Row, msg string) (*queries.BookingView, error) {
	var (
		v                           queries.BookingView
		roomID                      pgtype.UUID
		roomNumber, category, price pgtype.Text
		checkIn, checkOut           pgtype.Date
	)
	err := row.Scan(
		&v.ID, &v.Reference, &v.GuestID, &v.GuestName, &v.GuestEmail, &v.GuestPhone,
		&roomID, &roomNumber, &category, &price,
		&checkIn, &checkOut, &v.Status, &v.PaymentStatus,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr(msg, err)
	}

	v.RoomID = pgconv.UUIDPtrFromPgtype(roomID)
	v.RoomNumber = pgconv.StringPtrFromPgtype(roomNumber)
	v.RoomCategory = pgconv.StringPtrFromPgtype(category)
	if price.Valid {
		amount, err := pgconv.DecimalFromText(price.String)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid room price", err)
		}
		v.NightlyPrice = &amount
	}
	v.CheckIn = pgconv.DateFromPgtype(checkIn)
	v.CheckOut = pgconv.DateFromPgtype(checkOut)
	return &v, nil
}
