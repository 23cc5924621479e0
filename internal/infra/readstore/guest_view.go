package readstore

import (
	"context"

	"roomledger/internal/infra"
	"roomledger/internal/infra/db"
	"roomledger/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

type GuestViewStore struct {
	db db.DBTX
}

func NewGuestViewStore(db db.DBTX) *GuestViewStore {
	return &GuestViewStore{db: db}
}

var _ queries.GuestViewRepo = (*GuestViewStore)(nil)

func (s *GuestViewStore) List(ctx context.Context, search string, limit, offset int) ([]*queries.GuestView, int, error) {
	args := pgx.NamedArgs{
		"search": "%" + escapeLike(search) + "%",
		"limit":  limit,
		"offset": offset,
	}
	const where = `(g.full_name ILIKE @search OR g.email ILIKE @search)`

	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM guests g WHERE `+where, args).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count guests", err)
	}

	q := `
		SELECT g.id, g.full_name, g.email, g.phone, g.password_hash IS NOT NULL,
		       (SELECT count(*) FROM bookings b WHERE b.guest_id = g.id),
		       g.created_at
		FROM guests g
		WHERE ` + where + `
		ORDER BY g.full_name, g.id
		LIMIT @limit OFFSET @offset`

	rows, err := s.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list guests", err)
	}
	defer rows.Close()

	var items []*queries.GuestView
	for rows.Next() {
		var v queries.GuestView
		if err := rows.Scan(&v.ID, &v.FullName, &v.Email, &v.Phone, &v.HasAccount, &v.BookingCount, &v.CreatedAt); err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan guest view", err)
		}
		items = append(items, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate guests", err)
	}
	return items, total, nil
}
