package repository

import (
	"context"

	"roomledger/internal/domain/guest"
	"roomledger/internal/infra"
	"roomledger/internal/infra/db"
	"roomledger/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type GuestRepository struct {
	db db.DBTX
}

func NewGuestRepository(db db.DBTX) *GuestRepository {
	return &GuestRepository{db: db}
}

func (r *GuestRepository) Insert(ctx context.Context, g *guest.Guest) error {
	const q = `
		INSERT INTO guests (id, full_name, email, phone, password_hash, created_at)
		VALUES (@id, @full_name, @email, @phone, @password_hash, @created_at)`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"id":            g.ID(),
		"full_name":     g.FullName(),
		"email":         g.Email().Value(),
		"phone":         g.Phone(),
		"password_hash": pgconv.StringPtrToPgtype(g.PasswordHash()),
		"created_at":    g.CreatedAt(),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to insert guest", err)
	}
	return nil
}

func (r *GuestRepository) UpdateCredential(ctx context.Context, id uuid.UUID, passwordHash string) error {
	const q = `UPDATE guests SET password_hash = @password_hash WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "password_hash": passwordHash})
	if err != nil {
		return infra.WrapRepoErr("failed to update guest credential", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("guest not found")
	}
	return nil
}
