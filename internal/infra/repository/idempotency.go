package repository

import (
	"context"

	"roomledger/internal/infra"
	"roomledger/internal/infra/db"
	"roomledger/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
)

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(db db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: db}
}

func (r *IdempotencyRepository) TryInsert(ctx context.Context, rec shared.IdempotencyRecord) (bool, error) {
	const q = `
		INSERT INTO idempotency_keys (key, scope, request_hash, booking_id, created_at)
		VALUES (@key, @scope, @request_hash, @booking_id, @created_at)
		ON CONFLICT (key, scope) DO NOTHING`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"key":          rec.Key,
		"scope":        string(rec.Scope),
		"request_hash": rec.RequestHash,
		"booking_id":   rec.BookingID,
		"created_at":   rec.CreatedAt,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}
