package repository

import (
	"context"

	"roomledger/internal/infra"
	"roomledger/internal/infra/db"
	"roomledger/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
)

type CheckLogRepository struct {
	db db.DBTX
}

func NewCheckLogRepository(db db.DBTX) *CheckLogRepository {
	return &CheckLogRepository{db: db}
}

func (r *CheckLogRepository) Append(ctx context.Context, entry shared.CheckLogEntry) error {
	const q = `
		INSERT INTO check_logs (booking_id, action, handled_by, action_time)
		VALUES (@booking_id, @action, @handled_by, @action_time)`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"booking_id":  entry.BookingID,
		"action":      string(entry.Action),
		"handled_by":  entry.HandledBy,
		"action_time": entry.At,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to append check log", err)
	}
	return nil
}
