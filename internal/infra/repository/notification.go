package repository

import (
	"context"
	"time"

	"roomledger/internal/infra"
	"roomledger/internal/infra/db"

	"github.com/jackc/pgx/v5"
)

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(db db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// CreateJob enqueues an outbox row; delivery happens outside the request path.
func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	const q = `
		INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
		VALUES (@kind, @topic, @payload, @run_at, 'pending')`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"kind":    kind,
		"topic":   topic,
		"payload": payload,
		"run_at":  runAt,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}
