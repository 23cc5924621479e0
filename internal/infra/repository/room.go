package repository

import (
	"context"

	"roomledger/internal/domain/room"
	"roomledger/internal/infra"
	"roomledger/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RoomRepository struct {
	db db.DBTX
}

func NewRoomRepository(db db.DBTX) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Insert(ctx context.Context, rm *room.Room) error {
	const q = `
		INSERT INTO rooms (id, room_number, category, price, description, status, created_at, updated_at)
		VALUES (@id, @room_number, @category, @price::numeric, @description, @status, @created_at, @created_at)`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"id":          rm.ID(),
		"room_number": rm.Number(),
		"category":    rm.Category(),
		"price":       rm.Price().StringFixed(2),
		"description": rm.Description(),
		"status":      rm.Status().String(),
		"created_at":  rm.CreatedAt(),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to insert room", err)
	}
	return nil
}

func (r *RoomRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status room.Status) error {
	const q = `UPDATE rooms SET status = @status, updated_at = now() WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "status": status.String()})
	if err != nil {
		return infra.WrapRepoErr("failed to update room status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("room not found")
	}
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM rooms WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return infra.WrapRepoErr("failed to delete room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("room not found")
	}
	return nil
}
