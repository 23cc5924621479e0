package repository

import (
	"context"

	"roomledger/internal/domain/booking"
	"roomledger/internal/infra"
	"roomledger/internal/infra/db"
	"roomledger/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(db db.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Insert(ctx context.Context, b *booking.Booking) error {
	const q = `
		INSERT INTO bookings (id, reference, guest_id, room_id, check_in_date, check_out_date,
		                      status, payment_status, created_at, updated_at)
		VALUES (@id, @reference, @guest_id, @room_id, @check_in, @check_out,
		        @status, @payment_status, @created_at, @updated_at)`

	_, err := r.db.Exec(ctx, q, bookingArgs(b))
	if err != nil {
		return infra.WrapRepoErr("failed to insert booking", err)
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	const q = `
		UPDATE bookings
		SET guest_id = @guest_id,
		    room_id = @room_id,
		    check_in_date = @check_in,
		    check_out_date = @check_out,
		    status = @status,
		    payment_status = @payment_status,
		    updated_at = @updated_at
		WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, bookingArgs(b))
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("booking not found")
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("booking not found")
	}
	return nil
}

func bookingArgs(b *booking.Booking) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":             b.ID(),
		"reference":      b.Reference().String(),
		"guest_id":       b.GuestID(),
		"room_id":        pgconv.UUIDPtrToPgtype(b.RoomID()),
		"check_in":       pgconv.DateToPgtype(b.Period().CheckIn()),
		"check_out":      pgconv.DateToPgtype(b.Period().CheckOut()),
		"status":         b.Status().String(),
		"payment_status": b.PaymentStatus().String(),
		"created_at":     b.CreatedAt(),
		"updated_at":     b.UpdatedAt(),
	}
}
