package commands

import (
	"context"
	"log/slog"

	"roomledger/internal/domain/actor"
	"roomledger/internal/domain/booking"
	"roomledger/internal/domain/guest"
	"roomledger/internal/pkg/clock"
	"roomledger/internal/pkg/patch"
	"roomledger/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=frontdesk.go -destination=../../../tests/mock/commands/frontdesk.go -package=mock_commands

// StaffModifyInput: nil fields keep the current value. GuestEmail reassigns
// the booking to an existing guest.
type StaffModifyInput struct {
	GuestEmail *string
	RoomID     *uuid.UUID
	CheckIn    *string
	CheckOut   *string
}

// FrontDeskCommands are the staff-only booking operations.
type FrontDeskCommands interface {
	UpdateStatus(ctx context.Context, a actor.Actor, bookingID uuid.UUID, status string) (*BookingResult, error)
	Checkout(ctx context.Context, a actor.Actor, bookingID uuid.UUID) (*BookingResult, error)
	UpdatePaymentStatus(ctx context.Context, a actor.Actor, bookingID uuid.UUID, status string) (*BookingResult, error)
	Modify(ctx context.Context, a actor.Actor, bookingID uuid.UUID, in StaffModifyInput) (*BookingResult, error)
	Delete(ctx context.Context, a actor.Actor, bookingID uuid.UUID) error
}

type frontDeskCommandsImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewFrontDeskCommands(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) FrontDeskCommands {
	return &frontDeskCommandsImpl{uow: uow, clock: clk, logger: logger}
}

// mutate loads the booking inside a savepoint and hands it to fn. The returned
// result identifies the booking after fn succeeds.
func (c *frontDeskCommandsImpl) mutate(
	ctx context.Context,
	a actor.Actor,
	bookingID uuid.UUID,
	fn func(ctx context.Context, tx shared.Tx, b *booking.Booking) error,
) (*BookingResult, error) {
	if err := a.RequireStaff(); err != nil {
		return nil, err
	}

	var result *BookingResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Nested(ctx, func(ctx context.Context, tx shared.Tx) error {
			b, err := tx.Reads().BookingByID(ctx, bookingID)
			if err != nil {
				return shared.NotFoundAs(err, booking.ErrNotFound)
			}
			if err := fn(ctx, tx, b); err != nil {
				return err
			}
			result = &BookingResult{BookingID: b.ID(), Reference: b.Reference().String()}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *frontDeskCommandsImpl) UpdateStatus(ctx context.Context, a actor.Actor, bookingID uuid.UUID, status string) (*BookingResult, error) {
	to, err := booking.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	result, err := c.mutate(ctx, a, bookingID, func(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
		now, today := c.clock.Now(), c.clock.Today()
		if err := b.ApplyStatus(to, today, now); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return err
		}
		switch to {
		case booking.StatusCheckedIn:
			if err := tx.CheckLogs().Append(ctx, shared.CheckLogEntry{
				BookingID: b.ID(),
				Action:    shared.ActionCheckIn,
				HandledBy: a.StaffID(),
				At:        now,
			}); err != nil {
				return err
			}
		case booking.StatusCancelled:
			if err := enqueueNotification(ctx, tx, shared.NotificationBookingCancelled, b.ID(), b.Reference().String(), now); err != nil {
				return err
			}
		}
		return shared.RefreshRooms(ctx, tx, today, b.RoomID())
	})
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "booking status updated",
		slog.String("reference", result.Reference),
		slog.String("status", to.String()),
		slog.String("actor", a.String()))
	return result, nil
}

func (c *frontDeskCommandsImpl) Checkout(ctx context.Context, a actor.Actor, bookingID uuid.UUID) (*BookingResult, error) {
	result, err := c.mutate(ctx, a, bookingID, func(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
		now, today := c.clock.Now(), c.clock.Today()
		if err := b.CheckOut(now); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return err
		}
		if err := tx.CheckLogs().Append(ctx, shared.CheckLogEntry{
			BookingID: b.ID(),
			Action:    shared.ActionCheckOut,
			HandledBy: a.StaffID(),
			At:        now,
		}); err != nil {
			return err
		}
		return shared.RefreshRooms(ctx, tx, today, b.RoomID())
	})
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "booking checked out",
		slog.String("reference", result.Reference),
		slog.String("actor", a.String()))
	return result, nil
}

func (c *frontDeskCommandsImpl) UpdatePaymentStatus(ctx context.Context, a actor.Actor, bookingID uuid.UUID, status string) (*BookingResult, error) {
	p, err := booking.ParsePaymentStatus(status)
	if err != nil {
		return nil, err
	}

	return c.mutate(ctx, a, bookingID, func(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
		changed, err := b.SetPaymentStatus(p, c.clock.Now())
		if err != nil || !changed {
			return err
		}
		return tx.Bookings().Update(ctx, b)
	})
}

func (c *frontDeskCommandsImpl) Modify(ctx context.Context, a actor.Actor, bookingID uuid.UUID, in StaffModifyInput) (*BookingResult, error) {
	var email *guest.Email
	if raw := patch.Trimmed(in.GuestEmail); raw != nil {
		e, err := guest.NewEmail(*raw)
		if err != nil {
			return nil, err
		}
		email = &e
	}

	result, err := c.mutate(ctx, a, bookingID, func(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
		now, today := c.clock.Now(), c.clock.Today()
		oldRoom := b.RoomID()

		if email != nil {
			g, err := tx.Reads().GuestByEmail(ctx, *email)
			if err != nil {
				return shared.NotFoundAs(err, guest.ErrNotFound)
			}
			if err := b.ReassignGuest(g.ID(), now); err != nil {
				return err
			}
		}
		if err := rescheduleBooking(ctx, tx, b, in.RoomID, in.CheckIn, in.CheckOut, today, now); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return err
		}
		if err := shared.RefreshRooms(ctx, tx, today, oldRoom, b.RoomID()); err != nil {
			return err
		}
		return enqueueNotification(ctx, tx, shared.NotificationBookingModified, b.ID(), b.Reference().String(), now)
	})
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "booking modified by staff",
		slog.String("reference", result.Reference),
		slog.String("actor", a.String()))
	return result, nil
}

func (c *frontDeskCommandsImpl) Delete(ctx context.Context, a actor.Actor, bookingID uuid.UUID) error {
	result, err := c.mutate(ctx, a, bookingID, func(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
		if err := b.EnsureDeletable(); err != nil {
			return err
		}
		if err := tx.Bookings().Delete(ctx, b.ID()); err != nil {
			return err
		}
		return shared.RefreshRooms(ctx, tx, c.clock.Today(), b.RoomID())
	})
	if err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "booking deleted",
		slog.String("reference", result.Reference),
		slog.String("actor", a.String()))
	return nil
}
