package commands

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"roomledger/internal/domain/actor"
	"roomledger/internal/domain/booking"
	"roomledger/internal/domain/guest"
	"roomledger/internal/domain/room"
	"roomledger/internal/infra"
	"roomledger/internal/pkg/clock"
	"roomledger/internal/pkg/errs"
	"roomledger/internal/pkg/patch"
	"roomledger/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/commands/booking.go -package=mock_commands

type CreateBookingInput struct {
	FullName  string
	Email     string
	Phone     string
	RoomID    uuid.UUID
	CheckIn   string
	CheckOut  string
	RequestID string
}

// ModifyBookingInput: nil fields keep the booking's current value.
type ModifyBookingInput struct {
	Email     string
	RoomID    *uuid.UUID
	CheckIn   *string
	CheckOut  *string
	RequestID string
}

type BookingCommands interface {
	Create(ctx context.Context, a actor.Actor, in CreateBookingInput) (*BookingResult, error)
	Modify(ctx context.Context, a actor.Actor, ref booking.Reference, in ModifyBookingInput) (*BookingResult, error)
	Cancel(ctx context.Context, a actor.Actor, ref booking.Reference, email string) (*BookingResult, error)
}

type bookingCommandsImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	refSrc io.Reader
	logger *slog.Logger
}

// NewBookingCommands draws references from crypto/rand when refSrc is nil.
func NewBookingCommands(uow shared.UnitOfWork, clk clock.Clock, refSrc io.Reader, logger *slog.Logger) BookingCommands {
	return &bookingCommandsImpl{uow: uow, clock: clk, refSrc: refSrc, logger: logger}
}

type createPayload struct {
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	RoomID   uuid.UUID `json:"room_id"`
	Period   string    `json:"period"`
}

func (c *bookingCommandsImpl) Create(ctx context.Context, a actor.Actor, in CreateBookingInput) (*BookingResult, error) {
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		return nil, guest.ErrMissingName
	}
	email, err := guest.NewEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if !a.IsStaff() && a.Email() != email.Value() {
		return nil, guest.ErrEmailMismatch
	}
	if in.RoomID == uuid.Nil {
		return nil, errs.Wrap(errs.ErrMissingData, "room_id")
	}
	period, err := booking.ParseStayPeriod(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}

	key := requestKey(in.RequestID)
	hash, err := requestHash(createPayload{
		FullName: fullName,
		Email:    email.Value(),
		Phone:    strings.TrimSpace(in.Phone),
		RoomID:   in.RoomID,
		Period:   period.String(),
	})
	if err != nil {
		return nil, err
	}

	var result *BookingResult
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		replay, err := replayOf(ctx, tx.Reads(), key, shared.ScopeCreate, hash)
		if err != nil || replay != nil {
			result = replay
			return err
		}

		return tx.Nested(ctx, func(ctx context.Context, tx shared.Tx) error {
			now, today := c.clock.Now(), c.clock.Today()

			rm, err := tx.Reads().RoomByID(ctx, in.RoomID)
			if err != nil {
				return shared.NotFoundAs(err, room.ErrNotFound)
			}
			if err := period.ValidateStart(today); err != nil {
				return err
			}
			if err := shared.EnsureNoOverlap(ctx, tx.Reads(), shared.OverlapQuery{RoomID: rm.ID(), Period: period}); err != nil {
				return err
			}

			g, err := c.findOrCreateGuest(ctx, tx, fullName, email, strings.TrimSpace(in.Phone), now)
			if err != nil {
				return err
			}

			ref, err := shared.GenerateReference(ctx, tx.Reads(), c.refSrc)
			if err != nil {
				return err
			}
			b, err := booking.NewBooking(ref, g.ID(), rm.ID(), period, today, now)
			if err != nil {
				return err
			}
			if err := tx.Bookings().Insert(ctx, b); err != nil {
				return err
			}
			if err := claimKey(ctx, tx, key, shared.ScopeCreate, hash, b.ID(), now); err != nil {
				return err
			}
			if _, _, err := shared.RefreshRoomStatus(ctx, tx, rm.ID(), today); err != nil {
				return err
			}
			if err := enqueueNotification(ctx, tx, shared.NotificationBookingCreated, b.ID(), ref.String(), now); err != nil {
				return err
			}

			result = &BookingResult{BookingID: b.ID(), Reference: ref.String()}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "booking created",
		slog.String("reference", result.Reference),
		slog.String("actor", a.String()),
		slog.Bool("replayed", result.IsReplayed))
	return result, nil
}

func (c *bookingCommandsImpl) findOrCreateGuest(ctx context.Context, tx shared.Tx, fullName string, email guest.Email, phone string, now time.Time) (*guest.Guest, error) {
	existing, err := tx.Reads().GuestByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return nil, err
	}

	g, err := guest.NewGuest(fullName, email, phone, nil, now)
	if err != nil {
		return nil, err
	}
	if err := tx.Guests().Insert(ctx, g); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			// created concurrently; the retry will find it
			return nil, errs.Mark(err, shared.ErrRetryable)
		}
		return nil, err
	}
	return g, nil
}

type modifyPayload struct {
	Email    string     `json:"email"`
	RoomID   *uuid.UUID `json:"room_id,omitempty"`
	CheckIn  *string    `json:"check_in,omitempty"`
	CheckOut *string    `json:"check_out,omitempty"`
}

func (c *bookingCommandsImpl) Modify(ctx context.Context, a actor.Actor, ref booking.Reference, in ModifyBookingInput) (*BookingResult, error) {
	email, err := c.claimedEmail(a, in.Email)
	if err != nil {
		return nil, err
	}
	for _, d := range []*string{in.CheckIn, in.CheckOut} {
		if d != nil {
			if _, err := booking.ParseDate(*d); err != nil {
				return nil, err
			}
		}
	}

	key := requestKey(in.RequestID)
	hash, err := requestHash(struct {
		Reference string `json:"reference"`
		modifyPayload
	}{ref.String(), modifyPayload{Email: email, RoomID: in.RoomID, CheckIn: in.CheckIn, CheckOut: in.CheckOut}})
	if err != nil {
		return nil, err
	}

	var result *BookingResult
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		replay, err := replayOf(ctx, tx.Reads(), key, shared.ScopeModify, hash)
		if err != nil || replay != nil {
			result = replay
			return err
		}

		return tx.Nested(ctx, func(ctx context.Context, tx shared.Tx) error {
			now, today := c.clock.Now(), c.clock.Today()

			b, err := c.loadOwned(ctx, tx.Reads(), a, ref, email)
			if err != nil {
				return err
			}
			oldRoom := b.RoomID()

			if err := rescheduleBooking(ctx, tx, b, in.RoomID, in.CheckIn, in.CheckOut, today, now); err != nil {
				return err
			}
			if err := tx.Bookings().Update(ctx, b); err != nil {
				return err
			}
			if err := claimKey(ctx, tx, key, shared.ScopeModify, hash, b.ID(), now); err != nil {
				return err
			}
			if err := shared.RefreshRooms(ctx, tx, today, oldRoom, b.RoomID()); err != nil {
				return err
			}
			if err := enqueueNotification(ctx, tx, shared.NotificationBookingModified, b.ID(), ref.String(), now); err != nil {
				return err
			}

			result = &BookingResult{BookingID: b.ID(), Reference: ref.String()}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "booking modified",
		slog.String("reference", result.Reference),
		slog.String("actor", a.String()),
		slog.Bool("replayed", result.IsReplayed))
	return result, nil
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, a actor.Actor, ref booking.Reference, emailInput string) (*BookingResult, error) {
	email, err := c.claimedEmail(a, emailInput)
	if err != nil {
		return nil, err
	}

	var result *BookingResult
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Nested(ctx, func(ctx context.Context, tx shared.Tx) error {
			now, today := c.clock.Now(), c.clock.Today()

			b, err := c.loadOwned(ctx, tx.Reads(), a, ref, email)
			if err != nil {
				return err
			}
			if err := b.Cancel(now); err != nil {
				return err
			}
			if err := tx.Bookings().Update(ctx, b); err != nil {
				return err
			}
			if err := shared.RefreshRooms(ctx, tx, today, b.RoomID()); err != nil {
				return err
			}
			if err := enqueueNotification(ctx, tx, shared.NotificationBookingCancelled, b.ID(), ref.String(), now); err != nil {
				return err
			}

			result = &BookingResult{BookingID: b.ID(), Reference: ref.String()}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "booking cancelled",
		slog.String("reference", result.Reference),
		slog.String("actor", a.String()))
	return result, nil
}

// claimedEmail is the email a guest asserts ownership with. Staff may omit it.
func (c *bookingCommandsImpl) claimedEmail(a actor.Actor, in string) (string, error) {
	if a.IsStaff() && strings.TrimSpace(in) == "" {
		return "", nil
	}
	email, err := guest.NewEmail(in)
	if err != nil {
		return "", err
	}
	return email.Value(), nil
}

// loadOwned loads the booking and checks the guest's email against its owner.
func (c *bookingCommandsImpl) loadOwned(ctx context.Context, reads shared.CommandReads, a actor.Actor, ref booking.Reference, email string) (*booking.Booking, error) {
	b, err := reads.BookingByReference(ctx, ref)
	if err != nil {
		return nil, shared.NotFoundAs(err, booking.ErrNotFound)
	}
	if a.IsStaff() {
		return b, nil
	}

	owner, err := reads.GuestByID(ctx, b.GuestID())
	if err != nil {
		return nil, shared.NotFoundAs(err, guest.ErrNotFound)
	}
	if owner.Email().Value() != email {
		return nil, errs.Wrapf(guest.ErrEmailMismatch, "booking %s", ref)
	}
	return b, nil
}

// rescheduleBooking applies optional room and date overrides, re-checking
// overlap on the target room while ignoring the booking itself. A booking that
// is no longer modifiable is rejected even when no override is given.
func rescheduleBooking(
	ctx context.Context,
	tx shared.Tx,
	b *booking.Booking,
	roomID *uuid.UUID,
	checkIn, checkOut *string,
	today, now time.Time,
) error {
	if err := b.EnsureModifiable(); err != nil {
		return err
	}
	if roomID == nil && checkIn == nil && checkOut == nil {
		return nil
	}

	targetRoom := b.RoomID()
	if roomID != nil {
		targetRoom = roomID
	}
	if targetRoom == nil {
		return errs.Wrap(errs.ErrMissingData, "room_id")
	}

	period, err := booking.ParseStayPeriod(
		patch.Coalesce(checkIn, b.Period().CheckIn().Format(booking.DateLayout)),
		patch.Coalesce(checkOut, b.Period().CheckOut().Format(booking.DateLayout)),
	)
	if err != nil {
		return err
	}

	rm, err := tx.Reads().RoomByID(ctx, *targetRoom)
	if err != nil {
		return shared.NotFoundAs(err, room.ErrNotFound)
	}
	if err := b.Reschedule(rm.ID(), period, today, now); err != nil {
		return err
	}
	return shared.EnsureNoOverlap(ctx, tx.Reads(), shared.OverlapQuery{
		RoomID:  rm.ID(),
		Period:  period,
		Exclude: b.ID(),
	})
}
