package commands

import (
	"context"
	"log/slog"
	"strings"

	"roomledger/internal/domain/actor"
	"roomledger/internal/domain/booking"
	"roomledger/internal/domain/room"
	"roomledger/internal/infra"
	"roomledger/internal/pkg/clock"
	"roomledger/internal/pkg/errs"
	"roomledger/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=room.go -destination=../../../tests/mock/commands/room.go -package=mock_commands

type AddRoomInput struct {
	Number      string
	Category    string
	Price       string
	Description string
}

type ReconcileResult struct {
	Checked int
	Changed int
}

type RoomCommands interface {
	Add(ctx context.Context, a actor.Actor, in AddRoomInput) (*room.Room, error)
	Delete(ctx context.Context, a actor.Actor, roomID uuid.UUID) error
	// RefreshStatus re-derives one room's status without an actor check; it
	// backs read-side drift repair.
	RefreshStatus(ctx context.Context, roomID uuid.UUID) (room.Status, error)
	Reconcile(ctx context.Context, a actor.Actor) (ReconcileResult, error)
}

type roomCommandsImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewRoomCommands(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) RoomCommands {
	return &roomCommandsImpl{uow: uow, clock: clk, logger: logger}
}

func (c *roomCommandsImpl) Add(ctx context.Context, a actor.Actor, in AddRoomInput) (*room.Room, error) {
	if err := a.RequireStaff(); err != nil {
		return nil, err
	}
	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil {
		return nil, errs.Wrapf(room.ErrNonPositivePrice, "price %q", in.Price)
	}
	r, err := room.NewRoom(in.Number, in.Category, price, in.Description, c.clock.Now())
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().RoomByNumber(ctx, r.Number()); err == nil {
			return errs.Wrapf(room.ErrNumberTaken, "room %s", r.Number())
		} else if !infra.IsKind(err, infra.KindNotFound) {
			return err
		}
		if err := tx.Rooms().Insert(ctx, r); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, room.ErrNumberTaken)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "room added",
		slog.String("room_id", r.ID().String()),
		slog.String("number", r.Number()),
		slog.String("actor", a.String()))
	return r, nil
}

func (c *roomCommandsImpl) Delete(ctx context.Context, a actor.Actor, roomID uuid.UUID) error {
	if err := a.RequireRole(actor.RoleManager); err != nil {
		return err
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().RoomByID(ctx, roomID); err != nil {
			return shared.NotFoundAs(err, room.ErrNotFound)
		}
		today := c.clock.Today()
		occs, err := tx.Reads().RoomOccupancies(ctx, roomID, booking.OccupyingStatuses, today.AddDate(0, 0, -1))
		if err != nil {
			return err
		}
		if err := room.EnsureDeletable(occs, today); err != nil {
			return errs.Wrapf(err, "room %s", roomID)
		}
		return tx.Rooms().Delete(ctx, roomID)
	})
	if err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "room deleted",
		slog.String("room_id", roomID.String()),
		slog.String("actor", a.String()))
	return nil
}

func (c *roomCommandsImpl) RefreshStatus(ctx context.Context, roomID uuid.UUID) (room.Status, error) {
	var status room.Status
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, _, err := shared.RefreshRoomStatus(ctx, tx, roomID, c.clock.Today())
		status = s
		return err
	})
	return status, err
}

func (c *roomCommandsImpl) Reconcile(ctx context.Context, a actor.Actor) (ReconcileResult, error) {
	if err := a.RequireStaff(); err != nil {
		return ReconcileResult{}, err
	}

	var result ReconcileResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = ReconcileResult{}
		ids, err := tx.Reads().RoomIDs(ctx)
		if err != nil {
			return err
		}
		today := c.clock.Today()
		for _, id := range ids {
			_, changed, err := shared.RefreshRoomStatus(ctx, tx, id, today)
			if err != nil {
				return err
			}
			result.Checked++
			if changed {
				result.Changed++
			}
		}
		return nil
	})
	if err != nil {
		return ReconcileResult{}, err
	}

	c.logger.InfoContext(ctx, "room statuses reconciled",
		slog.Int("checked", result.Checked),
		slog.Int("changed", result.Changed),
		slog.String("actor", a.String()))
	return result, nil
}
