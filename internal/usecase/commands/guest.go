package commands

import (
	"context"
	"log/slog"
	"strings"

	"roomledger/internal/domain/guest"
	"roomledger/internal/infra"
	"roomledger/internal/pkg/clock"
	"roomledger/internal/pkg/errs"
	"roomledger/internal/pkg/password"
	"roomledger/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=guest.go -destination=../../../tests/mock/commands/guest.go -package=mock_commands

type RegisterGuestInput struct {
	FullName string
	Email    string
	Phone    string
	Password string
}

type GuestCommands interface {
	Register(ctx context.Context, in RegisterGuestInput) (uuid.UUID, error)
}

type guestCommandsImpl struct {
	uow    shared.UnitOfWork
	hasher password.Hasher
	clock  clock.Clock
	logger *slog.Logger
}

func NewGuestCommands(uow shared.UnitOfWork, hasher password.Hasher, clk clock.Clock, logger *slog.Logger) GuestCommands {
	return &guestCommandsImpl{uow: uow, hasher: hasher, clock: clk, logger: logger}
}

// Register creates a guest account. A guest first created by a booking gains
// a credential instead of being duplicated.
func (c *guestCommandsImpl) Register(ctx context.Context, in RegisterGuestInput) (uuid.UUID, error) {
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		return uuid.Nil, guest.ErrMissingName
	}
	email, err := guest.NewEmail(in.Email)
	if err != nil {
		return uuid.Nil, err
	}
	pw, err := guest.NewPassword(in.Password)
	if err != nil {
		return uuid.Nil, err
	}
	hash, err := c.hasher.Hash(pw.Value())
	if err != nil {
		return uuid.Nil, err
	}

	var guestID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := tx.Reads().GuestByEmail(ctx, email)
		switch {
		case err == nil:
			if existing.HasCredential() {
				return errs.Wrapf(guest.ErrEmailTaken, "email %s", email.Value())
			}
			existing.SetCredential(hash)
			guestID = existing.ID()
			return tx.Guests().UpdateCredential(ctx, existing.ID(), hash)
		case !infra.IsKind(err, infra.KindNotFound):
			return err
		}

		g, err := guest.NewGuest(fullName, email, strings.TrimSpace(in.Phone), &hash, c.clock.Now())
		if err != nil {
			return err
		}
		if err := tx.Guests().Insert(ctx, g); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, shared.ErrRetryable)
			}
			return err
		}
		guestID = g.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	c.logger.InfoContext(ctx, "guest registered", slog.String("guest_id", guestID.String()))
	return guestID, nil
}
