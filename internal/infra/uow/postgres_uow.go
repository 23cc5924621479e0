package uow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"roomledger/internal/domain/booking"
	"roomledger/internal/infra"
	"roomledger/internal/infra/db"
	"roomledger/internal/infra/readstore"
	"roomledger/internal/infra/repository"
	"roomledger/internal/pkg/errs"
	"roomledger/internal/pkg/retry"
	"roomledger/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	errTransactionBegin  = errs.New("failed to begin transaction")
	errTransactionCommit = errs.New("failed to commit transaction")
)

type PostgresUoW struct {
	pool   *pgxpool.Pool
	policy retry.Policy
	logger *slog.Logger
}

func NewPostgresUoW(pool *pgxpool.Pool, policy retry.Policy, logger *slog.Logger) shared.UnitOfWork {
	return &PostgresUoW{
		pool:   pool,
		policy: policy,
		logger: logger,
	}
}

// Within runs fn in a SERIALIZABLE transaction. The whole attempt, guards
// included, is replayed on serialization failures, deadlocks, lock timeouts
// and lost idempotency-key races.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	options := pgx.TxOptions{IsoLevel: pgx.Serializable}

	err := retry.Do(ctx, u.policy, IsTransient,
		func(ctx context.Context, _ int) error {
			return u.runOnce(ctx, options, fn)
		},
		func(err error, attempt int, wait time.Duration) {
			u.logger.WarnContext(ctx, "retrying transaction due to contention",
				slog.Int("attempt", attempt),
				slog.Int64("wait_ms", wait.Milliseconds()),
				slog.String("error", err.Error()))
		},
	)
	if err == nil {
		return nil
	}
	if IsTransient(err) {
		u.logger.ErrorContext(ctx, "transaction failed after max retries",
			slog.Int("attempts", u.policy.MaxAttempts),
			slog.String("error", err.Error()))
	}
	return Translate(err)
}

// Read-only transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, reads shared.CommandReads) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly, IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return Translate(errs.Mark(err, errTransactionBegin))
	}
	defer u.rollback(ctx, pgxTx)

	if err := fn(ctx, readstore.NewCommandReadStore(pgxTx)); err != nil {
		return Translate(err)
	}
	return Translate(pgxTx.Commit(ctx))
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runOnce(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	err = fn(ctx, newPgTx(pgxTx))
	if err == nil {
		if err = pgxTx.Commit(ctx); err == nil {
			return nil
		}
		err = errs.Mark(err, errTransactionCommit)
	}

	u.rollback(ctx, pgxTx)
	return err
}

func (u *PostgresUoW) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		u.logger.WarnContext(ctx, "rollback failed", slog.String("error", err.Error()))
	}
}

// IsTransient reports contention worth replaying the whole transaction for.
func IsTransient(err error) bool {
	return infra.IsContention(err) || errs.Is(err, shared.ErrRetryable)
}

// Translate maps storage failures onto the coded taxonomy. Errors that
// already carry a code pass through unchanged.
func Translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case IsTransient(err):
		return errs.Mark(err, errs.ErrStorageContention)
	case infra.IsKind(err, infra.KindExclusionViolated):
		return errs.Mark(err, booking.ErrRoomBooked)
	}
	if _, coded := errs.Classify(err); coded {
		return err
	}
	return errs.Mark(err, errs.ErrStorageFault)
}

type pgTx struct {
	dbtx pgx.Tx

	// Lazy-initialized repositories
	bookingRepo      shared.BookingRepository
	roomRepo         shared.RoomRepository
	guestRepo        shared.GuestRepository
	idempotencyRepo  shared.IdempotencyRepository
	notificationRepo shared.NotificationRepository
	checkLogRepo     shared.CheckLogRepository
	commandReads     shared.CommandReads
}

func newPgTx(tx pgx.Tx) *pgTx {
	return &pgTx{dbtx: tx}
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository(t.dbtx)
	}
	return t.bookingRepo
}

func (t *pgTx) Rooms() shared.RoomRepository {
	if t.roomRepo == nil {
		t.roomRepo = repository.NewRoomRepository(t.dbtx)
	}
	return t.roomRepo
}

func (t *pgTx) Guests() shared.GuestRepository {
	if t.guestRepo == nil {
		t.guestRepo = repository.NewGuestRepository(t.dbtx)
	}
	return t.guestRepo
}

func (t *pgTx) Idempotency() shared.IdempotencyRepository {
	if t.idempotencyRepo == nil {
		t.idempotencyRepo = repository.NewIdempotencyRepository(t.dbtx)
	}
	return t.idempotencyRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = repository.NewNotificationRepository(t.dbtx)
	}
	return t.notificationRepo
}

func (t *pgTx) CheckLogs() shared.CheckLogRepository {
	if t.checkLogRepo == nil {
		t.checkLogRepo = repository.NewCheckLogRepository(t.dbtx)
	}
	return t.checkLogRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = readstore.NewCommandReadStore(t.dbtx)
	}
	return t.commandReads
}

// Nested opens a savepoint (pgx pseudo nested transaction). A guard failure
// inside fn rolls back to the savepoint and leaves the outer transaction usable.
func (t *pgTx) Nested(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	sp, err := t.dbtx.Begin(ctx)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	if err := fn(ctx, newPgTx(sp)); err != nil {
		if rbErr := sp.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return errs.Wrap(rbErr, "rollback to savepoint")
		}
		return err
	}
	return sp.Commit(ctx)
}
