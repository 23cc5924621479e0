package queries

import (
	"context"
	"strings"
	"time"

	"roomledger/internal/domain/actor"
	"roomledger/internal/domain/booking"
	"roomledger/internal/domain/guest"
	"roomledger/internal/infra"
	"roomledger/internal/pkg/clock"
	"roomledger/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/queries/booking.go -package=mock_queries

var ErrInvalidWindow = errs.Define(errs.KindValidation, "INVALID_FILTER", "unknown date filter")

// DateWindow buckets the booking list by date.
type DateWindow string

const (
	WindowAll      DateWindow = "all"
	WindowToday    DateWindow = "today"
	WindowWeek     DateWindow = "week"
	WindowUpcoming DateWindow = "upcoming"
)

// UpcomingDays bounds the upcoming window and the recent-bookings counter.
const UpcomingDays = 7

func ParseDateWindow(s string) (DateWindow, error) {
	switch w := DateWindow(strings.ToLower(strings.TrimSpace(s))); w {
	case "":
		return WindowAll, nil
	case WindowAll, WindowToday, WindowWeek, WindowUpcoming:
		return w, nil
	default:
		return "", errs.Wrapf(ErrInvalidWindow, "filter %q", s)
	}
}

type BookingFilter struct {
	// Statuses empty means any status.
	Statuses booking.StatusSet
	Window   DateWindow
	// Search matches the reference case-insensitively as a substring.
	Search string
	Today  time.Time
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByReference(ctx context.Context, ref string) (*BookingView, error)
	List(ctx context.Context, filter BookingFilter, limit, offset int) ([]*BookingView, int, error)
	CountPriorities(ctx context.Context, today time.Time) (*Priorities, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, a actor.Actor, id uuid.UUID) (*BookingView, error)
	// GetByIDSystem skips the actor check; used for read-after-write by commands.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	Lookup(ctx context.Context, a actor.Actor, ref booking.Reference, email string) (*BookingView, error)
	List(ctx context.Context, a actor.Actor, filter BookingFilter, page PageRequest) (Page[*BookingView], error)
	Priorities(ctx context.Context, a actor.Actor) (*Priorities, error)
}

type bookingQueriesImpl struct {
	repo  BookingViewRepo
	clock clock.Clock
}

func NewBookingQueries(repo BookingViewRepo, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{repo: repo, clock: clk}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, a actor.Actor, id uuid.UUID) (*BookingView, error) {
	if err := a.RequireStaff(); err != nil {
		return nil, err
	}
	return q.GetByIDSystem(ctx, id)
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, booking.ErrNotFound)
	}
	return view, nil
}

func (q *bookingQueriesImpl) Lookup(ctx context.Context, a actor.Actor, ref booking.Reference, email string) (*BookingView, error) {
	view, err := q.repo.FindByReference(ctx, ref.String())
	if err != nil {
		return nil, notFoundAs(err, booking.ErrNotFound)
	}
	if a.IsStaff() {
		return view, nil
	}

	claimed, err := guest.NewEmail(email)
	if err != nil {
		return nil, err
	}
	if claimed.Value() != strings.ToLower(view.GuestEmail) {
		return nil, errs.Wrapf(guest.ErrEmailMismatch, "booking %s", ref)
	}
	return view, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, a actor.Actor, filter BookingFilter, page PageRequest) (Page[*BookingView], error) {
	if err := a.RequireStaff(); err != nil {
		return Page[*BookingView]{}, err
	}
	if filter.Window == "" {
		filter.Window = WindowAll
	}
	if filter.Today.IsZero() {
		filter.Today = q.clock.Today()
	}
	filter.Search = strings.TrimSpace(filter.Search)

	page = page.Normalize()
	items, total, err := q.repo.List(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		return Page[*BookingView]{}, err
	}
	return NewPage(items, page, total), nil
}

func (q *bookingQueriesImpl) Priorities(ctx context.Context, a actor.Actor) (*Priorities, error) {
	if err := a.RequireStaff(); err != nil {
		return nil, err
	}
	return q.repo.CountPriorities(ctx, q.clock.Today())
}

func notFoundAs(err error, target error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, target)
	}
	return err
}
