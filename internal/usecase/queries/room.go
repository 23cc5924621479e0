package queries

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"roomledger/internal/domain/actor"
	"roomledger/internal/domain/booking"
	"roomledger/internal/domain/room"
	"roomledger/internal/pkg/clock"

	"github.com/google/uuid"
)

//go:generate mockgen -source=room.go -destination=../../../tests/mock/queries/room.go -package=mock_queries

type AvailabilityFilter struct {
	Period   booking.StayPeriod
	Category string
	// ExcludeBookingID lets a booking being modified see its own room as free.
	ExcludeBookingID uuid.UUID
	// Today anchors the reported room status; zero means the clock's today.
	Today time.Time
}

type RoomViewRepo interface {
	FindAvailable(ctx context.Context, filter AvailabilityFilter) ([]*RoomView, error)
	List(ctx context.Context, today time.Time, limit, offset int) ([]*RoomView, int, error)
}

// RoomStatusRefresher re-derives a room's stored status in its own transaction.
type RoomStatusRefresher interface {
	RefreshStatus(ctx context.Context, roomID uuid.UUID) (room.Status, error)
}

type RoomQueries interface {
	SearchAvailable(ctx context.Context, filter AvailabilityFilter) ([]*RoomView, error)
	List(ctx context.Context, a actor.Actor, page PageRequest) (Page[*RoomView], error)
}

type roomQueriesImpl struct {
	repo      RoomViewRepo
	refresher RoomStatusRefresher
	clock     clock.Clock
	logger    *slog.Logger
}

func NewRoomQueries(repo RoomViewRepo, refresher RoomStatusRefresher, clk clock.Clock, logger *slog.Logger) RoomQueries {
	return &roomQueriesImpl{repo: repo, refresher: refresher, clock: clk, logger: logger}
}

func (q *roomQueriesImpl) SearchAvailable(ctx context.Context, filter AvailabilityFilter) ([]*RoomView, error) {
	if filter.Period.IsZero() {
		return nil, booking.ErrCheckOutNotAfter
	}
	filter.Category = strings.TrimSpace(filter.Category)
	if filter.Today.IsZero() {
		filter.Today = q.clock.Today()
	}
	rooms, err := q.repo.FindAvailable(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := q.repairDrift(ctx, rooms); err != nil {
		return nil, err
	}
	if rooms == nil {
		rooms = []*RoomView{}
	}
	return rooms, nil
}

// List reports each room with the status derived from its active bookings.
func (q *roomQueriesImpl) List(ctx context.Context, a actor.Actor, page PageRequest) (Page[*RoomView], error) {
	if err := a.RequireStaff(); err != nil {
		return Page[*RoomView]{}, err
	}

	page = page.Normalize()
	items, total, err := q.repo.List(ctx, q.clock.Today(), page.Limit(), page.Offset())
	if err != nil {
		return Page[*RoomView]{}, err
	}

	if err := q.repairDrift(ctx, items); err != nil {
		return Page[*RoomView]{}, err
	}
	return NewPage(items, page, total), nil
}

// repairDrift compares each stored status with the one derived from the
// room's active bookings and refreshes the rooms that disagree.
func (q *roomQueriesImpl) repairDrift(ctx context.Context, rooms []*RoomView) error {
	for _, v := range rooms {
		derived := room.StatusAvailable
		if v.ActiveBookings > 0 {
			derived = room.StatusBooked
		}
		if v.Status == derived.String() {
			continue
		}
		q.logger.WarnContext(ctx, "room status drift detected",
			slog.String("room_number", v.Number),
			slog.String("stored", v.Status),
			slog.String("derived", derived.String()))

		refreshed, err := q.refresher.RefreshStatus(ctx, v.ID)
		if err != nil {
			return err
		}
		v.Status = refreshed.String()
	}
	return nil
}
