package queries

import (
	"context"
	"strings"

	"roomledger/internal/domain/actor"
)

//go:generate mockgen -source=guest.go -destination=../../../tests/mock/queries/guest.go -package=mock_queries

type GuestViewRepo interface {
	List(ctx context.Context, search string, limit, offset int) ([]*GuestView, int, error)
}

type GuestQueries interface {
	List(ctx context.Context, a actor.Actor, search string, page PageRequest) (Page[*GuestView], error)
}

type guestQueriesImpl struct {
	repo GuestViewRepo
}

func NewGuestQueries(repo GuestViewRepo) GuestQueries {
	return &guestQueriesImpl{repo: repo}
}

func (q *guestQueriesImpl) List(ctx context.Context, a actor.Actor, search string, page PageRequest) (Page[*GuestView], error) {
	if err := a.RequireStaff(); err != nil {
		return Page[*GuestView]{}, err
	}
	page = page.Normalize()
	items, total, err := q.repo.List(ctx, strings.TrimSpace(search), page.Limit(), page.Offset())
	if err != nil {
		return Page[*GuestView]{}, err
	}
	return NewPage(items, page, total), nil
}
