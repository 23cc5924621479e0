//go:build unit || e2e

package builder

import (
	"time"

	"roomledger/internal/domain/room"

	"github.com/shopspring/decimal"
)

type RoomBuilder struct {
	Number      string
	Category    string
	Price       decimal.Decimal
	Description string
	Now         time.Time
}

func NewRoomBuilder() *RoomBuilder {
	return &RoomBuilder{
		Number:      "101",
		Category:    "double",
		Price:       decimal.RequireFromString("120.00"),
		Description: "Garden view",
		Now:         time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *RoomBuilder) WithNumber(n string) *RoomBuilder {
	b.Number = n
	return b
}

func (b *RoomBuilder) WithCategory(c string) *RoomBuilder {
	b.Category = c
	return b
}

func (b *RoomBuilder) MustBuildDomain() *room.Room {
	r, err := room.NewRoom(b.Number, b.Category, b.Price, b.Description, b.Now)
	if err != nil {
		panic(err)
	}
	return r
}
