package response

import (
	"time"

	"roomledger/internal/domain/room"
	"roomledger/internal/usecase/commands"
	"roomledger/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

// viewConverters render read-model value types as the strings clients see.
var viewConverters = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: uuid.UUID{},
			DstType: copier.String,
			Fn:      func(src any) (any, error) { return src.(uuid.UUID).String(), nil },
		},
		{
			SrcType: decimal.Decimal{},
			DstType: copier.String,
			Fn:      func(src any) (any, error) { return src.(decimal.Decimal).StringFixed(2), nil },
		},
		{
			SrcType: time.Time{},
			DstType: int64(0),
			Fn:      func(src any) (any, error) { return src.(time.Time).Unix(), nil },
		},
	},
}

type RoomResponse struct {
	ID             string `json:"id"`
	Number         string `json:"room_number"`
	Category       string `json:"category"`
	Price          string `json:"price"`
	Description    string `json:"description"`
	Status         string `json:"status"`
	ActiveBookings int    `json:"active_bookings"`
	CreatedAt      int64  `json:"created_at"`
}

func FromRoomViews(views []*queries.RoomView) ([]*RoomResponse, error) {
	res := make([]*RoomResponse, 0, len(views))
	if err := copier.CopyWithOption(&res, &views, viewConverters); err != nil {
		return nil, err
	}
	return res, nil
}

type RoomCreatedResponse struct {
	ID          string `json:"id"`
	Number      string `json:"room_number"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func FromRoom(r *room.Room) *RoomCreatedResponse {
	return &RoomCreatedResponse{
		ID:          r.ID().String(),
		Number:      r.Number(),
		Category:    r.Category(),
		Price:       r.Price().StringFixed(2),
		Description: r.Description(),
		Status:      r.Status().String(),
	}
}

type ReconcileResponse struct {
	Checked int `json:"checked"`
	Changed int `json:"changed"`
}

func FromReconcileResult(r commands.ReconcileResult) ReconcileResponse {
	return ReconcileResponse{Checked: r.Checked, Changed: r.Changed}
}
