package request

import (
	"roomledger/internal/domain/booking"
	"roomledger/internal/usecase/commands"
	"roomledger/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AddRoomRequest struct {
	RoomNumber  string          `json:"room_number" binding:"required,max=20"`
	Category    string          `json:"category" binding:"required,max=50"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description" binding:"max=1000"`
}

func (r AddRoomRequest) ToInput() commands.AddRoomInput {
	return commands.AddRoomInput{
		Number:      r.RoomNumber,
		Category:    r.Category,
		Price:       r.Price.String(),
		Description: r.Description,
	}
}

type AvailableRoomsQuery struct {
	CheckIn          string `form:"check_in" binding:"required,date"`
	CheckOut         string `form:"check_out" binding:"required,date"`
	Category         string `form:"category"`
	ExcludeBookingID string `form:"exclude_booking_id" binding:"omitempty,uuid"`
}

func (q AvailableRoomsQuery) ToFilter() (queries.AvailabilityFilter, error) {
	period, err := booking.ParseStayPeriod(q.CheckIn, q.CheckOut)
	if err != nil {
		return queries.AvailabilityFilter{}, err
	}
	filter := queries.AvailabilityFilter{Period: period, Category: q.Category}
	if q.ExcludeBookingID != "" {
		filter.ExcludeBookingID = uuid.MustParse(q.ExcludeBookingID)
	}
	return filter, nil
}

type PageQuery struct {
	Search   string `form:"search" binding:"max=200"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1"`
}

func (q PageQuery) ToPage() queries.PageRequest {
	return queries.PageRequest{Page: q.Page, PageSize: q.PageSize}
}
