package response

import (
	"roomledger/internal/domain/booking"
	"roomledger/internal/usecase/queries"
)

type BookingResponse struct {
	ID            string  `json:"id"`
	Reference     string  `json:"reference"`
	GuestName     string  `json:"guest_name"`
	GuestEmail    string  `json:"guest_email"`
	GuestPhone    string  `json:"guest_phone"`
	RoomID        *string `json:"room_id"`
	RoomNumber    *string `json:"room_number"`
	RoomCategory  *string `json:"room_category"`
	NightlyPrice  *string `json:"nightly_price"`
	TotalPrice    *string `json:"total_price"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
	Nights        int     `json:"nights"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	CreatedAt     int64   `json:"created_at"`
	UpdatedAt     int64   `json:"updated_at"`
	IsReplayed    bool    `json:"is_replayed,omitempty"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	res := &BookingResponse{
		ID:            v.ID.String(),
		Reference:     v.Reference,
		GuestName:     v.GuestName,
		GuestEmail:    v.GuestEmail,
		GuestPhone:    v.GuestPhone,
		RoomNumber:    v.RoomNumber,
		RoomCategory:  v.RoomCategory,
		CheckIn:       v.CheckIn.Format(booking.DateLayout),
		CheckOut:      v.CheckOut.Format(booking.DateLayout),
		Nights:        v.Nights(),
		Status:        v.Status,
		PaymentStatus: v.PaymentStatus,
		CreatedAt:     v.CreatedAt.Unix(),
		UpdatedAt:     v.UpdatedAt.Unix(),
	}
	if v.RoomID != nil {
		id := v.RoomID.String()
		res.RoomID = &id
	}
	if v.NightlyPrice != nil {
		nightly := v.NightlyPrice.StringFixed(2)
		total := v.TotalPrice().StringFixed(2)
		res.NightlyPrice, res.TotalPrice = &nightly, &total
	}
	return res
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	res := make([]*BookingResponse, len(views))
	for i, v := range views {
		res[i] = FromBookingView(v)
	}
	return res
}

type PageResponse[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// FromPage keeps the paging metadata of p around already converted items.
func FromPage[V any, T any](p queries.Page[V], items []T) PageResponse[T] {
	return PageResponse[T]{
		Items:      items,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalCount: p.TotalCount,
		TotalPages: p.TotalPages,
	}
}

type PrioritiesResponse = queries.Priorities
