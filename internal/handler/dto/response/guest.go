package response

import (
	"roomledger/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type GuestResponse struct {
	ID           string `json:"id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	HasAccount   bool   `json:"has_account"`
	BookingCount int    `json:"booking_count"`
	CreatedAt    int64  `json:"created_at"`
}

func FromGuestViews(views []*queries.GuestView) ([]*GuestResponse, error) {
	res := make([]*GuestResponse, 0, len(views))
	if err := copier.CopyWithOption(&res, &views, viewConverters); err != nil {
		return nil, err
	}
	return res, nil
}

type GuestRegisteredResponse struct {
	ID string `json:"id"`
}
