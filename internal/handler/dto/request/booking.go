package request

import (
	"strings"

	"roomledger/internal/domain/booking"
	"roomledger/internal/pkg/patch"
	"roomledger/internal/usecase/commands"
	"roomledger/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	FullName  string    `json:"full_name" binding:"required,max=200"`
	Email     string    `json:"email" binding:"required,max=254"`
	Phone     string    `json:"phone" binding:"max=40"`
	RoomID    uuid.UUID `json:"room_id" binding:"required"`
	CheckIn   string    `json:"check_in" binding:"required,date"`
	CheckOut  string    `json:"check_out" binding:"required,date"`
	RequestID string    `json:"request_id" binding:"max=200"`
}

// ToInput prefers the body request_id over the Idempotency-Key header.
func (r CreateBookingRequest) ToInput(idempotencyKey string) commands.CreateBookingInput {
	return commands.CreateBookingInput{
		FullName:  r.FullName,
		Email:     r.Email,
		Phone:     r.Phone,
		RoomID:    r.RoomID,
		CheckIn:   r.CheckIn,
		CheckOut:  r.CheckOut,
		RequestID: requestID(r.RequestID, idempotencyKey),
	}
}

type ModifyBookingRequest struct {
	Email     string     `json:"email" binding:"max=254"`
	RoomID    *uuid.UUID `json:"room_id"`
	CheckIn   *string    `json:"check_in" binding:"omitempty,date"`
	CheckOut  *string    `json:"check_out" binding:"omitempty,date"`
	RequestID string     `json:"request_id" binding:"max=200"`
}

func (r ModifyBookingRequest) ToInput(idempotencyKey string) commands.ModifyBookingInput {
	return commands.ModifyBookingInput{
		Email:     r.Email,
		RoomID:    r.RoomID,
		CheckIn:   patch.Trimmed(r.CheckIn),
		CheckOut:  patch.Trimmed(r.CheckOut),
		RequestID: requestID(r.RequestID, idempotencyKey),
	}
}

type CancelBookingRequest struct {
	Email string `json:"email" binding:"max=254"`
}

type StaffModifyBookingRequest struct {
	GuestEmail *string    `json:"guest_email" binding:"omitempty,max=254"`
	RoomID     *uuid.UUID `json:"room_id"`
	CheckIn    *string    `json:"check_in" binding:"omitempty,date"`
	CheckOut   *string    `json:"check_out" binding:"omitempty,date"`
}

func (r StaffModifyBookingRequest) ToInput() commands.StaffModifyInput {
	return commands.StaffModifyInput{
		GuestEmail: r.GuestEmail,
		RoomID:     r.RoomID,
		CheckIn:    patch.Trimmed(r.CheckIn),
		CheckOut:   patch.Trimmed(r.CheckOut),
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

type LookupBookingQuery struct {
	Email string `form:"email"`
}

type ListBookingsQuery struct {
	// Status is a comma separated list, e.g. "booked,checked-in".
	Status   string `form:"status"`
	Filter   string `form:"filter"`
	Search   string `form:"search" binding:"max=20"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1"`
}

func (q ListBookingsQuery) ToFilter() (queries.BookingFilter, error) {
	window, err := queries.ParseDateWindow(q.Filter)
	if err != nil {
		return queries.BookingFilter{}, err
	}

	var statuses booking.StatusSet
	for _, raw := range strings.Split(q.Status, ",") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		st, err := booking.ParseStatus(raw)
		if err != nil {
			return queries.BookingFilter{}, err
		}
		statuses = append(statuses, st)
	}

	return queries.BookingFilter{Statuses: statuses, Window: window, Search: q.Search}, nil
}

func (q ListBookingsQuery) ToPage() queries.PageRequest {
	return queries.PageRequest{Page: q.Page, PageSize: q.PageSize}
}

func requestID(body, header string) string {
	if id := strings.TrimSpace(body); id != "" {
		return id
	}
	return strings.TrimSpace(header)
}
