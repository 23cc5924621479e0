package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingView is the read model for a booking joined with its guest and room.
// Room fields are nil once the room has been deleted.
type BookingView struct {
	ID            uuid.UUID        `json:"id"`
	Reference     string           `json:"reference"`
	GuestID       uuid.UUID        `json:"guest_id"`
	GuestName     string           `json:"guest_name"`
	GuestEmail    string           `json:"guest_email"`
	GuestPhone    string           `json:"guest_phone"`
	RoomID        *uuid.UUID       `json:"room_id,omitempty"`
	RoomNumber    *string          `json:"room_number,omitempty"`
	RoomCategory  *string          `json:"room_category,omitempty"`
	NightlyPrice  *decimal.Decimal `json:"nightly_price,omitempty"`
	CheckIn       time.Time        `json:"check_in"`
	CheckOut      time.Time        `json:"check_out"`
	Status        string           `json:"status"`
	PaymentStatus string           `json:"payment_status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func (v *BookingView) Nights() int {
	return int(v.CheckOut.Sub(v.CheckIn).Hours() / 24)
}

// TotalPrice is nightly price times nights, or nil without a room.
func (v *BookingView) TotalPrice() *decimal.Decimal {
	if v.NightlyPrice == nil {
		return nil
	}
	total := v.NightlyPrice.Mul(decimal.NewFromInt(int64(v.Nights())))
	return &total
}

type RoomView struct {
	ID          uuid.UUID       `json:"id"`
	Number      string          `json:"room_number"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	// ActiveBookings counts occupying bookings with check-out on or after today.
	ActiveBookings int       `json:"active_bookings"`
	CreatedAt      time.Time `json:"created_at"`
}

type GuestView struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	HasAccount   bool      `json:"has_account"`
	BookingCount int       `json:"booking_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Priorities are the front-desk dashboard counters for one hotel day.
type Priorities struct {
	CheckInsToday      int `json:"check_ins_today"`
	CheckOutsToday     int `json:"check_outs_today"`
	OverduePayments    int `json:"overdue_payments"`
	RecentBookings     int `json:"recent_bookings"`
	UpcomingCheckIns   int `json:"upcoming_checkins"`
	TotalBookingsToday int `json:"total_bookings_today"`
}
