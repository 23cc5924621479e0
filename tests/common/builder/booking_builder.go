//go:build unit || e2e

package builder

import (
	"time"

	"roomledger/internal/domain/booking"
	reqdto "roomledger/internal/handler/dto/request"
	"roomledger/internal/usecase/commands"
	"roomledger/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingBuilder struct {
	Reference booking.Reference
	GuestID   uuid.UUID
	RoomID    uuid.UUID
	CheckIn   string
	CheckOut  string
	Status    booking.Status
	Payment   booking.PaymentStatus
	Today     time.Time
	Now       time.Time

	FullName  string
	Email     string
	Phone     string
	RequestID string
}

func NewBookingBuilder() *BookingBuilder {
	today := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		Reference: "PL10101",
		GuestID:   uuid.New(),
		RoomID:    uuid.New(),
		CheckIn:   "2025-06-01",
		CheckOut:  "2025-06-05",
		Status:    booking.StatusBooked,
		Payment:   booking.PaymentPending,
		Today:     today,
		Now:       today.Add(9 * time.Hour),
		FullName:  "Ada Lovelace",
		Email:     "ada@example.com",
		Phone:     "+44 20 7946 0000",
		RequestID: "req-0001",
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithDates(checkIn, checkOut string) *BookingBuilder {
	b.CheckIn, b.CheckOut = checkIn, checkOut
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithPayment(p booking.PaymentStatus) *BookingBuilder {
	b.Payment = p
	return b
}

func (b *BookingBuilder) WithToday(day string) *BookingBuilder {
	t, err := booking.ParseDate(day)
	if err != nil {
		panic(err)
	}
	b.Today = t
	b.Now = t.Add(9 * time.Hour)
	return b
}

func (b *BookingBuilder) WithRoom(id uuid.UUID) *BookingBuilder {
	b.RoomID = id
	return b
}

func (b *BookingBuilder) WithRequestID(id string) *BookingBuilder {
	b.RequestID = id
	return b
}

func (b *BookingBuilder) WithEmail(email string) *BookingBuilder {
	b.Email = email
	return b
}

func (b *BookingBuilder) Period() (booking.StayPeriod, error) {
	return booking.ParseStayPeriod(b.CheckIn, b.CheckOut)
}

// BuildDomain creates a fresh booking through NewBooking, then forces the
// requested status/payment via Reconstruct when they differ from the defaults.
func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	p, err := b.Period()
	if err != nil {
		return nil, err
	}
	bk, err := booking.NewBooking(b.Reference, b.GuestID, b.RoomID, p, b.Today, b.Now)
	if err != nil {
		return nil, err
	}
	if b.Status == booking.StatusBooked && b.Payment == booking.PaymentPending {
		return bk, nil
	}
	return booking.Reconstruct(bk.ID(), bk.Reference(), bk.GuestID(), bk.RoomID(), bk.Period(),
		b.Status, b.Payment, bk.CreatedAt(), bk.UpdatedAt()), nil
}

func (b *BookingBuilder) MustBuildDomain() *booking.Booking {
	bk, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return bk
}

func (b *BookingBuilder) BuildCreateInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		FullName:  b.FullName,
		Email:     b.Email,
		Phone:     b.Phone,
		RoomID:    b.RoomID,
		CheckIn:   b.CheckIn,
		CheckOut:  b.CheckOut,
		RequestID: b.RequestID,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		FullName:  b.FullName,
		Email:     b.Email,
		Phone:     b.Phone,
		RoomID:    b.RoomID,
		CheckIn:   b.CheckIn,
		CheckOut:  b.CheckOut,
		RequestID: b.RequestID,
	}
}

// BuildView returns the read model a query would produce for this booking,
// priced at 120.00 per night in room 101.
func (b *BookingBuilder) BuildView() *queries.BookingView {
	p, err := b.Period()
	if err != nil {
		panic(err)
	}
	roomID := b.RoomID
	number, category := "101", "double"
	price := decimal.RequireFromString("120.00")
	return &queries.BookingView{
		ID:            uuid.New(),
		Reference:     b.Reference.String(),
		GuestID:       b.GuestID,
		GuestName:     b.FullName,
		GuestEmail:    b.Email,
		GuestPhone:    b.Phone,
		RoomID:        &roomID,
		RoomNumber:    &number,
		RoomCategory:  &category,
		NightlyPrice:  &price,
		CheckIn:       p.CheckIn(),
		CheckOut:      p.CheckOut(),
		Status:        b.Status.String(),
		PaymentStatus: b.Payment.String(),
		CreatedAt:     b.Now,
		UpdatedAt:     b.Now,
	}
}
