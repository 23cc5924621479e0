package room

import (
	"strings"
	"time"

	"roomledger/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidNumber    = errs.Define(errs.KindValidation, "INVALID_ROOM", "room number and category are required")
	ErrNonPositivePrice = errs.Define(errs.KindValidation, "INVALID_PRICE", "nightly price must be greater than zero and below 100000000")
	ErrNotFound         = errs.Define(errs.KindNotFound, "ROOM_NOT_FOUND", "room not found")
	ErrNumberTaken      = errs.Define(errs.KindConflict, "ROOM_EXISTS", "room number already exists")
	ErrHasActiveBooking = errs.Define(errs.KindConflict, "ROOM_ACTIVE", "room has an active booking")
)

// maxPrice is the exclusive bound of a NUMERIC(10,2) price column.
var maxPrice = decimal.New(1, 8)

type Room struct {
	id          uuid.UUID
	number      string
	category    string
	price       decimal.Decimal
	description string
	status      Status
	createdAt   time.Time
}

func NewRoom(number, category string, price decimal.Decimal, description string, now time.Time) (*Room, error) {
	number = strings.TrimSpace(number)
	category = strings.TrimSpace(category)
	if number == "" || category == "" {
		return nil, ErrInvalidNumber
	}
	price = price.Round(2)
	if !price.IsPositive() || !price.LessThan(maxPrice) {
		return nil, errs.Wrapf(ErrNonPositivePrice, "price %s", price)
	}
	return &Room{
		id:          uuid.New(),
		number:      number,
		category:    category,
		price:       price,
		description: strings.TrimSpace(description),
		status:      StatusAvailable,
		createdAt:   now,
	}, nil
}

func Reconstruct(id uuid.UUID, number, category string, price decimal.Decimal, description string, status Status, createdAt time.Time) *Room {
	return &Room{
		id:          id,
		number:      number,
		category:    category,
		price:       price,
		description: description,
		status:      status,
		createdAt:   createdAt,
	}
}

func (r *Room) ID() uuid.UUID          { return r.id }
func (r *Room) Number() string         { return r.number }
func (r *Room) Category() string       { return r.category }
func (r *Room) Price() decimal.Decimal { return r.price }
func (r *Room) Description() string    { return r.description }
func (r *Room) Status() Status         { return r.status }
func (r *Room) CreatedAt() time.Time   { return r.createdAt }
