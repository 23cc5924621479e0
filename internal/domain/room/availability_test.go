//go:build unit

package room_test

import (
	"testing"
	"time"

	"roomledger/internal/domain/booking"
	"roomledger/internal/domain/room"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func occ(t *testing.T, in, out string, st booking.Status) booking.Occupancy {
	t.Helper()
	p, err := booking.ParseStayPeriod(in, out)
	require.NoError(t, err)
	return booking.Occupancy{BookingID: uuid.New(), Period: p, Status: st}
}

func TestDeriveStatus(t *testing.T) {
	today := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		occs []booking.Occupancy
		want room.Status
	}{
		{name: "no bookings", want: room.StatusAvailable},
		{name: "future booked", occs: []booking.Occupancy{occ(t, "2025-06-10", "2025-06-12", booking.StatusBooked)}, want: room.StatusBooked},
		{name: "checked-in checking out today", occs: []booking.Occupancy{occ(t, "2025-06-01", "2025-06-05", booking.StatusCheckedIn)}, want: room.StatusBooked},
		{name: "booked stay ended yesterday", occs: []booking.Occupancy{occ(t, "2025-06-01", "2025-06-04", booking.StatusBooked)}, want: room.StatusAvailable},
		{name: "cancelled future", occs: []booking.Occupancy{occ(t, "2025-06-10", "2025-06-12", booking.StatusCancelled)}, want: room.StatusAvailable},
		{name: "checked-out", occs: []booking.Occupancy{occ(t, "2025-06-01", "2025-06-06", booking.StatusCheckedOut)}, want: room.StatusAvailable},
		{name: "mixed", occs: []booking.Occupancy{
			occ(t, "2025-06-10", "2025-06-12", booking.StatusCancelled),
			occ(t, "2025-06-20", "2025-06-22", booking.StatusBooked),
		}, want: room.StatusBooked},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, room.DeriveStatus(tc.occs, today))
		})
	}
}

func TestRoom_ApplyDerivedIsIdempotent(t *testing.T) {
	r, err := room.NewRoom("101", "double", decimal.RequireFromString("120.00"), "", time.Now())
	require.NoError(t, err)

	assert.True(t, r.ApplyDerived(room.StatusBooked))
	assert.False(t, r.ApplyDerived(room.StatusBooked))
	assert.Equal(t, room.StatusBooked, r.Status())
}

func TestEnsureDeletable(t *testing.T) {
	today := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, room.EnsureDeletable(nil, today))
	assert.NoError(t, room.EnsureDeletable([]booking.Occupancy{occ(t, "2025-06-01", "2025-06-03", booking.StatusCheckedOut)}, today))
	assert.ErrorIs(t, room.EnsureDeletable([]booking.Occupancy{occ(t, "2025-06-06", "2025-06-08", booking.StatusBooked)}, today), room.ErrHasActiveBooking)
}

func TestNewRoom(t *testing.T) {
	cases := []struct {
		name     string
		number   string
		category string
		price    string
		want     string
		errIs    error
	}{
		{name: "valid", number: "101", category: "double", price: "99.99"},
		{name: "zero price", number: "101", category: "double", price: "0", errIs: room.ErrNonPositivePrice},
		{name: "negative price", number: "101", category: "double", price: "-10", errIs: room.ErrNonPositivePrice},
		{name: "rounds down to zero", number: "101", category: "double", price: "0.004", errIs: room.ErrNonPositivePrice},
		{name: "rounds up to a cent", number: "101", category: "double", price: "0.005", want: "0.01"},
		{name: "largest storable price", number: "101", category: "double", price: "99999999.99"},
		{name: "too large", number: "101", category: "double", price: "100000000", errIs: room.ErrNonPositivePrice},
		{name: "rounds up past the limit", number: "101", category: "double", price: "99999999.996", errIs: room.ErrNonPositivePrice},
		{name: "blank number", number: "  ", category: "double", price: "10", errIs: room.ErrInvalidNumber},
		{name: "blank category", number: "101", category: "", price: "10", errIs: room.ErrInvalidNumber},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := room.NewRoom(tc.number, tc.category, decimal.RequireFromString(tc.price), "", time.Now())
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, room.StatusAvailable, r.Status())
			want := tc.want
			if want == "" {
				want = tc.price
			}
			assert.True(t, r.Price().Equal(decimal.RequireFromString(want)), "price %s", r.Price())
		})
	}
}
