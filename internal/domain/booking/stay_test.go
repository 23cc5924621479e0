//go:build unit

package booking_test

import (
	"testing"
	"time"

	"roomledger/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func period(t *testing.T, in, out string) booking.StayPeriod {
	t.Helper()
	p, err := booking.ParseStayPeriod(in, out)
	require.NoError(t, err)
	return p
}

func TestParseStayPeriod(t *testing.T) {
	cases := []struct {
		name    string
		in, out string
		errIs   error
	}{
		{name: "valid", in: "2025-06-01", out: "2025-06-05"},
		{name: "single night", in: "2025-06-01", out: "2025-06-02"},
		{name: "same day", in: "2025-06-01", out: "2025-06-01", errIs: booking.ErrCheckOutNotAfter},
		{name: "reversed", in: "2025-06-05", out: "2025-06-01", errIs: booking.ErrCheckOutNotAfter},
		{name: "bad check-in format", in: "06/01/2025", out: "2025-06-05", errIs: booking.ErrInvalidDateFormat},
		{name: "bad check-out format", in: "2025-06-01", out: "2025-6-5x", errIs: booking.ErrInvalidDateFormat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := booking.ParseStayPeriod(tc.in, tc.out)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.in, p.CheckIn().Format(booking.DateLayout))
			assert.Equal(t, tc.out, p.CheckOut().Format(booking.DateLayout))
		})
	}
}

func TestStayPeriod_Overlaps(t *testing.T) {
	base := period(t, "2025-06-01", "2025-06-05")

	cases := []struct {
		name    string
		in, out string
		want    bool
	}{
		{name: "identical", in: "2025-06-01", out: "2025-06-05", want: true},
		{name: "starts inside", in: "2025-06-03", out: "2025-06-06", want: true},
		{name: "ends inside", in: "2025-05-30", out: "2025-06-02", want: true},
		{name: "contains", in: "2025-05-30", out: "2025-06-10", want: true},
		{name: "contained", in: "2025-06-02", out: "2025-06-03", want: true},
		{name: "check-in on checkout day", in: "2025-06-05", out: "2025-06-07", want: false},
		{name: "checkout on check-in day", in: "2025-05-28", out: "2025-06-01", want: false},
		{name: "disjoint", in: "2025-07-01", out: "2025-07-03", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			other := period(t, tc.in, tc.out)
			assert.Equal(t, tc.want, base.Overlaps(other))
			assert.Equal(t, tc.want, other.Overlaps(base), "symmetric")
		})
	}
}

func TestStayPeriod_ValidateStart(t *testing.T) {
	p := period(t, "2025-06-01", "2025-06-05")

	assert.NoError(t, p.ValidateStart(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.NoError(t, p.ValidateStart(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)))
	assert.ErrorIs(t, p.ValidateStart(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)), booking.ErrCheckInInPast)
}

func TestStayPeriod_Nights(t *testing.T) {
	assert.Equal(t, 4, period(t, "2025-06-01", "2025-06-05").Nights())
	assert.Equal(t, 1, period(t, "2025-12-31", "2026-01-01").Nights())
}

func TestOverlaps(t *testing.T) {
	roomID := uuid.New()
	self := uuid.New()
	candidate := period(t, "2025-06-03", "2025-06-06")

	occ := func(id uuid.UUID, in, out string, st booking.Status) booking.Occupancy {
		return booking.Occupancy{BookingID: id, RoomID: roomID, Period: period(t, in, out), Status: st}
	}

	cases := []struct {
		name      string
		existing  []booking.Occupancy
		occupying booking.StatusSet
		exclude   uuid.UUID
		want      bool
	}{
		{name: "no bookings", want: false},
		{name: "booked overlap", existing: []booking.Occupancy{occ(uuid.New(), "2025-06-01", "2025-06-05", booking.StatusBooked)}, want: true},
		{name: "checked-in overlap", existing: []booking.Occupancy{occ(uuid.New(), "2025-06-01", "2025-06-05", booking.StatusCheckedIn)}, want: true},
		{name: "cancelled never occupies", existing: []booking.Occupancy{occ(uuid.New(), "2025-06-01", "2025-06-05", booking.StatusCancelled)}, want: false},
		{name: "checked-out never occupies", existing: []booking.Occupancy{occ(uuid.New(), "2025-06-01", "2025-06-05", booking.StatusCheckedOut)}, want: false},
		{name: "excluded self", existing: []booking.Occupancy{occ(self, "2025-06-01", "2025-06-05", booking.StatusBooked)}, exclude: self, want: false},
		{name: "excluded self but other overlaps", existing: []booking.Occupancy{
			occ(self, "2025-06-01", "2025-06-05", booking.StatusBooked),
			occ(uuid.New(), "2025-06-05", "2025-06-08", booking.StatusBooked),
		}, exclude: self, want: true},
		{name: "custom occupying set", existing: []booking.Occupancy{occ(uuid.New(), "2025-06-01", "2025-06-05", booking.StatusCheckedIn)}, occupying: booking.StatusSet{booking.StatusBooked}, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, booking.Overlaps(tc.existing, candidate, tc.occupying, tc.exclude))
		})
	}
}
