//go:build unit

package readstore

import (
	"testing"
	"time"

	"roomledger/internal/domain/booking"
	"roomledger/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `PL1`, escapeLike("PL1"))
	assert.Equal(t, `50\%\_off\\`, escapeLike(`50%_off\`))
}

func TestBookingListWhere(t *testing.T) {
	today := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		filter   queries.BookingFilter
		contains []string
		argKeys  []string
	}{
		{
			name:     "all without search",
			filter:   queries.BookingFilter{Window: queries.WindowAll, Today: today},
			contains: []string{"TRUE"},
		},
		{
			name:     "status filter",
			filter:   queries.BookingFilter{Statuses: booking.StatusSet{booking.StatusBooked}, Today: today},
			contains: []string{"b.status = ANY(@statuses)"},
			argKeys:  []string{"statuses"},
		},
		{
			name:     "today window",
			filter:   queries.BookingFilter{Window: queries.WindowToday, Today: today},
			contains: []string{"b.check_in_date <= @today AND b.check_out_date >= @today"},
		},
		{
			name:     "week window",
			filter:   queries.BookingFilter{Window: queries.WindowWeek, Today: today},
			contains: []string{"b.created_at >= @week_ago"},
		},
		{
			name:     "upcoming window",
			filter:   queries.BookingFilter{Window: queries.WindowUpcoming, Today: today},
			contains: []string{"BETWEEN @today AND @horizon", "b.status = 'booked'"},
		},
		{
			name:     "search",
			filter:   queries.BookingFilter{Search: "pl12", Today: today},
			contains: []string{"b.reference ILIKE @search"},
			argKeys:  []string{"search"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := bookingListWhere(tt.filter)
			for _, frag := range tt.contains {
				assert.Contains(t, where, frag)
			}
			for _, k := range tt.argKeys {
				assert.Contains(t, args, k)
			}
		})
	}
}
