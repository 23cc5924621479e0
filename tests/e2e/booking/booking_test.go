//go:build e2e

package booking_test

import (
	"net/http"
	"testing"
	"time"

	"roomledger/internal/domain/actor"
	reqdto "roomledger/internal/handler/dto/request"
	resdto "roomledger/internal/handler/dto/response"
	"roomledger/tests/common/dbtest"
	"roomledger/tests/common/httptest"
	"roomledger/tests/e2e"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BookingLifecycleSuite struct {
	e2e.SharedSuite
	room101 uuid.UUID
	room102 uuid.UUID
	staff   string
}

func TestBookingLifecycleSuite(t *testing.T) {
	suite.Run(t, new(BookingLifecycleSuite))
}

func (s *BookingLifecycleSuite) SetupTest() {
	s.SharedSuite.SetupTest()
	s.room101 = dbtest.CreateTestRoom(s.T(), s.DB, "101", "double", decimal.RequireFromString("120.00"))
	s.room102 = dbtest.CreateTestRoom(s.T(), s.DB, "102", "single", decimal.RequireFromString("80.00"))
	s.staff = s.JWT.StaffToken(s.T(), actor.RoleReceptionist)
}

func (s *BookingLifecycleSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *BookingLifecycleSuite) createBooking(roomID uuid.UUID, checkIn, checkOut, requestID string) *resdto.BookingResponse {
	s.T().Helper()
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings", reqdto.CreateBookingRequest{
		FullName:  "Ada Lovelace",
		Email:     "ada@example.com",
		RoomID:    roomID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		RequestID: requestID,
	}, "")
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var res resdto.BookingResponse
	httptest.DecodeJSON(s.T(), w, &res)
	return &res
}

func (s *BookingLifecycleSuite) staffPatch(path string, body any) (int, *resdto.BookingResponse) {
	s.T().Helper()
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, path, body, s.staff)
	if w.Code != http.StatusOK {
		return w.Code, nil
	}
	var res resdto.BookingResponse
	httptest.DecodeJSON(s.T(), w, &res)
	return w.Code, &res
}

func (s *BookingLifecycleSuite) TestCreateAndConflict() {
	s.Run("new booking occupies the room", func() {
		res := s.createBooking(s.room101, "2025-06-01", "2025-06-05", "r1")

		s.Equal("booked", res.Status)
		s.Equal("pending", res.PaymentStatus)
		s.Equal(4, res.Nights)
		s.Require().NotNil(res.TotalPrice)
		s.Equal("480.00", *res.TotalPrice)
		s.Equal("booked", dbtest.RoomStatus(s.T(), s.DB, s.room101))
	})

	s.Run("overlapping range on the same room is rejected", func() {
		s.createBooking(s.room101, "2025-06-01", "2025-06-05", "r1")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings", reqdto.CreateBookingRequest{
			FullName:  "Grace Hopper",
			Email:     "grace@example.com",
			RoomID:    s.room101,
			CheckIn:   "2025-06-03",
			CheckOut:  "2025-06-06",
			RequestID: "r2",
		}, "")

		httptest.AssertErrorCode(s.T(), w, http.StatusConflict, "ROOM_BOOKED")
		s.Equal(1, dbtest.CountRows(s.T(), s.DB, "bookings", ""))
	})

	s.Run("back-to-back stays do not conflict", func() {
		s.createBooking(s.room101, "2025-06-01", "2025-06-05", "r1")
		res := s.createBooking(s.room101, "2025-06-05", "2025-06-07", "r2")

		s.Equal("booked", res.Status)
		s.Equal(2, dbtest.CountRows(s.T(), s.DB, "bookings", ""))
	})

	s.Run("check-in in the past is rejected", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings", reqdto.CreateBookingRequest{
			FullName: "Ada Lovelace",
			Email:    "ada@example.com",
			RoomID:   s.room101,
			CheckIn:  "2025-05-31",
			CheckOut: "2025-06-02",
		}, "")

		httptest.AssertErrorCode(s.T(), w, http.StatusBadRequest, "INVALID_CHECK_IN")
	})
}

func (s *BookingLifecycleSuite) TestIdempotentReplay() {
	s.Run("same request id returns the same booking", func() {
		first := s.createBooking(s.room101, "2025-06-01", "2025-06-05", "r1")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings", reqdto.CreateBookingRequest{
			FullName:  "Ada Lovelace",
			Email:     "ada@example.com",
			RoomID:    s.room101,
			CheckIn:   "2025-06-01",
			CheckOut:  "2025-06-05",
			RequestID: "r1",
		}, "")
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

		var replay resdto.BookingResponse
		httptest.DecodeJSON(s.T(), w, &replay)
		s.Equal(first.Reference, replay.Reference)
		s.True(replay.IsReplayed)
		s.Equal(1, dbtest.CountRows(s.T(), s.DB, "bookings", ""))
	})

	s.Run("same request id with a different payload is refused", func() {
		s.createBooking(s.room101, "2025-06-01", "2025-06-05", "r1")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings", reqdto.CreateBookingRequest{
			FullName:  "Ada Lovelace",
			Email:     "ada@example.com",
			RoomID:    s.room102,
			CheckIn:   "2025-06-01",
			CheckOut:  "2025-06-05",
			RequestID: "r1",
		}, "")

		httptest.AssertErrorCode(s.T(), w, http.StatusConflict, "DUPLICATE_REQUEST")
		s.Equal(1, dbtest.CountRows(s.T(), s.DB, "bookings", ""))
	})

	s.Run("idempotency key header is honoured", func() {
		body := reqdto.CreateBookingRequest{
			FullName: "Ada Lovelace",
			Email:    "ada@example.com",
			RoomID:   s.room102,
			CheckIn:  "2025-06-10",
			CheckOut: "2025-06-12",
		}
		headers := map[string]string{"Idempotency-Key": "hdr-1"}

		first := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, "/api/bookings", body, headers)
		second := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, "/api/bookings", body, headers)

		s.Equal(http.StatusCreated, first.Code, first.Body.String())
		s.Equal(http.StatusOK, second.Code, second.Body.String())
		s.Equal(1, dbtest.CountRows(s.T(), s.DB, "bookings", ""))
	})
}

func (s *BookingLifecycleSuite) TestGuestCancel() {
	s.Run("cancel releases the room", func() {
		res := s.createBooking(s.room101, "2025-06-01", "2025-06-05", "r1")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			"/api/bookings/"+res.Reference+"/cancel", reqdto.CancelBookingRequest{Email: "ADA@example.com"}, "")
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

		var cancelled resdto.BookingResponse
		httptest.DecodeJSON(s.T(), w, &cancelled)
		s.Equal("cancelled", cancelled.Status)
		s.Equal("available", dbtest.RoomStatus(s.T(), s.DB, s.room101))
		s.Equal(1, dbtest.CountRows(s.T(), s.DB, "notification_jobs", "kind = 'booking.cancelled'"))
	})

	s.Run("a different email cannot cancel", func() {
		res := s.createBooking(s.room101, "2025-06-01", "2025-06-05", "r1")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			"/api/bookings/"+res.Reference+"/cancel", reqdto.CancelBookingRequest{Email: "mallory@example.com"}, "")

		httptest.AssertErrorCode(s.T(), w, http.StatusForbidden, "GUEST_MISMATCH")
		s.Equal("booked", dbtest.RoomStatus(s.T(), s.DB, s.room101))
	})

	s.Run("cancelled booking frees the dates for others", func() {
		res := s.createBooking(s.room101, "2025-06-01", "2025-06-05", "r1")
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			"/api/bookings/"+res.Reference+"/cancel", reqdto.CancelBookingRequest{Email: "ada@example.com"}, "")
		s.Require().Equal(http.StatusOK, w.Code)

		again := s.createBooking(s.room101, "2025-06-02", "2025-06-04", "r2")
		s.Equal("booked", again.Status)
	})
}

func (s *BookingLifecycleSuite) TestGuestModify() {
	s.Run("move to another room", func() {
		res := s.createBooking(s.room101, "2025-06-01", "2025-06-05", "r1")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, "/api/bookings/"+res.Reference,
			reqdto.ModifyBookingRequest{Email: "ada@example.com", RoomID: &s.room102, RequestID: "m1"}, "")
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

		var moved resdto.BookingResponse
		httptest.DecodeJSON(s.T(), w, &moved)
		s.Require().NotNil(moved.RoomNumber)
		s.Equal("102", *moved.RoomNumber)
		s.Equal("available", dbtest.RoomStatus(s.T(), s.DB, s.room101))
		s.Equal("booked", dbtest.RoomStatus(s.T(), s.DB, s.room102))
	})

	s.Run("a booking does not conflict with itself", func() {
		res := s.createBooking(s.room101, "2025-06-01", "2025-06-05", "r1")
		checkOut := "2025-06-06"

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, "/api/bookings/"+res.Reference,
			reqdto.ModifyBookingRequest{Email: "ada@example.com", CheckOut: &checkOut, RequestID: "m1"}, "")
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

		var extended resdto.BookingResponse
		httptest.DecodeJSON(s.T(), w, &extended)
		s.Equal("2025-06-06", extended.CheckOut)
		s.Equal(5, extended.Nights)
	})

	s.Run("moving onto an occupied range is rejected", func() {
		s.createBooking(s.room102, "2025-06-02", "2025-06-04", "r0")
		res := s.createBooking(s.room101, "2025-06-01", "2025-06-05", "r1")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, "/api/bookings/"+res.Reference,
			reqdto.ModifyBookingRequest{Email: "ada@example.com", RoomID: &s.room102, RequestID: "m1"}, "")

		httptest.AssertErrorCode(s.T(), w, http.StatusConflict, "ROOM_BOOKED")
	})
}

func (s *BookingLifecycleSuite) TestFrontDeskFlow() {
	s.Run("check-in requires payment", func() {
		res := s.createBooking(s.room101, "2025-06-01", "2025-06-05", "r1")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch,
			"/api/staff/bookings/"+res.ID+"/status", reqdto.UpdateStatusRequest{Status: "checked-in"}, s.staff)

		httptest.AssertErrorCode(s.T(), w, http.StatusUnprocessableEntity, "PAYMENT_REQUIRED")
	})

	s.Run("check-in only on the check-in date", func() {
		res := s.createBooking(s.room101, "2025-06-03", "2025-06-05", "r1")
		code, _ := s.staffPatch("/api/staff/bookings/"+res.ID+"/payment", reqdto.UpdatePaymentRequest{PaymentStatus: "paid"})
		s.Require().Equal(http.StatusOK, code)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch,
			"/api/staff/bookings/"+res.ID+"/status", reqdto.UpdateStatusRequest{Status: "checked-in"}, s.staff)
		httptest.AssertErrorCode(s.T(), w, http.StatusUnprocessableEntity, "INVALID_CHECKIN_DATE")

		s.Clock.Add(48 * time.Hour)
		code, checkedIn := s.staffPatch("/api/staff/bookings/"+res.ID+"/status", reqdto.UpdateStatusRequest{Status: "checked-in"})
		s.Require().Equal(http.StatusOK, code)
		s.Equal("checked-in", checkedIn.Status)
	})

	s.Run("full stay ends in a terminal state", func() {
		res := s.createBooking(s.room101, "2025-06-01", "2025-06-05", "r1")
		base := "/api/staff/bookings/" + res.ID

		code, _ := s.staffPatch(base+"/payment", reqdto.UpdatePaymentRequest{PaymentStatus: "paid"})
		s.Require().Equal(http.StatusOK, code)
		code, checkedIn := s.staffPatch(base+"/status", reqdto.UpdateStatusRequest{Status: "checked-in"})
		s.Require().Equal(http.StatusOK, code)
		s.Equal("checked-in", checkedIn.Status)
		s.Equal("booked", dbtest.RoomStatus(s.T(), s.DB, s.room101))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, base+"/payment",
			reqdto.UpdatePaymentRequest{PaymentStatus: "pending"}, s.staff)
		httptest.AssertErrorCode(s.T(), w, http.StatusUnprocessableEntity, "INVALID_PAYMENT_STATUS")

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, base,
			reqdto.StaffModifyBookingRequest{RoomID: &s.room102}, s.staff)
		httptest.AssertErrorCode(s.T(), w, http.StatusUnprocessableEntity, "INVALID_BOOKING_STATUS")

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, base+"/checkout", nil, s.staff)
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		s.Equal("available", dbtest.RoomStatus(s.T(), s.DB, s.room101))
		s.Equal(2, dbtest.CountRows(s.T(), s.DB, "check_logs", ""))

		for _, attempt := range []struct {
			method string
			path   string
			body   any
		}{
			{http.MethodPatch, base + "/status", reqdto.UpdateStatusRequest{Status: "cancelled"}},
			{http.MethodPatch, base + "/payment", reqdto.UpdatePaymentRequest{PaymentStatus: "pending"}},
			{http.MethodPatch, base, reqdto.StaffModifyBookingRequest{RoomID: &s.room102}},
			{http.MethodPost, base + "/checkout", nil},
		} {
			w := httptest.PerformRequest(s.T(), s.Router, attempt.method, attempt.path, attempt.body, s.staff)
			httptest.AssertErrorCode(s.T(), w, http.StatusUnprocessableEntity, "INVALID_MODIFICATION")
		}

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, base, nil, s.staff)
		s.Equal(http.StatusNoContent, w.Code)
		s.Equal(0, dbtest.CountRows(s.T(), s.DB, "bookings", ""))
	})

	s.Run("active bookings cannot be deleted", func() {
		res := s.createBooking(s.room101, "2025-06-01", "2025-06-05", "r1")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, "/api/staff/bookings/"+res.ID, nil, s.staff)

		httptest.AssertErrorCode(s.T(), w, http.StatusConflict, "BOOKING_ACTIVE")
	})

	s.Run("list and priorities reflect today's arrivals", func() {
		s.createBooking(s.room101, "2025-06-01", "2025-06-05", "r1")
		s.createBooking(s.room102, "2025-06-03", "2025-06-04", "r2")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/staff/bookings?filter=today", nil, s.staff)
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		var page resdto.PageResponse[resdto.BookingResponse]
		httptest.DecodeJSON(s.T(), w, &page)
		s.Equal(1, page.TotalCount)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/staff/priorities", nil, s.staff)
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		var priorities resdto.PrioritiesResponse
		httptest.DecodeJSON(s.T(), w, &priorities)
		s.Equal(1, priorities.CheckInsToday)
		s.Equal(1, priorities.TotalBookingsToday)
		s.Equal(2, priorities.UpcomingCheckIns)
	})
}
