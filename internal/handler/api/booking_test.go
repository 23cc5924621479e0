//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"roomledger/internal/domain/actor"
	"roomledger/internal/domain/booking"
	"roomledger/internal/domain/guest"
	"roomledger/internal/handler/api"
	resdto "roomledger/internal/handler/dto/response"
	"roomledger/internal/pkg/errs"
	"roomledger/internal/usecase/commands"
	"roomledger/tests/common/builder"
	"roomledger/tests/common/httptest"
	"roomledger/tests/common/testutil"
	commandsmock "roomledger/tests/mock/commands"
	queriesmock "roomledger/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	router, auth := newTestEngine()
	s.router = router

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	g := s.router.Group("/bookings", auth.OptionalStaff())
	g.POST("", s.handler.Create)
	g.GET("/:reference", s.handler.Lookup)
	g.PATCH("/:reference", s.handler.Modify)
	g.POST("/:reference/cancel", s.handler.Cancel)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

type testCaseBooking struct {
	name       string
	mutate     func(m map[string]any)
	expectCode string
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"

	b := builder.NewBookingBuilder()
	reqBody := b.BuildCreateRequestDTO()
	view := b.BuildView()
	result := &commands.BookingResult{BookingID: view.ID, Reference: view.Reference}

	s.Run("success: 201 with Location and priced booking", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, a actor.Actor, in commands.CreateBookingInput) (*commands.BookingResult, error) {
				s.Equal(actor.KindGuest, a.Kind())
				s.Equal(b.Email, a.Email())
				s.Equal(b.RequestID, in.RequestID)
				return result, nil
			})
		s.mockQueries.EXPECT().GetByIDSystem(gomock.Any(), view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/bookings/" + view.Reference})
		s.Equal(view.Reference, body.Reference)
		s.Equal(4, body.Nights)
		s.Require().NotNil(body.TotalPrice)
		s.Equal("480.00", *body.TotalPrice)
		s.False(body.IsReplayed)
	})

	s.Run("success: replay answers 200 with is_replayed", func() {
		replayed := *result
		replayed.IsReplayed = true
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(&replayed, nil)
		s.mockQueries.EXPECT().GetByIDSystem(gomock.Any(), view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.IsReplayed)
	})

	s.Run("Idempotency-Key header stands in for a missing request_id", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("request_id", nil))
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ actor.Actor, in commands.CreateBookingInput) (*commands.BookingResult, error) {
				s.Equal("header-key", in.RequestID)
				return result, nil
			})
		s.mockQueries.EXPECT().GetByIDSystem(gomock.Any(), view.ID).Return(view, nil)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, requestMap,
			map[string]string{api.IdempotencyKeyHeader: "header-key"})
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("staff token books on behalf of the guest", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, a actor.Actor, _ commands.CreateBookingInput) (*commands.BookingResult, error) {
				s.True(a.IsStaff())
				s.Equal(receptionist.StaffID(), a.StaffID())
				return result, nil
			})
		s.mockQueries.EXPECT().GetByIDSystem(gomock.Any(), view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, receptionistToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 on malformed body", func() {
		cases := []testCaseBooking{
			{name: "missing full_name", mutate: testutil.Field("full_name", nil), expectCode: "MISSING_DATA"},
			{name: "missing email", mutate: testutil.Field("email", nil), expectCode: "MISSING_DATA"},
			{name: "missing room_id", mutate: testutil.Field("room_id", nil), expectCode: "MISSING_DATA"},
			{name: "missing check_in", mutate: testutil.Field("check_in", nil), expectCode: "MISSING_DATA"},
			{name: "slashed check_in", mutate: testutil.Field("check_in", "2025/06/01"), expectCode: "INVALID_DATE_FORMAT"},
			{name: "impossible check_out", mutate: testutil.Field("check_out", "2025-02-30"), expectCode: "INVALID_DATE_FORMAT"},
			{name: "room_id not a uuid", mutate: testutil.Field("room_id", "101"), expectCode: "INVALID_REQUEST"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, tc.expectCode)
			})
		}
	})

	s.Run("error: maps usecase errors to statuses and codes", func() {
		cases := []struct {
			name       string
			err        error
			wantStatus int
			wantCode   string
		}{
			{name: "overlap", err: booking.ErrRoomBooked, wantStatus: http.StatusConflict, wantCode: "ROOM_BOOKED"},
			{name: "check-in in the past", err: booking.ErrCheckInInPast, wantStatus: http.StatusBadRequest, wantCode: "INVALID_CHECK_IN"},
			{name: "guest mismatch", err: guest.ErrEmailMismatch, wantStatus: http.StatusForbidden, wantCode: "GUEST_MISMATCH"},
			{name: "request id reuse", err: errs.ErrDuplicateRequest, wantStatus: http.StatusConflict, wantCode: "DUPLICATE_REQUEST"},
			{name: "contention", err: errs.Mark(errors.New("40001"), errs.ErrStorageContention), wantStatus: http.StatusServiceUnavailable, wantCode: "STORAGE_CONTENTION"},
			{name: "storage fault", err: errs.Mark(errors.New("conn reset"), errs.ErrStorageFault), wantStatus: http.StatusInternalServerError, wantCode: "STORAGE_FAULT"},
			{name: "uncoded", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorCode(s.T(), rec, tc.wantStatus, tc.wantCode)
			})
		}
	})
}

// ================================================================================
// TestLookup
// ================================================================================

func (s *BookingHandlerTestSuite) TestLookup() {
	view := builder.NewBookingBuilder().BuildView()

	s.Run("success: guest with matching email", func() {
		s.mockQueries.EXPECT().Lookup(gomock.Any(), actor.Guest("ada@example.com"), booking.Reference("PL10101"), "ada@example.com").
			Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/PL10101?email=ada@example.com", nil, "")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("2025-06-01", body.CheckIn)
		s.Equal("2025-06-05", body.CheckOut)
	})

	s.Run("error: malformed reference never reaches the query", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/XX1?email=ada@example.com", nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "INVALID_REFERENCE")
	})

	s.Run("error: 404 when unknown", func() {
		s.mockQueries.EXPECT().Lookup(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, booking.ErrNotFound)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/PL99999?email=ada@example.com", nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "BOOKING_NOT_FOUND")
	})
}

// ================================================================================
// TestModify
// ================================================================================

func (s *BookingHandlerTestSuite) TestModify() {
	view := builder.NewBookingBuilder().WithDates("2025-06-02", "2025-06-06").BuildView()
	url := "/bookings/PL10101"

	s.Run("success: only supplied fields reach the command", func() {
		s.mockCommands.EXPECT().Modify(gomock.Any(), gomock.Any(), booking.Reference("PL10101"), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ actor.Actor, _ booking.Reference, in commands.ModifyBookingInput) (*commands.BookingResult, error) {
				s.Nil(in.RoomID)
				s.Require().NotNil(in.CheckIn)
				s.Equal("2025-06-02", *in.CheckIn)
				s.Nil(in.CheckOut)
				return &commands.BookingResult{BookingID: view.ID, Reference: view.Reference}, nil
			})
		s.mockQueries.EXPECT().GetByIDSystem(gomock.Any(), view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"email": "ada@example.com", "check_in": "2025-06-02"}, "")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("2025-06-02", body.CheckIn)
		s.Empty(rec.Header().Get("Location"))
	})

	s.Run("error: 422 when the booking is no longer booked", func() {
		s.mockCommands.EXPECT().Modify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, booking.ErrNotModifiable)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"email": "ada@example.com", "check_out": "2025-06-07"}, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusUnprocessableEntity, "INVALID_BOOKING_STATUS")
	})

	s.Run("error: 400 on a malformed date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"email": "ada@example.com", "check_out": "07-06-2025"}, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "INVALID_DATE_FORMAT")
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancel() {
	view := builder.NewBookingBuilder().WithStatus(booking.StatusCancelled).BuildView()
	url := "/bookings/PL10101/cancel"

	s.Run("success", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), actor.Guest("ada@example.com"), booking.Reference("PL10101"), "ada@example.com").
			Return(&commands.BookingResult{BookingID: view.ID, Reference: view.Reference}, nil)
		s.mockQueries.EXPECT().GetByIDSystem(gomock.Any(), view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"email": "ada@example.com"}, "")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("cancelled", body.Status)
	})

	s.Run("error: 422 on a terminal booking", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, booking.ErrInvalidModification)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"email": "ada@example.com"}, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusUnprocessableEntity, "INVALID_MODIFICATION")
	})
}
