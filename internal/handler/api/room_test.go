//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"roomledger/internal/domain/actor"
	"roomledger/internal/domain/room"
	"roomledger/internal/handler/api"
	resdto "roomledger/internal/handler/dto/response"
	"roomledger/internal/usecase/commands"
	"roomledger/internal/usecase/queries"
	"roomledger/tests/common/builder"
	"roomledger/tests/common/httptest"
	commandsmock "roomledger/tests/mock/commands"
	queriesmock "roomledger/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RoomHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockRoomCommands
	mockQueries  *queriesmock.MockRoomQueries
	handler      *api.RoomHandler
}

func (s *RoomHandlerTestSuite) SetupTest() {
	router, auth := newTestEngine()
	s.router = router

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockRoomCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockRoomQueries(s.mockCtrl)
	s.handler = api.NewRoomHandler(s.mockCommands, s.mockQueries)

	s.router.GET("/rooms/available", s.handler.SearchAvailable)
	staff := s.router.Group("/staff", auth.RequireStaff())
	staff.GET("/rooms", s.handler.List)
	staff.POST("/rooms", s.handler.Add)
	staff.POST("/rooms/reconcile", s.handler.Reconcile)
	staff.DELETE("/rooms/:id", auth.RequireRoleAtLeast(actor.RoleManager), s.handler.Delete)
}

func (s *RoomHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRoomHandlerSuite(t *testing.T) {
	suite.Run(t, new(RoomHandlerTestSuite))
}

func roomView(number string) *queries.RoomView {
	return &queries.RoomView{
		ID:        uuid.New(),
		Number:    number,
		Category:  "double",
		Price:     decimal.RequireFromString("99.5"),
		Status:    room.StatusAvailable.String(),
		CreatedAt: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (s *RoomHandlerTestSuite) TestSearchAvailable() {
	s.Run("success: public, prices rendered with two decimals", func() {
		v := roomView("101")
		s.mockQueries.EXPECT().SearchAvailable(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, f queries.AvailabilityFilter) ([]*queries.RoomView, error) {
				s.Equal("2025-06-01", f.Period.CheckIn().Format("2006-01-02"))
				s.Equal("2025-06-03", f.Period.CheckOut().Format("2006-01-02"))
				s.Equal("double", f.Category)
				s.Equal(uuid.Nil, f.ExcludeBookingID)
				return []*queries.RoomView{v}, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/rooms/available?check_in=2025-06-01&check_out=2025-06-03&category=double", nil, "")

		var body []resdto.RoomResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.Equal(v.ID.String(), body[0].ID)
		s.Equal("99.50", body[0].Price)
		s.Equal(v.CreatedAt.Unix(), body[0].CreatedAt)
	})

	s.Run("error: check_out not after check_in", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/rooms/available?check_in=2025-06-03&check_out=2025-06-03", nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "INVALID_CHECK_OUT")
	})

	s.Run("error: missing check_out", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rooms/available?check_in=2025-06-03", nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "MISSING_DATA")
	})

	s.Run("error: exclude_booking_id must be a uuid", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/rooms/available?check_in=2025-06-01&check_out=2025-06-03&exclude_booking_id=PL10101", nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "INVALID_REQUEST")
	})
}

func (s *RoomHandlerTestSuite) TestList() {
	s.mockQueries.EXPECT().List(gomock.Any(), receptionist, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ actor.Actor, p queries.PageRequest) (queries.Page[*queries.RoomView], error) {
			return queries.NewPage([]*queries.RoomView{roomView("101"), roomView("102")}, p, 2), nil
		})

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/staff/rooms", nil, receptionistToken)

	var body resdto.PageResponse[resdto.RoomResponse]
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Len(body.Items, 2)
	s.Equal(1, body.Page)
	s.Equal(queries.DefaultPageSize, body.PageSize)
}

func (s *RoomHandlerTestSuite) TestAdd() {
	s.Run("success: 201", func() {
		created := builder.NewRoomBuilder().WithNumber("204").MustBuildDomain()
		s.mockCommands.EXPECT().Add(gomock.Any(), receptionist, commands.AddRoomInput{
			Number: "204", Category: "double", Price: "120", Description: "Garden view",
		}).Return(created, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/staff/rooms", map[string]any{
			"room_number": "204", "category": "double", "price": "120", "description": "Garden view",
		}, receptionistToken)

		var body resdto.RoomCreatedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("204", body.Number)
		s.Equal("120.00", body.Price)
		s.Equal("available", body.Status)
	})

	s.Run("error: duplicate number", func() {
		s.mockCommands.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, room.ErrNumberTaken)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/staff/rooms", map[string]any{
			"room_number": "101", "category": "double", "price": 120,
		}, receptionistToken)
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "ROOM_EXISTS")
	})

	s.Run("error: price is not a number", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/staff/rooms", map[string]any{
			"room_number": "101", "category": "double", "price": "cheap",
		}, receptionistToken)
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "INVALID_REQUEST")
	})
}

func (s *RoomHandlerTestSuite) TestDelete() {
	id := uuid.New()
	url := "/staff/rooms/" + id.String()

	s.Run("error: receptionist is forbidden before the command runs", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, receptionistToken)
		httptest.AssertErrorCode(s.T(), rec, http.StatusForbidden, "FORBIDDEN")
	})

	s.Run("success: manager", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), manager, id).Return(nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, managerToken)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: active booking", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), manager, id).Return(room.ErrHasActiveBooking)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, managerToken)
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "ROOM_ACTIVE")
	})
}

func (s *RoomHandlerTestSuite) TestReconcile() {
	s.mockCommands.EXPECT().Reconcile(gomock.Any(), receptionist).Return(commands.ReconcileResult{Checked: 12, Changed: 2}, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/staff/rooms/reconcile", nil, receptionistToken)

	var body resdto.ReconcileResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Equal(resdto.ReconcileResponse{Checked: 12, Changed: 2}, body)
}
