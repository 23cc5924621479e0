//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"roomledger/internal/domain/guest"
	"roomledger/internal/handler/api"
	resdto "roomledger/internal/handler/dto/response"
	"roomledger/internal/usecase/commands"
	"roomledger/internal/usecase/queries"
	"roomledger/tests/common/httptest"
	"roomledger/tests/common/testutil"
	commandsmock "roomledger/tests/mock/commands"
	queriesmock "roomledger/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type GuestHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockGuestCommands
	mockQueries  *queriesmock.MockGuestQueries
	handler      *api.GuestHandler
}

func (s *GuestHandlerTestSuite) SetupTest() {
	router, auth := newTestEngine()
	s.router = router

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockGuestCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockGuestQueries(s.mockCtrl)
	s.handler = api.NewGuestHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/guests", s.handler.Register)
	s.router.GET("/staff/guests", auth.RequireStaff(), s.handler.List)
}

func (s *GuestHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestGuestHandlerSuite(t *testing.T) {
	suite.Run(t, new(GuestHandlerTestSuite))
}

func (s *GuestHandlerTestSuite) TestRegister() {
	reqBody := map[string]any{
		"full_name": "Grace Hopper",
		"email":     "grace@example.com",
		"phone":     "+1 555 0100",
		"password":  "correct horse",
	}

	s.Run("success: 201 with the guest id", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().Register(gomock.Any(), commands.RegisterGuestInput{
			FullName: "Grace Hopper", Email: "grace@example.com", Phone: "+1 555 0100", Password: "correct horse",
		}).Return(id, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/guests", reqBody, "")

		var body resdto.GuestRegisteredResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(id.String(), body.ID)
	})

	s.Run("error: usecase codes", func() {
		cases := []struct {
			name       string
			err        error
			wantStatus int
			wantCode   string
		}{
			{name: "weak password", err: guest.ErrPasswordTooWeak, wantStatus: http.StatusBadRequest, wantCode: "WEAK_PASSWORD"},
			{name: "bad email", err: guest.ErrInvalidEmail, wantStatus: http.StatusBadRequest, wantCode: "INVALID_EMAIL"},
			{name: "already registered", err: guest.ErrEmailTaken, wantStatus: http.StatusConflict, wantCode: "GUEST_EXISTS"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Register(gomock.Any(), gomock.Any()).Return(uuid.Nil, tc.err)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/guests", reqBody, "")
				httptest.AssertErrorCode(s.T(), rec, tc.wantStatus, tc.wantCode)
			})
		}
	})

	s.Run("error: missing password", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("password", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/guests", requestMap, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "MISSING_DATA")
	})
}

func (s *GuestHandlerTestSuite) TestList() {
	s.Run("error: guests cannot list guests", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/staff/guests", nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusUnauthorized, "UNAUTHORIZED")
	})

	s.Run("success: search reaches the query", func() {
		v := &queries.GuestView{
			ID:           uuid.New(),
			FullName:     "Grace Hopper",
			Email:        "grace@example.com",
			HasAccount:   true,
			BookingCount: 2,
			CreatedAt:    time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
		}
		s.mockQueries.EXPECT().List(gomock.Any(), receptionist, "hopper", queries.PageRequest{Page: 1, PageSize: 20}).
			Return(queries.NewPage([]*queries.GuestView{v}, queries.PageRequest{Page: 1, PageSize: 20}, 1), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/staff/guests?search=hopper&page=1&page_size=20", nil, receptionistToken)

		var body resdto.PageResponse[resdto.GuestResponse]
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Items, 1)
		s.Equal(v.ID.String(), body.Items[0].ID)
		s.True(body.Items[0].HasAccount)
		s.Equal(2, body.Items[0].BookingCount)
	})
}
