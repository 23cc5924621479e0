package api

import (
	"net/http"

	"roomledger/internal/domain/actor"
	reqdto "roomledger/internal/handler/dto/request"
	resdto "roomledger/internal/handler/dto/response"
	"roomledger/internal/handler/httperr"
	"roomledger/internal/handler/middleware"
	"roomledger/internal/pkg/errs"
	"roomledger/internal/usecase/commands"
	"roomledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FrontDeskHandler serves /api/staff/bookings. Every route sits behind
// RequireStaff.
type FrontDeskHandler struct {
	bookings commands.BookingCommands
	desk     commands.FrontDeskCommands
	q        queries.BookingQueries
}

func NewFrontDeskHandler(bookings commands.BookingCommands, desk commands.FrontDeskCommands, q queries.BookingQueries) *FrontDeskHandler {
	return &FrontDeskHandler{bookings: bookings, desk: desk, q: q}
}

func staffFrom(c *gin.Context) (actor.Actor, bool) {
	a, ok := middleware.GetStaff(c)
	if !ok {
		httperr.Abort(c, errs.ErrForbidden)
	}
	return a, ok
}

func bookingIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeInvalidRequest, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

// @Summary Create walk-in booking
// @Tags staff-bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Used as request_id when the body omits it"
// @Param request body reqdto.CreateBookingRequest true "Create booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /staff/bookings [post]
func (h *FrontDeskHandler) CreateWalkIn(c *gin.Context) {
	a, ok := staffFrom(c)
	if !ok {
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortBind(c, err)
		return
	}
	result, err := h.bookings.Create(c.Request.Context(), a, req.ToInput(c.GetHeader(IdempotencyKeyHeader)))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	respondWithBooking(c, h.q, result, "/api/staff/bookings/"+result.BookingID.String())
}

// @Summary List bookings
// @Description Paginated booking list filtered by status, date window and reference search
// @Tags staff-bookings
// @Produce json
// @Security BearerAuth
// @Param status query string false "Comma separated statuses"
// @Param filter query string false "all | today | week | upcoming"
// @Param search query string false "Reference substring"
// @Param page query int false "Page (1-based)"
// @Param page_size query int false "Page size (max 100)"
// @Success 200 {object} resdto.PageResponse[resdto.BookingResponse]
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /staff/bookings [get]
func (h *FrontDeskHandler) List(c *gin.Context) {
	a, ok := staffFrom(c)
	if !ok {
		return
	}
	var query reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortBind(c, err)
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	page, err := h.q.List(c.Request.Context(), a, filter, query.ToPage())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPage(page, resdto.FromBookingViews(page.Items)))
}

// @Summary Get booking
// @Tags staff-bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /staff/bookings/{id} [get]
func (h *FrontDeskHandler) Get(c *gin.Context) {
	a, ok := staffFrom(c)
	if !ok {
		return
	}
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), a, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Modify booking (staff)
// @Description Change dates, room, or reassign the booking to another registered guest
// @Tags staff-bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.StaffModifyBookingRequest true "Modify request"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /staff/bookings/{id} [patch]
func (h *FrontDeskHandler) Modify(c *gin.Context) {
	a, ok := staffFrom(c)
	if !ok {
		return
	}
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	var req reqdto.StaffModifyBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortBind(c, err)
		return
	}
	result, err := h.desk.Modify(c.Request.Context(), a, id, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	respondWithBooking(c, h.q, result, "")
}

// @Summary Update booking status
// @Description Check in (paid, on the check-in date) or cancel
// @Tags staff-bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateStatusRequest true "Status"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /staff/bookings/{id}/status [patch]
func (h *FrontDeskHandler) UpdateStatus(c *gin.Context) {
	a, ok := staffFrom(c)
	if !ok {
		return
	}
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	var req reqdto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortBind(c, err)
		return
	}
	result, err := h.desk.UpdateStatus(c.Request.Context(), a, id, req.Status)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	respondWithBooking(c, h.q, result, "")
}

// @Summary Check out
// @Tags staff-bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /staff/bookings/{id}/checkout [post]
func (h *FrontDeskHandler) Checkout(c *gin.Context) {
	a, ok := staffFrom(c)
	if !ok {
		return
	}
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	result, err := h.desk.Checkout(c.Request.Context(), a, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	respondWithBooking(c, h.q, result, "")
}

// @Summary Update payment status
// @Tags staff-bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdatePaymentRequest true "Payment status"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /staff/bookings/{id}/payment [patch]
func (h *FrontDeskHandler) UpdatePayment(c *gin.Context) {
	a, ok := staffFrom(c)
	if !ok {
		return
	}
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	var req reqdto.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortBind(c, err)
		return
	}
	result, err := h.desk.UpdatePaymentStatus(c.Request.Context(), a, id, req.PaymentStatus)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	respondWithBooking(c, h.q, result, "")
}

// @Summary Delete booking
// @Description Only checked-out or cancelled bookings can be deleted
// @Tags staff-bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /staff/bookings/{id} [delete]
func (h *FrontDeskHandler) Delete(c *gin.Context) {
	a, ok := staffFrom(c)
	if !ok {
		return
	}
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	if err := h.desk.Delete(c.Request.Context(), a, id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Dashboard priorities
// @Description Counters for today's front-desk work
// @Tags staff-bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.PrioritiesResponse
// @Router /staff/priorities [get]
func (h *FrontDeskHandler) Priorities(c *gin.Context) {
	a, ok := staffFrom(c)
	if !ok {
		return
	}
	p, err := h.q.Priorities(c.Request.Context(), a)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
