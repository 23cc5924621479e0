package api

import (
	"context"
	"net/http"

	"roomledger/internal/domain/booking"
	reqdto "roomledger/internal/handler/dto/request"
	resdto "roomledger/internal/handler/dto/response"
	"roomledger/internal/handler/httperr"
	"roomledger/internal/handler/middleware"
	"roomledger/internal/usecase/commands"
	"roomledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const IdempotencyKeyHeader = "Idempotency-Key"

// BookingHandler serves the guest-facing booking routes. A staff token, when
// present, lifts the email ownership check.
type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking
// @Description Book a room for a stay. Replaying the same request_id returns the original booking.
// @Tags bookings
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Used as request_id when the body omits it"
// @Param request body reqdto.CreateBookingRequest true "Create booking request"
// @Success 201 {object} resdto.BookingResponse
// @Success 200 {object} resdto.BookingResponse "replayed request"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortBind(c, err)
		return
	}
	a := middleware.ActorFor(c, req.Email)
	result, err := h.cmds.Create(c.Request.Context(), a, req.ToInput(c.GetHeader(IdempotencyKeyHeader)))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	respondWithBooking(c, h.q, result, "/api/bookings/"+result.Reference)
}

// @Summary Look up booking
// @Description Fetch a booking by reference. Guests must supply the booking's email.
// @Tags bookings
// @Produce json
// @Param reference path string true "Booking reference (PL + 5 digits)"
// @Param email query string false "Guest email"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{reference} [get]
func (h *BookingHandler) Lookup(c *gin.Context) {
	ref, err := booking.ParseReference(c.Param("reference"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	var query reqdto.LookupBookingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortBind(c, err)
		return
	}
	view, err := h.q.Lookup(c.Request.Context(), middleware.ActorFor(c, query.Email), ref, query.Email)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Modify booking
// @Description Change dates and/or room of a booked reservation
// @Tags bookings
// @Accept json
// @Produce json
// @Param reference path string true "Booking reference"
// @Param Idempotency-Key header string false "Used as request_id when the body omits it"
// @Param request body reqdto.ModifyBookingRequest true "Modify booking request"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{reference} [patch]
func (h *BookingHandler) Modify(c *gin.Context) {
	ref, err := booking.ParseReference(c.Param("reference"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	var req reqdto.ModifyBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortBind(c, err)
		return
	}
	a := middleware.ActorFor(c, req.Email)
	result, err := h.cmds.Modify(c.Request.Context(), a, ref, req.ToInput(c.GetHeader(IdempotencyKeyHeader)))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	respondWithBooking(c, h.q, result, "")
}

// @Summary Cancel booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param reference path string true "Booking reference"
// @Param request body reqdto.CancelBookingRequest true "Cancel booking request"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{reference}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	ref, err := booking.ParseReference(c.Param("reference"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	var req reqdto.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortBind(c, err)
		return
	}
	result, err := h.cmds.Cancel(c.Request.Context(), middleware.ActorFor(c, req.Email), ref, req.Email)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	respondWithBooking(c, h.q, result, "")
}

type bookingReader interface {
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
}

// respondWithBooking loads the booking a command touched. A non-empty
// location marks a creation: 201 with Location, or 200 when replayed.
func respondWithBooking(c *gin.Context, q bookingReader, result *commands.BookingResult, location string) {
	view, err := q.GetByIDSystem(c.Request.Context(), result.BookingID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res := resdto.FromBookingView(view)
	res.IsReplayed = result.IsReplayed

	status := http.StatusOK
	if location != "" {
		c.Header("Location", location)
		if !result.IsReplayed {
			status = http.StatusCreated
		}
	}
	c.JSON(status, res)
}
