package api

import (
	"net/http"

	reqdto "roomledger/internal/handler/dto/request"
	resdto "roomledger/internal/handler/dto/response"
	"roomledger/internal/handler/httperr"
	"roomledger/internal/usecase/commands"
	"roomledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoomHandler struct {
	cmds commands.RoomCommands
	q    queries.RoomQueries
}

func NewRoomHandler(cmds commands.RoomCommands, q queries.RoomQueries) *RoomHandler {
	return &RoomHandler{cmds: cmds, q: q}
}

// @Summary Search available rooms
// @Description Rooms with no booked or checked-in stay overlapping [check_in, check_out)
// @Tags rooms
// @Produce json
// @Param check_in query string true "YYYY-MM-DD"
// @Param check_out query string true "YYYY-MM-DD"
// @Param category query string false "Room category"
// @Param exclude_booking_id query string false "Ignore this booking when checking overlap"
// @Success 200 {array} resdto.RoomResponse
// @Failure 400 {object} httperr.Response
// @Router /rooms/available [get]
func (h *RoomHandler) SearchAvailable(c *gin.Context) {
	var query reqdto.AvailableRoomsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortBind(c, err)
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	rooms, err := h.q.SearchAvailable(c.Request.Context(), filter)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromRoomViews(rooms)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary List rooms
// @Tags staff-rooms
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (1-based)"
// @Param page_size query int false "Page size (max 100)"
// @Success 200 {object} resdto.PageResponse[resdto.RoomResponse]
// @Router /staff/rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	a, ok := staffFrom(c)
	if !ok {
		return
	}
	var query reqdto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortBind(c, err)
		return
	}
	page, err := h.q.List(c.Request.Context(), a, query.ToPage())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	items, err := resdto.FromRoomViews(page.Items)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPage(page, items))
}

// @Summary Add room
// @Tags staff-rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AddRoomRequest true "Room"
// @Success 201 {object} resdto.RoomCreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /staff/rooms [post]
func (h *RoomHandler) Add(c *gin.Context) {
	a, ok := staffFrom(c)
	if !ok {
		return
	}
	var req reqdto.AddRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortBind(c, err)
		return
	}
	r, err := h.cmds.Add(c.Request.Context(), a, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromRoom(r))
}

// @Summary Delete room
// @Description Manager only. Rejected while the room has an active booking.
// @Tags staff-rooms
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 204
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /staff/rooms/{id} [delete]
func (h *RoomHandler) Delete(c *gin.Context) {
	a, ok := staffFrom(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeInvalidRequest, "Invalid id", nil)
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), a, id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Reconcile room statuses
// @Description Re-derive every room's stored status from its bookings
// @Tags staff-rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.ReconcileResponse
// @Router /staff/rooms/reconcile [post]
func (h *RoomHandler) Reconcile(c *gin.Context) {
	a, ok := staffFrom(c)
	if !ok {
		return
	}
	result, err := h.cmds.Reconcile(c.Request.Context(), a)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReconcileResult(result))
}
