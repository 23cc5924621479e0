package api

import (
	"net/http"

	reqdto "roomledger/internal/handler/dto/request"
	resdto "roomledger/internal/handler/dto/response"
	"roomledger/internal/handler/httperr"
	"roomledger/internal/usecase/commands"
	"roomledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type GuestHandler struct {
	cmds commands.GuestCommands
	q    queries.GuestQueries
}

func NewGuestHandler(cmds commands.GuestCommands, q queries.GuestQueries) *GuestHandler {
	return &GuestHandler{cmds: cmds, q: q}
}

// @Summary Register guest
// @Description Create a guest account, or attach a password to a guest first seen through a booking
// @Tags guests
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterGuestRequest true "Registration"
// @Success 201 {object} resdto.GuestRegisteredResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /guests [post]
func (h *GuestHandler) Register(c *gin.Context) {
	var req reqdto.RegisterGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortBind(c, err)
		return
	}
	id, err := h.cmds.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.GuestRegisteredResponse{ID: id.String()})
}

// @Summary List guests
// @Tags staff-guests
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name or email substring"
// @Param page query int false "Page (1-based)"
// @Param page_size query int false "Page size (max 100)"
// @Success 200 {object} resdto.PageResponse[resdto.GuestResponse]
// @Router /staff/guests [get]
func (h *GuestHandler) List(c *gin.Context) {
	a, ok := staffFrom(c)
	if !ok {
		return
	}
	var query reqdto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortBind(c, err)
		return
	}
	page, err := h.q.List(c.Request.Context(), a, query.Search, query.ToPage())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	items, err := resdto.FromGuestViews(page.Items)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPage(page, items))
}
