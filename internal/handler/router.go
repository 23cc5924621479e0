package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"roomledger/internal/domain/actor"
	"roomledger/internal/handler/api"
	"roomledger/internal/handler/middleware"
	"roomledger/internal/handler/validation"
	"roomledger/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Booking   *api.BookingHandler
	FrontDesk *api.FrontDeskHandler
	Room      *api.RoomHandler
	Guest     *api.GuestHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	validation.Register()
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.OptionalStaff())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Booking.Create},
				{Method: http.MethodGet, Path: "/:reference", Handler: h.Booking.Lookup},
				{Method: http.MethodPatch, Path: "/:reference", Handler: h.Booking.Modify},
				{Method: http.MethodPost, Path: "/:reference/cancel", Handler: h.Booking.Cancel},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/rooms/available", Handler: h.Room.SearchAvailable},
			{Method: http.MethodPost, Path: "/guests", Handler: h.Guest.Register},
		})

		staff := apiGroup.Group("/staff")
		staff.Use(authMiddleware.RequireStaff())
		{
			addRoutes(staff, []route{
				{Method: http.MethodPost, Path: "/bookings", Handler: h.FrontDesk.CreateWalkIn},
				{Method: http.MethodGet, Path: "/bookings", Handler: h.FrontDesk.List},
				{Method: http.MethodGet, Path: "/bookings/:id", Handler: h.FrontDesk.Get},
				{Method: http.MethodPatch, Path: "/bookings/:id", Handler: h.FrontDesk.Modify},
				{Method: http.MethodDelete, Path: "/bookings/:id", Handler: h.FrontDesk.Delete},
				{Method: http.MethodPatch, Path: "/bookings/:id/status", Handler: h.FrontDesk.UpdateStatus},
				{Method: http.MethodPost, Path: "/bookings/:id/checkout", Handler: h.FrontDesk.Checkout},
				{Method: http.MethodPatch, Path: "/bookings/:id/payment", Handler: h.FrontDesk.UpdatePayment},
				{Method: http.MethodGet, Path: "/priorities", Handler: h.FrontDesk.Priorities},

				{Method: http.MethodGet, Path: "/rooms", Handler: h.Room.List},
				{Method: http.MethodPost, Path: "/rooms", Handler: h.Room.Add},
				{Method: http.MethodPost, Path: "/rooms/reconcile", Handler: h.Room.Reconcile},
				{
					Method:  http.MethodDelete,
					Path:    "/rooms/:id",
					Handler: h.Room.Delete,
					Mw:      []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(actor.RoleManager)},
				},

				{Method: http.MethodGet, Path: "/guests", Handler: h.Guest.List},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
