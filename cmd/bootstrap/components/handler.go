package components

import (
	"roomledger/internal/handler"
	"roomledger/internal/handler/api"
	"roomledger/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewFrontDeskHandler,
		api.NewRoomHandler,
		api.NewGuestHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	booking *api.BookingHandler,
	frontDesk *api.FrontDeskHandler,
	room *api.RoomHandler,
	guest *api.GuestHandler,
) handler.Handlers {
	return handler.Handlers{
		Booking:   booking,
		FrontDesk: frontDesk,
		Room:      room,
		Guest:     guest,
	}
}
