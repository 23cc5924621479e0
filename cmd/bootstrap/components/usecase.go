package components

import (
	"crypto/rand"
	"io"
	"time"

	"roomledger/internal/pkg/clock"
	"roomledger/internal/pkg/config"
	"roomledger/internal/pkg/errs"
	"roomledger/internal/pkg/password"
	"roomledger/internal/usecase"
	"roomledger/internal/usecase/commands"
	"roomledger/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
	usecaseValidatorsModule,
)

var usecaseBaseOption = fx.Provide(
	NewHotelClock,
	NewReferenceSource,
	fx.Annotate(
		password.NewBcryptHasher,
		fx.As(new(password.Hasher)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
		commands.NewFrontDeskCommands,
		commands.NewRoomCommands,
		commands.NewGuestCommands,
		// read-side drift repair re-derives room status through the command side
		func(rc commands.RoomCommands) queries.RoomStatusRefresher { return rc },
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewRoomQueries,
		queries.NewGuestQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

// NewHotelClock reads "today" in the hotel's time zone.
func NewHotelClock(cfg config.Config) (clock.Clock, error) {
	loc, err := time.LoadLocation(cfg.Hotel.TimeZone)
	if err != nil {
		return nil, errs.Wrapf(err, "invalid HOTEL_TIMEZONE %q", cfg.Hotel.TimeZone)
	}
	return clock.NewRealClock(loc), nil
}

func NewReferenceSource() io.Reader {
	return rand.Reader
}
