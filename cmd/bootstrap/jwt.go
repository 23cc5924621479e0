package bootstrap

import (
	"time"

	"roomledger/internal/pkg/config"
	"roomledger/internal/pkg/errs"
	"roomledger/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

// NewJWTService verifies staff bearer tokens. Guests are never issued one.
func NewJWTService(cfg config.Config) (*jwt.Service, error) {
	tokenDuration, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		return nil, errs.Wrapf(err, "invalid JWT_DURATION %q", cfg.JWT.Duration)
	}
	if tokenDuration <= 0 {
		return nil, errs.Wrapf(errs.ErrMissingData, "JWT_DURATION must be positive, got %q", cfg.JWT.Duration)
	}

	return jwt.NewService(cfg.JWT.Secret, tokenDuration), nil
}
