//go:build unit

package api_test

import (
	"errors"

	"roomledger/internal/domain/actor"
	"roomledger/internal/handler/middleware"
	"roomledger/internal/handler/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	receptionistToken = "receptionist-token"
	managerToken      = "manager-token"
)

var (
	receptionist = actor.Staff(uuid.MustParse("8f14e45f-ceea-467f-a0e6-5b1a2c3d4e01"), actor.RoleReceptionist)
	manager      = actor.Staff(uuid.MustParse("8f14e45f-ceea-467f-a0e6-5b1a2c3d4e02"), actor.RoleManager)
)

// stubTokens accepts exactly the tokens it maps.
type stubTokens map[string]actor.Actor

func (s stubTokens) ValidateToken(token string) (actor.Actor, error) {
	a, ok := s[token]
	if !ok {
		return actor.Actor{}, errors.New("unknown token")
	}
	return a, nil
}

func newTestEngine() (*gin.Engine, *middleware.AuthMiddleware) {
	gin.SetMode(gin.TestMode)
	validation.Register()
	auth := middleware.NewAuthMiddleware(stubTokens{
		receptionistToken: receptionist,
		managerToken:      manager,
	})
	return gin.New(), auth
}
