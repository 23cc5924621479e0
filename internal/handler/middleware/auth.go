package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"roomledger/internal/domain/actor"
	"roomledger/internal/handler/httperr"
	"roomledger/internal/pkg/cookie"
	"roomledger/internal/pkg/errs"
	"roomledger/internal/usecase"

	"github.com/gin-gonic/gin"
)

var (
	errTokenRequired = errors.New("access token required")
	errTokenInvalid  = errors.New("invalid or expired token")
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxActorKey  = "actor"
	ctxClaimsKey = "jwt_claims"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func extractToken(c *gin.Context) string {
	if token := cookie.GetStaffToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func setStaff(c *gin.Context, a actor.Actor) {
	c.Set(ctxActorKey, a)
	c.Set(ctxClaimsKey, map[string]any{
		"user_id": a.StaffID().String(),
		"role":    a.Role().String(),
	})
}

// RequireStaff admits only requests carrying a valid staff token.
func (m *AuthMiddleware) RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errTokenRequired, httperr.CodeUnauthorized, "Access token required", nil)
			return
		}

		a, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, errTokenInvalid, httperr.CodeUnauthorized, "Invalid or expired token", nil)
			return
		}

		setStaff(c, a)
		c.Next()
	}
}

// RequireRoleAtLeast must run after RequireStaff.
func (m *AuthMiddleware) RequireRoleAtLeast(minRole actor.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, ok := GetStaff(c)
		if !ok {
			httperr.Abort(c, errs.ErrForbidden)
			return
		}
		if err := a.RequireRole(minRole); err != nil {
			httperr.Abort(c, err)
			return
		}
		c.Next()
	}
}

// OptionalStaff recognizes staff on guest-facing routes. A missing or invalid
// token leaves the request a guest request.
func (m *AuthMiddleware) OptionalStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		a, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}

		setStaff(c, a)
		c.Next()
	}
}

func GetStaff(c *gin.Context) (actor.Actor, bool) {
	v, exists := c.Get(ctxActorKey)
	if !exists {
		return actor.Actor{}, false
	}
	a, ok := v.(actor.Actor)
	return a, ok && a.IsStaff()
}

// ActorFor is the staff actor when authenticated, otherwise a guest asserting
// email.
func ActorFor(c *gin.Context, email string) actor.Actor {
	if a, ok := GetStaff(c); ok {
		return a
	}
	return actor.Guest(email)
}
