//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"roomledger/internal/domain/actor"
	"roomledger/internal/pkg/config"
	"roomledger/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, staffID uuid.UUID, role actor.Role) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	token, err := jwt.NewService(h.cfg.Secret, duration).GenerateToken(staffID, role)
	require.NoError(t, err)
	return token
}

// StaffToken mints a token for a fresh staff id with the given role.
func (h *JWTHelper) StaffToken(t *testing.T, role actor.Role) string {
	t.Helper()
	return h.GenerateToken(t, uuid.New(), role)
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, staffID uuid.UUID, role actor.Role) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, time.Millisecond).GenerateToken(staffID, role)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
