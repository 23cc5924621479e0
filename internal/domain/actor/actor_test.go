//go:build unit

package actor_test

import (
	"testing"

	"roomledger/internal/domain/actor"
	"roomledger/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActor_Capabilities(t *testing.T) {
	guest := actor.Guest(" Ada@Example.com ")
	receptionist := actor.Staff(uuid.New(), actor.RoleReceptionist)
	manager := actor.Staff(uuid.New(), actor.RoleManager)

	assert.Equal(t, "ada@example.com", guest.Email())
	assert.False(t, guest.IsStaff())

	err := guest.RequireStaff()
	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))

	assert.NoError(t, receptionist.RequireStaff())
	assert.ErrorIs(t, receptionist.RequireRole(actor.RoleManager), errs.ErrForbidden)
	assert.NoError(t, manager.RequireRole(actor.RoleReceptionist))
	assert.NoError(t, manager.RequireRole(actor.RoleManager))
}

func TestActor_StaffWithUnknownRoleIsNotStaff(t *testing.T) {
	a := actor.Staff(uuid.New(), actor.Role("janitor"))
	assert.False(t, a.IsStaff())
	assert.ErrorIs(t, a.RequireStaff(), errs.ErrForbidden)
}

func TestNewRole(t *testing.T) {
	r, err := actor.NewRole("Manager")
	require.NoError(t, err)
	assert.Equal(t, actor.RoleManager, r)

	_, err = actor.NewRole("viewer")
	assert.ErrorIs(t, err, actor.ErrInvalidRole)
}
