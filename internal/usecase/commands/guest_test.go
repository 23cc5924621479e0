//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"roomledger/internal/pkg/clock"
	"roomledger/internal/pkg/errs"
	"roomledger/internal/pkg/password"
	"roomledger/internal/usecase/commands"
	"roomledger/tests/common/builder"
	"roomledger/tests/common/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGuestCommands_Register(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC))
	hasher := &password.BcryptHasher{Cost: bcrypt.MinCost}

	valid := commands.RegisterGuestInput{FullName: "Grace Hopper", Email: "Grace@Example.com", Password: "s3cure-pass"}

	t.Run("new guest gets an account", func(t *testing.T) {
		store := memstore.New()
		cmds := commands.NewGuestCommands(store, hasher, clk, discardLogger())

		id, err := cmds.Register(ctx, valid)
		require.NoError(t, err)

		g, err := store.Reads().GuestByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "grace@example.com", g.Email().Value())
		require.True(t, g.HasCredential())
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*g.PasswordHash()), []byte("s3cure-pass")))
	})

	t.Run("guest created by a booking gains a credential", func(t *testing.T) {
		store := memstore.New()
		existing := builder.NewGuestBuilder().WithEmail("grace@example.com").MustBuildDomain()
		store.SeedGuest(existing)
		cmds := commands.NewGuestCommands(store, hasher, clk, discardLogger())

		id, err := cmds.Register(ctx, valid)
		require.NoError(t, err)
		assert.Equal(t, existing.ID(), id)
	})

	t.Run("registered email is taken", func(t *testing.T) {
		store := memstore.New()
		store.SeedGuest(builder.NewGuestBuilder().WithEmail("grace@example.com").WithPasswordHash("$2a$04$hash").MustBuildDomain())
		cmds := commands.NewGuestCommands(store, hasher, clk, discardLogger())

		_, err := cmds.Register(ctx, valid)
		assert.Equal(t, errs.Code("GUEST_EXISTS"), errs.CodeOf(err))
	})

	invalid := []struct {
		name   string
		mutate func(*commands.RegisterGuestInput)
		code   errs.Code
	}{
		{name: "short password", mutate: func(in *commands.RegisterGuestInput) { in.Password = "short" }, code: "WEAK_PASSWORD"},
		{name: "bad email", mutate: func(in *commands.RegisterGuestInput) { in.Email = "grace" }, code: "INVALID_EMAIL"},
		{name: "blank name", mutate: func(in *commands.RegisterGuestInput) { in.FullName = "" }, code: "INVALID_GUEST_NAME"},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			cmds := commands.NewGuestCommands(memstore.New(), hasher, clk, discardLogger())
			in := valid
			tc.mutate(&in)
			_, err := cmds.Register(ctx, in)
			assert.Equal(t, tc.code, errs.CodeOf(err))
		})
	}
}
