//go:build unit

package guest_test

import (
	"testing"
	"time"

	"roomledger/internal/domain/guest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		want  string
		errIs error
	}{
		{name: "valid", in: "ada@example.com", want: "ada@example.com"},
		{name: "normalised", in: "  Ada@Example.COM ", want: "ada@example.com"},
		{name: "empty", in: "", errIs: guest.ErrInvalidEmail},
		{name: "missing at", in: "adaexample.com", errIs: guest.ErrInvalidEmail},
		{name: "missing tld", in: "ada@example", errIs: guest.ErrInvalidEmail},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := guest.NewEmail(tc.in)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, e.Value())
		})
	}
}

func TestNewGuest(t *testing.T) {
	email, err := guest.NewEmail("ada@example.com")
	require.NoError(t, err)

	t.Run("created without credential", func(t *testing.T) {
		g, err := guest.NewGuest(" Ada Lovelace ", email, "555-0100", nil, time.Now())
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", g.FullName())
		assert.False(t, g.HasCredential())

		g.SetCredential("$2a$10$hash")
		assert.True(t, g.HasCredential())
	})

	t.Run("name required", func(t *testing.T) {
		_, err := guest.NewGuest("  ", email, "", nil, time.Now())
		assert.ErrorIs(t, err, guest.ErrMissingName)
	})

	t.Run("email required", func(t *testing.T) {
		_, err := guest.NewGuest("Ada", guest.Email{}, "", nil, time.Now())
		assert.ErrorIs(t, err, guest.ErrInvalidEmail)
	})
}

func TestPassword(t *testing.T) {
	_, err := guest.NewPassword("short")
	assert.ErrorIs(t, err, guest.ErrPasswordTooWeak)

	p, err := guest.NewPassword("long-enough")
	require.NoError(t, err)
	assert.Equal(t, "long-enough", p.Value())
}
