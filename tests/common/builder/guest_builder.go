//go:build unit || e2e

package builder

import (
	"time"

	"roomledger/internal/domain/guest"
)

type GuestBuilder struct {
	FullName     string
	Email        string
	Phone        string
	PasswordHash *string
	Now          time.Time
}

func NewGuestBuilder() *GuestBuilder {
	return &GuestBuilder{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Phone:    "+44 20 7946 0000",
		Now:      time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *GuestBuilder) WithEmail(email string) *GuestBuilder {
	b.Email = email
	return b
}

func (b *GuestBuilder) WithPasswordHash(hash string) *GuestBuilder {
	b.PasswordHash = &hash
	return b
}

func (b *GuestBuilder) MustBuildDomain() *guest.Guest {
	email, err := guest.NewEmail(b.Email)
	if err != nil {
		panic(err)
	}
	g, err := guest.NewGuest(b.FullName, email, b.Phone, b.PasswordHash, b.Now)
	if err != nil {
		panic(err)
	}
	return g
}
