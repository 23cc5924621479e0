package guest

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Guest struct {
	id           uuid.UUID
	fullName     string
	email        Email
	phone        string
	passwordHash *string
	createdAt    time.Time
}

func NewGuest(fullName string, email Email, phone string, passwordHash *string, now time.Time) (*Guest, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, ErrMissingName
	}
	if email.Value() == "" {
		return nil, ErrInvalidEmail
	}
	return &Guest{
		id:           uuid.New(),
		fullName:     fullName,
		email:        email,
		phone:        strings.TrimSpace(phone),
		passwordHash: passwordHash,
		createdAt:    now,
	}, nil
}

func Reconstruct(id uuid.UUID, fullName string, email Email, phone string, passwordHash *string, createdAt time.Time) *Guest {
	return &Guest{
		id:           id,
		fullName:     fullName,
		email:        email,
		phone:        phone,
		passwordHash: passwordHash,
		createdAt:    createdAt,
	}
}

func (g *Guest) ID() uuid.UUID         { return g.id }
func (g *Guest) FullName() string      { return g.fullName }
func (g *Guest) Email() Email          { return g.email }
func (g *Guest) Phone() string         { return g.phone }
func (g *Guest) PasswordHash() *string { return g.passwordHash }
func (g *Guest) CreatedAt() time.Time  { return g.createdAt }

func (g *Guest) HasCredential() bool {
	return g.passwordHash != nil && *g.passwordHash != ""
}

// SetCredential attaches a credential hash to a guest first created by booking.
func (g *Guest) SetCredential(hash string) {
	g.passwordHash = &hash
}
