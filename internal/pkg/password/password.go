package password

import (
	"roomledger/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingFailed   = errs.New("password hashing failed")
	ErrInvalidPassword = errs.New("invalid password")
)

const DefaultCost = bcrypt.DefaultCost

// Hasher is swapped for a low-cost hasher in tests.
type Hasher interface {
	Hash(password string) (string, error)
}

type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: DefaultCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrInvalidPassword
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", errs.Mark(err, ErrHashingFailed)
	}

	return string(hashedBytes), nil
}
