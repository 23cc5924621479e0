package guest

import (
	"regexp"
	"strings"

	"roomledger/internal/pkg/errs"
)

var (
	ErrInvalidEmail    = errs.Define(errs.KindValidation, "INVALID_EMAIL", "invalid email format")
	ErrMissingName     = errs.Define(errs.KindValidation, "INVALID_GUEST_NAME", "guest name is required")
	ErrPasswordTooWeak = errs.Define(errs.KindValidation, "WEAK_PASSWORD", "password must be at least 8 characters long")
	ErrNotFound        = errs.Define(errs.KindNotFound, "GUEST_NOT_FOUND", "guest not found")
	ErrEmailTaken      = errs.Define(errs.KindConflict, "GUEST_EXISTS", "a guest with this email is already registered")
	ErrEmailMismatch   = errs.Define(errs.KindForbidden, "GUEST_MISMATCH", "email does not match the booking")
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email is compared case-insensitively; the stored form is lower case.
type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

func (e Email) Equal(other Email) bool {
	return e.value == other.value
}

type Password struct {
	value string
}

func NewPassword(s string) (Password, error) {
	if len(s) < 8 {
		return Password{}, ErrPasswordTooWeak
	}
	return Password{value: s}, nil
}

func (p Password) Value() string {
	return p.value
}
