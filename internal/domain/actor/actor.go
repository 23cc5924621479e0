// Package actor identifies who is invoking an operation. Every command takes an
// Actor explicitly and checks its own capability requirements.
package actor

import (
	"strings"

	"roomledger/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidRole = errs.Define(errs.KindValidation, "INVALID_ROLE", "invalid staff role")

type Role string

const (
	RoleReceptionist Role = "receptionist"
	RoleManager      Role = "manager"
)

var roleRank = map[Role]int{
	RoleReceptionist: 1,
	RoleManager:      2,
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

func NewRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// AtLeast reports whether r ranks at or above min.
func (r Role) AtLeast(min Role) bool {
	have, ok := roleRank[r]
	need, okMin := roleRank[min]
	return ok && okMin && have >= need
}

type Kind string

const (
	KindGuest Kind = "guest"
	KindStaff Kind = "staff"
)

type Actor struct {
	kind    Kind
	email   string
	staffID uuid.UUID
	role    Role
}

func Guest(email string) Actor {
	return Actor{kind: KindGuest, email: strings.ToLower(strings.TrimSpace(email))}
}

func Staff(id uuid.UUID, role Role) Actor {
	return Actor{kind: KindStaff, staffID: id, role: role}
}

func (a Actor) Kind() Kind         { return a.kind }
func (a Actor) Email() string      { return a.email }
func (a Actor) StaffID() uuid.UUID { return a.staffID }
func (a Actor) Role() Role         { return a.role }

func (a Actor) IsStaff() bool {
	return a.kind == KindStaff && a.role.IsValid()
}

func (a Actor) RequireStaff() error {
	if !a.IsStaff() {
		return errs.Wrapf(errs.ErrForbidden, "%s actor", a.kind)
	}
	return nil
}

func (a Actor) RequireRole(min Role) error {
	if err := a.RequireStaff(); err != nil {
		return err
	}
	if !a.role.AtLeast(min) {
		return errs.Wrapf(errs.ErrForbidden, "role %s below %s", a.role, min)
	}
	return nil
}

func (a Actor) String() string {
	if a.kind == KindStaff {
		return "staff:" + a.role.String() + ":" + a.staffID.String()
	}
	return "guest:" + a.email
}
