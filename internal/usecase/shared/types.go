package shared

import (
	"time"

	"roomledger/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrRetryable marks an error the unit of work should treat as transient
// contention, e.g. losing an idempotency-key insert race.
var ErrRetryable = errs.New("transient conflict")

type IdempotencyScope string

const (
	ScopeCreate IdempotencyScope = "create"
	ScopeModify IdempotencyScope = "modify"
)

type IdempotencyRecord struct {
	Key         string
	Scope       IdempotencyScope
	RequestHash string
	BookingID   uuid.UUID
	CreatedAt   time.Time
}

type CheckAction string

const (
	ActionCheckIn  CheckAction = "check-in"
	ActionCheckOut CheckAction = "check-out"
)

type CheckLogEntry struct {
	BookingID uuid.UUID
	Action    CheckAction
	HandledBy uuid.UUID
	At        time.Time
}

// Notification kinds written to the outbox.
const (
	NotificationBookingCreated   = "booking.created"
	NotificationBookingModified  = "booking.modified"
	NotificationBookingCancelled = "booking.cancelled"
)
