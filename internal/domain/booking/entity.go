package booking

import (
	"time"

	"roomledger/internal/pkg/errs"

	"github.com/google/uuid"
)

type Booking struct {
	id            uuid.UUID
	reference     Reference
	guestID       uuid.UUID
	roomID        *uuid.UUID
	period        StayPeriod
	status        Status
	paymentStatus PaymentStatus
	createdAt     time.Time
	updatedAt     time.Time
}

// NewBooking opens a booking in the booked/pending state. Overlap is checked
// by the caller inside the unit of work; this only enforces date rules.
func NewBooking(ref Reference, guestID, roomID uuid.UUID, period StayPeriod, today, now time.Time) (*Booking, error) {
	if guestID == uuid.Nil || roomID == uuid.Nil {
		return nil, errs.ErrMissingData
	}
	if period.IsZero() {
		return nil, errs.ErrMissingData
	}
	if err := period.ValidateStart(today); err != nil {
		return nil, err
	}
	return &Booking{
		id:            uuid.New(),
		reference:     ref,
		guestID:       guestID,
		roomID:        &roomID,
		period:        period,
		status:        StatusBooked,
		paymentStatus: PaymentPending,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	ref Reference,
	guestID uuid.UUID,
	roomID *uuid.UUID,
	period StayPeriod,
	status Status,
	payment PaymentStatus,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		reference:     ref,
		guestID:       guestID,
		roomID:        roomID,
		period:        period,
		status:        status,
		paymentStatus: payment,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) Reference() Reference         { return b.reference }
func (b *Booking) GuestID() uuid.UUID           { return b.guestID }
func (b *Booking) RoomID() *uuid.UUID           { return b.roomID }
func (b *Booking) Period() StayPeriod           { return b.period }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }

func (b *Booking) IsTerminal() bool {
	return b.status.IsTerminal()
}

func (b *Booking) IsPaid() bool {
	return b.paymentStatus == PaymentPaid
}

func (b *Booking) Occupancy() Occupancy {
	o := Occupancy{BookingID: b.id, Period: b.period, Status: b.status}
	if b.roomID != nil {
		o.RoomID = *b.roomID
	}
	return o
}

func (b *Booking) guardTransition(to Status) error {
	if b.status.IsTerminal() {
		return errs.Wrapf(ErrInvalidModification, "booking %s is %s", b.reference, b.status)
	}
	if !CanTransition(b.status, to) {
		return errs.Wrapf(ErrUnsupportedTransition, "%s -> %s", b.status, to)
	}
	return nil
}

// CheckIn moves booked -> checked-in. Requires payment and today == check-in date.
func (b *Booking) CheckIn(today, now time.Time) error {
	if err := b.guardTransition(StatusCheckedIn); err != nil {
		return err
	}
	if !b.IsPaid() {
		return ErrPaymentRequired
	}
	if !b.period.CheckIn().Equal(today) {
		return errs.Wrapf(ErrNotCheckInDay, "check-in date is %s", b.period.CheckIn().Format(DateLayout))
	}
	b.status = StatusCheckedIn
	b.updatedAt = now
	return nil
}

func (b *Booking) Cancel(now time.Time) error {
	if err := b.guardTransition(StatusCancelled); err != nil {
		return err
	}
	b.status = StatusCancelled
	b.updatedAt = now
	return nil
}

func (b *Booking) CheckOut(now time.Time) error {
	if err := b.guardTransition(StatusCheckedOut); err != nil {
		return err
	}
	if !b.IsPaid() {
		return ErrPaymentRequired
	}
	b.status = StatusCheckedOut
	b.updatedAt = now
	return nil
}

// ApplyStatus is the staff status update; only check-in and cancellation are
// reachable this way, checkout has its own operation.
func (b *Booking) ApplyStatus(to Status, today, now time.Time) error {
	switch to {
	case StatusCheckedIn:
		return b.CheckIn(today, now)
	case StatusCancelled:
		return b.Cancel(now)
	default:
		if b.status.IsTerminal() {
			return errs.Wrapf(ErrInvalidModification, "booking %s is %s", b.reference, b.status)
		}
		return errs.Wrapf(ErrUnsupportedTransition, "%s -> %s", b.status, to)
	}
}

func (b *Booking) EnsureModifiable() error {
	if b.status.IsTerminal() {
		return errs.Wrapf(ErrInvalidModification, "booking %s is %s", b.reference, b.status)
	}
	if b.status != StatusBooked {
		return errs.Wrapf(ErrNotModifiable, "booking %s is %s", b.reference, b.status)
	}
	return nil
}

// Reschedule replaces room and dates. The caller re-runs the overlap check for
// the new values, excluding this booking.
func (b *Booking) Reschedule(roomID uuid.UUID, period StayPeriod, today, now time.Time) error {
	if err := b.EnsureModifiable(); err != nil {
		return err
	}
	if roomID == uuid.Nil {
		return errs.ErrMissingData
	}
	if err := period.ValidateStart(today); err != nil {
		return err
	}
	b.roomID = &roomID
	b.period = period
	b.updatedAt = now
	return nil
}

func (b *Booking) ReassignGuest(guestID uuid.UUID, now time.Time) error {
	if err := b.EnsureModifiable(); err != nil {
		return err
	}
	if guestID == uuid.Nil {
		return errs.ErrMissingData
	}
	b.guestID = guestID
	b.updatedAt = now
	return nil
}

// SetPaymentStatus returns false when the status already matches.
func (b *Booking) SetPaymentStatus(p PaymentStatus, now time.Time) (bool, error) {
	if !p.IsValid() {
		return false, ErrInvalidPayment
	}
	if b.status.IsTerminal() {
		return false, errs.Wrapf(ErrInvalidModification, "booking %s is %s", b.reference, b.status)
	}
	if b.paymentStatus == p {
		return false, nil
	}
	if p == PaymentPending && b.status == StatusCheckedIn {
		return false, ErrPaymentLocked
	}
	b.paymentStatus = p
	b.updatedAt = now
	return true, nil
}

func (b *Booking) EnsureDeletable() error {
	if !b.status.IsTerminal() {
		return errs.Wrapf(ErrStillActive, "booking %s is %s", b.reference, b.status)
	}
	return nil
}
