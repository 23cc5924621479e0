package booking

import "roomledger/internal/pkg/errs"

var (
	ErrInvalidDateFormat  = errs.Define(errs.KindValidation, "INVALID_DATE_FORMAT", "date must use YYYY-MM-DD")
	ErrCheckInInPast      = errs.Define(errs.KindValidation, "INVALID_CHECK_IN", "check-in date must be today or in the future")
	ErrCheckOutNotAfter   = errs.Define(errs.KindValidation, "INVALID_CHECK_OUT", "check-out date must be after check-in date")
	ErrInvalidStatusValue = errs.Define(errs.KindValidation, "INVALID_STATUS_VALUE", "unknown booking status")
	ErrInvalidPayment     = errs.Define(errs.KindValidation, "INVALID_PAYMENT_VALUE", "unknown payment status")
	ErrInvalidReference   = errs.Define(errs.KindValidation, "INVALID_REFERENCE", "booking reference must be PL followed by 5 digits")

	ErrNotFound = errs.Define(errs.KindNotFound, "BOOKING_NOT_FOUND", "booking not found")

	ErrRoomBooked = errs.Define(errs.KindConflict, "ROOM_BOOKED", "room is already booked for the selected dates")

	ErrInvalidModification   = errs.Define(errs.KindInvalidTransition, "INVALID_MODIFICATION", "booking is in a terminal state")
	ErrNotModifiable         = errs.Define(errs.KindInvalidTransition, "INVALID_BOOKING_STATUS", "only booked reservations can be changed")
	ErrPaymentRequired       = errs.Define(errs.KindInvalidTransition, "PAYMENT_REQUIRED", "payment must be completed first")
	ErrNotCheckInDay         = errs.Define(errs.KindInvalidTransition, "INVALID_CHECKIN_DATE", "check-in is only allowed on the check-in date")
	ErrUnsupportedTransition = errs.Define(errs.KindInvalidTransition, "INVALID_STATUS", "status transition not allowed")
	ErrPaymentLocked         = errs.Define(errs.KindInvalidTransition, "INVALID_PAYMENT_STATUS", "payment cannot revert to pending after check-in")
	ErrStillActive           = errs.Define(errs.KindConflict, "BOOKING_ACTIVE", "only checked-out or cancelled bookings can be deleted")
)
