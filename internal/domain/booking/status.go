package booking

import "strings"

type Status string

const (
	StatusBooked     Status = "booked"
	StatusCheckedIn  Status = "checked-in"
	StatusCheckedOut Status = "checked-out"
	StatusCancelled  Status = "cancelled"
)

var AllStatuses = []Status{StatusBooked, StatusCheckedIn, StatusCheckedOut, StatusCancelled}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusBooked, StatusCheckedIn, StatusCheckedOut, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCheckedOut, StatusCancelled:
		return true
	default:
		return false
	}
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", ErrInvalidStatusValue
	}
	return st, nil
}

// transitions lists every permitted edge of the lifecycle. Terminal states have none.
var transitions = map[Status][]Status{
	StatusBooked:     {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn:  {StatusCheckedOut},
	StatusCheckedOut: nil,
	StatusCancelled:  nil,
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// StatusSet is the set of statuses that count toward room contention.
type StatusSet []Status

// OccupyingStatuses is the default contention set.
var OccupyingStatuses = StatusSet{StatusBooked, StatusCheckedIn}

func (s StatusSet) Contains(st Status) bool {
	for _, v := range s {
		if v == st {
			return true
		}
	}
	return false
}

func (s StatusSet) Strings() []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = string(v)
	}
	return out
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

func (p PaymentStatus) String() string {
	return string(p)
}

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPending, PaymentPaid:
		return true
	default:
		return false
	}
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	p := PaymentStatus(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", ErrInvalidPayment
	}
	return p, nil
}
