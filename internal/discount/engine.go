package discount

import (
	"errors"
	"time"
)

var (
	// ErrNotFound indicates the requested discount code does not exist.
	ErrNotFound = errors.New("discount not found")
	// ErrInactive is returned when the code has been disabled by an administrator.
	ErrInactive = errors.New("discount not active")
	// ErrNotStarted is returned when the code is used before its valid window opens.
	ErrNotStarted = errors.New("discount not yet valid")
	// ErrExpired is returned when the code's valid window has closed.
	ErrExpired = errors.New("discount expired")
)

// Rule captures the calculation-relevant fields of a discount code. All
// monetary fields are in øre. At most one of Percent/Amount drives the
// calculation; when both are nil the discount is zero.
type Rule struct {
	Code           string
	Description    string
	Percent        *int32
	Amount         *int64
	MaxOrderAmount *int64
	ValidFrom      *time.Time
	ValidTo        *time.Time
	Active         bool
}

// Validate ensures the rule can be applied at the provided instant.
func (r Rule) Validate(now time.Time) error {
	if !r.Active {
		return ErrInactive
	}
	if r.ValidFrom != nil && now.Before(*r.ValidFrom) {
		return ErrNotStarted
	}
	if r.ValidTo != nil && now.After(*r.ValidTo) {
		return ErrExpired
	}
	return nil
}

// CalculateAmount computes the øre discount the rule yields for the given
// order amount. The maximum-order cap limits the portion of the order that is
// eligible for discounting, not the transaction itself. The result is always
// within [0, discountable amount].
func CalculateAmount(r Rule, orderAmount int64) int64 {
	if orderAmount <= 0 {
		return 0
	}
	discountable := orderAmount
	if r.MaxOrderAmount != nil && *r.MaxOrderAmount > 0 && *r.MaxOrderAmount < discountable {
		discountable = *r.MaxOrderAmount
	}

	var amount int64
	switch {
	case r.Percent != nil && *r.Percent > 0:
		// Round half away from zero; inputs are non-negative here.
		amount = (discountable*int64(*r.Percent) + 50) / 100
	case r.Amount != nil && *r.Amount > 0:
		amount = *r.Amount
	}

	if amount > discountable {
		amount = discountable
	}
	if amount < 0 {
		return 0
	}
	return amount
}
