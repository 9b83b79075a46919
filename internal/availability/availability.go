// Package availability derives a booking-eligibility status from a
// unit's seat counters. Classification is pure and deterministic, so it
// can run on every render and on both sides of a reservation without
// coordination.
package availability

import (
	"fmt"

	"github.com/campverse/camp-booking/internal/model"
)

// Status is the derived availability label shown against a unit.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusFillingFast Status = "filling_fast"
	StatusFewSeats    Status = "few_seats"
	StatusSoldOut     Status = "sold_out"
)

// Policy holds the classification thresholds. The exact numbers are
// business policy, not physics, so they are data rather than constants.
type Policy struct {
	// FewSeatsLeft is the absolute seats-remaining guard.
	FewSeatsLeft int
	// FillingFastRatio is the fraction-filled threshold.
	FillingFastRatio float64
}

// DefaultPolicy matches the marketplace defaults: 3 seats or fewer is
// "few seats", 70% filled is "filling fast".
var DefaultPolicy = Policy{FewSeatsLeft: 3, FillingFastRatio: 0.70}

// Classify maps seat counters to a Status using DefaultPolicy.
func Classify(consumed, capacity int) (Status, error) {
	return DefaultPolicy.Classify(consumed, capacity)
}

// Classify maps seat counters to a Status.
//
// Checks run most-restrictive first: a full unit is sold_out even when
// the few-seats guard would also match, and the absolute guard wins
// over the fractional one (27/30 is few_seats, not filling_fast).
// Returns model.ErrInvalidInventory when the counters cannot describe a
// real unit.
func (p Policy) Classify(consumed, capacity int) (Status, error) {
	if capacity <= 0 || consumed < 0 || consumed > capacity {
		return "", fmt.Errorf("%w: consumed=%d capacity=%d",
			model.ErrInvalidInventory, consumed, capacity)
	}
	switch {
	case consumed == capacity:
		return StatusSoldOut, nil
	case capacity-consumed <= p.FewSeatsLeft:
		return StatusFewSeats, nil
	case float64(consumed)/float64(capacity) >= p.FillingFastRatio:
		return StatusFillingFast, nil
	default:
		return StatusAvailable, nil
	}
}

// ClassifyUnit is a convenience wrapper over the unit's own counters.
func (p Policy) ClassifyUnit(u *model.Unit) (Status, error) {
	return p.Classify(u.SeatsBooked, u.SeatsTotal)
}
