// Package store implements the catalog and seat-inventory backends for
// the camp booking system. Two implementations exist: an in-memory
// store for local development and tests, and a PostgreSQL store using
// pgx directly (no ORM) for transparency and performance.
package store

import (
	"context"

	"github.com/campverse/camp-booking/internal/model"
)

// Catalog is the read side: camp and unit lookups.
type Catalog interface {
	// GetCamp returns a camp or model.ErrCampNotFound.
	GetCamp(ctx context.Context, id string) (*model.Camp, error)
	// GetUnit returns a unit with its current seat counters, or
	// model.ErrUnitNotFound.
	GetUnit(ctx context.Context, id string) (*model.Unit, error)
	// ListUnits returns a camp's units ordered by start date.
	ListUnits(ctx context.Context, campID string) ([]model.Unit, error)
}

// Ledger is the sole authority over seat counters. Reservations for
// the same unit are serialized; different units proceed in parallel.
type Ledger interface {
	// Reserve atomically claims one seat, returning a token that is
	// required to release it. Fails with model.ErrSoldOut when the unit
	// is full, model.ErrUnitNotFound when it does not exist,
	// model.ErrInvalidInventory when the counters are corrupt, and
	// model.ErrInventoryUnavailable when the unit could not be locked
	// in time.
	Reserve(ctx context.Context, unitID string) (model.ReservationToken, error)
	// Release returns the token's seat. A spent or unknown token fails
	// with model.ErrInvalidToken rather than silently no-opping, so
	// double-release bugs surface.
	Release(ctx context.Context, token model.ReservationToken) error
}
