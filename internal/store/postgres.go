package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campverse/camp-booking/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Catalog and Ledger over PostgreSQL.
//
// Seat reservation uses pessimistic row locking: SELECT … FOR UPDATE
// takes an exclusive row-level lock on the unit, so concurrent
// reservations for the same unit queue up behind one another while
// different units proceed in parallel. A naive read-then-write would
// let two transactions read the same free seat and both book it.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a PostgresStore over an existing pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// GetCamp returns a camp or model.ErrCampNotFound.
func (s *PostgresStore) GetCamp(ctx context.Context, id string) (*model.Camp, error) {
	var c model.Camp
	err := s.db.QueryRow(ctx,
		`SELECT id, name, provider, type, city, locality, age_description, tax_rate
		 FROM camps WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.Provider, &c.Type, &c.City, &c.Locality, &c.AgeDescription, &c.TaxRate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCampNotFound
		}
		return nil, fmt.Errorf("get camp: %w", err)
	}
	return &c, nil
}

// GetUnit returns a unit with its current counters or model.ErrUnitNotFound.
func (s *PostgresStore) GetUnit(ctx context.Context, id string) (*model.Unit, error) {
	var u model.Unit
	err := s.db.QueryRow(ctx,
		`SELECT id, camp_id, start_date, end_date, age_min, age_max,
		        price, original_price, seats_total, seats_booked
		 FROM units WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.CampID, &u.StartDate, &u.EndDate, &u.AgeMin, &u.AgeMax,
		&u.Price, &u.OriginalPrice, &u.SeatsTotal, &u.SeatsBooked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUnitNotFound
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &u, nil
}

// ListUnits returns a camp's units ordered by start date.
func (s *PostgresStore) ListUnits(ctx context.Context, campID string) ([]model.Unit, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, camp_id, start_date, end_date, age_min, age_max,
		        price, original_price, seats_total, seats_booked
		 FROM units
		 WHERE camp_id = $1
		 ORDER BY start_date ASC`,
		campID,
	)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	var units []model.Unit
	for rows.Next() {
		var u model.Unit
		if err := rows.Scan(&u.ID, &u.CampID, &u.StartDate, &u.EndDate, &u.AgeMin, &u.AgeMax,
			&u.Price, &u.OriginalPrice, &u.SeatsTotal, &u.SeatsBooked); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

// Reserve claims one seat inside a serialised transaction.
func (s *PostgresStore) Reserve(ctx context.Context, unitID string) (model.ReservationToken, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return "", unavailable("begin transaction", err)
	}
	// Ensure the transaction is always resolved.
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Exclusive row-level lock on the unit: any concurrent Reserve for
	// the same unit blocks here until we COMMIT or ROLLBACK.
	var seatsTotal, seatsBooked int
	err = tx.QueryRow(ctx,
		`SELECT seats_total, seats_booked
		 FROM units
		 WHERE id = $1
		 FOR UPDATE`,
		unitID,
	).Scan(&seatsTotal, &seatsBooked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", model.ErrUnitNotFound
		}
		return "", unavailable("lock unit row", err)
	}

	if seatsTotal <= 0 || seatsBooked < 0 || seatsBooked > seatsTotal {
		err = fmt.Errorf("%w: unit %s booked=%d total=%d",
			model.ErrInvalidInventory, unitID, seatsBooked, seatsTotal)
		return "", err
	}
	if seatsBooked >= seatsTotal {
		err = model.ErrSoldOut
		return "", err
	}

	_, err = tx.Exec(ctx,
		`UPDATE units SET seats_booked = seats_booked + 1 WHERE id = $1`,
		unitID,
	)
	if err != nil {
		return "", unavailable("increment seats_booked", err)
	}

	token := model.ReservationToken(uuid.New().String())
	_, err = tx.Exec(ctx,
		`INSERT INTO seat_reservations (token, unit_id, created_at)
		 VALUES ($1, $2, $3)`,
		string(token), unitID, time.Now().UTC(),
	)
	if err != nil {
		return "", unavailable("insert reservation", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return "", unavailable("commit transaction", err)
	}
	return token, nil
}

// Release returns the token's seat. Deleting the token row and
// decrementing the counter share one transaction, so a replayed token
// finds no row and fails with model.ErrInvalidToken.
func (s *PostgresStore) Release(ctx context.Context, token model.ReservationToken) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return unavailable("begin transaction", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var unitID string
	err = tx.QueryRow(ctx,
		`DELETE FROM seat_reservations WHERE token = $1 RETURNING unit_id`,
		string(token),
	).Scan(&unitID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = model.ErrInvalidToken
			return err
		}
		return unavailable("delete reservation", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE units SET seats_booked = seats_booked - 1
		 WHERE id = $1 AND seats_booked > 0`,
		unitID,
	)
	if err != nil {
		return unavailable("decrement seats_booked", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return unavailable("commit transaction", err)
	}
	return nil
}

// unavailable wraps infrastructure failures (connection loss, lock
// timeouts, cancelled contexts) as model.ErrInventoryUnavailable so the
// workflow can offer a safe retry of the confirm step.
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", model.ErrInventoryUnavailable, op, err)
}
