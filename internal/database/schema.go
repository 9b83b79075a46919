package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied at startup so a fresh database works out of the
// box. Statements are idempotent; production deployments may manage
// the same tables with their own migration tooling instead.
const schema = `
CREATE TABLE IF NOT EXISTS camps (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	provider        TEXT NOT NULL,
	type            TEXT NOT NULL,
	city            TEXT NOT NULL DEFAULT '',
	locality        TEXT NOT NULL DEFAULT '',
	age_description TEXT NOT NULL DEFAULT '',
	tax_rate        DOUBLE PRECISION NOT NULL DEFAULT 0.18
);

CREATE TABLE IF NOT EXISTS units (
	id             TEXT PRIMARY KEY,
	camp_id        TEXT NOT NULL REFERENCES camps(id),
	start_date     TIMESTAMPTZ NOT NULL,
	end_date       TIMESTAMPTZ NOT NULL,
	age_min        INT NOT NULL,
	age_max        INT NOT NULL,
	price          BIGINT NOT NULL,
	original_price BIGINT NOT NULL DEFAULT 0,
	seats_total    INT NOT NULL CHECK (seats_total > 0),
	seats_booked   INT NOT NULL DEFAULT 0 CHECK (seats_booked >= 0 AND seats_booked <= seats_total),
	CHECK (age_min <= age_max)
);

CREATE INDEX IF NOT EXISTS idx_units_camp_id ON units(camp_id);

CREATE TABLE IF NOT EXISTS seat_reservations (
	token      TEXT PRIMARY KEY,
	unit_id    TEXT NOT NULL REFERENCES units(id),
	created_at TIMESTAMPTZ NOT NULL
);
`

// EnsureSchema creates the booking tables if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
