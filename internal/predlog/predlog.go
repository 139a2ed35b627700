// Package predlog persists computed predictions to Postgres for later
// accuracy evaluation. It is write-only from the serving path and entirely
// optional: the caches and every exposed operation work without it, and no
// request ever reads from it.
package predlog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/matchodds/internal/predict"
)

const schema = `
CREATE TABLE IF NOT EXISTS predictions (
	id                 BIGSERIAL PRIMARY KEY,
	fixture_id         BIGINT       NOT NULL,
	league_id          BIGINT       NOT NULL,
	season             INT          NOT NULL,
	prob_home          DOUBLE PRECISION NOT NULL,
	prob_draw          DOUBLE PRECISION NOT NULL,
	prob_away          DOUBLE PRECISION NOT NULL,
	lambda_home        DOUBLE PRECISION NOT NULL,
	lambda_away        DOUBLE PRECISION NOT NULL,
	injury_impact_home DOUBLE PRECISION NOT NULL,
	injury_impact_away DOUBLE PRECISION NOT NULL,
	pick               TEXT         NOT NULL,
	created_at         TIMESTAMPTZ  NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS predictions_fixture_idx ON predictions (fixture_id, created_at);
`

// Store is a pgxpool-backed prediction audit log.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to Postgres, verifies connectivity, and ensures the
// predictions table exists.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolCfg.MaxConns = 4
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure predictions schema: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (s *Store) HealthCheck(ctx context.Context) error {
	var n int
	return s.pool.QueryRow(ctx, "SELECT 1").Scan(&n)
}

// Record appends one prediction to the log.
func (s *Store) Record(ctx context.Context, r *predict.Result) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO predictions (
			fixture_id, league_id, season,
			prob_home, prob_draw, prob_away,
			lambda_home, lambda_away,
			injury_impact_home, injury_impact_away,
			pick
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		r.FixtureID, r.LeagueID, r.Season,
		r.Probabilities.Home, r.Probabilities.Draw, r.Probabilities.Away,
		r.LambdaHome, r.LambdaAway,
		r.InjuryImpact.Home, r.InjuryImpact.Away,
		string(r.Pick),
	)
	if err != nil {
		return fmt.Errorf("insert prediction for fixture %d: %w", r.FixtureID, err)
	}
	return nil
}
