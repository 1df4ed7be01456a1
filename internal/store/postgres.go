package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/agrisight/agristat-cli/internal/model"
)

// PostgresStore implements Store using a pgx pool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	summary    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS run_counties (
	run_id                 TEXT NOT NULL REFERENCES runs(id),
	position               INTEGER NOT NULL,
	county                 TEXT NOT NULL,
	total_households       BIGINT NOT NULL,
	area_sq_km             DOUBLE PRECISION NOT NULL,
	farming_households     BIGINT NOT NULL,
	crop_households        BIGINT NOT NULL,
	livestock_households   BIGINT NOT NULL,
	aquaculture_households BIGINT NOT NULL,
	fishing_households     BIGINT NOT NULL,
	population             BIGINT NOT NULL,
	population_density     DOUBLE PRECISION NOT NULL,
	primary_sector         TEXT NOT NULL,
	crop_intensity         DOUBLE PRECISION NOT NULL,
	engagement_rate        DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (run_id, position)
);

CREATE INDEX IF NOT EXISTS idx_run_counties_run_id ON run_counties(run_id);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveRun(ctx context.Context, rows []model.MetricRow, summary model.RunSummary) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return "", eris.Wrap(err, "postgres: marshal summary")
	}

	if _, err := s.pool.Exec(ctx,
		`INSERT INTO runs (id, summary, created_at) VALUES ($1, $2, $3)`,
		id, string(summaryJSON), now,
	); err != nil {
		return "", eris.Wrap(err, "postgres: insert run")
	}

	if len(rows) > 0 {
		values := make([][]any, len(rows))
		for i, row := range rows {
			values[i] = countyValues(id, i, row)
		}
		if _, err := s.pool.CopyFrom(ctx,
			pgx.Identifier{"run_counties"}, countyColumns, pgx.CopyFromRows(values),
		); err != nil {
			return "", eris.Wrap(err, "postgres: copy counties")
		}
	}

	return id, nil
}

func (s *PostgresStore) GetSummary(ctx context.Context, runID string) (*model.RunSummary, error) {
	var summaryJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT summary FROM runs WHERE id = $1`, runID,
	).Scan(&summaryJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Errorf("postgres: run not found: %s", runID)
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get summary")
	}

	var summary model.RunSummary
	if err := json.Unmarshal(summaryJSON, &summary); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal summary")
	}
	return &summary, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]RunRef, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, created_at FROM runs ORDER BY created_at DESC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var refs []RunRef
	for rows.Next() {
		var ref RunRef
		if err := rows.Scan(&ref.ID, &ref.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		refs = append(refs, ref)
	}
	return refs, eris.Wrap(rows.Err(), "postgres: list runs iterate")
}
