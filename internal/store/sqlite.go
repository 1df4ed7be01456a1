package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/agrisight/agristat-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	summary    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS run_counties (
	run_id                 TEXT NOT NULL REFERENCES runs(id),
	position               INTEGER NOT NULL,
	county                 TEXT NOT NULL,
	total_households       INTEGER NOT NULL,
	area_sq_km             REAL NOT NULL,
	farming_households     INTEGER NOT NULL,
	crop_households        INTEGER NOT NULL,
	livestock_households   INTEGER NOT NULL,
	aquaculture_households INTEGER NOT NULL,
	fishing_households     INTEGER NOT NULL,
	population             INTEGER NOT NULL,
	population_density     REAL NOT NULL,
	primary_sector         TEXT NOT NULL,
	crop_intensity         REAL NOT NULL,
	engagement_rate        REAL NOT NULL,
	PRIMARY KEY (run_id, position)
);

CREATE INDEX IF NOT EXISTS idx_run_counties_run_id ON run_counties(run_id);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveRun(ctx context.Context, rows []model.MetricRow, summary model.RunSummary) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: marshal summary")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, summary, created_at) VALUES (?, ?, ?)`,
		id, string(summaryJSON), now,
	); err != nil {
		return "", eris.Wrap(err, "sqlite: insert run")
	}

	insertSQL := fmt.Sprintf(
		`INSERT INTO run_counties (%s) VALUES (%s)`,
		strings.Join(countyColumns, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(countyColumns)), ", "),
	)
	for i, row := range rows {
		if _, err := tx.ExecContext(ctx, insertSQL, countyValues(id, i, row)...); err != nil {
			return "", eris.Wrapf(err, "sqlite: insert county %s", row.Name)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", eris.Wrap(err, "sqlite: commit")
	}
	return id, nil
}

func (s *SQLiteStore) GetSummary(ctx context.Context, runID string) (*model.RunSummary, error) {
	var summaryJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT summary FROM runs WHERE id = ?`, runID,
	).Scan(&summaryJSON)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("sqlite: run not found: %s", runID)
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get summary")
	}

	var summary model.RunSummary
	if err := json.Unmarshal([]byte(summaryJSON), &summary); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal summary")
	}
	return &summary, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]RunRef, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at FROM runs ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var refs []RunRef
	for rows.Next() {
		var ref RunRef
		if err := rows.Scan(&ref.ID, &ref.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		refs = append(refs, ref)
	}
	return refs, eris.Wrap(rows.Err(), "sqlite: list runs iterate")
}
