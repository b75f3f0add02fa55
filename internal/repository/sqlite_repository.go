package repository

import (
	"context"
	"database/sql"
	"fmt"
	"profiled/internal/models"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"
)

const profilesTable = "dataset_profiles"

const createProfilesTable = `
CREATE TABLE IF NOT EXISTS dataset_profiles (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	urn              TEXT    NOT NULL,
	timestamp_millis INTEGER NOT NULL,
	payload          BLOB    NOT NULL
)`

const createProfilesIndex = `
CREATE INDEX IF NOT EXISTS idx_dataset_profiles_urn_ts
	ON dataset_profiles (urn, timestamp_millis)`

// SQLiteRepository stores each profile as a JSON payload. Reads return rows in
// insertion order.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database at %q: %w", dbPath, err)
	}
	// A single connection avoids "database is locked" errors.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database at %q: %w", dbPath, err)
	}

	for _, stmt := range []string{"PRAGMA journal_mode=WAL", "PRAGMA synchronous=NORMAL", createProfilesTable, createProfilesIndex} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to prepare table %s: %w", profilesTable, err)
		}
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, urn string, profile models.DatasetProfile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO dataset_profiles (urn, timestamp_millis, payload) VALUES (?, ?, ?)",
		urn, profile.TimestampMillis, payload)
	if err != nil {
		return fmt.Errorf("insert profile for %s: %w", urn, err)
	}
	return nil
}

func (r *SQLiteRepository) Query(ctx context.Context, q models.ProfileQuery) ([]models.DatasetProfile, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT payload FROM dataset_profiles WHERE urn = ? AND timestamp_millis BETWEEN ? AND ? ORDER BY id",
		q.Urn, q.StartTimeMillis, q.EndTimeMillis)
	if err != nil {
		return nil, fmt.Errorf("query profiles for %s: %w", q.Urn, err)
	}
	defer rows.Close()

	result := make([]models.DatasetProfile, 0)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var profile models.DatasetProfile
		if err := json.Unmarshal(payload, &profile); err != nil {
			return nil, fmt.Errorf("decode profile for %s: %w", q.Urn, err)
		}
		result = append(result, profile)
	}
	return result, rows.Err()
}

func (r *SQLiteRepository) Urns(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT urn FROM dataset_profiles ORDER BY urn")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	urns := make([]string, 0)
	for rows.Next() {
		var urn string
		if err := rows.Scan(&urn); err != nil {
			return nil, err
		}
		urns = append(urns, urn)
	}
	return urns, rows.Err()
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM dataset_profiles").Scan(&n)
	return n, err
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
