package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"dlccontrol/internal/models"

	"github.com/google/uuid"
)

// ErrNoSnapshot is returned by Latest on an empty table.
var ErrNoSnapshot = errors.New("no parameter snapshot stored")

type SnapshotSQLite struct {
	db *sql.DB
}

func NewSnapshotSQLite(db *sql.DB) *SnapshotSQLite {
	return &SnapshotSQLite{db: db}
}

const (
	insertSnapshotSQL = `
		INSERT INTO parameter_snapshots (id, taken_at, source, scan_channel, scan_frequency, wl_setpoint, temp_setpoint, params)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectSnapshotsSQL = `SELECT id, taken_at, source, params FROM parameter_snapshots`

	defaultSnapshotLimit = 100
)

// Save inserts a snapshot. Missing ID and TakenAt are filled in; the
// parameters are stored as JSON next to a few queryable columns.
func (r *SnapshotSQLite) Save(ctx context.Context, s models.Snapshot) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.TakenAt.IsZero() {
		s.TakenAt = time.Now().UTC()
	} else {
		s.TakenAt = s.TakenAt.UTC()
	}

	params, err := json.Marshal(s.Parameters)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", s.ID, err)
	}

	_, err = r.db.ExecContext(ctx, insertSnapshotSQL,
		s.ID,
		s.TakenAt,
		strings.ToLower(strings.TrimSpace(s.Source)),
		int(s.Parameters.Scan.OutputChannel),
		s.Parameters.Scan.Frequency,
		s.Parameters.Wavelength.Setpoint,
		s.Parameters.Temperature.Setpoint,
		string(params),
	)
	if err != nil {
		return fmt.Errorf("insert snapshot %s: %w", s.ID, err)
	}
	return nil
}

// Latest returns the most recent snapshot.
func (r *SnapshotSQLite) Latest(ctx context.Context) (models.Snapshot, error) {
	row := r.db.QueryRowContext(ctx, selectSnapshotsSQL+" ORDER BY taken_at DESC LIMIT 1")
	s, err := scanSnapshot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Snapshot{}, ErrNoSnapshot
		}
		return models.Snapshot{}, err
	}
	return s, nil
}

// List returns snapshots taken within [from, to] (zero bounds are open),
// newest first, at most limit rows.
func (r *SnapshotSQLite) List(ctx context.Context, from, to time.Time, limit int) ([]models.Snapshot, error) {
	var (
		conds []string
		args  []any
	)
	if !from.IsZero() {
		conds = append(conds, "taken_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "taken_at <= ?")
		args = append(args, to.UTC())
	}
	if limit <= 0 {
		limit = defaultSnapshotLimit
	}

	q := selectSnapshotsSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY taken_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select snapshots: %w", err)
	}
	defer rows.Close()

	out := make([]models.Snapshot, 0, limit)
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (models.Snapshot, error) {
	var (
		s      models.Snapshot
		params string
	)
	if err := row.Scan(&s.ID, &s.TakenAt, &s.Source, &params); err != nil {
		return models.Snapshot{}, err
	}
	s.TakenAt = s.TakenAt.UTC()
	if err := json.Unmarshal([]byte(params), &s.Parameters); err != nil {
		return models.Snapshot{}, fmt.Errorf("decode snapshot %s: %w", s.ID, err)
	}
	return s, nil
}
