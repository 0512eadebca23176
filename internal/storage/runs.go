package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrRunNotFound is returned when a run ID is not in the journal.
var ErrRunNotFound = errors.New("storage: run not found")

// Run is the summary row of one recorded session.
type Run struct {
	ID              string
	ConfigYAML      string // full config the session ran with
	StartedAt       time.Time
	Frames          int
	SimSeconds      float64
	Terminated      bool
	TerminatedFrame int // 0 when the run ended without a collision
}

// FrameRecord is the host input delivered for one frame.
type FrameRecord struct {
	Frame   int
	Elapsed float64
	Jump    bool
	Duck    bool
}

// SaveRun stores a run and its frames in one transaction.
// An empty run ID is replaced with a fresh UUID; the stored ID is returned.
func (s *Store) SaveRun(run Run, frames []FrameRecord) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, config_yaml, started_at, frames, sim_seconds, terminated, terminated_frame)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.ConfigYAML, run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.Frames, run.SimSeconds, run.Terminated, run.TerminatedFrame,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO run_frames (run_id, frame, elapsed, jump, duck) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot prepare frame insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range frames {
		if _, err := stmt.Exec(run.ID, f.Frame, f.Elapsed, f.Jump, f.Duck); err != nil {
			return "", fmt.Errorf("storage: cannot save frame %d: %w", f.Frame, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return run.ID, nil
}

const runColumns = `id, config_yaml, started_at, frames, sim_seconds, terminated, terminated_frame`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var r Run
	var startedAt string
	if err := row.Scan(&r.ID, &r.ConfigYAML, &startedAt, &r.Frames, &r.SimSeconds, &r.Terminated, &r.TerminatedFrame); err != nil {
		return Run{}, err
	}
	if parsed, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
		r.StartedAt = parsed
	}
	return r, nil
}

// Run retrieves a run summary by ID.
func (s *Store) Run(id string) (Run, error) {
	r, err := scanRun(s.db.QueryRow("SELECT "+runColumns+" FROM runs WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return r, nil
}

// Frames retrieves the recorded frames of a run in frame order.
func (s *Store) Frames(id string) ([]FrameRecord, error) {
	rows, err := s.db.Query(
		`SELECT frame, elapsed, jump, duck
		 FROM run_frames
		 WHERE run_id = ?
		 ORDER BY frame`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query frames: %w", err)
	}
	defer rows.Close()

	var frames []FrameRecord
	for rows.Next() {
		var f FrameRecord
		if err := rows.Scan(&f.Frame, &f.Elapsed, &f.Jump, &f.Duck); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		frames = append(frames, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return frames, nil
}

// RecentRuns retrieves the most recently started runs.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		"SELECT "+runColumns+" FROM runs ORDER BY started_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// DeleteRun removes a run and its frames.
func (s *Store) DeleteRun(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM run_frames WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete frames: %w", err)
	}
	res, err := tx.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}
