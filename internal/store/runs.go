package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrRunNotFound = errors.New("run not found")

// StartRun logs the beginning of a playback attempt. An empty id gets a
// fresh UUID.
func (s *Store) StartRun(id, sessionID, planID string) (*Run, error) {
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO session_runs (id, session_id, plan_id, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		id, sessionID, planID, RunPlaying, now,
	)
	if err != nil {
		return nil, fmt.Errorf("start run: %w", err)
	}
	return s.GetRun(id)
}

func (s *Store) GetRun(id string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, session_id, plan_id, status, elapsed_seconds, minutes, started_at, ended_at
		 FROM session_runs WHERE id = ?`, id,
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return r, nil
}

func (s *Store) CompleteRun(id string, elapsedSeconds, minutes int) error {
	return s.finishRun(id, RunCompleted, elapsedSeconds, minutes)
}

func (s *Store) CancelRun(id string, elapsedSeconds int) error {
	return s.finishRun(id, RunCancelled, elapsedSeconds, 0)
}

func (s *Store) finishRun(id string, status RunStatus, elapsedSeconds, minutes int) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`UPDATE session_runs SET status = ?, elapsed_seconds = ?, minutes = ?, ended_at = ?
		 WHERE id = ? AND status = ?`,
		status, elapsedSeconds, minutes, now, id, RunPlaying,
	)
	if err != nil {
		return fmt.Errorf("%s run %s: %w", status, id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s run %s: %w", status, id, ErrRunNotFound)
	}
	return nil
}

func (s *Store) ListRuns(f RunFilter) ([]Run, error) {
	query := `SELECT id, session_id, plan_id, status, elapsed_seconds, minutes, started_at, ended_at FROM session_runs WHERE 1=1`
	var args []any

	if f.Status != nil {
		query += ` AND status = ?`
		args = append(args, *f.Status)
	}
	if f.From != nil {
		query += ` AND started_at >= ?`
		args = append(args, f.From.UTC().Format(time.RFC3339))
	}
	if f.To != nil {
		query += ` AND started_at < ?`
		args = append(args, f.To.UTC().Format(time.RFC3339))
	}
	query += ` ORDER BY started_at DESC, rowid DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

// MinutesByDay totals completed runs per local calendar day in [from, to),
// oldest first. Days without training are omitted.
func (s *Store) MinutesByDay(from, to time.Time) ([]DayMinutes, error) {
	completed := RunCompleted
	runs, err := s.ListRuns(RunFilter{Status: &completed, From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("minutes by day: %w", err)
	}
	loc := from.Location()
	var out []DayMinutes
	index := map[string]int{}
	for i := len(runs) - 1; i >= 0; i-- {
		day := runs[i].StartedAt.In(loc).Format("2006-01-02")
		j, ok := index[day]
		if !ok {
			j = len(out)
			index[day] = j
			out = append(out, DayMinutes{Date: day})
		}
		out[j].Minutes += runs[i].Minutes
		out[j].Runs++
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	r := &Run{}
	var startedAt string
	var endedAt sql.NullString
	if err := row.Scan(&r.ID, &r.SessionID, &r.PlanID, &r.Status, &r.ElapsedSeconds, &r.Minutes, &startedAt, &endedAt); err != nil {
		return nil, err
	}
	r.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	if endedAt.Valid {
		t, _ := time.Parse(time.RFC3339, endedAt.String)
		r.EndedAt = &t
	}
	return r, nil
}
