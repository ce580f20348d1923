package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/sadopc/kegelcoach/internal/progress"
)

// LoadLedger reads the progress record. Missing keys load as a new user.
func (s *Store) LoadLedger(ctx context.Context) (progress.State, error) {
	st := progress.State{Progress: progress.DefaultProgress()}

	ints := []struct {
		key string
		dst *int
	}{
		{KeyCurrentStreak, &st.Streak},
		{KeyTotalMinutes, &st.TotalMinutes},
		{KeySessionsCompleted, &st.SessionsCompleted},
	}
	for _, f := range ints {
		v, ok, err := s.Get(ctx, f.key)
		if err != nil {
			return st, err
		}
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return st, fmt.Errorf("parse %s: %w", f.key, err)
		}
		*f.dst = n
	}

	last, _, err := s.Get(ctx, KeyLastSessionDate)
	if err != nil {
		return st, err
	}
	st.LastSessionDate = last

	raw, ok, err := s.Get(ctx, KeyProgressData)
	if err != nil {
		return st, err
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &st.Progress); err != nil {
			return st, fmt.Errorf("decode %s: %w", KeyProgressData, err)
		}
		if st.Progress.CompletedSessions == nil {
			st.Progress.CompletedSessions = []string{}
		}
		if st.Progress.CompletedDates == nil {
			st.Progress.CompletedDates = []string{}
		}
	}
	return st, nil
}

// SaveLedger writes every ledger field in a single transaction.
func (s *Store) SaveLedger(ctx context.Context, st progress.State) error {
	blob, err := json.Marshal(st.Progress)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyProgressData, err)
	}
	values := [][2]string{
		{KeyCurrentStreak, strconv.Itoa(st.Streak)},
		{KeyTotalMinutes, strconv.Itoa(st.TotalMinutes)},
		{KeySessionsCompleted, strconv.Itoa(st.SessionsCompleted)},
		{KeyProgressData, string(blob)},
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, kv := range values {
			if err := setRecord(ctx, tx, kv[0], kv[1]); err != nil {
				return err
			}
		}
		if st.LastSessionDate == "" {
			return clearRecords(ctx, tx, []string{KeyLastSessionDate})
		}
		return setRecord(ctx, tx, KeyLastSessionDate, st.LastSessionDate)
	})
}

// ClearProgress removes the training record. Profile and settings stay.
func (s *Store) ClearProgress(ctx context.Context) error {
	return s.Clear(ctx, ProgressKeys...)
}

// ClearAll is a factory reset: every record, the run log and the settings
// table go back to a fresh install.
func (s *Store) ClearAll(ctx context.Context) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := clearRecords(ctx, tx, AllKeys()); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM session_runs`); err != nil {
			return fmt.Errorf("clear runs: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM settings`); err != nil {
			return fmt.Errorf("clear settings: %w", err)
		}
		return seedSettings(tx, true)
	})
}

var _ progress.Repository = (*Store)(nil)
