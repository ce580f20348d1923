package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
)

func (s *Store) GetProfile(ctx context.Context) (Profile, error) {
	var p Profile
	var err error
	if p.OnboardingComplete, err = s.getBool(ctx, KeyOnboardingComplete); err != nil {
		return p, err
	}
	if p.Subscribed, err = s.getBool(ctx, KeySubscribed); err != nil {
		return p, err
	}
	if p.Experience, _, err = s.Get(ctx, KeyUserExperience); err != nil {
		return p, err
	}
	raw, ok, err := s.Get(ctx, KeyUserGoals)
	if err != nil {
		return p, err
	}
	if ok {
		var g Goals
		if err := json.Unmarshal([]byte(raw), &g); err != nil {
			return p, fmt.Errorf("decode %s: %w", KeyUserGoals, err)
		}
		p.Goals = &g
	}
	return p, nil
}

// CompleteOnboarding stores the answers of the first-run questionnaire and
// marks onboarding done.
func (s *Store) CompleteOnboarding(ctx context.Context, goals Goals, experience string) error {
	blob, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("encode goals: %w", err)
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := setRecord(ctx, tx, KeyUserGoals, string(blob)); err != nil {
			return err
		}
		if err := setRecord(ctx, tx, KeyUserExperience, experience); err != nil {
			return err
		}
		return setRecord(ctx, tx, KeyOnboardingComplete, "true")
	})
}

func (s *Store) SetSubscribed(ctx context.Context, subscribed bool) error {
	return s.Set(ctx, KeySubscribed, strconv.FormatBool(subscribed))
}

func (s *Store) getBool(ctx context.Context, key string) (bool, error) {
	v, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	return v == "true", nil
}
