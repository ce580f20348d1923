package store

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

var ErrInvalidReminderTime = errors.New("reminder time must be HH:MM")

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// DefaultSettings mirrors the seeded settings table.
func DefaultSettings() Settings {
	return Settings{Sound: true, Vibration: true, ReminderTime: "09:00"}
}

func (s *Store) GetSettings() (Settings, error) {
	all, err := s.GetAllSettings()
	if err != nil {
		return Settings{}, err
	}
	out := DefaultSettings()
	for _, kv := range all {
		switch kv.Key {
		case SettingSound:
			out.Sound, _ = strconv.ParseBool(kv.Value)
		case SettingVibration:
			out.Vibration, _ = strconv.ParseBool(kv.Value)
		case SettingReminder:
			out.Reminder, _ = strconv.ParseBool(kv.Value)
		case SettingReminderTime:
			out.ReminderTime = kv.Value
		}
	}
	return out, nil
}

func (s *Store) SaveSettings(st Settings) error {
	if _, err := time.Parse("15:04", st.ReminderTime); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidReminderTime, st.ReminderTime)
	}
	values := [][2]string{
		{SettingSound, strconv.FormatBool(st.Sound)},
		{SettingVibration, strconv.FormatBool(st.Vibration)},
		{SettingReminder, strconv.FormatBool(st.Reminder)},
		{SettingReminderTime, st.ReminderTime},
	}
	for _, kv := range values {
		if err := s.SetSetting(kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

// ResetSettings restores every setting to its default.
func (s *Store) ResetSettings() error {
	return seedSettings(s.db, true)
}
