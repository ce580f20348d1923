package store

// Record keys. Every key the app persists outside the settings table and
// the run log is listed here so a full reset can clear them together.
const (
	KeyOnboardingComplete = "onboarding_complete"
	KeyUserGoals          = "user_goals"
	KeyUserExperience     = "user_experience"
	KeySubscribed         = "is_subscribed"
	KeyProgressData       = "progress_data"
	KeyCurrentStreak      = "current_streak"
	KeyTotalMinutes       = "total_minutes"
	KeySessionsCompleted  = "sessions_completed"
	KeyLastSessionDate    = "last_session_date"
)

// ProgressKeys hold the training record. Clearing them resets progress but
// keeps the profile.
var ProgressKeys = []string{
	KeyProgressData,
	KeyCurrentStreak,
	KeyTotalMinutes,
	KeySessionsCompleted,
	KeyLastSessionDate,
}

var profileKeys = []string{
	KeyOnboardingComplete,
	KeyUserGoals,
	KeyUserExperience,
	KeySubscribed,
}

// AllKeys is the known key set.
func AllKeys() []string {
	return append(append([]string{}, profileKeys...), ProgressKeys...)
}

// Setting keys in the settings table.
const (
	SettingSound        = "sound_enabled"
	SettingVibration    = "vibration_enabled"
	SettingReminder     = "reminder_enabled"
	SettingReminderTime = "reminder_time"
)
