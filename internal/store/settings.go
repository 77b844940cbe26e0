package store

import "time"

// UserSettings holds onboarding answers and reminder preferences.
type UserSettings struct {
	Username           string    `json:"username"`
	Interests          []string  `json:"interests"`
	OnboardingComplete bool      `json:"onboarding_complete"`
	JoinDate           time.Time `json:"join_date"`

	NotificationsEnabled bool   `json:"notifications_enabled"`
	DailyReminderTime    string `json:"daily_reminder_time"`
	QuizRemindersEnabled bool   `json:"quiz_reminders_enabled"`
	QuizReminderTime     string `json:"quiz_reminder_time"`
}

// DefaultSettings is what a first launch starts with.
func DefaultSettings() UserSettings {
	return UserSettings{
		DailyReminderTime: "09:00",
		QuizReminderTime:  "19:00",
	}
}
