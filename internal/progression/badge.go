package progression

import "time"

// Badge is a catalog entry evaluated against a player's stats.
type Badge struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Color       string

	Unlocked bool
	// UnlockedAt is not tracked yet and stays nil.
	UnlockedAt *time.Time
}

type badgeDef struct {
	Badge
	unlocked func(UserStats) bool
}

var badgeCatalog = []badgeDef{
	{Badge{ID: "first_fact", Name: "Curious Mind", Description: "Read your first fact", Icon: "💡", Color: "#FFD93D"},
		func(s UserStats) bool { return s.TotalFactsRead >= 1 }},
	{Badge{ID: "bookworm", Name: "Bookworm", Description: "Read 25 facts", Icon: "📚", Color: "#6BCB77"},
		func(s UserStats) bool { return s.TotalFactsRead >= 25 }},
	{Badge{ID: "encyclopedia", Name: "Walking Encyclopedia", Description: "Read 100 facts", Icon: "🧠", Color: "#4D96FF"},
		func(s UserStats) bool { return s.TotalFactsRead >= 100 }},
	{Badge{ID: "first_quiz", Name: "Quiz Rookie", Description: "Finish your first quiz", Icon: "🎯", Color: "#FF6B6B"},
		func(s UserStats) bool { return s.TotalQuizzes >= 1 }},
	{Badge{ID: "quiz_master", Name: "Quiz Master", Description: "Finish 25 quizzes", Icon: "🏆", Color: "#FFB200"},
		func(s UserStats) bool { return s.TotalQuizzes >= 25 }},
	{Badge{ID: "sharp_shooter", Name: "Sharp Shooter", Description: "Average 80% or more over at least 5 quizzes", Icon: "🎖", Color: "#9D4EDD"},
		func(s UserStats) bool { return s.TotalQuizzes >= 5 && s.AvgQuizScore >= 80 }},
	{Badge{ID: "hot_hand", Name: "Hot Hand", Description: "Answer 5 in a row correctly", Icon: "🔥", Color: "#FF7F3F"},
		func(s UserStats) bool { return s.BestQuizStreak >= 5 }},
	{Badge{ID: "week_streak", Name: "Week Warrior", Description: "Keep a 7-day streak", Icon: "📅", Color: "#00C2A8"},
		func(s UserStats) bool { return s.LongestStreak >= 7 }},
	{Badge{ID: "month_streak", Name: "Unstoppable", Description: "Keep a 30-day streak", Icon: "⚡", Color: "#F72585"},
		func(s UserStats) bool { return s.LongestStreak >= 30 }},
	{Badge{ID: "collector", Name: "Collector", Description: "Save 10 favourite facts", Icon: "⭐", Color: "#FFC300"},
		func(s UserStats) bool { return s.FavoritesCount >= 10 }},
	{Badge{ID: "level_5", Name: "Rising Star", Description: "Reach level 5", Icon: "🌟", Color: "#7B61FF"},
		func(s UserStats) bool { return s.Level >= 5 }},
}

// Catalog returns every badge, all locked.
func Catalog() []Badge {
	out := make([]Badge, len(badgeCatalog))
	for i, d := range badgeCatalog {
		out[i] = d.Badge
	}
	return out
}

// EvaluateBadges returns the catalog with Unlocked set from stats.
func EvaluateBadges(stats UserStats) []Badge {
	out := make([]Badge, len(badgeCatalog))
	for i, d := range badgeCatalog {
		b := d.Badge
		b.Unlocked = d.unlocked(stats)
		out[i] = b
	}
	return out
}
