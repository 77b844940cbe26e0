package quiz

import "time"

// Result is the immutable record of a finished quiz.
type Result struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Mode       Mode      `json:"mode"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	BestStreak int       `json:"best_streak"`
}

// Percent returns the score as an integer percentage. An empty quiz is 0%.
func (r Result) Percent() int {
	if r.Total <= 0 {
		return 0
	}
	return r.Score * 100 / r.Total
}

// Perfect reports whether every question was answered correctly.
func (r Result) Perfect() bool {
	return r.Total > 0 && r.Score == r.Total
}

// HistorySummary aggregates a quiz history.
type HistorySummary struct {
	Count      int
	AvgPercent int
	BestStreak int
}

// Summarize averages per-quiz percentages with equal weight per quiz.
func Summarize(history []Result) HistorySummary {
	var sum HistorySummary
	if len(history) == 0 {
		return sum
	}

	total := 0
	for _, r := range history {
		total += r.Percent()
		sum.BestStreak = max(sum.BestStreak, r.BestStreak)
	}
	sum.Count = len(history)
	sum.AvgPercent = total / len(history)
	return sum
}
