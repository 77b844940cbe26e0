package content

// Fact is a single piece of trivia shown in the feed.
type Fact struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Category string `json:"category"`
	Emoji    string `json:"emoji,omitempty"`
	Source   string `json:"source,omitempty"`
}
