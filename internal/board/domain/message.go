package domain

// Message is one parsed chat-log entry. The timestamp is passed through as
// produced upstream, not re-parsed.
type Message struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}
