package models

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversational turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is one ongoing conversation held in memory.
// CreatedAt is Unix milliseconds and is the value ID is derived from.
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt int64     `json:"createdAt"`
}

// Clone returns a copy that shares no slice storage with s.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Messages = make([]Message, len(s.Messages))
	copy(out.Messages, s.Messages)
	return &out
}
