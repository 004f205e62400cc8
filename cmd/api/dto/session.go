package dto

// ChatMessageDTO represents a single message in a chat session.
type ChatMessageDTO struct {
	Role    string `json:"role" example:"user"`
	Content string `json:"content" example:"こんにちは"`
}

// SessionSummaryDTO is one row of the session list.
type SessionSummaryDTO struct {
	ID           string `json:"id" example:"1700000000000"`
	Title        string `json:"title" example:"チャット 2023/11/15 7:13:20"`
	CreatedAt    int64  `json:"createdAt" example:"1700000000000"`
	MessageCount int    `json:"messageCount" example:"2"`
}

// ListSessionsResponseDTO lists sessions newest first together with the current session id.
type ListSessionsResponseDTO struct {
	Sessions         []SessionSummaryDTO `json:"sessions"`
	CurrentSessionID string              `json:"currentSessionId" example:"1700000000000"`
}

// CreateSessionResponseDTO is the response from creating a session.
type CreateSessionResponseDTO struct {
	ID    string `json:"id" example:"1700000000000"`
	Title string `json:"title" example:"チャット 2023/11/15 7:13:20"`
}

// SessionDetailDTO is a session including its message history.
type SessionDetailDTO struct {
	ID       string           `json:"id" example:"1700000000000"`
	Title    string           `json:"title" example:"こんにちは"`
	Messages []ChatMessageDTO `json:"messages"`
}

// DeleteSessionResponseDTO carries NewSessionID only when the deleted session was the current one.
type DeleteSessionResponseDTO struct {
	Message      string `json:"message" example:"セッションを削除しました"`
	NewSessionID string `json:"newSessionId,omitempty" example:"1700000000001"`
}
