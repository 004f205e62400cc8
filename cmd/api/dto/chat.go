package dto

import "encoding/json"

// ChatRequestDTO is one chat turn. An empty, unknown or non-string sessionId
// starts a new session.
type ChatRequestDTO struct {
	SessionID json.RawMessage `json:"sessionId" swaggertype:"string" example:"1700000000000"`
	Message   string          `json:"message" binding:"required" example:"こんにちは"`
}

// SessionIDString returns sessionId when it was sent as a JSON string and ""
// for anything else (absent, null, number, object).
func (r ChatRequestDTO) SessionIDString() string {
	var id string
	if len(r.SessionID) == 0 || json.Unmarshal(r.SessionID, &id) != nil {
		return ""
	}
	return id
}

type ChatResponseDTO struct {
	Response  string `json:"response" example:"こんにちは！"`
	SessionID string `json:"sessionId" example:"1700000000000"`
}
