package dto

// ErrorResponseDTO is the body of every error response.
type ErrorResponseDTO struct {
	Error string `json:"error" example:"セッションが見つかりません"`
}

// MessageResponseDTO is a bare acknowledgement.
type MessageResponseDTO struct {
	Message string `json:"message" example:"チャット履歴をクリアしました"`
}

type HealthResponseDTO struct {
	Status string `json:"status" example:"OK"`
}
