package services

import (
	"context"
	"errors"
	"net/http"

	"gemma-chat/cmd/api/clients/ollamaclient"
	"gemma-chat/cmd/api/dto"
	"gemma-chat/cmd/api/prompt"
	"gemma-chat/cmd/api/trace"
	"gemma-chat/cmd/internal/logger"
	"gemma-chat/models"
)

const (
	MsgInferenceUnavailable = "Ollamaサーバーに接続できません。Ollamaが起動していることを確認してください。"
	MsgModelNotFound        = "Gemmaモデルが見つかりません。ollama pull gemmaを実行してください。"
	MsgInternalError        = "内部サーバーエラーが発生しました"
)

// Generator produces a completion for a flat text prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type ChatService struct {
	sessions  *SessionService
	generator Generator
}

// ChatError carries the HTTP status and localized message a failed chat turn maps to.
type ChatError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *ChatError) Error() string {
	if e == nil {
		return MsgInternalError
	}
	return e.Message
}

func (e *ChatError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewChatService(sessions *SessionService, generator Generator) *ChatService {
	return &ChatService{sessions: sessions, generator: generator}
}

// Chat runs one turn: the user message is stored before the generate call and
// stays stored if that call fails; the reply is stored only on success.
func (s *ChatService) Chat(ctx context.Context, sessionID, message string) (dto.ChatResponseDTO, *ChatError) {
	session, err := s.sessions.ResolveOrCreate(ctx, sessionID)
	if err != nil {
		return dto.ChatResponseDTO{}, s.fail(ctx, sessionID, err)
	}

	session, err = s.sessions.AppendMessage(ctx, session.ID, models.Message{Role: models.RoleUser, Content: message})
	if err != nil {
		return dto.ChatResponseDTO{}, s.fail(ctx, sessionID, err)
	}

	// the generate call is not aborted when the client goes away
	reply, err := s.generator.Generate(context.WithoutCancel(ctx), prompt.Build(session.Messages))
	if err != nil {
		return dto.ChatResponseDTO{}, s.fail(ctx, session.ID, err)
	}

	if _, err := s.sessions.RecordReply(ctx, session.ID, reply, message); err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			return dto.ChatResponseDTO{}, s.fail(ctx, session.ID, err)
		}
		// deleted while the model was answering; the reply is still returned
		logger.WarnWithFields("chat reply for deleted session", logger.Fields{
			"session_id": session.ID,
			"request_id": trace.RequestIDFromContext(ctx),
		})
	}

	return dto.ChatResponseDTO{Response: reply, SessionID: session.ID}, nil
}

func (s *ChatService) fail(ctx context.Context, sessionID string, err error) *ChatError {
	status, msg := normalizeChatError(err)
	logger.ErrorWithFields("chat failed", logger.Fields{
		"session_id": sessionID,
		"request_id": trace.RequestIDFromContext(ctx),
		"status":     status,
		"error":      err.Error(),
	})
	return &ChatError{StatusCode: status, Message: msg, Cause: err}
}

func normalizeChatError(err error) (status int, message string) {
	var genErr *ollamaclient.GenerateError
	if !errors.As(err, &genErr) {
		return http.StatusInternalServerError, MsgInternalError
	}
	switch genErr.Kind {
	case ollamaclient.KindUnavailable:
		return http.StatusServiceUnavailable, MsgInferenceUnavailable
	case ollamaclient.KindModelNotFound:
		return http.StatusNotFound, MsgModelNotFound
	default:
		return http.StatusInternalServerError, MsgInternalError
	}
}
