package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf16"

	"gemma-chat/cmd/api/dto"
	"gemma-chat/models"
	"gemma-chat/repositories"
)

// ErrSessionNotFound is returned for operations naming an unknown session id.
var ErrSessionNotFound = errors.New("session_not_found")

const (
	// DefaultTitlePrefix starts every title that has not been derived from a message yet.
	DefaultTitlePrefix = "チャット"
	maxTitleUnits      = 30
	titleEllipsis      = "..."
)

// SessionService owns session creation, switching and deletion, and the
// process-wide "current session" id.
//
// The current id is set to the seeded session on construction and is then
// overwritten by CreateSession, Switch, ResolveOrCreate and by Delete when the
// current session is removed. It is never cleared.
type SessionService struct {
	repo repositories.SessionRepository
	now  func() time.Time

	// mu serialises lifecycle operations and guards currentID and lastMillis.
	mu         sync.Mutex
	currentID  string
	lastMillis int64
}

// NewSessionService seeds repo with one session and makes it current.
func NewSessionService(ctx context.Context, repo repositories.SessionRepository) (*SessionService, error) {
	return newSessionService(ctx, repo, time.Now)
}

func newSessionService(ctx context.Context, repo repositories.SessionRepository, now func() time.Time) (*SessionService, error) {
	s := &SessionService{repo: repo, now: now}

	s.mu.Lock()
	defer s.mu.Unlock()
	seed, err := s.createLocked(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed session: %w", err)
	}
	s.currentID = seed.ID
	return s, nil
}

// CurrentID returns the id of the current session.
func (s *SessionService) CurrentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

// CreateSession creates an empty session and makes it current.
func (s *SessionService) CreateSession(ctx context.Context) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.createLocked(ctx)
	if err != nil {
		return nil, err
	}
	s.currentID = session.ID
	return session, nil
}

// List returns all sessions newest first plus the current session id.
func (s *SessionService) List(ctx context.Context) (*dto.ListSessionsResponseDTO, error) {
	sessions, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SessionSummaryDTO, 0, len(sessions))
	for _, session := range sessions {
		items = append(items, dto.SessionSummaryDTO{
			ID:           session.ID,
			Title:        session.Title,
			CreatedAt:    session.CreatedAt,
			MessageCount: len(session.Messages),
		})
	}
	return &dto.ListSessionsResponseDTO{Sessions: items, CurrentSessionID: s.CurrentID()}, nil
}

// Switch makes id current and returns the full session.
func (s *SessionService) Switch(ctx context.Context, id string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.currentID = session.ID
	return session, nil
}

// Delete removes id. When id was current a replacement session is created,
// made current and its id returned; otherwise newCurrentID is empty.
func (s *SessionService) Delete(ctx context.Context, id string) (newCurrentID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return "", translateRepoErr(err)
	}
	if id != s.currentID {
		return "", nil
	}

	replacement, err := s.createLocked(ctx)
	if err != nil {
		return "", fmt.Errorf("create replacement session: %w", err)
	}
	s.currentID = replacement.ID
	return replacement.ID, nil
}

// ResolveOrCreate returns the session stored under id, or a new one when id
// is empty or unknown. Either way the returned session becomes current.
func (s *SessionService) ResolveOrCreate(ctx context.Context, id string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		session, err := s.get(ctx, id)
		if err == nil {
			s.currentID = session.ID
			return session, nil
		}
		if !errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
	}

	session, err := s.createLocked(ctx)
	if err != nil {
		return nil, err
	}
	s.currentID = session.ID
	return session, nil
}

// ClearCurrent empties the message history of the current session.
// A missing current session is not an error.
func (s *SessionService) ClearCurrent(ctx context.Context) error {
	_, err := s.repo.Update(ctx, s.CurrentID(), func(session *models.Session) {
		session.Messages = session.Messages[:0]
	})
	if errors.Is(err, repositories.ErrSessionNotFound) {
		return nil
	}
	return err
}

// AppendMessage appends one turn to the session and returns the updated session.
func (s *SessionService) AppendMessage(ctx context.Context, id string, msg models.Message) (*models.Session, error) {
	session, err := s.repo.Update(ctx, id, func(session *models.Session) {
		session.Messages = append(session.Messages, msg)
	})
	return session, translateRepoErr(err)
}

// RecordReply appends the assistant turn and, when this completes the first
// exchange of a session that still has its default title, derives the title
// from userMessage. Both happen atomically.
func (s *SessionService) RecordReply(ctx context.Context, id, reply, userMessage string) (*models.Session, error) {
	session, err := s.repo.Update(ctx, id, func(session *models.Session) {
		session.Messages = append(session.Messages, models.Message{Role: models.RoleAssistant, Content: reply})
		if strings.HasPrefix(session.Title, DefaultTitlePrefix) && len(session.Messages) == 2 {
			session.Title = TitleFromMessage(userMessage)
		}
	})
	return session, translateRepoErr(err)
}

// TitleFromMessage keeps the first 30 UTF-16 code units of msg, adding "..."
// when it had to cut. Characters outside the BMP count twice; a surrogate
// pair split by the cut becomes U+FFFD.
func TitleFromMessage(msg string) string {
	units := utf16.Encode([]rune(msg))
	if len(units) <= maxTitleUnits {
		return msg
	}
	return string(utf16.Decode(units[:maxTitleUnits])) + titleEllipsis
}

// DefaultTitle renders t the way ja-JP locale strings look, e.g.
// "チャット 2023/11/15 7:13:20".
func DefaultTitle(t time.Time) string {
	return fmt.Sprintf("%s %d/%d/%d %d:%02d:%02d",
		DefaultTitlePrefix, t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
}

func (s *SessionService) get(ctx context.Context, id string) (*models.Session, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, translateRepoErr(err)
	}
	return session, nil
}

// createLocked inserts a fresh session. Callers hold s.mu.
func (s *SessionService) createLocked(ctx context.Context) (*models.Session, error) {
	millis := s.now().UnixMilli()
	// ids come from the millisecond clock; never hand out the same one twice
	if millis <= s.lastMillis {
		millis = s.lastMillis + 1
	}

	session := &models.Session{
		ID:        strconv.FormatInt(millis, 10),
		Title:     DefaultTitle(time.UnixMilli(millis)),
		Messages:  []models.Message{},
		CreatedAt: millis,
	}
	if err := s.repo.Put(ctx, session); err != nil {
		return nil, err
	}
	s.lastMillis = millis
	return session, nil
}

func translateRepoErr(err error) error {
	if errors.Is(err, repositories.ErrSessionNotFound) {
		return ErrSessionNotFound
	}
	return err
}
