package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Randidu/event-management-system/internal/domain"
	"github.com/Randidu/event-management-system/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SessionService loads and stores the per-session state of the console surfaces.
type SessionService struct {
	repo        domain.SessionRepository
	defaultLang string
	logger      *zerolog.Logger
}

func NewSessionService(repo domain.SessionRepository, defaultLang string, logger *zerolog.Logger) *SessionService {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &SessionService{repo: repo, defaultLang: defaultLang, logger: logger}
}

// Load returns the session with id, or a new one when id is empty or unknown.
// created reports whether the caller has to hand the new id to the client.
func (s *SessionService) Load(ctx context.Context, id string) (session *models.SessionState, created bool, err error) {
	if id != "" {
		session, err = s.repo.GetSession(ctx, id)
		if err != nil {
			s.logger.Error().Err(err).Str("session_id", id).Msg("failed to get session")
			return nil, false, err
		}
		if session != nil {
			if session.Lang == "" {
				session.Lang = s.defaultLang
			}
			return session, false, nil
		}
	}
	return s.New(), true, nil
}

// LoadChat is Load for a Telegram chat, whose session id is derived from the chat id.
func (s *SessionService) LoadChat(ctx context.Context, chatID int64) (*models.SessionState, error) {
	id := ChatSessionID(chatID)
	session, err := s.repo.GetSession(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to get chat session")
		return nil, err
	}
	if session == nil {
		session = &models.SessionState{ID: id, Lang: s.defaultLang}
	}
	return session, nil
}

func (s *SessionService) New() *models.SessionState {
	return &models.SessionState{ID: uuid.NewString(), Lang: s.defaultLang}
}

func (s *SessionService) Save(ctx context.Context, session *models.SessionState) error {
	return s.repo.SaveSession(ctx, session)
}

func (s *SessionService) End(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.repo.DeleteSession(ctx, id)
}

// Allow applies a fixed-window rate limit. A broken limiter store lets the
// request through.
func (s *SessionService) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	allowed, err := s.repo.CheckRateLimit(ctx, key, limit, window)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("rate limit check failed")
		return true
	}
	return allowed
}

func ChatSessionID(chatID int64) string {
	return fmt.Sprintf("tg:%d", chatID)
}
