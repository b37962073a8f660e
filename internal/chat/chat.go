package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Randidu/event-management-system/internal/backend"
	"github.com/Randidu/event-management-system/internal/i18n"
	"github.com/Randidu/event-management-system/internal/metrics"
	"github.com/Randidu/event-management-system/internal/models"

	"github.com/rs/zerolog"
)

// MaxTranscript bounds the messages kept in a session.
const MaxTranscript = 100

type Replier interface {
	Chat(ctx context.Context, message, lang string) (string, error)
}

type Service struct {
	replier Replier
	bundle  *i18n.Bundle
	clock   func() time.Time
	logger  *zerolog.Logger
}

func NewService(replier Replier, bundle *i18n.Bundle, logger *zerolog.Logger) *Service {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Service{replier: replier, bundle: bundle, clock: time.Now, logger: logger}
}

// Transcript returns the session's messages, seeding the greeting on first use.
func (s *Service) Transcript(session *models.SessionState) []models.ChatMessage {
	if len(session.Chat) == 0 {
		session.Chat = []models.ChatMessage{{
			Role: models.ChatRoleBot,
			Text: s.bundle.T(session.Lang, i18n.ChatGreeting),
			At:   s.clock(),
		}}
	}
	return session.Chat
}

// Send appends the user's message and the assistant's answer to the
// transcript. Blank input is ignored and yields nil. Failures are answered
// with a localized bot message; the returned error is for logging only.
func (s *Service) Send(ctx context.Context, session *models.SessionState, text string) (*models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	s.Transcript(session)
	s.append(session, models.ChatRoleUser, text)

	reply, err := s.replier.Chat(ctx, text, session.Lang)
	if err != nil {
		key := i18n.ChatOffline
		var apiErr *backend.APIError
		if errors.Is(err, backend.ErrEmptyReply) || errors.As(err, &apiErr) {
			key = i18n.ChatError
			metrics.IncChat("error")
		} else {
			metrics.IncChat("offline")
		}
		s.logger.Warn().Err(err).Str("session_id", session.ID).Msg("assistant unavailable")
		return s.append(session, models.ChatRoleBot, s.bundle.T(session.Lang, key)), err
	}

	metrics.IncChat("ok")
	return s.append(session, models.ChatRoleBot, reply), nil
}

func (s *Service) append(session *models.SessionState, role models.ChatRole, text string) *models.ChatMessage {
	session.Chat = append(session.Chat, models.ChatMessage{Role: role, Text: text, At: s.clock()})
	if n := len(session.Chat); n > MaxTranscript {
		session.Chat = append([]models.ChatMessage(nil), session.Chat[n-MaxTranscript:]...)
	}
	return &session.Chat[len(session.Chat)-1]
}
