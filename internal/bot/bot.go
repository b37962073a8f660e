package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Randidu/event-management-system/internal/config"
	"github.com/Randidu/event-management-system/internal/domain"
	"github.com/Randidu/event-management-system/internal/i18n"
	"github.com/Randidu/event-management-system/internal/models"
	"github.com/Randidu/event-management-system/internal/service"
	"github.com/Randidu/event-management-system/internal/tickets"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const updateTimeout = 30 * time.Second

type Deps struct {
	Telegram  domain.TelegramService
	Backend   tickets.Source
	Sessions  *service.SessionService
	Renderer  *tickets.Renderer
	Publisher tickets.Publisher
	Bundle    *i18n.Bundle
	Location  *time.Location
	Clock     func() time.Time
	Metrics   *Metrics
	Logger    *zerolog.Logger
	ExportDir string
}

// Bot is the Telegram surface of the tickets view. Updates are handled one at
// a time, so a chat's session is never used concurrently.
type Bot struct {
	Deps
	cfg       config.TelegramConfig
	operators map[int64]bool
	logger    zerolog.Logger
}

func NewBot(cfg config.TelegramConfig, deps Deps) (*Bot, error) {
	switch {
	case deps.Telegram == nil:
		return nil, errors.New("telegram service is required")
	case deps.Backend == nil:
		return nil, errors.New("backend is required")
	case deps.Sessions == nil:
		return nil, errors.New("session service is required")
	case deps.Bundle == nil:
		return nil, errors.New("i18n bundle is required")
	}
	if deps.Location == nil {
		deps.Location = time.Local
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	logger := zerolog.Nop()
	if deps.Logger != nil {
		logger = deps.Logger.With().Str("component", "bot").Logger()
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = models.RateLimitMessages
	}
	if cfg.RateWindow <= 0 {
		cfg.RateWindow = models.RateLimitWindow
	}

	operators := make(map[int64]bool, len(cfg.Operators))
	for _, id := range cfg.Operators {
		operators[id] = true
	}

	return &Bot{Deps: deps, cfg: cfg, operators: operators, logger: logger}, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.Telegram.GetUpdatesChan(u)
	b.logger.Info().Str("username", b.Telegram.GetSelf().UserName).Msg("Authorized on account")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info().Msg("Bot stopping...")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.processUpdate(ctx, update)
		}
	}
}

// Stop stops receiving Telegram updates.
func (b *Bot) Stop() {
	if b == nil || b.Telegram == nil {
		return
	}
	b.Telegram.StopReceivingUpdates()
}

func (b *Bot) processUpdate(ctx context.Context, update tgbotapi.Update) {
	start := time.Now()
	kind := "other"
	defer func() {
		b.Metrics.observe(kind, time.Since(start))
	}()

	updateCtx, cancel := context.WithTimeout(ctx, updateTimeout)
	defer cancel()

	l := b.logger.With().Str("request_id", uuid.NewString()).Logger()
	updateCtx = l.WithContext(updateCtx)

	b.withRecovery(func() {
		var (
			from   *tgbotapi.User
			chatID int64
		)
		switch {
		case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
			kind = "callback"
			from = update.CallbackQuery.From
			chatID = update.CallbackQuery.Message.Chat.ID
		case update.Message != nil && update.Message.Chat != nil:
			kind = "message"
			from = update.Message.From
			chatID = update.Message.Chat.ID
		}
		if from == nil || chatID == 0 {
			return
		}

		if !b.isOperator(from.ID) {
			l.Warn().Int64("user_id", from.ID).Msg("update from non-operator")
			b.reject(update, chatID, b.Bundle.T(b.Bundle.Default(), i18n.BotOperatorsOnly))
			return
		}

		window := time.Duration(b.cfg.RateWindow) * time.Second
		if !b.Sessions.Allow(updateCtx, fmt.Sprintf("tg:%d", from.ID), b.cfg.RateLimit, window) {
			l.Warn().Int64("user_id", from.ID).Msg("Rate limit exceeded")
			b.reject(update, chatID, b.Bundle.T(b.Bundle.Default(), i18n.BotRateLimited))
			return
		}

		session, err := b.Sessions.LoadChat(updateCtx, chatID)
		if err != nil {
			b.sendText(chatID, b.Bundle.Render(b.Bundle.Default(), i18n.M(i18n.ActionFailed, err.Error())))
			return
		}

		c := &chatContext{
			ctx:     updateCtx,
			chatID:  chatID,
			session: session,
			view:    b.newView(session, actorName(from)),
		}
		if update.CallbackQuery != nil {
			b.handleCallback(c, update.CallbackQuery)
		} else {
			b.handleMessage(c, update.Message)
		}

		session.Tickets = c.view.State()
		if err := b.Sessions.Save(context.WithoutCancel(updateCtx), session); err != nil {
			l.Error().Err(err).Int64("chat_id", chatID).Msg("failed to save chat session")
		}
	})
}

// chatContext is what one update's handlers share.
type chatContext struct {
	ctx     context.Context
	chatID  int64
	session *models.SessionState
	view    *tickets.View
}

func (c *chatContext) lang() string { return c.session.Lang }

func (b *Bot) newView(session *models.SessionState, actor string) *tickets.View {
	logger := b.logger
	view := tickets.NewView(tickets.Deps{
		Source:    b.Backend,
		Renderer:  b.Renderer,
		Publisher: b.Publisher,
		Logger:    &logger,
		Location:  b.Location,
		Clock:     b.Clock,
		PageSize:  models.BotPageSize,
		ExportDir: b.ExportDir,
	}, b.cfg.BackendToken, actor)
	view.Restore(session.Tickets)
	return view
}

func (b *Bot) isOperator(userID int64) bool {
	return b.operators[userID]
}

// reject answers an update that will not be handled.
func (b *Bot) reject(update tgbotapi.Update, chatID int64, text string) {
	if update.CallbackQuery != nil {
		b.answer(update.CallbackQuery.ID, text)
		return
	}
	b.sendText(chatID, text)
}

func actorName(u *tgbotapi.User) string {
	if u.UserName != "" {
		return "telegram:@" + u.UserName
	}
	return fmt.Sprintf("telegram:%d", u.ID)
}
