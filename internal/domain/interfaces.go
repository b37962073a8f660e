package domain

import (
	"context"
	"time"

	"github.com/Randidu/event-management-system/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Backend is the subset of the FastAPI backend the surfaces talk to.
type Backend interface {
	Login(ctx context.Context, email, password string) (string, error)
	CurrentUser(ctx context.Context, token string) (*models.User, error)
	ListAllBookings(ctx context.Context, token string) ([]models.Booking, error)
	ListEvents(ctx context.Context) ([]models.EventOption, error)
	DeleteBooking(ctx context.Context, token string, id int64) error
	DashboardStats(ctx context.Context, token string, days int) (*models.DashboardStats, error)
	Chat(ctx context.Context, message, lang string) (string, error)
}

type SessionRepository interface {
	GetSession(ctx context.Context, id string) (*models.SessionState, error)
	SaveSession(ctx context.Context, session *models.SessionState) error
	DeleteSession(ctx context.Context, id string) error
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type AuditStore interface {
	RecordAudit(ctx context.Context, entry *models.AuditEntry) error
	ListAudit(ctx context.Context, limit int) ([]*models.AuditEntry, error)
}

type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetSelf() tgbotapi.User
	StopReceivingUpdates()
}

type TelegramService interface {
	SendMessage(chatID int64, text string) (tgbotapi.Message, error)
	SendWithInlineKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error)
	EditMessage(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error)
	SendDocument(chatID int64, name string, data []byte, caption string) (tgbotapi.Message, error)
	AnswerCallback(callbackID string, text string) error
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetSelf() tgbotapi.User
	StopReceivingUpdates()
}

// SheetsWriter mirrors the bookings store into the Tickets sheet.
type SheetsWriter interface {
	ReplaceTicketsSheet(ctx context.Context, bookings []models.Booking) error
	DeleteTicketRow(ctx context.Context, bookingID int64) error
}

type SyncWorker interface {
	EnqueueTask(ctx context.Context, taskType string, bookingID int64, payload interface{}) error
}
