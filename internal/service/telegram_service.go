package service

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/Randidu/event-management-system/internal/domain"
	"github.com/Randidu/event-management-system/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot API limits, in characters.
const (
	maxMessageLen  = 4096
	maxCaptionLen  = 1024
	maxCallbackLen = 200
)

var ErrEmptyDocument = errors.New("document has no content")

// EscapeMarkdown quotes text for the Markdown parse mode every admin bot
// message is sent with.
func EscapeMarkdown(s string) string {
	return tgbotapi.EscapeText(models.ParseModeMarkdown, s)
}

// IsNotModified reports the Bot API refusing an edit that would leave the
// message as it is.
func IsNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}

// TelegramService sends the admin bot's Markdown pages, confirmations and
// export files, keeping each within the Bot API limits.
type TelegramService struct {
	bot domain.TelegramSender
}

var _ domain.TelegramService = (*TelegramService)(nil)

func NewTelegramService(bot domain.TelegramSender) *TelegramService {
	return &TelegramService{bot: bot}
}

func (s *TelegramService) SendMessage(chatID int64, text string) (tgbotapi.Message, error) {
	return s.bot.Send(tgbotapi.NewMessage(chatID, clip(text, maxMessageLen)))
}

func (s *TelegramService) SendWithInlineKeyboard(
	chatID int64,
	text string,
	keyboard tgbotapi.InlineKeyboardMarkup,
) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, clip(text, maxMessageLen))
	msg.ParseMode = models.ParseModeMarkdown
	msg.ReplyMarkup = keyboard
	return s.bot.Send(msg)
}

// EditMessage rewrites a page in place. An edit that changes nothing, such as
// a pager tap on the current page, is not an error.
func (s *TelegramService) EditMessage(
	chatID int64,
	messageID int,
	text string,
	keyboard *tgbotapi.InlineKeyboardMarkup,
) (tgbotapi.Message, error) {
	text = clip(text, maxMessageLen)
	var edit tgbotapi.EditMessageTextConfig
	if keyboard != nil {
		edit = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, *keyboard)
	} else {
		edit = tgbotapi.NewEditMessageText(chatID, messageID, text)
	}
	edit.ParseMode = models.ParseModeMarkdown

	msg, err := s.bot.Send(edit)
	if IsNotModified(err) {
		return tgbotapi.Message{MessageID: messageID}, nil
	}
	return msg, err
}

// SendDocument uploads an export. The caption is plain text.
func (s *TelegramService) SendDocument(chatID int64, name string, data []byte, caption string) (tgbotapi.Message, error) {
	if len(data) == 0 {
		return tgbotapi.Message{}, ErrEmptyDocument
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	doc.Caption = clip(caption, maxCaptionLen)
	return s.bot.Send(doc)
}

func (s *TelegramService) AnswerCallback(callbackID, text string) error {
	_, err := s.bot.Request(tgbotapi.NewCallback(callbackID, clip(text, maxCallbackLen)))
	return err
}

func (s *TelegramService) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return s.bot.GetUpdatesChan(config)
}

func (s *TelegramService) GetSelf() tgbotapi.User {
	return s.bot.GetSelf()
}

func (s *TelegramService) StopReceivingUpdates() {
	s.bot.StopReceivingUpdates()
}

// clip shortens text to limit characters, cutting at the last line break
// when there is one so Markdown rows stay whole.
func clip(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)[:limit-1]
	cut := string(runes)
	if i := strings.LastIndexByte(cut, '\n'); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}
