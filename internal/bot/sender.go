package bot

import (
	"github.com/Randidu/event-management-system/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// apiSender adapts *tgbotapi.BotAPI, whose identity is a field, to domain.TelegramSender.
type apiSender struct {
	*tgbotapi.BotAPI
}

func (s apiSender) GetSelf() tgbotapi.User {
	return s.Self
}

// NewSender connects to the Bot API with token.
func NewSender(token string, debug bool) (domain.TelegramSender, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	api.Debug = debug
	return apiSender{BotAPI: api}, nil
}
