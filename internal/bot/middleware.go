package bot

import (
	"runtime/debug"
)

func (b *Bot) withRecovery(handler func()) {
	defer func() {
		if r := recover(); r != nil {
			b.Metrics.panicked()
			b.logger.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic in update handler")
		}
	}()
	handler()
}

func (b *Bot) sendText(chatID int64, text string) {
	if _, err := b.Telegram.SendMessage(chatID, text); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("send message failed")
	}
}

func (b *Bot) answer(callbackID, text string) {
	if err := b.Telegram.AnswerCallback(callbackID, text); err != nil {
		b.logger.Warn().Err(err).Msg("answer callback failed")
	}
}
