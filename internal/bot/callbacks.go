package bot

import (
	"strconv"
	"strings"

	"github.com/Randidu/event-management-system/internal/i18n"
	"github.com/Randidu/event-management-system/internal/models"
	"github.com/Randidu/event-management-system/internal/tickets"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleCallback(c *chatContext, cq *tgbotapi.CallbackQuery) {
	data := cq.Data
	messageID := cq.Message.MessageID

	switch {
	case strings.HasPrefix(data, cbPage):
		page, err := strconv.Atoi(strings.TrimPrefix(data, cbPage))
		if err != nil {
			b.answer(cq.ID, "")
			return
		}
		b.ensureLoaded(c)
		_, _ = c.view.Dispatch(c.ctx, tickets.GoToPage{Page: page})
		b.answer(cq.ID, "")
		b.editPage(c, messageID)

	case strings.HasPrefix(data, cbDeleteOK):
		id, err := strconv.ParseInt(strings.TrimPrefix(data, cbDeleteOK), 10, 64)
		if err != nil {
			b.answer(cq.ID, "")
			return
		}
		out, _ := c.view.Dispatch(c.ctx, tickets.DeleteBooking{ID: id, Confirm: tickets.Confirmed(true)})
		b.answer(cq.ID, b.Bundle.Render(c.lang(), out.Notice))
		b.editPage(c, messageID)

	case strings.HasPrefix(data, cbDelete):
		id, err := strconv.ParseInt(strings.TrimPrefix(data, cbDelete), 10, 64)
		if err != nil {
			b.answer(cq.ID, "")
			return
		}
		idx := models.FindBooking(c.view.Store(), id)
		if idx < 0 {
			b.answer(cq.ID, b.Bundle.Render(c.lang(), i18n.M(i18n.BookingNotFound, id)))
			return
		}
		b.answer(cq.ID, "")
		text, markup := b.confirmMessage(c, c.view.Store()[idx])
		if _, err := b.Telegram.EditMessage(c.chatID, messageID, text, &markup); err != nil {
			b.logger.Warn().Err(err).Int64("chat_id", c.chatID).Msg("edit confirm prompt failed")
		}

	case data == cbReload:
		out, _ := c.view.Dispatch(c.ctx, tickets.Load{})
		b.answer(cq.ID, b.Bundle.Render(c.lang(), out.Notice))
		b.editPage(c, messageID)

	case data == cbExport:
		b.answer(cq.ID, "")
		b.cmdExport(c, string(tickets.FormatCSV))

	default:
		b.answer(cq.ID, "")
	}
}

func (b *Bot) editPage(c *chatContext, messageID int) {
	text, markup := b.pageMessage(c)
	if _, err := b.Telegram.EditMessage(c.chatID, messageID, text, &markup); err != nil {
		b.logger.Warn().Err(err).Int64("chat_id", c.chatID).Msg("edit tickets page failed")
	}
}
