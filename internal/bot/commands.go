package bot

import (
	"strings"

	"github.com/Randidu/event-management-system/internal/i18n"
	"github.com/Randidu/event-management-system/internal/models"
	"github.com/Randidu/event-management-system/internal/tickets"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var knownStatuses = map[models.BookingStatus]bool{
	models.BookingPending:   true,
	models.BookingConfirmed: true,
	models.BookingCancelled: true,
	models.BookingRefunded:  true,
}

func (b *Bot) handleMessage(c *chatContext, msg *tgbotapi.Message) {
	if !msg.IsCommand() {
		b.sendText(c.chatID, b.Bundle.T(c.lang(), i18n.BotHelp))
		return
	}

	args := strings.TrimSpace(msg.CommandArguments())
	switch msg.Command() {
	case "tickets":
		b.cmdTickets(c, args)
	case "status":
		b.cmdStatus(c, args)
	case "reload":
		b.dispatch(c, tickets.Load{})
		b.sendPage(c)
	case "export":
		b.cmdExport(c, args)
	case "lang":
		b.cmdLang(c, args)
	default:
		b.sendText(c.chatID, b.Bundle.T(c.lang(), i18n.BotHelp))
	}
}

// cmdTickets lists bookings. Text after the command becomes the search;
// without it the search is cleared.
func (b *Bot) cmdTickets(c *chatContext, search string) {
	b.ensureLoaded(c)
	f := c.view.Filter()
	if f.Search != search {
		f.Search = search
		b.dispatch(c, tickets.ApplyFilter{Filter: f})
	}
	b.sendPage(c)
}

func (b *Bot) cmdStatus(c *chatContext, arg string) {
	status := models.ParseBookingStatus(arg)
	if arg == "" || (status != "" && !knownStatuses[status]) {
		b.sendText(c.chatID, b.Bundle.T(c.lang(), i18n.BotStatusUsage))
		return
	}

	b.ensureLoaded(c)
	f := c.view.Filter()
	if f.Status != status {
		f.Status = status
		b.dispatch(c, tickets.ApplyFilter{Filter: f})
	}
	b.sendPage(c)
}

// cmdExport sends every booking in the store, ignoring filter and page.
func (b *Bot) cmdExport(c *chatContext, arg string) {
	if arg == "" {
		arg = string(tickets.FormatCSV)
	}
	format, err := tickets.ParseExportFormat(arg)
	if err != nil {
		b.sendText(c.chatID, b.Bundle.Render(c.lang(), i18n.M(i18n.ActionFailed, err.Error())))
		return
	}
	if !b.ensureLoaded(c) {
		return
	}

	out, _ := c.view.Dispatch(c.ctx, tickets.Export{Format: format})
	if out.Download == nil {
		b.notice(c, out)
		return
	}

	caption := b.Bundle.Render(c.lang(), out.Notice)
	if _, err := b.Telegram.SendDocument(c.chatID, out.Download.FileName, out.Download.Data, caption); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", c.chatID).Msg("send export failed")
		b.sendText(c.chatID, b.Bundle.Render(c.lang(), i18n.M(i18n.ActionFailed, err.Error())))
	}
}

func (b *Bot) cmdLang(c *chatContext, arg string) {
	lang := strings.ToLower(arg)
	if !b.Bundle.IsSupported(lang) {
		b.sendText(c.chatID, strings.Join(b.Bundle.Supported(), ", "))
		return
	}
	c.session.Lang = lang
	b.sendText(c.chatID, b.Bundle.T(lang, i18n.BotHelp))
}

// ensureLoaded loads the store on first use. It reports whether the view has
// bookings to work with.
func (b *Bot) ensureLoaded(c *chatContext) bool {
	if c.view.Phase() == tickets.PhaseIdle {
		b.dispatch(c, tickets.Load{})
	}
	return c.view.Phase() == tickets.PhaseLoaded
}

// dispatch runs cmd and sends its notice, if any.
func (b *Bot) dispatch(c *chatContext, cmd tickets.Command) tickets.Outcome {
	out, err := c.view.Dispatch(c.ctx, cmd)
	if err != nil {
		b.logger.Debug().Err(err).Int64("chat_id", c.chatID).Msgf("%T", cmd)
	}
	b.notice(c, out)
	return out
}

func (b *Bot) notice(c *chatContext, out tickets.Outcome) {
	if out.Notice == nil {
		return
	}
	b.sendText(c.chatID, b.Bundle.Render(c.lang(), out.Notice))
}

func (b *Bot) sendPage(c *chatContext) {
	text, markup := b.pageMessage(c)
	if _, err := b.Telegram.SendWithInlineKeyboard(c.chatID, text, markup); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", c.chatID).Msg("send tickets page failed")
	}
}
