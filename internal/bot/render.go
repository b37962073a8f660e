package bot

import (
	"fmt"
	"strings"

	"github.com/Randidu/event-management-system/internal/i18n"
	"github.com/Randidu/event-management-system/internal/models"
	"github.com/Randidu/event-management-system/internal/service"
	"github.com/Randidu/event-management-system/internal/tickets"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data. Telegram caps it at 64 bytes.
const (
	cbPage     = "tk:page:"
	cbDelete   = "tk:del:"
	cbDeleteOK = "tk:delok:"
	cbExport   = "tk:export"
	cbReload   = "tk:reload"
)

func esc(s string) string {
	return service.EscapeMarkdown(s)
}

// pageMessage draws the current page of the view as a Markdown message with
// a delete button per row, a pager and the reload/export actions.
func (b *Bot) pageMessage(c *chatContext) (string, tgbotapi.InlineKeyboardMarkup) {
	lang := c.lang()
	snap := c.view.Snapshot()

	var text strings.Builder
	text.WriteString("*" + esc(b.Bundle.T(lang, i18n.AdminTickets)) + "*\n\n")

	var keyboard [][]tgbotapi.InlineKeyboardButton
	switch {
	case snap.Failed:
		text.WriteString(esc(b.Bundle.T(lang, i18n.TicketsLoadFailedRow)))
	case snap.Empty || snap.Phase == tickets.PhaseIdle:
		text.WriteString(esc(b.Bundle.T(lang, i18n.TicketsEmpty)))
	default:
		ctl := snap.Controls
		text.WriteString(esc(b.Bundle.Tf(lang, i18n.BotPageInfo, ctl.Page, max(ctl.PageCount, 1), snap.Matching, snap.Total)))
		text.WriteString("\n\n")
		for _, row := range snap.Rows {
			writeRow(&text, row)
			keyboard = append(keyboard, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("🗑 %s %s", row.IDLabel, row.UserName),
					fmt.Sprintf("%s%d", cbDelete, row.ID),
				),
			))
		}

		var nav []tgbotapi.InlineKeyboardButton
		if ctl.HasPrev {
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️ "+b.Bundle.T(lang, i18n.PagePrev), fmt.Sprintf("%s%d", cbPage, ctl.Prev)))
		}
		if ctl.HasNext {
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(b.Bundle.T(lang, i18n.PageNext)+" ➡️", fmt.Sprintf("%s%d", cbPage, ctl.Next)))
		}
		if len(nav) > 0 {
			keyboard = append(keyboard, nav)
		}
	}

	keyboard = append(keyboard, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔄 "+b.Bundle.T(lang, i18n.BtnReload), cbReload),
		tgbotapi.NewInlineKeyboardButtonData("📄 "+b.Bundle.T(lang, i18n.BtnExportCSV), cbExport),
	))
	return text.String(), tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

func writeRow(text *strings.Builder, row tickets.Row) {
	fmt.Fprintf(text, "%s *%s* %s\n", statusEmoji(row.Badge), esc(row.IDLabel), esc(row.UserName))
	fmt.Fprintf(text, "   %s | x%d | %s\n", esc(row.EventTitle), row.Quantity, esc(row.Price))
	fmt.Fprintf(text, "   %s | %s\n\n", esc(row.Status), esc(row.BookedOn))
}

// confirmMessage asks before a booking is deleted.
func (b *Bot) confirmMessage(c *chatContext, booking models.Booking) (string, tgbotapi.InlineKeyboardMarkup) {
	lang := c.lang()
	var text strings.Builder
	text.WriteString(esc(b.Bundle.T(lang, i18n.DeleteConfirm)) + "\n\n")
	writeRow(&text, b.Renderer.Row(booking))

	markup := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🗑 "+b.Bundle.T(lang, i18n.BtnDelete), fmt.Sprintf("%s%d", cbDeleteOK, booking.ID)),
		tgbotapi.NewInlineKeyboardButtonData(b.Bundle.T(lang, i18n.BtnCancel), fmt.Sprintf("%s%d", cbPage, c.view.Page())),
	))
	return text.String(), markup
}

func statusEmoji(badge tickets.Badge) string {
	switch badge {
	case tickets.BadgeConfirmed:
		return "✅"
	case tickets.BadgeCancelled:
		return "❌"
	case tickets.BadgePending:
		return "⏳"
	default:
		return "▫️"
	}
}
