// Package view renders inventory pages as Telegram HTML with navigation buttons.
package view

import (
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/showroombot/core/telegram/format"
	"github.com/m3rciful/showroombot/core/telegram/keyboard"
	"github.com/m3rciful/showroombot/showroom/inventory"
	"github.com/m3rciful/showroombot/showroom/locale"
)

var rule = strings.Repeat("=", 35)

// Render formats a page for HTML parse mode. Output depends only on the page and the localizer.
func Render(loc *locale.Localizer, v inventory.PageView) string {
	var b strings.Builder
	b.WriteString("🚗 ")
	b.WriteString(format.Bold(loc.T(locale.MsgInventoryTitle)))
	b.WriteByte('\n')
	b.WriteString(format.EscapeHTML(loc.T(locale.MsgInventoryPage, pageData(v))))
	b.WriteByte('\n')
	b.WriteString(rule)
	b.WriteString("\n\n")

	priceLabel := format.EscapeHTML(loc.T(locale.MsgInventoryPrice))
	stockLabel := format.EscapeHTML(loc.T(locale.MsgInventoryStock))
	unit := loc.T(locale.MsgInventoryUnit)
	for i, it := range v.Items {
		b.WriteString(format.Bold(strconv.Itoa(v.StartIndex+i+1) + ". " + it.Name))
		b.WriteByte('\n')
		b.WriteString("   💰 " + priceLabel + ": " + format.Code(it.Price) + "\n")
		b.WriteString("   📦 " + stockLabel + ": " + format.Code(strconv.Itoa(it.Stock)+" "+unit) + "\n\n")
	}

	b.WriteString(rule)
	b.WriteByte('\n')
	b.WriteString(format.EscapeHTML(loc.T(locale.MsgInventoryFooter)))
	return b.String()
}

// Markup builds the single-row inline keyboard for a page.
func Markup(loc *locale.Localizer, v inventory.PageView) *tele.ReplyMarkup {
	controls := inventory.Navigation(v)
	row := make([]keyboard.InlineBtn, 0, len(controls))
	for _, c := range controls {
		unique, payload := inventory.EncodeControl(c)
		row = append(row, keyboard.InlineBtn{Text: label(loc, c, v), Unique: unique, Data: payload})
	}
	return keyboard.InlineButtonsRows(row)
}

func label(loc *locale.Localizer, c inventory.Control, v inventory.PageView) string {
	switch c.Kind {
	case inventory.ControlPrev:
		return loc.T(locale.MsgNavPrev)
	case inventory.ControlNext:
		return loc.T(locale.MsgNavNext)
	default:
		return loc.T(locale.MsgNavIndicator, pageData(v))
	}
}

func pageData(v inventory.PageView) map[string]any {
	return map[string]any{"Page": v.PageNumber, "Total": v.TotalPages}
}
