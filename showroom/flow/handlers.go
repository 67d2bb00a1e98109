package flow

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/showroombot/core/logger"
	tg "github.com/m3rciful/showroombot/core/telegram"
	"github.com/m3rciful/showroombot/core/telegram/callbacks"
	"github.com/m3rciful/showroombot/core/telegram/commands"
	tghelpers "github.com/m3rciful/showroombot/core/telegram/helpers"
	"github.com/m3rciful/showroombot/core/telegram/ui"
	"github.com/m3rciful/showroombot/showroom/inventory"
	"github.com/m3rciful/showroombot/showroom/locale"
	"github.com/m3rciful/showroombot/showroom/view"
)

var _ ui.FallbackProvider = (*Controller)(nil)

// Register binds the commands and page callbacks to reg.
func (c *Controller) Register(reg *tg.Registry) error {
	loc := c.locales.Default()
	reg.RegisterCommand("/start", commands.Command{
		Handler:     c.Start,
		Description: loc.T(locale.MsgCmdStart),
		Order:       1,
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     c.Cancel,
		Description: loc.T(locale.MsgCmdCancel),
		Order:       2,
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     c.Stats,
		Description: loc.T(locale.MsgCmdStats),
		AdminOnly:   true,
		Hidden:      true,
	})
	if err := reg.RegisterCallback(inventory.UniquePage, c.Page); err != nil {
		return err
	}
	if err := reg.RegisterCallback(inventory.UniqueNoop, c.Noop); err != nil {
		return err
	}
	reg.SetCallbackNotFound(c.UnknownCallback())
	return nil
}

// Page edits the listing in place to show the page named by the callback.
// Malformed routing data is ignored.
func (c *Controller) Page(tc tele.Context) error {
	unique, payload := callbacks.Parse(tc.Callback())
	target, ok := inventory.DecodeControl(unique, payload)
	ctx := tghelpers.BuildContext(tc)
	if !ok {
		logger.Debug(ctx, "showroom.inventory", "page.malformed",
			slog.String("cb_key", logger.SanitizeLimit(unique, 64)),
			slog.String("payload", logger.SanitizeLimit(payload, 64)),
		)
		return nil
	}

	loc := c.localizer(tc)
	v := c.catalog.GetPage(target)
	logger.Debug(ctx, "showroom.inventory", "page.show",
		slog.Int("page", v.PageNumber),
		slog.Int("pages", v.TotalPages),
		slog.Int("items", len(v.Items)),
	)
	return tghelpers.EditHTML(tc, view.Render(loc, v), view.Markup(loc, v))
}

// Noop handles the page indicator; the router has already acknowledged the press.
func (c *Controller) Noop(tele.Context) error {
	return nil
}

// Stats reports active conversations, catalog size and failed sends.
func (c *Controller) Stats(tc tele.Context) error {
	var failures uint64
	if c.sendFailures != nil {
		failures = c.sendFailures()
	}
	text := c.localizer(tc).T(locale.MsgStats, map[string]any{
		"Flows":    c.sessions.Count(),
		"Items":    c.catalog.Len(),
		"Pages":    c.catalog.TotalPages(),
		"Failures": failures,
	})
	return tghelpers.SendText(tc, text)
}

// UnknownText re-prompts a user in the middle of the conversation and
// points everyone else at /start.
func (c *Controller) UnknownText() tele.HandlerFunc {
	return func(tc tele.Context) error {
		loc := c.localizer(tc)
		switch c.Session(tghelpers.SenderID(tc)).Step {
		case StepAwaitingPhone:
			return tghelpers.SendText(tc, loc.T(locale.MsgPhoneReprompt))
		case StepAwaitingPassword:
			return tghelpers.SendText(tc, loc.T(locale.MsgPasswordPrompt))
		}
		return tghelpers.SendText(tc, loc.T(locale.MsgStartHint))
	}
}

// UnknownContact answers a shared contact outside the phone step.
func (c *Controller) UnknownContact() tele.HandlerFunc {
	return func(tc tele.Context) error {
		return tghelpers.SendText(tc, c.localizer(tc).T(locale.MsgStartHint))
	}
}

// UnknownCallback ignores buttons this bot does not know.
func (c *Controller) UnknownCallback() tele.HandlerFunc {
	return func(tele.Context) error { return nil }
}

// RateLimited tells a throttled user to slow down.
func (c *Controller) RateLimited(tc tele.Context) error {
	text := c.localizer(tc).T(locale.MsgRateLimited)
	if tc.Callback() != nil {
		return tc.Respond(&tele.CallbackResponse{Text: text})
	}
	return tghelpers.SendText(tc, text)
}

// AdminReject answers a non-admin calling an admin-only command.
func (c *Controller) AdminReject(tc tele.Context) error {
	return tghelpers.SendText(tc, c.localizer(tc).T(locale.MsgAdminOnly))
}
