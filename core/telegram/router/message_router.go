package router

import (
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/showroombot/core/telegram"
	tghelpers "github.com/m3rciful/showroombot/core/telegram/helpers"
	"github.com/m3rciful/showroombot/core/telegram/middleware"
)

// FSM defines the minimal interface for an FSM manager.
type FSM interface {
	InProgress(userID int64) bool
	ManagerHandler(c tele.Context) error
}

// TextOptions controls fallback behaviour for text and contact updates.
type TextOptions struct {
	UnknownText    tele.HandlerFunc
	UnknownContact tele.HandlerFunc
	// Commands must match the options given to CommandRoutes so that command
	// text telebot does not route itself (e.g. "/stats@") gets the same admin gate.
	Commands CommandRouteOptions
}

// IsCommand reports whether text is a slash command.
func IsCommand(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "/")
}

// TextRoutes builds handlers for plain text and shared contacts.
// Slash commands are resolved against the registry and never reach the FSM.
// They run through the same handler CommandRoutes binds, admin gate included.
func TextRoutes(fsmMgr FSM, reg *tg.Registry, opts TextOptions) []tg.Route {
	textFallback := func(c tele.Context, start time.Time) error {
		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, func() error { return opts.UnknownText(c) })
		}
		logHandlerSummary(c, "unknown_text", start, "skip", nil)
		return nil
	}

	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if IsCommand(text) {
			if reg != nil {
				if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
					return commandHandler(key, cmd, opts.Commands)(c)
				}
			}
			return textFallback(c, start)
		}

		if fsmMgr != nil && fsmMgr.InProgress(tghelpers.SenderID(c)) {
			return handleWithSummary(c, "fsm", start, func() error {
				return fsmMgr.ManagerHandler(c)
			})
		}
		return textFallback(c, start)
	}

	contactHandler := func(c tele.Context) error {
		start := time.Now()
		if fsmMgr != nil && fsmMgr.InProgress(tghelpers.SenderID(c)) {
			return handleWithSummary(c, "fsm_contact", start, func() error {
				return fsmMgr.ManagerHandler(c)
			})
		}
		if opts.UnknownContact != nil {
			return handleWithSummary(c, "unexpected_contact", start, func() error {
				return opts.UnknownContact(c)
			})
		}
		logHandlerSummary(c, "unexpected_contact", start, "skip", nil)
		return nil
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
		},
		{
			Endpoint: tele.OnContact,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(contactHandler)),
		},
	}
}
