// Package flow runs the showroom sign-in conversation and serves inventory pages.
//
// A user moves through AwaitingPhone and AwaitingPassword to Done. The session
// is dropped on Done and on cancel, so Done is never stored.
package flow

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/showroombot/core/logger"
	"github.com/m3rciful/showroombot/core/telegram/format"
	tghelpers "github.com/m3rciful/showroombot/core/telegram/helpers"
	"github.com/m3rciful/showroombot/core/telegram/keyboard"
	"github.com/m3rciful/showroombot/core/telegram/router"
	"github.com/m3rciful/showroombot/core/telegram/state"
	"github.com/m3rciful/showroombot/showroom/inventory"
	"github.com/m3rciful/showroombot/showroom/locale"
	"github.com/m3rciful/showroombot/showroom/view"
)

// Conversation steps.
const (
	StepAwaitingPhone    state.State = "awaiting_phone"
	StepAwaitingPassword state.State = "awaiting_password"
	StepDone             state.State = "done"
)

const phoneKey = "phone"

// Session is a snapshot of one user's conversation.
type Session struct {
	Step  state.State
	Phone string
}

// Options configure a Controller.
type Options struct {
	Catalog      *inventory.Catalog
	Locales      *locale.Bundle
	Sessions     state.Manager
	Password     string
	SalesContact string
	// SendFailures reports failed outbound sends for /stats; optional.
	SendFailures func() uint64
}

// Controller owns the conversation and the page callbacks.
type Controller struct {
	catalog      *inventory.Catalog
	locales      *locale.Bundle
	sessions     state.Manager
	password     string
	salesContact string
	sendFailures func() uint64
}

// New validates opts and binds the step handlers to the session manager.
func New(opts Options) (*Controller, error) {
	switch {
	case opts.Catalog == nil:
		return nil, errors.New("flow: catalog is required")
	case opts.Locales == nil:
		return nil, errors.New("flow: locales are required")
	case opts.Password == "":
		return nil, errors.New("flow: password is required")
	}
	sessions := opts.Sessions
	if sessions == nil {
		sessions = state.NewMemoryManager()
	}
	c := &Controller{
		catalog:      opts.Catalog,
		locales:      opts.Locales,
		sessions:     sessions,
		password:     opts.Password,
		salesContact: opts.SalesContact,
		sendFailures: opts.SendFailures,
	}
	sessions.Handle(StepAwaitingPhone, c.handlePhone)
	sessions.Handle(StepAwaitingPassword, c.handlePassword)
	return c, nil
}

// SetSendFailures wires the failure counter once the sender exists.
func (c *Controller) SetSendFailures(fn func() uint64) {
	c.sendFailures = fn
}

// Session returns the user's conversation. A user without a session is Done.
func (c *Controller) Session(userID int64) Session {
	s := c.sessions.Get(userID)
	if s.State == state.StateIdle {
		return Session{Step: StepDone}
	}
	return Session{Step: s.State, Phone: s.TempData[phoneKey]}
}

// InProgress reports whether the user is between /start and Done.
func (c *Controller) InProgress(userID int64) bool {
	return c.sessions.InProgress(userID)
}

// ManagerHandler dispatches a message to the handler of the user's current step.
func (c *Controller) ManagerHandler(tc tele.Context) error {
	return c.sessions.ManagerHandler(tc)
}

// Start greets the user, asks for a phone number and (re)starts the conversation.
func (c *Controller) Start(tc tele.Context) error {
	userID := tghelpers.SenderID(tc)
	loc := c.localizer(tc)

	c.sessions.Clear(userID)
	c.sessions.SetState(userID, StepAwaitingPhone)
	logger.Info(tghelpers.BuildContext(tc), "showroom.auth", "flow.start",
		slog.String("step", string(StepAwaitingPhone)),
	)

	greeting := loc.T(locale.MsgGreeting, map[string]any{"Name": firstName(tc)})
	return tghelpers.SendText(tc, greeting, &tele.SendOptions{
		ReplyMarkup: keyboard.ContactRequest(loc.T(locale.MsgShareContact)),
	})
}

// Cancel ends the conversation from any step without showing the inventory.
func (c *Controller) Cancel(tc tele.Context) error {
	userID := tghelpers.SenderID(tc)
	step := c.Session(userID).Step
	c.sessions.Clear(userID)
	logger.Info(tghelpers.BuildContext(tc), "showroom.auth", "flow.cancel",
		slog.String("outcome", "cancelled"),
		slog.String("step", string(step)),
	)
	return tghelpers.SendText(tc, c.localizer(tc).T(locale.MsgCancelled), &tele.SendOptions{
		ReplyMarkup: keyboard.RemoveKeyboard(),
	})
}

func (c *Controller) handlePhone(tc tele.Context) error {
	loc := c.localizer(tc)
	msg := tc.Message()

	var phone, confirmID string
	switch {
	case msg != nil && msg.Contact != nil:
		phone, confirmID = strings.TrimSpace(msg.Contact.PhoneNumber), locale.MsgPhoneShared
	default:
		phone, confirmID = strings.TrimSpace(tc.Text()), locale.MsgPhoneTyped
	}
	if phone == "" || router.IsCommand(phone) {
		return tghelpers.SendText(tc, loc.T(locale.MsgPhoneReprompt))
	}

	userID := tghelpers.SenderID(tc)
	c.sessions.SetTemp(userID, phoneKey, phone)
	c.sessions.SetState(userID, StepAwaitingPassword)
	logger.Debug(tghelpers.BuildContext(tc), "showroom.auth", "flow.phone",
		slog.String("step", string(StepAwaitingPassword)),
		slog.Bool("shared", confirmID == locale.MsgPhoneShared),
	)

	confirm := loc.T(confirmID, map[string]any{"Phone": phone})
	if err := tghelpers.SendText(tc, confirm, &tele.SendOptions{ReplyMarkup: keyboard.RemoveKeyboard()}); err != nil {
		return err
	}
	return tghelpers.SendText(tc, loc.T(locale.MsgPasswordPrompt))
}

func (c *Controller) handlePassword(tc tele.Context) error {
	loc := c.localizer(tc)
	msg := tc.Message()
	if msg == nil || msg.Text == "" || router.IsCommand(msg.Text) {
		return tghelpers.SendText(tc, loc.T(locale.MsgPasswordPrompt))
	}

	userID := tghelpers.SenderID(tc)
	ctx := tghelpers.BuildContext(tc)
	if !c.checkPassword(msg.Text) {
		logger.Info(ctx, "showroom.auth", "auth.failed",
			slog.String("outcome", "denied"),
			slog.String("step", string(StepAwaitingPassword)),
		)
		hint := loc.T(locale.MsgPasswordBad, map[string]any{"Secret": format.EscapeHTML(c.password)})
		return tghelpers.SendHTML(tc, hint)
	}

	phone, _ := c.sessions.GetTemp(userID, phoneKey)
	c.sessions.Clear(userID)

	if err := tghelpers.SendText(tc, loc.T(locale.MsgPasswordOK)); err != nil {
		return err
	}
	if err := c.SendPage(tc, 0); err != nil {
		return err
	}
	logger.Info(ctx, "showroom.auth", "auth.success",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.String("phone", phone),
	)
	return tghelpers.SendText(tc, loc.T(locale.MsgSalesContact, map[string]any{"Contact": c.salesContact}))
}

// checkPassword compares the trimmed input with the secret byte for byte.
func (c *Controller) checkPassword(input string) bool {
	return subtle.ConstantTimeCompare([]byte(strings.TrimSpace(input)), []byte(c.password)) == 1
}

// SendPage sends the inventory page at index as a new message with navigation.
func (c *Controller) SendPage(tc tele.Context, index int) error {
	loc := c.localizer(tc)
	v := c.catalog.GetPage(index)
	return tghelpers.SendHTML(tc, view.Render(loc, v), view.Markup(loc, v))
}

func (c *Controller) localizer(tc tele.Context) *locale.Localizer {
	if u := tc.Sender(); u != nil {
		return c.locales.For(u.LanguageCode)
	}
	return c.locales.Default()
}

func firstName(tc tele.Context) string {
	u := tc.Sender()
	if u == nil {
		return ""
	}
	if name := strings.TrimSpace(u.FirstName); name != "" {
		return name
	}
	return u.Username
}
