package flow

import (
	"strings"
	"testing"

	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/showroombot/core/telegram"
	"github.com/m3rciful/showroombot/core/telegram/callbacks"
	"github.com/m3rciful/showroombot/showroom/inventory"
	"github.com/m3rciful/showroombot/showroom/locale"
)

const secret = "demo123"

type sent struct {
	text string
	opts *tele.SendOptions
}

// chat is a fake tele.Context for one user. Each call to message/contact/callback
// swaps the current update; every reply lands in out.
type chat struct {
	tele.Context
	user      *tele.User
	update    tele.Update
	store     map[string]any
	out       []sent
	edits     []sent
	responses []*tele.CallbackResponse
}

func newChat(userID int64) *chat {
	return &chat{user: &tele.User{ID: userID, FirstName: "Sara", LanguageCode: "en"}, store: map[string]any{}}
}

func (f *chat) message(text string) *chat {
	f.update = tele.Update{ID: f.update.ID + 1, Message: &tele.Message{Sender: f.user, Chat: &tele.Chat{ID: f.user.ID}, Text: text}}
	f.store = map[string]any{}
	return f
}

func (f *chat) contact(phone string) *chat {
	f.message("")
	f.update.Message.Contact = &tele.Contact{PhoneNumber: phone, UserID: f.user.ID}
	return f
}

func (f *chat) callback(data string) *chat {
	msg := &tele.Message{ID: 10, Chat: &tele.Chat{ID: f.user.ID}}
	f.update = tele.Update{ID: f.update.ID + 1, Callback: &tele.Callback{Sender: f.user, Message: msg, Data: data}}
	f.store = map[string]any{}
	return f
}

func (f *chat) Update() tele.Update { return f.update }
func (f *chat) Sender() *tele.User { return f.user }
func (f *chat) Chat() *tele.Chat { return &tele.Chat{ID: f.user.ID} }
func (f *chat) Message() *tele.Message { return f.update.Message }
func (f *chat) Callback() *tele.Callback { return f.update.Callback }
func (f *chat) Get(key string) any { return f.store[key] }
func (f *chat) Set(key string, v any) { f.store[key] = v }

func (f *chat) Text() string {
	if f.update.Message != nil {
		return f.update.Message.Text
	}
	return ""
}

func (f *chat) Send(what any, opts ...any) error {
	f.out = append(f.out, sent{text: what.(string), opts: sendOptions(opts)})
	return nil
}

func (f *chat) Edit(what any, opts ...any) error {
	f.edits = append(f.edits, sent{text: what.(string), opts: sendOptions(opts)})
	return nil
}

func (f *chat) Respond(resp ...*tele.CallbackResponse) error {
	f.responses = append(f.responses, resp...)
	return nil
}

func sendOptions(opts []any) *tele.SendOptions {
	for _, o := range opts {
		if so, ok := o.(*tele.SendOptions); ok {
			return so
		}
	}
	return nil
}

func (f *chat) texts() []string {
	out := make([]string, len(f.out))
	for i, s := range f.out {
		out[i] = s.text
	}
	return out
}

func newController(t *testing.T) *Controller {
	t.Helper()
	catalog, err := inventory.NewCatalog(inventory.Builtin(), inventory.DefaultPageSize)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	locales, err := locale.New("en", true)
	if err != nil {
		t.Fatalf("locale.New: %v", err)
	}
	c, err := New(Options{Catalog: catalog, Locales: locales, Password: secret, SalesContact: "@sales"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

// signIn drives a user to AwaitingPassword.
func signIn(t *testing.T, c *Controller, f *chat) {
	t.Helper()
	if err := c.Start(f.message("/start")); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := c.ManagerHandler(f.contact("+989121234567")); err != nil {
		t.Fatalf("contact: %v", err)
	}
	f.out = nil
}

func TestNewValidates(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatal("expected error without catalog")
	}
}

func TestStartGreetsAndRequestsContact(t *testing.T) {
	c, f := newController(t), newChat(1)
	if err := c.Start(f.message("/start")); err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := c.Session(1); got.Step != StepAwaitingPhone {
		t.Fatalf("step = %q", got.Step)
	}
	if len(f.out) != 1 || !strings.Contains(f.out[0].text, "Sara") {
		t.Fatalf("greeting = %v", f.texts())
	}
	kb := f.out[0].opts.ReplyMarkup
	if kb == nil || len(kb.ReplyKeyboard) != 1 || !kb.ReplyKeyboard[0][0].Contact {
		t.Fatalf("expected contact request keyboard, got %+v", kb)
	}
}

func TestSharedContactAdvancesToPassword(t *testing.T) {
	c, f := newController(t), newChat(1)
	_ = c.Start(f.message("/start"))
	f.out = nil

	if err := c.ManagerHandler(f.contact("+989121234567")); err != nil {
		t.Fatalf("contact: %v", err)
	}
	s := c.Session(1)
	if s.Step != StepAwaitingPassword || s.Phone != "+989121234567" {
		t.Fatalf("session = %+v", s)
	}
	want := []string{"✅ Your phone number is confirmed: +989121234567", "🔐 Please enter your password:"}
	if got := f.texts(); len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("replies = %q", got)
	}
	if f.out[0].opts == nil || f.out[0].opts.ReplyMarkup == nil || !f.out[0].opts.ReplyMarkup.RemoveKeyboard {
		t.Fatal("confirmation must remove the reply keyboard")
	}
}

func TestTypedPhoneIsTrimmed(t *testing.T) {
	c, f := newController(t), newChat(1)
	_ = c.Start(f.message("/start"))
	f.out = nil

	if err := c.ManagerHandler(f.message("  0912 000 0000 ")); err != nil {
		t.Fatalf("phone: %v", err)
	}
	if s := c.Session(1); s.Phone != "0912 000 0000" {
		t.Fatalf("phone = %q", s.Phone)
	}
	if got := f.texts(); len(got) != 2 || got[0] != "✅ Phone number saved: 0912 000 0000" {
		t.Fatalf("replies = %q", got)
	}
}

func TestWrongPasswordStaysAndRevealsHint(t *testing.T) {
	c, f := newController(t), newChat(1)
	signIn(t, c, f)

	for _, attempt := range []string{"demo", "DEMO123", "demo1234"} {
		if err := c.ManagerHandler(f.message(attempt)); err != nil {
			t.Fatalf("password: %v", err)
		}
		if s := c.Session(1); s.Step != StepAwaitingPassword {
			t.Fatalf("after %q step = %q", attempt, s.Step)
		}
	}
	if len(f.out) != 3 {
		t.Fatalf("replies = %q", f.texts())
	}
	for _, s := range f.out {
		if !strings.Contains(s.text, "<i>Hint: the demo password is demo123</i>") || s.opts.ParseMode != tele.ModeHTML {
			t.Fatalf("failure reply = %q", s.text)
		}
		if strings.Contains(s.text, "Page 1 of 3") {
			t.Fatal("inventory sent after a wrong password")
		}
	}
}

func TestCorrectPasswordSendsFirstPage(t *testing.T) {
	c, f := newController(t), newChat(1)
	signIn(t, c, f)

	if err := c.ManagerHandler(f.message("  demo123 ")); err != nil {
		t.Fatalf("password: %v", err)
	}
	if c.InProgress(1) || c.Session(1).Step != StepDone {
		t.Fatal("session should be cleared after success")
	}
	got := f.texts()
	if len(got) != 3 {
		t.Fatalf("replies = %q", got)
	}
	if got[0] != "✅ Password accepted" || got[2] != "To buy, message @sales" {
		t.Fatalf("replies = %q", got)
	}
	page := f.out[1]
	if !strings.Contains(page.text, "Page 1 of 3") || !strings.Contains(page.text, "<b>5. Honda Accord</b>") {
		t.Fatalf("page = %q", page.text)
	}
	if page.opts.ParseMode != tele.ModeHTML || len(page.opts.ReplyMarkup.InlineKeyboard[0]) != 2 {
		t.Fatalf("page options = %+v", page.opts)
	}
}

func TestCommandTextIsNotAPassword(t *testing.T) {
	c, f := newController(t), newChat(1)
	signIn(t, c, f)

	if err := c.ManagerHandler(f.message("/demo123")); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if c.Session(1).Step != StepAwaitingPassword {
		t.Fatal("command text advanced the flow")
	}
	if got := f.texts(); len(got) != 1 || got[0] != "🔐 Please enter your password:" {
		t.Fatalf("replies = %q", got)
	}
}

func TestCancelFromAnyStep(t *testing.T) {
	c := newController(t)

	phone := newChat(1)
	_ = c.Start(phone.message("/start"))
	passwd := newChat(2)
	signIn(t, c, passwd)

	for _, f := range []*chat{phone, passwd} {
		f.out = nil
		if err := c.Cancel(f.message("/cancel")); err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if c.InProgress(f.user.ID) {
			t.Fatalf("user %d still in progress", f.user.ID)
		}
		if len(f.out) != 1 || !strings.HasPrefix(f.out[0].text, "🚫") {
			t.Fatalf("replies = %q", f.texts())
		}
		if !f.out[0].opts.ReplyMarkup.RemoveKeyboard {
			t.Fatal("cancel must remove the reply keyboard")
		}
	}
	idle := newChat(3)
	if err := c.Cancel(idle.message("/cancel")); err != nil || len(idle.out) != 1 {
		t.Fatalf("cancel without session: %v, %q", err, idle.texts())
	}
}

func TestStartResetsSession(t *testing.T) {
	c, f := newController(t), newChat(1)
	signIn(t, c, f)
	_ = c.Start(f.message("/start"))
	if s := c.Session(1); s.Step != StepAwaitingPhone || s.Phone != "" {
		t.Fatalf("session = %+v", s)
	}
}

func TestPageCallbackEditsInPlace(t *testing.T) {
	c, f := newController(t), newChat(1)

	if err := c.Page(f.callback(callbacks.Encode(inventory.UniquePage, "1"))); err != nil {
		t.Fatalf("page: %v", err)
	}
	if err := c.Page(f.callback(callbacks.Encode(inventory.UniquePage, "999"))); err != nil {
		t.Fatalf("page: %v", err)
	}
	if len(f.edits) != 2 || len(f.out) != 0 {
		t.Fatalf("edits=%d sends=%d", len(f.edits), len(f.out))
	}
	if !strings.Contains(f.edits[0].text, "Page 2 of 3") || len(f.edits[0].opts.ReplyMarkup.InlineKeyboard[0]) != 3 {
		t.Fatalf("edit 0 = %q", f.edits[0].text)
	}
	if !strings.Contains(f.edits[1].text, "Page 3 of 3") {
		t.Fatalf("edit 1 = %q", f.edits[1].text)
	}
	if c.InProgress(1) {
		t.Fatal("paging must not create a session")
	}
}

func TestPageCallbackIgnoresMalformed(t *testing.T) {
	c, f := newController(t), newChat(1)
	for _, data := range []string{callbacks.Encode(inventory.UniquePage, "x"), callbacks.Encode(inventory.UniqueNoop, ""), "page_1"} {
		if err := c.Page(f.callback(data)); err != nil {
			t.Fatalf("page(%q): %v", data, err)
		}
	}
	if len(f.edits) != 0 {
		t.Fatalf("malformed data edited the message: %d", len(f.edits))
	}
}

func TestUnknownTextHints(t *testing.T) {
	c := newController(t)

	idle := newChat(1)
	_ = c.UnknownText()(idle.message("hello"))
	if got := idle.texts(); len(got) != 1 || got[0] != "Send /start to begin." {
		t.Fatalf("idle hint = %q", got)
	}

	waiting := newChat(2)
	_ = c.Start(waiting.message("/start"))
	waiting.out = nil
	_ = c.UnknownText()(waiting.message("/help"))
	if got := waiting.texts(); len(got) != 1 || !strings.Contains(got[0], "phone number") {
		t.Fatalf("phone re-prompt = %q", got)
	}
}

func TestStatsAndRegister(t *testing.T) {
	c := newController(t)
	c.SetSendFailures(func() uint64 { return 4 })
	_ = c.Start(newChat(5).message("/start"))

	admin := newChat(9)
	if err := c.Stats(admin.message("/stats")); err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := "📊 Active conversations: 1\nCars: 11 (3 pages)\nFailed sends: 4"
	if got := admin.texts(); len(got) != 1 || got[0] != want {
		t.Fatalf("stats = %q", got)
	}

	reg := tg.NewRegistry()
	if err := c.Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	if got := reg.ListCommands(true); len(got) != 2 || got[0].Text != "start" || got[1].Text != "cancel" {
		t.Fatalf("menu = %+v", got)
	}
	if got := reg.ListCallbacks(); len(got) != 2 {
		t.Fatalf("callbacks = %v", got)
	}
}

func TestRateLimitedCallbackAnswersInline(t *testing.T) {
	c, f := newController(t), newChat(1)
	if err := c.RateLimited(f.callback(callbacks.Encode(inventory.UniquePage, "1"))); err != nil {
		t.Fatalf("rate limited: %v", err)
	}
	if len(f.responses) != 1 || f.responses[0].Text == "" || len(f.out) != 0 {
		t.Fatalf("responses=%v sends=%q", f.responses, f.texts())
	}
}
