package state

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

type fakeContext struct {
	tele.Context
	sender *tele.User
	store  map[string]any
}

func newFakeContext(userID int64) *fakeContext {
	return &fakeContext{sender: &tele.User{ID: userID}, store: map[string]any{}}
}

func (f *fakeContext) Sender() *tele.User { return f.sender }
func (f *fakeContext) Chat() *tele.Chat { return &tele.Chat{ID: f.sender.ID} }
func (f *fakeContext) Update() tele.Update { return tele.Update{ID: 1} }
func (f *fakeContext) Get(key string) any { return f.store[key] }
func (f *fakeContext) Set(key string, v any) { f.store[key] = v }

func TestMemoryManagerLifecycle(t *testing.T) {
	m := NewMemoryManager()
	if m.InProgress(1) {
		t.Fatal("new user should be idle")
	}

	m.SetState(1, "awaiting_phone")
	m.SetTemp(1, "phone", "+100")
	if got := m.GetState(1); got != "awaiting_phone" {
		t.Fatalf("state = %q", got)
	}
	if v, ok := m.GetTemp(1, "phone"); !ok || v != "+100" {
		t.Fatalf("temp = %q, %v", v, ok)
	}
	if m.Count() != 1 {
		t.Fatalf("count = %d", m.Count())
	}

	snap := m.Get(1)
	snap.TempData["phone"] = "mutated"
	if v, _ := m.GetTemp(1, "phone"); v != "+100" {
		t.Fatalf("Get must return a copy, temp now %q", v)
	}

	m.Clear(1)
	if m.InProgress(1) || m.Count() != 0 {
		t.Fatal("session should be cleared")
	}
	if _, ok := m.GetTemp(1, "phone"); ok {
		t.Fatal("temp data should be cleared")
	}
}

func TestMemoryManagerSetIdleDropsSession(t *testing.T) {
	m := NewMemoryManager()
	m.SetState(5, "awaiting_password")
	m.SetState(5, StateIdle)
	if m.InProgress(5) || m.Count() != 0 {
		t.Fatal("idle state should drop the session")
	}
}

func TestManagerHandlerDispatchesByState(t *testing.T) {
	m := NewMemoryManager()
	var called []State
	m.Handle("a", func(tele.Context) error { called = append(called, "a"); return nil })
	m.Handle("b", func(tele.Context) error { called = append(called, "b"); return nil })

	c := newFakeContext(9)
	if err := m.ManagerHandler(c); err != nil {
		t.Fatalf("idle dispatch: %v", err)
	}
	m.SetState(9, "b")
	if err := m.ManagerHandler(c); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(called) != 1 || called[0] != "b" {
		t.Fatalf("called = %v", called)
	}
}
