package telegram

import (
	"errors"
	"testing"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/showroombot/core/telegram/commands"
)

func noop(tele.Context) error { return nil }

func TestRegistryListCommandsOrder(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "start", Order: 1})
	reg.RegisterCommand("/cancel", commands.Command{Handler: noop, Description: "cancel", Order: 2})
	reg.RegisterCommand("/stats", commands.Command{Handler: noop, Description: "stats", AdminOnly: true, Hidden: true})
	reg.RegisterCommand("nope", commands.Command{Handler: noop, Description: "no slash"})

	visible := reg.ListCommands(true)
	if len(visible) != 2 || visible[0].Text != "start" || visible[1].Text != "cancel" {
		t.Fatalf("visible = %+v", visible)
	}
	if all := reg.ListCommands(false); len(all) != 3 {
		t.Fatalf("all = %+v", all)
	}
}

func TestRegistryLookupCommand(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/cancel", commands.Command{Handler: noop, Description: "cancel", Aliases: []string{"stop"}})

	for _, in := range []string{"/cancel", "cancel", "/cancel@showroom_bot", "/stop", "/cancel now"} {
		key, _, ok := reg.LookupCommand(in)
		if !ok || key != "/cancel" {
			t.Fatalf("LookupCommand(%q) = %q, %v", in, key, ok)
		}
	}
	if _, _, ok := reg.LookupCommand("/unknown"); ok {
		t.Fatal("unknown command resolved")
	}
}

func TestRegistryCallbacks(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterCallback("inv_page", noop); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.RegisterCallback("inv_page", noop); err == nil {
		t.Fatal("duplicate registration accepted")
	}
	if err := reg.RegisterCallback("", noop); !errors.Is(err, ErrInvalidCallback) {
		t.Fatalf("err = %v", err)
	}
	if _, ok := reg.GetCallback("inv_page"); !ok {
		t.Fatal("callback missing")
	}
	if got := reg.ListCallbacks(); len(got) != 1 || got[0] != "inv_page" {
		t.Fatalf("callbacks = %v", got)
	}
	if reg.CallbackNotFound() == nil {
		t.Fatal("default not-found handler missing")
	}
}

type fakeCommandSetter struct{ got []any }

func (f *fakeCommandSetter) SetCommands(opts ...any) error {
	f.got = opts
	return nil
}

func TestInitBotCommandsPublishesVisible(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "start"})
	reg.RegisterCommand("/stats", commands.Command{Handler: noop, Description: "stats", Hidden: true})

	setter := &fakeCommandSetter{}
	InitBotCommands(setter, reg)
	if len(setter.got) != 1 {
		t.Fatalf("SetCommands args = %v", setter.got)
	}
	list, ok := setter.got[0].([]tele.Command)
	if !ok || len(list) != 1 || list[0].Text != "start" {
		t.Fatalf("published = %#v", setter.got[0])
	}
}
