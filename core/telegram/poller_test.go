package telegram

import (
	"testing"
	"time"

	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/m3rciful/showroombot/core/config"
)

func TestBuildPollerLongpoll(t *testing.T) {
	cfg := &coreconfig.Config{Telegram: coreconfig.TelegramConfig{RunMode: coreconfig.RunModeLongpoll}}
	p, ok := BuildPoller(cfg).(*tele.LongPoller)
	if !ok {
		t.Fatal("expected long poller")
	}
	if p.Timeout != 10*time.Second {
		t.Fatalf("timeout = %s", p.Timeout)
	}

	cfg.Telegram.LongPollTimeoutSeconds = 25
	if p := BuildPoller(cfg).(*tele.LongPoller); p.Timeout != 25*time.Second {
		t.Fatalf("timeout = %s", p.Timeout)
	}
}

func TestBuildPollerWebhook(t *testing.T) {
	cfg := &coreconfig.Config{
		Telegram: coreconfig.TelegramConfig{RunMode: coreconfig.RunModeWebhook},
		Webhook:  coreconfig.WebhookConfig{URL: "https://bot.example.org/hook", Listen: "0.0.0.0", Port: 8443},
	}
	p, ok := BuildPoller(cfg).(*tele.Webhook)
	if !ok {
		t.Fatal("expected webhook")
	}
	if p.Listen != "0.0.0.0:8443" || p.Endpoint.PublicURL != "https://bot.example.org/hook" {
		t.Fatalf("webhook = %+v", p)
	}
}
