package cmd

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	coreconfig "github.com/m3rciful/showroombot/core/config"
	coretelegram "github.com/m3rciful/showroombot/core/telegram"
)

type stubConfig struct{ core coreconfig.Config }

func (s *stubConfig) CoreConfig() *coreconfig.Config { return &s.core }

type stubApp struct{ stopped bool }

func (a *stubApp) TelegramRunOptions() (coretelegram.RunOptions, error) {
	return coretelegram.RunOptions{
		OnStop: func(context.Context, coretelegram.Runtime) error {
			a.stopped = true
			return nil
		},
	}, nil
}

func (a *stubApp) ReadyAttrs() []slog.Attr {
	return []slog.Attr{slog.String("inventory_source", "builtin")}
}

func TestReadyAttrsIncludeApp(t *testing.T) {
	attrs := readyAttrs(&stubApp{}, coretelegram.Runtime{}, time.Second)
	if len(attrs) != 2 || attrs[0].Key != "startup_duration" || attrs[1].Key != "inventory_source" {
		t.Fatalf("attrs = %v", attrs)
	}
}

func TestRunWiresLifecycle(t *testing.T) {
	app := &stubApp{}
	var gotPath string
	started := false
	err := Run(Options{
		ConfigEnvVar:      "SHOWROOM_TEST_CONFIG_PATH",
		DefaultConfigPath: "test.yaml",
		LoadConfig: func(path string) (ConfigCarrier, error) {
			gotPath = path
			return &stubConfig{}, nil
		},
		Bootstrap: func(context.Context, ConfigCarrier) (TelegramApp, error) {
			return app, nil
		},
		ShutdownLogger: func() error { return nil },
		RunTelegram: func(ctx context.Context, opts coretelegram.RunOptions) error {
			if err := opts.OnStart(ctx, coretelegram.Runtime{}); err != nil {
				return err
			}
			started = true
			return opts.OnStop(ctx, coretelegram.Runtime{})
		},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if gotPath != "test.yaml" || !started || !app.stopped {
		t.Fatalf("path=%q started=%v stopped=%v", gotPath, started, app.stopped)
	}
}

func TestRunBootstrapFailure(t *testing.T) {
	boom := errors.New("boom")
	err := Run(Options{
		ConfigEnvVar: "SHOWROOM_TEST_CONFIG_PATH",
		LoadConfig:   func(string) (ConfigCarrier, error) { return &stubConfig{}, nil },
		Bootstrap: func(context.Context, ConfigCarrier) (TelegramApp, error) {
			return nil, boom
		},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}
