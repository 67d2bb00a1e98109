package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/m3rciful/showroombot/core/bootstrap"
	"github.com/m3rciful/showroombot/core/logger"
	tg "github.com/m3rciful/showroombot/core/telegram"
	"github.com/m3rciful/showroombot/core/telegram/router"
	"github.com/m3rciful/showroombot/core/telegram/ui"
	"github.com/m3rciful/showroombot/showroom/flow"
	"github.com/m3rciful/showroombot/showroom/inventory"
	"github.com/m3rciful/showroombot/showroom/locale"
)

// App is a bootstrapped bot ready to run.
type App struct {
	cfg        *Config
	catalog    *inventory.Catalog
	controller *flow.Controller
	registry   *tg.Registry
}

// Bootstrap initializes logging, loads the catalog once (from Postgres when
// configured) and builds the conversation controller.
func Bootstrap(ctx context.Context, cfg *Config) (*App, error) {
	return bootstrapWith(ctx, cfg, bootstrap.Options{})
}

func bootstrapWith(ctx context.Context, cfg *Config, opts bootstrap.Options) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config")
	}
	opts.Config = cfg.CoreConfig()
	if cfg.UsesDatabase() {
		dbCfg := cfg.Database
		opts.Database = &dbCfg
		if cfg.Inventory.Seed {
			opts.Modules.Seeders = append(opts.Modules.Seeders, inventory.Seeder(inventory.Builtin()))
		}
	}

	res, err := bootstrap.Run(ctx, opts)
	if err != nil {
		return nil, err
	}

	var db inventory.DB
	if res.DB != nil {
		db = res.DB
		defer func() {
			if err := res.DB.Close(); err != nil {
				logger.Warn(ctx, "db", "close", slog.String("status", "fail"), slog.String("err", err.Error()))
			}
		}()
	}

	src, err := inventory.SourceFor(cfg.Inventory.Source, db)
	if err != nil {
		return nil, err
	}
	catalog, err := inventory.LoadCatalog(ctx, src, cfg.Showroom.PageSize)
	if err != nil {
		return nil, err
	}

	locales, err := locale.New(cfg.Showroom.DefaultLang, cfg.Showroom.FollowUserLang)
	if err != nil {
		return nil, err
	}

	controller, err := flow.New(flow.Options{
		Catalog:      catalog,
		Locales:      locales,
		Password:     cfg.Showroom.Password,
		SalesContact: cfg.Showroom.SalesContact,
	})
	if err != nil {
		return nil, err
	}

	reg := tg.NewRegistry()
	if err := controller.Register(reg); err != nil {
		return nil, fmt.Errorf("app: register handlers: %w", err)
	}

	return &App{cfg: cfg, catalog: catalog, controller: controller, registry: reg}, nil
}

// Controller returns the conversation controller.
func (a *App) Controller() *flow.Controller { return a.controller }

// ReadyAttrs describes the served inventory on the runner's "ready" line.
func (a *App) ReadyAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("inventory_source", a.cfg.Inventory.Source),
		slog.Int("items", a.catalog.Len()),
		slog.Int("pages", a.catalog.TotalPages()),
		slog.String("lang", a.cfg.Showroom.DefaultLang),
		slog.String("run_mode", a.cfg.Telegram.RunMode),
	}
}

// TelegramRunOptions assembles middleware and routes for the Telegram runtime.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	ctrl := a.controller
	var fallbacks ui.FallbackProvider = ctrl

	cmdOpts := router.CommandRouteOptions{
		AdminID:       a.cfg.Telegram.AdminID,
		OnAdminReject: ctrl.AdminReject,
	}
	routes := router.CommandRoutes(a.registry, cmdOpts)
	routes = append(routes, router.CallbackRoute(a.registry, router.CallbackOptions{
		NotFound: fallbacks.UnknownCallback(),
	}))
	routes = append(routes, router.TextRoutes(ctrl, a.registry, router.TextOptions{
		UnknownText:    fallbacks.UnknownText(),
		UnknownContact: fallbacks.UnknownContact(),
		Commands:       cmdOpts,
	})...)

	return tg.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    a.registry,
		Middlewares: tg.DefaultMiddlewares(a.cfg.CoreConfig(), ctrl.RateLimited),
		Routes:      routes,
		OnStart: func(_ context.Context, rt tg.Runtime) error {
			if rt.Dispatcher != nil {
				ctrl.SetSendFailures(rt.Dispatcher.ErrorCount)
			}
			return nil
		},
	}, nil
}
