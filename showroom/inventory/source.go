package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/m3rciful/showroombot/core/logger"
)

const (
	// SourceBuiltin serves the compiled-in demo stock.
	SourceBuiltin = "builtin"
	// SourcePostgres reads the stock from the cars table.
	SourcePostgres = "postgres"
)

// Source produces the ordered item list a catalog is built from.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]Item, error)
}

// DB is the subset of *sqlx.DB used by the Postgres source and the seeder.
type DB interface {
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

// BuiltinSource serves Builtin().
type BuiltinSource struct{}

// Name implements Source.
func (BuiltinSource) Name() string { return SourceBuiltin }

// Load implements Source.
func (BuiltinSource) Load(context.Context) ([]Item, error) { return Builtin(), nil }

// PostgresSource reads items from the cars table in display order.
type PostgresSource struct {
	DB DB
}

const selectCars = `SELECT name, price, stock_count FROM cars ORDER BY position, id`

// Name implements Source.
func (PostgresSource) Name() string { return SourcePostgres }

// Load implements Source.
func (s PostgresSource) Load(ctx context.Context) ([]Item, error) {
	if s.DB == nil {
		return nil, fmt.Errorf("inventory: postgres source without database")
	}
	var items []Item
	if err := s.DB.SelectContext(ctx, &items, selectCars); err != nil {
		return nil, fmt.Errorf("inventory: select cars: %w", err)
	}
	return items, nil
}

// SourceFor resolves the configured source name. db may be nil for the builtin source.
func SourceFor(name string, db DB) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", SourceBuiltin:
		return BuiltinSource{}, nil
	case SourcePostgres:
		if db == nil {
			return nil, fmt.Errorf("inventory: source %q requires a database", SourcePostgres)
		}
		return PostgresSource{DB: db}, nil
	}
	return nil, fmt.Errorf("inventory: unknown source %q; allowed: builtin, postgres", name)
}

// LoadCatalog loads items from src once and builds the immutable catalog.
func LoadCatalog(ctx context.Context, src Source, pageSize int) (*Catalog, error) {
	start := time.Now()
	items, err := src.Load(ctx)
	if err != nil {
		logger.Error(ctx, "showroom.inventory", "catalog.load",
			slog.String("status", "fail"),
			slog.String("source", src.Name()),
			slog.String("err", err.Error()),
		)
		return nil, err
	}
	catalog, err := NewCatalog(items, pageSize)
	if err != nil {
		return nil, fmt.Errorf("inventory: build catalog from %s: %w", src.Name(), err)
	}
	logger.Info(ctx, "showroom.inventory", "catalog.load",
		slog.String("status", "ok"),
		slog.String("source", src.Name()),
		slog.Int("items", catalog.Len()),
		slog.Int("pages", catalog.TotalPages()),
		slog.Duration("duration", time.Since(start)),
	)
	return catalog, nil
}
