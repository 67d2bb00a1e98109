package inventory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/m3rciful/showroombot/core/bootstrap"
	"github.com/m3rciful/showroombot/core/logger"
)

type carRow struct {
	Position int `db:"position"`
	Item
}

const (
	countCars  = `SELECT COUNT(*) FROM cars`
	insertCars = `INSERT INTO cars (position, name, price, stock_count) VALUES (:position, :name, :price, :stock_count)`
)

// Seeder fills an empty cars table with items. A table that already holds
// rows is left untouched.
func Seeder(items []Item) bootstrap.Seeder {
	return bootstrap.SeederFunc(func(ctx context.Context, storage bootstrap.Storage) error {
		db, ok := storage.(DB)
		if !ok {
			return fmt.Errorf("inventory: seeder needs a database handle, got %T", storage)
		}
		return seed(ctx, db, items)
	})
}

func seed(ctx context.Context, db DB, items []Item) error {
	var existing int
	if err := db.GetContext(ctx, &existing, countCars); err != nil {
		return fmt.Errorf("inventory: count cars: %w", err)
	}
	if existing > 0 || len(items) == 0 {
		logger.Info(ctx, "db.seed", "cars.skip", slog.Int("items", existing))
		return nil
	}

	rows := make([]carRow, len(items))
	for i, it := range items {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("inventory: seed item %d: %w", i, err)
		}
		rows[i] = carRow{Position: i + 1, Item: it}
	}
	if _, err := db.NamedExecContext(ctx, insertCars, rows); err != nil {
		return fmt.Errorf("inventory: insert cars: %w", err)
	}
	logger.Info(ctx, "db.seed", "cars.seeded", slog.String("status", "ok"), slog.Int("items", len(rows)))
	return nil
}
