// Package inventory holds the showroom catalog and its pager.
//
// A Catalog is built once at startup and never changes afterwards; every
// page request is computed from it on demand.
package inventory

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPageSize is returned when a catalog is built with a page size below 1.
	ErrInvalidPageSize = errors.New("inventory: page size must be positive")
	// ErrInvalidItem is returned for items with an empty name or a negative stock count.
	ErrInvalidItem = errors.New("inventory: invalid item")
)

// Item is one car on offer. Price is pre-formatted, currency symbol included.
type Item struct {
	Name  string `db:"name"`
	Price string `db:"price"`
	Stock int    `db:"stock_count"`
}

// Validate checks the item invariants.
func (it Item) Validate() error {
	if strings.TrimSpace(it.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidItem)
	}
	if it.Stock < 0 {
		return fmt.Errorf("%w: %q has negative stock %d", ErrInvalidItem, it.Name, it.Stock)
	}
	return nil
}
