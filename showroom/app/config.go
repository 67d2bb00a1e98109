// Package app wires configuration, storage, the conversation flow and the
// Telegram runtime into one runnable bot.
package app

import (
	"fmt"
	"strings"

	coreconfig "github.com/m3rciful/showroombot/core/config"
	coredatabase "github.com/m3rciful/showroombot/core/database"
	"github.com/m3rciful/showroombot/showroom/inventory"
)

const (
	defaultPassword     = "demo123"
	defaultSalesContact = "@sales"
	defaultLang         = "fa"
)

// ShowroomConfig holds the conversation settings.
type ShowroomConfig struct {
	Password       string `yaml:"password" envconfig:"SHOWROOM_PASSWORD"`
	PageSize       int    `yaml:"page_size" envconfig:"SHOWROOM_PAGE_SIZE"`
	SalesContact   string `yaml:"sales_contact" envconfig:"SHOWROOM_SALES_CONTACT"`
	DefaultLang    string `yaml:"default_lang" envconfig:"SHOWROOM_DEFAULT_LANG"`
	FollowUserLang bool   `yaml:"follow_user_lang" envconfig:"SHOWROOM_FOLLOW_USER_LANG"`
}

// InventoryConfig selects where the catalog is loaded from.
type InventoryConfig struct {
	// Source is builtin or postgres.
	Source string `yaml:"source" envconfig:"INVENTORY_SOURCE"`
	// Seed fills an empty cars table with the builtin stock (postgres only).
	Seed bool `yaml:"seed" envconfig:"INVENTORY_SEED"`
}

// Config is the full bot configuration: the core sections plus the showroom ones.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Showroom  ShowroomConfig      `yaml:"showroom"`
	Inventory InventoryConfig     `yaml:"inventory"`
	Database  coredatabase.Config `yaml:"database"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Config
}

// Load reads path (optional) and the environment, then validates the result.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.Decode(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates the configuration and fills defaults.
func (c *Config) Normalize() error {
	if err := coreconfig.Normalize(&c.Config); err != nil {
		return err
	}

	s := &c.Showroom
	if s.Password == "" {
		s.Password = defaultPassword
	}
	switch {
	case s.PageSize == 0:
		s.PageSize = inventory.DefaultPageSize
	case s.PageSize < 0:
		return fmt.Errorf("showroom.page_size must be > 0")
	}
	if s.SalesContact = strings.TrimSpace(s.SalesContact); s.SalesContact == "" {
		s.SalesContact = defaultSalesContact
	}
	if s.DefaultLang = strings.ToLower(strings.TrimSpace(s.DefaultLang)); s.DefaultLang == "" {
		s.DefaultLang = defaultLang
	}

	src := strings.ToLower(strings.TrimSpace(c.Inventory.Source))
	switch src {
	case "", inventory.SourceBuiltin:
		c.Inventory.Source = inventory.SourceBuiltin
	case inventory.SourcePostgres:
		c.Inventory.Source = src
		c.Database = c.Database.WithDefaults()
		if err := c.Database.Validate(); err != nil {
			return fmt.Errorf("inventory.source postgres: %w", err)
		}
	default:
		return fmt.Errorf("invalid inventory.source %q; allowed: builtin, postgres", c.Inventory.Source)
	}
	return nil
}

// UsesDatabase reports whether the bot needs Postgres at startup.
func (c *Config) UsesDatabase() bool {
	return c.Inventory.Source == inventory.SourcePostgres
}
