// Package locale renders user-facing bot text from embedded TOML message files.
package locale

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Bundle holds every loaded locale and picks a Localizer per user.
type Bundle struct {
	bundle     *i18n.Bundle
	fallback   language.Tag
	followUser bool
	tags       []language.Tag
}

// Localizer renders messages in one resolved language.
type Localizer struct {
	loc *i18n.Localizer
	tag language.Tag
}

// New loads the embedded locales. defaultLang must be one of them; with
// followUser set, a user's Telegram language_code wins when it is supported.
func New(defaultLang string, followUser bool) (*Bundle, error) {
	fallback, err := language.Parse(strings.TrimSpace(defaultLang))
	if err != nil {
		return nil, fmt.Errorf("locale: parse default language %q: %w", defaultLang, err)
	}

	bundle := i18n.NewBundle(fallback)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(localeFS, "locales/*.toml")
	if err != nil {
		return nil, fmt.Errorf("locale: list message files: %w", err)
	}
	var tags []language.Tag
	for _, name := range files {
		mf, err := bundle.LoadMessageFileFS(localeFS, name)
		if err != nil {
			return nil, fmt.Errorf("locale: load %s: %w", name, err)
		}
		tags = append(tags, mf.Tag)
	}

	b := &Bundle{bundle: bundle, fallback: fallback, followUser: followUser, tags: tags}
	if !b.Supports(fallback) {
		return nil, fmt.Errorf("locale: no messages for default language %q", defaultLang)
	}
	return b, nil
}

// Supports reports whether messages for tag's base language are loaded.
func (b *Bundle) Supports(tag language.Tag) bool {
	base, _ := tag.Base()
	for _, t := range b.tags {
		if tb, _ := t.Base(); tb == base {
			return true
		}
	}
	return false
}

// Default returns a Localizer for the configured default language.
func (b *Bundle) Default() *Localizer {
	return &Localizer{loc: i18n.NewLocalizer(b.bundle, b.fallback.String()), tag: b.fallback}
}

// For returns the Localizer for a user with the given Telegram language_code.
func (b *Bundle) For(userLang string) *Localizer {
	if !b.followUser || strings.TrimSpace(userLang) == "" {
		return b.Default()
	}
	tag, err := language.Parse(userLang)
	if err != nil || !b.Supports(tag) {
		return b.Default()
	}
	return &Localizer{loc: i18n.NewLocalizer(b.bundle, tag.String(), b.fallback.String()), tag: tag}
}

// Tag returns the language the Localizer resolves to.
func (l *Localizer) Tag() language.Tag { return l.tag }

// T renders message id with optional template data. Unknown ids render as the id itself.
func (l *Localizer) T(id string, data ...map[string]any) string {
	cfg := &i18n.LocalizeConfig{MessageID: id}
	if len(data) > 0 {
		cfg.TemplateData = data[0]
	}
	msg, err := l.loc.Localize(cfg)
	if err != nil {
		return id
	}
	return msg
}
