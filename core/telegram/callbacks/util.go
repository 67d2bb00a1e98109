package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Encode builds Telebot's callback data layout: \f<unique> or \f<unique>|<payload>.
func Encode(unique, payload string) string {
	if payload == "" {
		return "\f" + unique
	}
	return "\f" + unique + "|" + payload
}

// ParseCallbackData splits raw callback data produced by Encode into unique and payload.
// Data without the \f marker is treated as a bare unique.
func ParseCallbackData(raw string) (string, string) {
	raw = strings.TrimPrefix(raw, "\f")
	unique, payload, _ := strings.Cut(raw, "|")
	return strings.TrimSpace(unique), payload
}

// Parse returns the unique and payload of a callback. Telebot fills cb.Unique and
// strips the prefix from cb.Data only when a handler is bound to that unique; with
// a generic OnCallback handler the raw data is still encoded.
func Parse(cb *tele.Callback) (string, string) {
	if cb == nil {
		return "", ""
	}
	if cb.Unique != "" {
		return cb.Unique, cb.Data
	}
	return ParseCallbackData(cb.Data)
}

// CallbackKey returns the unique of the current callback.
func CallbackKey(c tele.Context) string {
	key, _ := Parse(c.Callback())
	return key
}
