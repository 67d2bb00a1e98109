package middleware

import (
	"sync/atomic"

	tele "gopkg.in/telebot.v4"
)

const countersKey = "reply_counters"

type replyCounters struct {
	messages atomic.Int64
	keyboard atomic.Bool
}

// metricsContext wraps tele.Context to count outgoing messages and detect keyboard usage.
type metricsContext struct {
	tele.Context
	counters *replyCounters
}

func (m metricsContext) observe(err error, opts []any) error {
	if err == nil {
		m.counters.messages.Add(1)
		if hasKeyboard(opts) {
			m.counters.keyboard.Store(true)
		}
	}
	return err
}

func hasKeyboard(opts []any) bool {
	for _, o := range opts {
		switch v := o.(type) {
		case *tele.SendOptions:
			if v != nil && v.ReplyMarkup != nil {
				return true
			}
		case *tele.ReplyMarkup:
			if v != nil {
				return true
			}
		}
	}
	return false
}

// Send proxies tele.Context.Send while updating message counters.
func (m metricsContext) Send(what any, opts ...any) error {
	return m.observe(m.Context.Send(what, opts...), opts)
}

// Reply proxies tele.Context.Reply while updating message counters.
func (m metricsContext) Reply(what any, opts ...any) error {
	return m.observe(m.Context.Reply(what, opts...), opts)
}

// Edit proxies tele.Context.Edit; edits count as responses too.
func (m metricsContext) Edit(what any, opts ...any) error {
	return m.observe(m.Context.Edit(what, opts...), opts)
}

// MessageMetricsMiddleware instruments context to track messages count and keyboard usage.
func MessageMetricsMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if _, ok := c.Get(countersKey).(*replyCounters); ok {
			return next(c)
		}
		counters := &replyCounters{}
		c.Set(countersKey, counters)
		return next(metricsContext{Context: c, counters: counters})
	}
}

// GetCounters reads message count and keyboard presence flags from context.
// Replies still queued in the sender are not yet counted.
func GetCounters(c tele.Context) (int, bool) {
	counters, ok := c.Get(countersKey).(*replyCounters)
	if !ok {
		return 0, false
	}
	return int(counters.messages.Load()), counters.keyboard.Load()
}
