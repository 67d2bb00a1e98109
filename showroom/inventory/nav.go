package inventory

import (
	"strconv"
	"strings"
)

const (
	// UniquePage routes a "go to page" button; its payload is the zero-based page index.
	UniquePage = "inv_page"
	// UniqueNoop routes the inert page indicator.
	UniqueNoop = "inv_noop"
)

// ControlKind distinguishes navigation controls.
type ControlKind string

const (
	ControlPrev      ControlKind = "prev"
	ControlIndicator ControlKind = "indicator"
	ControlNext      ControlKind = "next"
)

// Control is one navigation affordance for a page.
// Target is meaningful for prev and next only.
type Control struct {
	Kind   ControlKind
	Target int
}

// Navigation lists the controls for a page in display order:
// prev when a previous page exists, the indicator, next when a following page exists.
func Navigation(v PageView) []Control {
	controls := make([]Control, 0, 3)
	if v.HasPrev() {
		controls = append(controls, Control{Kind: ControlPrev, Target: v.Index() - 1})
	}
	controls = append(controls, Control{Kind: ControlIndicator, Target: v.Index()})
	if v.HasNext() {
		controls = append(controls, Control{Kind: ControlNext, Target: v.Index() + 1})
	}
	return controls
}

// EncodeControl returns the callback unique and payload for a control.
func EncodeControl(c Control) (string, string) {
	if c.Kind == ControlIndicator {
		return UniqueNoop, ""
	}
	return UniquePage, strconv.Itoa(c.Target)
}

// DecodeControl parses callback routing data into a target page index.
// ok is false for the indicator and for anything malformed.
func DecodeControl(unique, payload string) (int, bool) {
	if unique != UniquePage {
		return 0, false
	}
	target, err := strconv.Atoi(strings.TrimSpace(payload))
	if err != nil {
		return 0, false
	}
	return target, true
}
