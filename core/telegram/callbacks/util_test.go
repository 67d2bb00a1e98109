package callbacks

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestEncodeParseRoundTrip(t *testing.T) {
	cases := []struct{ unique, payload string }{
		{"inv_page", "2"},
		{"inv_noop", ""},
		{"x", "a|b"},
	}
	for _, tc := range cases {
		u, p := ParseCallbackData(Encode(tc.unique, tc.payload))
		if u != tc.unique || p != tc.payload {
			t.Fatalf("round trip %q/%q -> %q/%q", tc.unique, tc.payload, u, p)
		}
	}
}

func TestParsePrefersResolvedUnique(t *testing.T) {
	u, p := Parse(&tele.Callback{Unique: "inv_page", Data: "1"})
	if u != "inv_page" || p != "1" {
		t.Fatalf("got %q/%q", u, p)
	}
	u, p = Parse(&tele.Callback{Data: "\finv_page|1"})
	if u != "inv_page" || p != "1" {
		t.Fatalf("got %q/%q", u, p)
	}
	if u, p := Parse(nil); u != "" || p != "" {
		t.Fatalf("nil callback parsed as %q/%q", u, p)
	}
}
