package format

import "testing"

func TestEscapeHTML(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Tesla Model 3", "Tesla Model 3"},
		{"A&B <x>", "A&amp;B &lt;x&gt;"},
		{"4,628,733,300 ﷼", "4,628,733,300 ﷼"},
		{`"quoted"`, `"quoted"`},
	}
	for _, tc := range cases {
		if got := EscapeHTML(tc.in); got != tc.want {
			t.Fatalf("EscapeHTML(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWrappers(t *testing.T) {
	if got := Bold("1. <b>"); got != "<b>1. &lt;b&gt;</b>" {
		t.Fatalf("Bold = %q", got)
	}
	if got := Code("15 units"); got != "<code>15 units</code>" {
		t.Fatalf("Code = %q", got)
	}
}
