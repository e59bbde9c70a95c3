package netutil

import (
	"strings"
	"testing"
)

func TestNormalizeIP(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "ipv4 with port", input: "10.1.2.3:9000", want: "10.1.2.3", ok: true},
		{name: "plain ipv4", input: "198.51.100.7", want: "198.51.100.7", ok: true},
		{name: "ipv6 with port", input: "[2001:db8::1]:443", want: "2001:db8::1", ok: true},
		{name: "plain ipv6", input: "2001:db8::9", want: "2001:db8::9", ok: true},
		{name: "bracketed ipv6 bad port", input: "[::1]:port", want: "::1", ok: true},
		{name: "surrounding space", input: "  10.0.0.1  ", want: "10.0.0.1", ok: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizeIP(tc.input)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNormalizeIPRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "localhost", "not an ip at all"} {
		if got, ok := NormalizeIP(raw); ok {
			t.Fatalf("%q parsed as %q, expected failure", raw, got)
		}
	}
}

func TestTruncateUserAgent(t *testing.T) {
	short := "Mozilla/5.0"
	if got := TruncateUserAgent(short); got != short {
		t.Fatalf("short agent changed: %q", got)
	}

	long := strings.Repeat("x", MaxUserAgentLength+50)
	got := TruncateUserAgent(long)
	if n := len([]rune(got)); n != MaxUserAgentLength {
		t.Fatalf("truncated to %d runes, want %d", n, MaxUserAgentLength)
	}
}
