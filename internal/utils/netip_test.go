package utils

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remote     string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{"remote addr", "192.0.2.1:5555", nil, false, "192.0.2.1"},
		{"ipv6 remote", "[2001:db8::1]:5555", nil, false, "2001:db8::1"},
		{"proxy headers ignored", "192.0.2.1:5555", map[string]string{"X-Forwarded-For": "198.51.100.9"}, false, "192.0.2.1"},
		{"cloudflare first", "127.0.0.1:1", map[string]string{"CF-Connecting-IP": "203.0.113.5", "X-Forwarded-For": "198.51.100.9"}, true, "203.0.113.5"},
		{"left-most forwarded", "127.0.0.1:1", map[string]string{"X-Forwarded-For": " 198.51.100.9 , 10.0.0.1"}, true, "198.51.100.9"},
		{"real ip", "127.0.0.1:1", map[string]string{"X-Real-IP": "198.51.100.10"}, true, "198.51.100.10"},
		{"no headers behind proxy", "127.0.0.1:1", nil, true, "127.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"10.0.0.0/8", " 192.0.2.7 ", "2001:db8::/32", "not-an-ip", ""})
	if m.IsEmpty() {
		t.Fatal("matcher is empty")
	}

	tests := []struct {
		ip   string
		want bool
	}{
		{"10.200.1.1", true},
		{"192.0.2.7", true},
		{"::ffff:192.0.2.7", true},
		{"192.0.2.8", false},
		{"2001:db8::42", true},
		{"garbage", false},
	}
	for _, tt := range tests {
		if got := m.Allow(tt.ip); got != tt.want {
			t.Errorf("Allow(%q) = %v, want %v", tt.ip, got, tt.want)
		}
	}

	if !NewIPMatcher(nil).IsEmpty() {
		t.Error("nil list should give an empty matcher")
	}
}
