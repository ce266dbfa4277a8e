package ratelimit_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/sevahub/internal/app/system/ratelimit"
)

func TestLimiter_AllowsUpToLimit(t *testing.T) {
	l := ratelimit.New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("key") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow("key") {
		t.Error("attempt over the limit should be denied")
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := ratelimit.New(1, time.Minute)

	if !l.Allow("a") {
		t.Fatal("first use of key a should be allowed")
	}
	if !l.Allow("b") {
		t.Error("key b should not be affected by key a")
	}
}

func TestLimiter_WindowExpires(t *testing.T) {
	l := ratelimit.New(1, 20*time.Millisecond)

	if !l.Allow("key") {
		t.Fatal("first attempt should be allowed")
	}
	if l.Allow("key") {
		t.Fatal("second attempt inside the window should be denied")
	}

	time.Sleep(30 * time.Millisecond)
	if !l.Allow("key") {
		t.Error("attempt after the window should be allowed")
	}
}

func TestLimiter_Reset(t *testing.T) {
	l := ratelimit.New(1, time.Minute)

	l.Allow("key")
	if l.Allow("key") {
		t.Fatal("second attempt should be denied")
	}

	l.Reset("key")
	if !l.Allow("key") {
		t.Error("attempt after Reset should be allowed")
	}
}

func TestClientIP(t *testing.T) {
	cases := []struct {
		name       string
		remoteAddr string
		xff        string
		realIP     string
		want       string
	}{
		{"remote addr only", "203.0.113.9:4312", "", "", "203.0.113.9"},
		{"forwarded for wins", "10.0.0.1:80", "198.51.100.7, 10.0.0.1", "", "198.51.100.7"},
		{"real ip fallback", "10.0.0.1:80", "", "198.51.100.8", "198.51.100.8"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = c.remoteAddr
			if c.xff != "" {
				r.Header.Set("X-Forwarded-For", c.xff)
			}
			if c.realIP != "" {
				r.Header.Set("X-Real-IP", c.realIP)
			}
			if got := ratelimit.ClientIP(r); got != c.want {
				t.Errorf("ClientIP: got %q, want %q", got, c.want)
			}
		})
	}
}

func TestLoginLimiter_EmailLimit(t *testing.T) {
	ll := ratelimit.NewLoginLimiter()

	r := httptest.NewRequest("POST", "/login", nil)
	r.RemoteAddr = "203.0.113.9:4312"

	// Email allowance is 5 per window.
	for i := 0; i < 5; i++ {
		allowed, _ := ll.Check(r, "user@example.com")
		if !allowed {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}

	allowed, reason := ll.Check(r, "user@example.com")
	if allowed {
		t.Fatal("sixth attempt for the same email should be denied")
	}
	if reason == "" {
		t.Error("denial should carry a reason")
	}

	// A successful login clears the account's counter.
	ll.ResetEmail("user@example.com")
	if allowed, _ := ll.Check(r, "user@example.com"); !allowed {
		t.Error("attempt after ResetEmail should be allowed")
	}
}
