package security_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tazhibayda/habits-service/internal/security"
)

func TestHS256_RoundTrip(t *testing.T) {
	tok, err := security.MakeAccess("s3cret", "u1", "alice", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	c, err := security.ParseAccess("s3cret", tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.UID != "u1" || c.Username != "alice" {
		t.Fatalf("claims mismatch: %#v", c)
	}
	if ttl := time.Until(c.ExpiresAt.Time); ttl <= 59*time.Minute || ttl > time.Hour {
		t.Fatalf("unexpected ttl %v", ttl)
	}
}

func TestParseAccess_Rejects(t *testing.T) {
	good, _ := security.MakeAccess("s3cret", "u1", "alice", time.Hour)
	expired, _ := security.MakeAccess("s3cret", "u1", "alice", -time.Minute)
	none := jwt.NewWithClaims(jwt.SigningMethodNone, security.Claims{UID: "u1"})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	cases := map[string]struct{ secret, tok string }{
		"wrong secret": {"other", good},
		"expired":      {"s3cret", expired},
		"alg none":     {"s3cret", unsigned},
		"garbage":      {"s3cret", "not.a.token"},
	}
	for name, tc := range cases {
		if _, err := security.ParseAccess(tc.secret, tc.tok); !errors.Is(err, security.ErrInvalidToken) {
			t.Errorf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestBearerToken(t *testing.T) {
	if tok, err := security.BearerToken("Bearer abc"); err != nil || tok != "abc" {
		t.Fatalf("got %q %v", tok, err)
	}
	if tok, err := security.BearerToken("bearer  abc "); err != nil || tok != "abc" {
		t.Fatalf("got %q %v", tok, err)
	}
	for _, h := range []string{"", "Bearer", "Bearer   ", "Basic abc"} {
		if _, err := security.BearerToken(h); !errors.Is(err, security.ErrMissingToken) {
			t.Errorf("%q: expected ErrMissingToken, got %v", h, err)
		}
	}
}

func TestPassword(t *testing.T) {
	h, err := security.HashPassword("p")
	if err != nil {
		t.Fatal(err)
	}
	if h == "p" || !security.CheckPassword(h, "p") || security.CheckPassword(h, "q") {
		t.Fatal("bcrypt round trip failed")
	}
}

func TestHashPassword_TooLong(t *testing.T) {
	if _, err := security.HashPassword(strings.Repeat("a", 73)); !errors.Is(err, security.ErrPasswordTooLong) {
		t.Fatalf("want ErrPasswordTooLong, got %v", err)
	}
	if _, err := security.HashPassword(strings.Repeat("a", 72)); err != nil {
		t.Fatalf("72 bytes must hash: %v", err)
	}
}

func TestCheckPassword_NoAccountCostsAFullCompare(t *testing.T) {
	h, err := security.HashPassword("right")
	if err != nil {
		t.Fatal(err)
	}
	fastest := func(f func()) time.Duration {
		best := time.Duration(1<<63 - 1)
		for i := 0; i < 3; i++ {
			start := time.Now()
			f()
			if d := time.Since(start); d < best {
				best = d
			}
		}
		return best
	}

	var miss bool
	wrong := fastest(func() { miss = security.CheckPassword(h, "wrong") })
	if miss {
		t.Fatal("wrong password matched")
	}
	var empty bool
	noAccount := fastest(func() { empty = security.CheckPassword("", "wrong") })
	if empty {
		t.Fatal("empty hash matched")
	}
	if noAccount < wrong/4 {
		t.Fatalf("no-account check took %v, wrong-password check %v", noAccount, wrong)
	}
}
