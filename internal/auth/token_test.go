package auth

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestIssueAndParse_Success(t *testing.T) {
	t.Parallel()

	iss := NewIssuer("super-secret")
	in := Claims{ID: "64f1b2c3d4e5f60718293a4b", Username: "alice", Name: "Alice"}

	tok, err := iss.Issue(in)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if tok == "" {
		t.Fatal("Issue returned an empty token")
	}

	got, err := iss.Parse(tok)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got != in {
		t.Fatalf("claims mismatch: got %+v want %+v", got, in)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewIssuer("right-secret").Issue(Claims{ID: "u1", Username: "bob"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := NewIssuer("wrong-secret").Parse(tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := NewIssuer("k").Parse("not.a.jwt"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestIssue_NoPasswordMaterial(t *testing.T) {
	t.Parallel()

	// Claims hold identity only; the token payload must not grow a
	// password field by accident.
	iss := NewIssuer("k")
	tok, err := iss.Issue(Claims{ID: "u1", Username: "carol", Name: "Carol"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if strings.Contains(strings.ToLower(string(payload)), "password") {
		t.Fatalf("token payload mentions password: %s", payload)
	}
}
