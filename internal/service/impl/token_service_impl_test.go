package impl

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Karab-o/CareLink/internal/domain"

	"github.com/google/uuid"
)

func testTokenService(ttl time.Duration) *TokenServiceImpl {
	return NewTokenServiceHS256(TokenConfig{
		Issuer:     "carelink-test",
		Audience:   "carelink-clients",
		TTL:        ttl,
		SigningKey: []byte("test-signing-key-please-rotate"),
	})
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	ts := testTokenService(24 * time.Hour)
	userID := uuid.Must(uuid.NewV7())

	token, expiresIn, err := ts.Issue(userID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if expiresIn != int64((24 * time.Hour).Seconds()) {
		t.Fatalf("expiresIn = %d", expiresIn)
	}

	got, err := ts.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != userID {
		t.Fatalf("subject = %s, want %s", got, userID)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	ts := testTokenService(time.Minute)
	token, _, err := ts.Issue(uuid.New())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// move the verifier's clock past the expiry
	ts.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	if _, err := ts.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyTamperedToken(t *testing.T) {
	ts := testTokenService(time.Hour)
	token, _, err := ts.Issue(uuid.New())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// flip one byte in the payload section
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape")
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := ts.Verify(tampered); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyWrongKey(t *testing.T) {
	issuer := testTokenService(time.Hour)
	token, _, err := issuer.Issue(uuid.New())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	verifier := NewTokenServiceHS256(TokenConfig{
		Issuer:     "carelink-test",
		Audience:   "carelink-clients",
		TTL:        time.Hour,
		SigningKey: []byte("a-different-secret-entirely"),
	})
	if _, err := verifier.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	ts := testTokenService(time.Hour)
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := ts.Verify(tok); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", tok, err)
		}
	}
}
