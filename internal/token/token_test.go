package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestCodec() *Codec {
	return NewCodec("test-secret", "HS256", "cloudkeep", 15*time.Minute, 7*24*time.Hour)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	codec := newTestCodec()

	tok, err := codec.Issue("user-1", "a@x.com", KindAccess, time.Hour)
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	claims, err := codec.Verify(tok)
	if err != nil {
		t.Fatalf("Verify() unexpected error: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("Verify() Subject = %q, want %q", claims.Subject, "user-1")
	}
	if claims.Email != "a@x.com" {
		t.Errorf("Verify() Email = %q, want %q", claims.Email, "a@x.com")
	}
	if claims.Kind != KindAccess {
		t.Errorf("Verify() Kind = %q, want %q", claims.Kind, KindAccess)
	}
}

func TestVerifyExpired(t *testing.T) {
	codec := newTestCodec()

	tok, err := codec.Issue("user-1", "a@x.com", KindAccess, -time.Minute)
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	_, err = codec.Verify(tok)
	if !errors.Is(err, ErrExpired) {
		t.Errorf("Verify() error = %v, want ErrExpired", err)
	}
}

func TestVerifyNotYetExpired(t *testing.T) {
	codec := newTestCodec()

	tok, err := codec.Issue("user-1", "a@x.com", KindAccess, time.Minute)
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	if _, err := codec.Verify(tok); err != nil {
		t.Errorf("Verify() unexpected error before expiry: %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	codec := newTestCodec()
	other := NewCodec("other-secret", "HS256", "cloudkeep", 15*time.Minute, 7*24*time.Hour)

	tok, err := codec.Issue("user-1", "a@x.com", KindAccess, time.Hour)
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	_, err = other.Verify(tok)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("Verify() error = %v, want ErrInvalidSignature", err)
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	codec := newTestCodec()

	tok, err := codec.Issue("user-1", "a@x.com", KindAccess, time.Hour)
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	parts := strings.Split(tok, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = codec.Verify(tampered)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("Verify() error = %v, want ErrInvalidSignature", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	codec := newTestCodec()

	_, err := codec.Verify("not-a-valid-token")
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("Verify() error = %v, want ErrMalformed", err)
	}
}

func TestRequireKind(t *testing.T) {
	codec := newTestCodec()

	tok, err := codec.Issue("user-1", "a@x.com", KindAccess, time.Hour)
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	claims, err := codec.Verify(tok)
	if err != nil {
		t.Fatalf("Verify() unexpected error: %v", err)
	}

	if err := claims.RequireKind(KindAccess); err != nil {
		t.Errorf("RequireKind(access) unexpected error: %v", err)
	}
	if err := claims.RequireKind(KindRefresh); !errors.Is(err, ErrWrongKind) {
		t.Errorf("RequireKind(refresh) error = %v, want ErrWrongKind", err)
	}
}

func TestIssuePair(t *testing.T) {
	codec := newTestCodec()

	access, refresh, expiresIn, err := codec.IssuePair("user-1", "a@x.com")
	if err != nil {
		t.Fatalf("IssuePair() unexpected error: %v", err)
	}
	if expiresIn != int64((15 * time.Minute).Seconds()) {
		t.Errorf("IssuePair() expiresIn = %d, want %d", expiresIn, 900)
	}

	accessClaims, err := codec.Verify(access)
	if err != nil {
		t.Fatalf("Verify(access) unexpected error: %v", err)
	}
	if accessClaims.Kind != KindAccess {
		t.Errorf("access token Kind = %q, want %q", accessClaims.Kind, KindAccess)
	}

	refreshClaims, err := codec.Verify(refresh)
	if err != nil {
		t.Fatalf("Verify(refresh) unexpected error: %v", err)
	}
	if refreshClaims.Kind != KindRefresh {
		t.Errorf("refresh token Kind = %q, want %q", refreshClaims.Kind, KindRefresh)
	}
}
