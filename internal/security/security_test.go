package security

import (
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "hunter22" {
		t.Error("hash should not equal the plaintext password")
	}
	if !CheckPassword("hunter22", hash) {
		t.Error("CheckPassword() should accept the correct password")
	}
	if CheckPassword("wrong", hash) {
		t.Error("CheckPassword() should reject a wrong password")
	}
}

func TestCSRFTokens(t *testing.T) {
	g := NewCSRFGenerator("test-secret")

	token, err := g.GenerateToken("session-1")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if !g.ValidateToken("session-1", token) {
		t.Error("token should validate for its own session")
	}
	if g.ValidateToken("session-2", token) {
		t.Error("token should not validate for another session")
	}
	if g.ValidateToken("session-1", "bogus") {
		t.Error("bogus token should not validate")
	}
	if _, err := g.GenerateToken(""); err == nil {
		t.Error("empty session ID should be rejected")
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("fourth request within window should be denied")
	}

	// A different IP has its own bucket
	if !rl.Allow("10.0.0.2") {
		t.Error("different IP should be allowed")
	}
}

func TestResetTokenRoundTrip(t *testing.T) {
	issuer := NewResetTokenIssuer("reset-secret", time.Hour)

	token, tokenID, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if tokenID == "" {
		t.Fatal("token ID should not be empty")
	}

	userID, gotID, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if userID != 42 {
		t.Errorf("Verify() userID = %d, want 42", userID)
	}
	if gotID != tokenID {
		t.Errorf("Verify() tokenID = %q, want %q", gotID, tokenID)
	}
}

func TestResetTokenRejectsTampering(t *testing.T) {
	issuer := NewResetTokenIssuer("reset-secret", time.Hour)
	other := NewResetTokenIssuer("other-secret", time.Hour)

	token, _, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, _, err := other.Verify(token); err == nil {
		t.Error("token signed with a different secret should be rejected")
	}
	if _, _, err := issuer.Verify(token + "x"); err == nil {
		t.Error("tampered token should be rejected")
	}
	if _, _, err := issuer.Verify(""); err == nil {
		t.Error("empty token should be rejected")
	}
}

func TestResetTokenExpiry(t *testing.T) {
	issuer := NewResetTokenIssuer("reset-secret", -time.Minute)

	token, _, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, _, err := issuer.Verify(token); err == nil {
		t.Error("expired token should be rejected")
	}
}
