package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := "test-secret"
	userID := uuid.New()

	token, err := GenerateJWT(secret, userID, "sponsor", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(secret, token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("user id = %v, want %v", claims.UserID, userID)
	}
	if claims.Role != "sponsor" {
		t.Errorf("role = %q, want %q", claims.Role, "sponsor")
	}
}

func TestJWTRoleSnapshotSurvivesParse(t *testing.T) {
	// The role in the token is a snapshot; parsing must return exactly
	// what was issued, never a fresh lookup.
	secret := "test-secret"
	for _, role := range []string{"admin", "sponsor", "influencer"} {
		token, err := GenerateJWT(secret, uuid.New(), role, time.Hour)
		if err != nil {
			t.Fatalf("GenerateJWT(%q): %v", role, err)
		}
		claims, err := ParseJWT(secret, token)
		if err != nil {
			t.Fatalf("ParseJWT(%q): %v", role, err)
		}
		if claims.Role != role {
			t.Errorf("role = %q, want %q", claims.Role, role)
		}
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("secret-a", uuid.New(), "influencer", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT("secret-b", token); err == nil {
		t.Fatal("expected parse failure with wrong secret")
	}
}

func TestJWTExpired(t *testing.T) {
	token, err := GenerateJWT("secret", uuid.New(), "influencer", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	// Negative expiration falls back to 24h, so build a genuinely
	// expired one via a tiny positive window.
	if _, err := ParseJWT("secret", token); err != nil {
		t.Fatalf("fallback expiration should parse: %v", err)
	}

	short, err := GenerateJWT("secret", uuid.New(), "influencer", time.Millisecond)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := ParseJWT("secret", short); err == nil {
		t.Fatal("expected parse failure for expired token")
	}
}

func TestJWTGarbage(t *testing.T) {
	if _, err := ParseJWT("secret", "not-a-token"); err == nil {
		t.Fatal("expected parse failure for malformed token")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22", 0)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "hunter22") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "hunter23") {
		t.Error("wrong password accepted")
	}
}
