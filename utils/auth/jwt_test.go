package auth

import (
	"testing"
	"time"
)

func testManager() *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret:        "test-secret-at-least-32-characters-long",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "cmspro-test",
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := testManager()

	token, jti, err := m.GenerateAccessToken(42, "admin@example.com", "admin", 3)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if jti == "" {
		t.Error("expected a JTI")
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("user ID = %d, want 42", claims.UserID)
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if claims.Role != "admin" {
		t.Errorf("role = %q", claims.Role)
	}
	if claims.TokenVersion != 3 {
		t.Errorf("token version = %d, want 3", claims.TokenVersion)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, _, err := testManager().GenerateAccessToken(1, "a@b.com", "admin", 0)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	other := NewJWTManager(JWTConfig{
		Secret:        "a-completely-different-secret-value-here",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "cmspro-test",
	})
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("token signed with a different secret should fail validation")
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	m := NewJWTManager(JWTConfig{
		Secret:        "test-secret-at-least-32-characters-long",
		Expiry:        -time.Minute,
		RefreshExpiry: -time.Minute,
		Issuer:        "cmspro-test",
	})
	token, _, err := m.GenerateAccessToken(1, "a@b.com", "admin", 0)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m.ValidateToken(token); err == nil {
		t.Error("expired token should fail validation")
	}
}

func TestGetJTIMatchesGenerated(t *testing.T) {
	m := testManager()
	token, jti, err := m.GenerateAccessToken(7, "x@y.com", "admin", 0)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	got, err := m.GetJTI(token)
	if err != nil {
		t.Fatalf("get jti: %v", err)
	}
	if got != jti {
		t.Errorf("GetJTI = %q, want %q", got, jti)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := VerifyPassword(hash, "correct horse battery staple"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := VerifyPassword(hash, "wrong password"); err == nil {
		t.Error("wrong password accepted")
	}
}
