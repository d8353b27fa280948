package auth

import (
	"errors"
	"testing"
	"time"

	"heartchain/config"
)

func TestTokenRoundTrip(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret", Expiry: time.Hour, Issuer: "heartchain"}
	token, err := GenerateToken(cfg, 42, "donor@example.com", "donor")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := ParseToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "donor@example.com" || claims.Role != "donor" {
		t.Fatalf("claims = %+v", claims)
	}
	if claims.Issuer != "heartchain" {
		t.Fatalf("issuer = %q", claims.Issuer)
	}
}

func TestTokenRejection(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret", Expiry: time.Hour}
	token, err := GenerateToken(cfg, 1, "a@example.com", "donor")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	other := &config.JWTConfig{Secret: "other-secret", Expiry: time.Hour}
	if _, err := ParseToken(other, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrong secret: got %v, want ErrInvalidToken", err)
	}
	if _, err := ParseToken(cfg, token+"x"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("tampered token: got %v, want ErrInvalidToken", err)
	}

	expired := &config.JWTConfig{Secret: "test-secret", Expiry: -time.Minute}
	token, err = GenerateToken(expired, 1, "a@example.com", "donor")
	if err != nil {
		t.Fatalf("generate expired: %v", err)
	}
	if _, err := ParseToken(cfg, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token: got %v, want ErrInvalidToken", err)
	}
}
