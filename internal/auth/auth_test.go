package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"workshop-registration-api/internal/auth"
)

const secret = "test-secret"

func TestHashPassword(t *testing.T) {
	hash, err := auth.HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash equals plaintext")
	}
	if !auth.CheckPassword(hash, "correct horse battery staple") {
		t.Error("correct password rejected")
	}
	if auth.CheckPassword(hash, "wrong password") {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	h1, _ := auth.HashPassword("samepassword")
	h2, _ := auth.HashPassword("samepassword")
	if h1 == h2 {
		t.Error("two hashes of the same password are identical, salt missing")
	}
}

func TestMakeAndParseToken(t *testing.T) {
	tok, err := auth.MakeToken("user-42", secret)
	if err != nil {
		t.Fatalf("make: %v", err)
	}

	claims, err := auth.ParseToken(tok, secret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-42" {
		t.Errorf("uid: got %s", claims.UserID)
	}

	// expiry is ~2h out
	diff := time.Until(claims.ExpiresAt.Time)
	if diff < 119*time.Minute || diff > 121*time.Minute {
		t.Errorf("expected ~2h expiry, got %v", diff)
	}
}

func TestParseTokenFailures(t *testing.T) {
	tok, _ := auth.MakeToken("uid", secret)

	tests := []struct {
		name   string
		raw    string
		secret string
	}{
		{"wrong secret", tok, "other-secret"},
		{"garbage", "not.a.token", secret},
		{"empty", "", secret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.ParseToken(tt.raw, tt.secret)
			if !errors.Is(err, auth.ErrBadToken) {
				t.Errorf("expected ErrBadToken, got %v", err)
			}
		})
	}
}

func TestParseTokenExpired(t *testing.T) {
	c := auth.Claims{
		UserID: "uid",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	// correct signature, stale expiry
	_, err = auth.ParseToken(raw, secret)
	if !errors.Is(err, auth.ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestParseTokenAlgorithmConfusion(t *testing.T) {
	// alg=none must never validate
	c := auth.Claims{
		UserID: "uid",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, c).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := auth.ParseToken(raw, secret); err == nil {
		t.Fatal("unsigned token accepted")
	}
}
