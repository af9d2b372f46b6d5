package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func testJWT() JWT {
	return JWT{Secret: []byte("test-secret"), TokenTTL: time.Hour, Issuer: "tradeflex"}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	j := testJWT()
	token, expires, err := j.Sign(Claims{
		Email:            "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if time.Until(expires) <= 0 {
		t.Fatalf("expiry in the past: %v", expires)
	}

	claims, err := j.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID() != "user-1" {
		t.Fatalf("user=%q want user-1", claims.UserID())
	}
	if claims.Email != "alice@example.com" {
		t.Fatalf("email=%q", claims.Email)
	}
	if claims.Issuer != "tradeflex" {
		t.Fatalf("issuer=%q", claims.Issuer)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	j := testJWT()
	token, _, err := j.Sign(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	other := JWT{Secret: []byte("other"), TokenTTL: time.Hour}
	if _, err := other.Verify(token); err == nil {
		t.Fatalf("expected verification failure")
	}
}

func TestVerify_Expired(t *testing.T) {
	j := testJWT()
	past := jwt.NewNumericDate(time.Now().Add(-time.Hour))
	token, _, err := j.Sign(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: past}})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := j.Verify(token); err == nil {
		t.Fatalf("expected expired token to fail")
	}
}
