package jwt

import (
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims Claims) string {
	t.Helper()
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	return token
}

func TestDecodeExtractsClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, Claims{
		Name:  "Alice",
		Email: "alice@example.com",
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: gojwt.NewNumericDate(exp),
		},
	})

	claims, err := Decode(token)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if claims.Name != "Alice" || claims.Email != "alice@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.UserID() != "u1" {
		t.Fatalf("expected subject u1, got %q", claims.UserID())
	}
	if claims.ExpiresAtUnix() != exp.Unix() {
		t.Fatalf("expected exp %d, got %d", exp.Unix(), claims.ExpiresAtUnix())
	}
}

func TestDecodeDoesNotVerifySignature(t *testing.T) {
	token := signedToken(t, Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: "u1"},
	})
	// Corrupt the signature segment; the body must still decode.
	tampered := token[:len(token)-4] + "AAAA"

	claims, err := Decode(tampered)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if claims.UserID() != "u1" {
		t.Fatalf("expected subject u1, got %q", claims.UserID())
	}
}

func TestDecodeMalformedToken(t *testing.T) {
	for _, token := range []string{"", "not-a-token", "a.b"} {
		if _, err := Decode(token); !errors.Is(err, ErrMalformed) {
			t.Fatalf("expected ErrMalformed for %q, got %v", token, err)
		}
	}
}

func TestClaimsExpired(t *testing.T) {
	now := time.Now()

	expired := &Claims{RegisteredClaims: gojwt.RegisteredClaims{
		ExpiresAt: gojwt.NewNumericDate(now.Add(-time.Minute)),
	}}
	if !expired.Expired(now) {
		t.Fatal("expected past exp to report expired")
	}

	live := &Claims{RegisteredClaims: gojwt.RegisteredClaims{
		ExpiresAt: gojwt.NewNumericDate(now.Add(time.Minute)),
	}}
	if live.Expired(now) {
		t.Fatal("expected future exp to not report expired")
	}

	var none Claims
	if none.Expired(now) {
		t.Fatal("expected missing exp to never report expired")
	}
}

func TestClaimsNilSafe(t *testing.T) {
	var c *Claims
	if c.UserID() != "" || c.ExpiresAtUnix() != 0 || c.Expired(time.Now()) {
		t.Fatal("expected nil claims accessors to return zero values")
	}
}
