package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidateToken(t *testing.T) {
	SetSecret("test-secret")

	token, err := GenerateToken("507f1f77bcf86cd799439011")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken rejected a fresh token: %v", err)
	}
	if claims.UserID != "507f1f77bcf86cd799439011" {
		t.Errorf("got userId %q, want %q", claims.UserID, "507f1f77bcf86cd799439011")
	}
}

func TestValidateToken_WrongSignature(t *testing.T) {
	SetSecret("test-secret")
	token, err := GenerateToken("507f1f77bcf86cd799439011")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	SetSecret("some-other-secret")
	defer SetSecret("test-secret")

	if _, err := ValidateToken(token); err == nil {
		t.Error("token signed with a different secret was accepted")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	SetSecret("test-secret")

	claims := &Claims{
		UserID: "507f1f77bcf86cd799439011",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign expired token: %v", err)
	}

	if _, err := ValidateToken(expired); err == nil {
		t.Error("expired token was accepted")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	SetSecret("test-secret")

	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Error("garbage token was accepted")
	}
}
