package auth

import (
	"testing"
	"time"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("rahasia123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CheckPassword(hash, "rahasia123"); err != nil {
		t.Fatalf("expected password to match: %v", err)
	}
	if err := CheckPassword(hash, "salah"); err == nil {
		t.Fatal("expected mismatch error for wrong password")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	claims := Claims{UserID: "u-1", Role: RoleEmployee, Name: "Budi", EmployeeID: "emp-3"}
	token, err := GenerateToken("test-secret", claims, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := ParseToken("test-secret", token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.UserID != "u-1" || parsed.Role != RoleEmployee || parsed.EmployeeID != "emp-3" {
		t.Fatalf("claims not preserved: %+v", parsed)
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	token, err := GenerateToken("secret-a", Claims{UserID: "u-1", Role: RoleAdmin}, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseToken("secret-b", token); err == nil {
		t.Fatal("expected parse to fail with wrong secret")
	}
}
