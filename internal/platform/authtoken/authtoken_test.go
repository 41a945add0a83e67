package authtoken

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	secret := []byte("test-secret")

	token, err := Issue(secret, "admin", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	subject, err := Verify(secret, token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject != "admin" {
		t.Fatalf("subject = %q, want %q", subject, "admin")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := Issue([]byte("secret-a"), "admin", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := Verify([]byte("secret-b"), token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("verify with wrong secret = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	secret := []byte("test-secret")
	token, err := Issue(secret, "admin", time.Millisecond)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := Verify(secret, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("verify expired = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, err := Verify([]byte("secret"), "not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("verify garbage = %v, want ErrInvalidToken", err)
	}
}

func TestIssueValidatesInputs(t *testing.T) {
	if _, err := Issue(nil, "admin", time.Minute); err == nil {
		t.Fatal("expected error without secret")
	}
	if _, err := Issue([]byte("secret"), " ", time.Minute); err == nil {
		t.Fatal("expected error without subject")
	}
	if _, err := Issue([]byte("secret"), "admin", 0); err == nil {
		t.Fatal("expected error without ttl")
	}
}
