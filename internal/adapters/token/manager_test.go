package token_test

import (
	"testing"
	"time"

	"middlebro/internal/adapters/token"
)

func TestIssueAndVerify(t *testing.T) {
	m := token.New("test-secret", time.Hour)

	tok, err := m.Issue(42, "salon@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "salon@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerify_Expired(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	issuer := token.NewAt("test-secret", time.Hour, func() time.Time { return past })

	tok, err := issuer.Issue(1, "a@b.c")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := token.New("test-secret", time.Hour).Verify(tok); err == nil {
		t.Fatal("expected expired token to fail verification")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	tok, err := token.New("secret-a", time.Hour).Issue(1, "a@b.c")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := token.New("secret-b", time.Hour).Verify(tok); err == nil {
		t.Fatal("expected signature mismatch to fail verification")
	}
}

func TestIssue_EmptySecret(t *testing.T) {
	if _, err := token.New("", time.Hour).Issue(1, "a@b.c"); err == nil {
		t.Fatal("expected error with empty secret")
	}
}
