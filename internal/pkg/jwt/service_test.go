package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIssueAndValidate(t *testing.T) {
	svc := NewHMACService("secret", time.Hour)
	id := uuid.New()

	tok, err := svc.IssueAccessToken(id, "r@example.com", RoleRecruiter)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != id || claims.Role != RoleRecruiter || claims.Email != "r@example.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestValidate_Expired(t *testing.T) {
	svc := NewHMACService("secret", time.Minute)
	base := time.Now()
	svc.now = func() time.Time { return base }

	tok, err := svc.IssueAccessToken(uuid.New(), "", RoleCandidate)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	svc.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	tok, err := NewHMACService("a", time.Hour).IssueAccessToken(uuid.New(), "", RoleCandidate)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if _, err := NewHMACService("b", time.Hour).ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidate_Garbage(t *testing.T) {
	if _, err := NewHMACService("a", time.Hour).ValidateToken("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
