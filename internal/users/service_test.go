package users

import (
	"context"
	"strings"
	"testing"

	"resume-match/internal/shared/auth"
)

func newTestService() *Service {
	return NewService(NewMemoryRepo(), auth.NewSigner("test-secret"))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	user, token, err := svc.Register(ctx, RegisterInput{
		Email:    "Ada@Example.com",
		Username: "ada",
		FullName: "Ada Lovelace",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if token == "" {
		t.Fatalf("expected a session token")
	}
	if user.PasswordHash == "correct horse" {
		t.Fatalf("password must not be stored in the clear")
	}

	got, loginToken, err := svc.Login(ctx, "ada@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, got.ID)
	}
	if loginToken == "" {
		t.Fatalf("expected a session token on login")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, RegisterInput{
		Email:    "bob@example.com",
		Username: "bob",
		Password: "long enough",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, _, err := svc.Login(ctx, "bob@example.com", "wrong password"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "whatever"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, RegisterInput{Email: "not-an-email", Username: "x", Password: "long enough"}); err == nil {
		t.Fatalf("expected invalid email error")
	}
	if _, _, err := svc.Register(ctx, RegisterInput{Email: "ok@example.com", Username: "x", Password: "short"}); err == nil || !strings.Contains(err.Error(), "at least") {
		t.Fatalf("expected short password error, got %v", err)
	}

	if _, _, err := svc.Register(ctx, RegisterInput{Email: "dup@example.com", Username: "first", Password: "long enough"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, _, err := svc.Register(ctx, RegisterInput{Email: "dup@example.com", Username: "second", Password: "long enough"}); err != ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if _, _, err := svc.Register(ctx, RegisterInput{Email: "other@example.com", Username: "first", Password: "long enough"}); err != ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}
