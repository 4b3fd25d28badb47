package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/teamokr/okr-system/internal/core/domain"
)

func TestAuthService_Register_CreatesEmployee(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", 0)

	user, err := svc.Register(context.Background(), "Alice", "alice@x.test", "password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleEmployee {
		t.Errorf("role = %q, self-registration must always yield employee", user.Role)
	}
	if user.PasswordHash == "password123" || user.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", 0)

	if _, err := svc.Register(context.Background(), "Alice", "alice@x.test", "password123"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), "Alice Again", "alice@x.test", "password456")
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", 0)

	if _, err := svc.Register(context.Background(), "", "a@x.test", "password123"); err == nil {
		t.Error("empty name must be rejected")
	}
	if _, err := svc.Register(context.Background(), "A", "a@x.test", ""); err == nil {
		t.Error("empty password must be rejected")
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", 0)

	registered, err := svc.Register(context.Background(), "Alice", "alice@x.test", "password123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "alice@x.test", "password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("logged-in user = %q, want %q", user.ID, registered.ID)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["sub"] != registered.ID {
		t.Errorf("sub claim = %v, want %q", claims["sub"], registered.ID)
	}
	if claims["role"] != domain.RoleEmployee {
		t.Errorf("role claim = %v, want %q", claims["role"], domain.RoleEmployee)
	}
	if _, ok := claims["exp"]; !ok {
		t.Error("token must carry an expiry")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", 0)

	if _, err := svc.Register(context.Background(), "Alice", "alice@x.test", "password123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, err := svc.Login(context.Background(), "alice@x.test", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", 0)

	_, _, err := svc.Login(context.Background(), "ghost@x.test", "password123")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
