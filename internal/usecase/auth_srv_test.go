package usecase

import (
	"context"
	"errors"
	"testing"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/dto/request"
	"hotel-reservation/pkg/utils"

	"go.uber.org/zap"
)

func (e *testEnv) authService() AuthService {
	config := &utils.Config{
		JWT:   utils.JWTConfig{Secret: "test-secret", ExpiryHours: 24},
		Hotel: e.hotel,
	}
	return NewAuthService(e.repo, config, e.clock, zap.NewNop())
}

func registerRequest(username, email string) *request.RegisterRequest {
	return &request.RegisterRequest{
		Username: username,
		Email:    email,
		Password: "secret-password",
		FullName: "Ana Guest",
	}
}

func TestRegister(t *testing.T) {
	env := newTestEnv()
	service := env.authService()

	resp, err := service.Register(context.Background(), registerRequest("ana", "ana@example.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected an access token")
	}
	if resp.User.Role != string(entity.RoleGuest) {
		t.Fatalf("expected guest role, got %s", resp.User.Role)
	}

	stored, _ := env.users.FindByUsername(context.Background(), "ana")
	if stored == nil {
		t.Fatal("user not persisted")
	}
	if stored.PasswordHash == "secret-password" {
		t.Fatal("password stored in plain text")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv()
	service := env.authService()

	if _, err := service.Register(context.Background(), registerRequest("ana", "ana@example.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := service.Register(context.Background(), registerRequest("ana", "other@example.com"))
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv()
	service := env.authService()

	if _, err := service.Register(context.Background(), registerRequest("ana", "ana@example.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := service.Register(context.Background(), registerRequest("bob", "ana@example.com"))
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv()
	service := env.authService()

	if _, err := service.Register(context.Background(), registerRequest("ana", "ana@example.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := service.Login(context.Background(), &request.LoginRequest{Username: "ana", Password: "secret-password"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected an access token")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv()
	service := env.authService()

	if _, err := service.Register(context.Background(), registerRequest("ana", "ana@example.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := service.Login(context.Background(), &request.LoginRequest{Username: "ana", Password: "wrong"})
	var forbidden *ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	env := newTestEnv()
	service := env.authService()

	_, err := service.Login(context.Background(), &request.LoginRequest{Username: "ghost", Password: "whatever"})
	var forbidden *ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
}
