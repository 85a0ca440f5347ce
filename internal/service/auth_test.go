package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/msomdec/mercado-social/internal/domain"
	"github.com/msomdec/mercado-social/internal/service"
	"github.com/msomdec/mercado-social/internal/validation"
)

func TestAuthService_Register_Personal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, store, err := env.auth.Register(ctx, service.RegisterInput{
		Username:    "ana",
		Email:       "ana@example.com",
		Password:    "password123",
		AccountKind: "PERSONAL",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected user ID to be set")
	}
	if store != nil {
		t.Fatalf("expected no store for personal account, got %+v", store)
	}
	if user.PasswordHash == "password123" {
		t.Fatal("expected password to be hashed")
	}
}

func TestAuthService_Register_BusinessCreatesStore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, store := env.registerBusiness(t, "bodega", "Bodega Central")
	if store == nil || store.ID == 0 {
		t.Fatal("expected store to be created")
	}
	if store.OwnerID != user.ID {
		t.Fatalf("expected store owner %d, got %d", user.ID, store.OwnerID)
	}

	got, err := env.db.Stores().GetByOwner(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByOwner: %v", err)
	}
	if got.Name != "Bodega Central" || got.City != "Lima" {
		t.Fatalf("unexpected store: %+v", got)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.register(t, "dup")
	_, _, err := env.auth.Register(ctx, service.RegisterInput{
		Username:    "other",
		Email:       "dup@example.com",
		Password:    "password456",
		AccountKind: "PERSONAL",
	})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	valid := service.RegisterInput{
		Username:    "user",
		Email:       "user@example.com",
		Password:    "password123",
		AccountKind: "PERSONAL",
	}

	tests := []struct {
		name  string
		field string
		edit  func(in *service.RegisterInput)
	}{
		{"empty username", "username", func(in *service.RegisterInput) { in.Username = "" }},
		{"empty email", "email", func(in *service.RegisterInput) { in.Email = "" }},
		{"empty password", "password", func(in *service.RegisterInput) { in.Password = "" }},
		{"empty account kind", "accountKind", func(in *service.RegisterInput) { in.AccountKind = "" }},
		{"unknown account kind", "accountKind", func(in *service.RegisterInput) { in.AccountKind = "ADMIN" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.edit(&in)
			_, _, err := env.auth.Register(ctx, in)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Fatalf("expected error to name %q, got %v", tc.field, err)
			}
		})
	}

	// No user may exist after the rejected attempts.
	if _, err := env.db.Users().GetByEmail(ctx, "user@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected no user to be created, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registered := env.register(t, "login")

	user, token, err := env.auth.Login(ctx, "login@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if user.ID != registered.ID {
		t.Fatalf("expected user %d, got %d", registered.ID, user.ID)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "wrongpw")

	_, _, err := env.auth.Login(context.Background(), "wrongpw@example.com", "wrongpassword")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.auth.Login(context.Background(), "nobody@example.com", "password123")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_JWT_GenerateAndValidate(t *testing.T) {
	env := newTestEnv(t)
	registered := env.register(t, "jwt")

	_, token, err := env.auth.Login(context.Background(), "jwt@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	userID, err := env.auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != registered.ID {
		t.Fatalf("expected user ID %d, got %d", registered.ID, userID)
	}
}

func TestAuthService_JWT_InvalidToken(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.ValidateToken("not-a-valid-jwt")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_JWT_TamperedToken(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "tamper")

	_, token, err := env.auth.Login(context.Background(), "tamper@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Flip several characters in the signature.
	tampered := token[:len(token)-5] + "XXXXX"
	if _, err := env.auth.ValidateToken(tampered); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for tampered token, got %v", err)
	}
}

func TestAuthService_JWT_WrongSecret(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "secret")

	_, token, err := env.auth.Login(context.Background(), "secret@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	other := service.NewAuthService(env.db.Users(), validation.New(), "a-different-secret-of-sufficient-size", 4)
	if _, err := other.ValidateToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong secret, got %v", err)
	}
}
