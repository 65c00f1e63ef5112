package service

import (
	"context"
	"errors"
	"testing"

	"vitacare/health-app/internal/domain"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret"

func newAuthFixture() (AuthService, *fakeUserRepo) {
	userRepo := &fakeUserRepo{}
	return NewAuthService(userRepo, testJWTSecret, 0), userRepo
}

func TestRegister(t *testing.T) {
	svc, userRepo := newAuthFixture()

	user, err := svc.Register(context.Background(), "Ana", "ana@example.com", "s3cret-pass", domain.RolePatient)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID.IsZero() {
		t.Error("registered user must get an ID")
	}
	if user.PasswordHash != "" {
		t.Error("password hash must not be returned")
	}
	if len(userRepo.created) != 1 {
		t.Fatalf("created users = %d, want 1", len(userRepo.created))
	}
	stored := userRepo.created[0]
	if stored.Role != domain.RolePatient {
		t.Errorf("stored role = %q", stored.Role)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")) != nil {
		t.Error("stored hash must verify against the plain password")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture()

	if _, err := svc.Register(context.Background(), "Ana", "ana@example.com", "s3cret-pass", domain.RolePatient); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	_, err := svc.Register(context.Background(), "Imposter", "ana@example.com", "other-pass", domain.RoleClinician)
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("want ErrUserAlreadyExists, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthFixture()
	if _, err := svc.Register(context.Background(), "Ben", "ben@example.com", "s3cret-pass", domain.RoleClinician); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	token, user, err := svc.Login(context.Background(), "ben@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if user == nil || user.PasswordHash != "" {
		t.Fatal("login must return the user without the hash")
	}

	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims.UserID != user.ID.Hex() {
		t.Errorf("token uid = %q, want %q", claims.UserID, user.ID.Hex())
	}
	if claims.Role != domain.RoleClinician {
		t.Errorf("token role = %q", claims.Role)
	}
	if claims.Issuer != "vitacare" {
		t.Errorf("token issuer = %q", claims.Issuer)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newAuthFixture()
	if _, err := svc.Register(context.Background(), "Ben", "ben@example.com", "s3cret-pass", domain.RolePatient); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, _, err := svc.Login(context.Background(), "ben@example.com", "not-the-pass")
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("want ErrAuthenticationFailed, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture()

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("want ErrAuthenticationFailed, got %v", err)
	}
}
