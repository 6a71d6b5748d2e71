package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"ride-tracker/internal/auth/domain"
	"ride-tracker/internal/shared/apperrors"
	"ride-tracker/internal/shared/jwt"
	"ride-tracker/internal/shared/util"
)

type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}, nextID: 1}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *domain.User) (int64, error) {
	if _, exists := f.users[user.Email]; exists {
		return 0, apperrors.ErrEmailTaken
	}
	id := f.nextID
	f.nextID++
	stored := *user
	stored.ID = id
	f.users[user.Email] = &stored
	return id, nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func newAuthService() (*AuthService, *fakeUserRepo, *jwt.Manager) {
	repo := newFakeUserRepo()
	tokens := jwt.NewManager("test-secret", time.Hour)
	return NewAuthService(repo, tokens, util.New()), repo, tokens
}

func TestRegister(t *testing.T) {
	svc, repo, _ := newAuthService()

	user, err := svc.Register(context.Background(), domain.RegisterRequest{
		Username: "rita",
		Email:    "rita@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if user.ID == 0 {
		t.Error("registered user has no id")
	}
	if user.Role != "user" {
		t.Errorf("default role = %q, want user", user.Role)
	}
	if user.PasswordHash == "correct horse" {
		t.Error("password stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
	if _, ok := repo.users["rita@example.com"]; !ok {
		t.Error("user not persisted")
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		req  domain.RegisterRequest
	}{
		{"empty email", domain.RegisterRequest{Username: "u", Password: "longenough"}},
		{"empty username", domain.RegisterRequest{Email: "u@example.com", Password: "longenough"}},
		{"short password", domain.RegisterRequest{Username: "u", Email: "u@example.com", Password: "short"}},
		{"unknown role", domain.RegisterRequest{Username: "u", Email: "u@example.com", Password: "longenough", Role: "superuser"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newAuthService()
			if _, err := svc.Register(context.Background(), tt.req); !errors.Is(err, apperrors.ErrValidation) {
				t.Errorf("got %v, want ErrValidation", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService()
	req := domain.RegisterRequest{Username: "rita", Email: "rita@example.com", Password: "longenough"}

	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, apperrors.ErrEmailTaken) {
		t.Errorf("got %v, want ErrEmailTaken", err)
	}
}

func TestRegisterAdminRole(t *testing.T) {
	svc, _, _ := newAuthService()

	user, err := svc.Register(context.Background(), domain.RegisterRequest{
		Username: "ops",
		Email:    "ops@example.com",
		Password: "longenough",
		Role:     "admin",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Role != "admin" {
		t.Errorf("role = %q, want admin", user.Role)
	}
}

func TestLogin(t *testing.T) {
	svc, _, tokens := newAuthService()
	if _, err := svc.Register(context.Background(), domain.RegisterRequest{
		Username: "ops",
		Email:    "ops@example.com",
		Password: "longenough",
		Role:     "admin",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "ops@example.com", "longenough")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.Email != "ops@example.com" {
		t.Errorf("user = %+v", user)
	}

	claims, err := tokens.ParseToken(token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Role != "admin" || claims.UserID != user.ID {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _, _ := newAuthService()
	if _, err := svc.Register(context.Background(), domain.RegisterRequest{
		Username: "rita",
		Email:    "rita@example.com",
		Password: "longenough",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Unknown email and wrong password are indistinguishable to the caller.
	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "longenough"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(context.Background(), "rita@example.com", "wrongpassword"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
}
