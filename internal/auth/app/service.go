package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"ride-tracker/internal/auth/domain"
	"ride-tracker/internal/shared/apperrors"
	"ride-tracker/internal/shared/jwt"
	"ride-tracker/internal/shared/util"
	"ride-tracker/internal/shared/validation"
)

// Repo is the persistence surface the auth service needs.
type Repo interface {
	CreateUser(ctx context.Context, user *domain.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

type AuthService struct {
	repo   Repo
	tokens *jwt.Manager
	logger *util.Logger
}

func NewAuthService(repo Repo, tokens *jwt.Manager, logger *util.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, logger: logger}
}

// TokenTTL exposes the configured token lifetime for login responses.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokens.TTL()
}

func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	instance := "AuthService.Register"

	if err := validation.ValidateStringNotEmpty(req.Email, "email"); err != nil {
		return nil, apperrors.NewFieldError("email", apperrors.ErrValidation)
	}
	if err := validation.ValidateStringNotEmpty(req.Username, "username"); err != nil {
		return nil, apperrors.NewFieldError("username", apperrors.ErrValidation)
	}
	if len(req.Password) < 8 {
		return nil, apperrors.NewFieldError("password", apperrors.ErrValidation)
	}
	role := req.Role
	if role == "" {
		role = "user"
	}
	if role != "admin" && role != "user" {
		return nil, apperrors.NewFieldError("role", apperrors.ErrValidation)
	}

	s.logger.Info(instance, fmt.Sprintf("attempting to register new user [email=%s, role=%s]", req.Email, role))

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error(instance, fmt.Errorf("failed to hash password: %w", err))
		return nil, err
	}

	user := &domain.User{
		Role:         role,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: string(hash),
	}

	id, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if !apperrors.IsClientError(err) {
			s.logger.Error(instance, fmt.Errorf("failed to create user in DB: %w", err))
		}
		return nil, err
	}
	user.ID = id

	s.logger.OK(instance, fmt.Sprintf("user registered successfully [user_id=%d, email=%s]", id, req.Email))
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	instance := "AuthService.Login"

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn(instance, fmt.Sprintf("login failed: unknown email [email=%s]", email))
			return "", nil, apperrors.ErrInvalidCredentials
		}
		s.logger.Error(instance, fmt.Errorf("failed to query user: %w", err))
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn(instance, fmt.Sprintf("invalid password for user [email=%s]", email))
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		s.logger.Error(instance, fmt.Errorf("failed to generate token: %w", err))
		return "", nil, err
	}

	s.logger.OK(instance, fmt.Sprintf("user login successful [user_id=%d, role=%s]", user.ID, user.Role))
	return token, user, nil
}
