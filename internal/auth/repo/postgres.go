package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"ride-tracker/internal/auth/domain"
	"ride-tracker/internal/shared/apperrors"
)

type AuthRepo struct {
	db *pgxpool.Pool
}

func NewAuthRepo(db *pgxpool.Pool) *AuthRepo {
	return &AuthRepo{db: db}
}

func (r *AuthRepo) CreateUser(ctx context.Context, user *domain.User) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (role, username, first_name, last_name, email, phone_number, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		user.Role, user.Username, user.FirstName, user.LastName,
		user.Email, user.PhoneNumber, user.PasswordHash,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, apperrors.ErrEmailTaken
		}
		return 0, fmt.Errorf("insert user failed: %w", err)
	}
	return id, nil
}

func (r *AuthRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, role, username, first_name, last_name, email, phone_number,
		       password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)

	user := &domain.User{}
	err := row.Scan(
		&user.ID, &user.Role, &user.Username, &user.FirstName, &user.LastName,
		&user.Email, &user.PhoneNumber, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
