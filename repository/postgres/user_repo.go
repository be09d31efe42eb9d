package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/repository"
)

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository instantiates a Postgres-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Exists(ctx context.Context, login string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE login = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, login).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *userRepository) Create(ctx context.Context, login, passwordHash string) (*domain.User, error) {
	const query = `
	INSERT INTO users (login, password_hash)
	VALUES ($1, $2)
	RETURNING id, created_at
	`
	user := domain.User{Login: login, PasswordHash: passwordHash}
	if err := r.pool.QueryRow(ctx, query, login, passwordHash).Scan(&user.ID, &user.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateUser
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	const query = `
		SELECT id, login, password_hash, created_at
		FROM users
		WHERE login = $1
	`
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, login).Scan(&user.ID, &user.Login, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
