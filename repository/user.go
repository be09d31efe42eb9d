package repository

import (
	"context"

	"github.com/fastygo/todo/domain"
)

// UserRepository persists accounts. Logins are unique and compared case-sensitively.
type UserRepository interface {
	Exists(ctx context.Context, login string) (bool, error)
	// Create returns domain.ErrDuplicateUser when the login is taken.
	Create(ctx context.Context, login, passwordHash string) (*domain.User, error)
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
}
