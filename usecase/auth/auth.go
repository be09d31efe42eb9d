package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/internal/security"
	appLogger "github.com/fastygo/todo/pkg/logger"
	"github.com/fastygo/todo/repository"
)

type UseCase struct {
	users  repository.UserRepository
	hasher *security.PasswordHasher
	tokens *security.TokenIssuer
	logger *zap.Logger
}

func New(users repository.UserRepository, hasher *security.PasswordHasher, tokens *security.TokenIssuer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates an account. The unique index on login decides races
// between concurrent registrations; the loser gets domain.ErrDuplicateUser.
func (uc *UseCase) Register(ctx context.Context, login, password string) (*domain.User, error) {
	if err := domain.ValidateCredentials(login, password); err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user, err := uc.users.Create(ctx, login, hash)
	if err != nil {
		return nil, err
	}
	appLogger.FromContext(ctx, uc.logger).Info("user registered", zap.Int64("user_id", user.ID))
	return user, nil
}

// ValidateCredentials returns the id of the user with exactly this login
// and password, or domain.ErrInvalidCredentials.
func (uc *UseCase) ValidateCredentials(ctx context.Context, login, password string) (int64, error) {
	if login == "" || password == "" {
		return 0, domain.ErrInvalidCredentials
	}

	user, err := uc.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			uc.hasher.CompareDummy(password)
			return 0, domain.ErrInvalidCredentials
		}
		return 0, err
	}
	if !uc.hasher.Compare(user.PasswordHash, password) {
		return 0, domain.ErrInvalidCredentials
	}
	return user.ID, nil
}

// Login validates the credentials and issues an access token for the user.
func (uc *UseCase) Login(ctx context.Context, login, password string) (security.IssuedToken, error) {
	userID, err := uc.ValidateCredentials(ctx, login, password)
	if err != nil {
		return security.IssuedToken{}, err
	}
	issued, err := uc.tokens.Issue(userID)
	if err != nil {
		return security.IssuedToken{}, err
	}
	appLogger.FromContext(ctx, uc.logger).Debug("access token issued", zap.Int64("user_id", userID), zap.Time("expires_at", issued.ExpiresAt))
	return issued, nil
}
