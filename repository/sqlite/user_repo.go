package sqlite

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/repository"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a gorm-backed user repository. The *gorm.DB
// must be opened with TranslateError so unique violations surface as
// gorm.ErrDuplicatedKey.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Exists(ctx context.Context, login string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&userRecord{}).
		Where("login = ?", login).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) Create(ctx context.Context, login, passwordHash string) (*domain.User, error) {
	record := userRecord{Login: login, PasswordHash: passwordHash}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateUser
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	var record userRecord
	// SQLite's = on TEXT is binary, so the match stays case-sensitive.
	if err := r.db.WithContext(ctx).Where("login = ?", login).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}
