package sqlite

import (
	"time"

	"github.com/fastygo/todo/domain"
)

// userRecord is the gorm mapping of the users table.
type userRecord struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Login        string    `gorm:"size:12;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	CreatedAt    time.Time
}

func (userRecord) TableName() string { return "users" }

func (u userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:           u.ID,
		Login:        u.Login,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

type taskRecord struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	OwnerID     int64      `gorm:"index;not null"`
	Owner       userRecord `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Title       string     `gorm:"size:50;not null"`
	Description *string    `gorm:"size:255"`
	Status      string     `gorm:"size:16;not null;default:Pending"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (taskRecord) TableName() string { return "tasks" }

func (t taskRecord) toDomain() domain.Task {
	return domain.Task{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Title:       t.Title,
		Description: t.Description,
		Status:      domain.TaskStatus(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
