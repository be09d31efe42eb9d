package sqlite

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/repository"
)

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository returns a gorm-backed implementation of TaskRepository.
func NewTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) List(ctx context.Context, ownerID int64) ([]domain.Task, error) {
	var records []taskRecord
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	tasks := make([]domain.Task, 0, len(records))
	for _, record := range records {
		tasks = append(tasks, record.toDomain())
	}
	return tasks, nil
}

func (r *taskRepository) Get(ctx context.Context, ownerID, id int64) (*domain.Task, error) {
	return r.get(r.db.WithContext(ctx), ownerID, id)
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.Status == "" {
		task.Status = domain.TaskPending
	}
	record := taskRecord{
		OwnerID:     task.OwnerID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
	}
	if err := r.db.WithContext(ctx).Omit("Owner").Create(&record).Error; err != nil {
		return nil, err
	}
	task.ID = record.ID
	task.CreatedAt = record.CreatedAt
	task.UpdatedAt = record.UpdatedAt
	return task, nil
}

// Update filters by id and owner in the UPDATE itself; the follow-up read
// shares the transaction.
func (r *taskRepository) Update(ctx context.Context, ownerID, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	var updated *domain.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		changes := map[string]interface{}{
			"status":     string(patch.Status),
			"updated_at": time.Now(),
		}
		if patch.Title != nil {
			changes["title"] = *patch.Title
		}
		if patch.Description != nil {
			changes["description"] = *patch.Description
		}

		result := tx.Model(&taskRecord{}).
			Where("id = ? AND owner_id = ?", id, ownerID).
			Updates(changes)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrTaskNotFound
		}

		task, err := r.get(tx, ownerID, id)
		if err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *taskRepository) Delete(ctx context.Context, ownerID, id int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&taskRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) get(db *gorm.DB, ownerID, id int64) (*domain.Task, error) {
	var record taskRecord
	if err := db.Where("id = ? AND owner_id = ?", id, ownerID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	task := record.toDomain()
	return &task, nil
}
