package repository

import (
	"context"

	"github.com/fastygo/todo/domain"
)

// TaskRepository is owner-scoped: every method filters by ownerID and
// reports domain.ErrTaskNotFound for tasks that are absent or owned by
// someone else.
type TaskRepository interface {
	List(ctx context.Context, ownerID int64) ([]domain.Task, error)
	Get(ctx context.Context, ownerID, id int64) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, ownerID, id int64, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, id int64) error
}
