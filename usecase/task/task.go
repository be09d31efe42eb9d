package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/todo/domain"
	appLogger "github.com/fastygo/todo/pkg/logger"
	"github.com/fastygo/todo/repository"
)

// UseCase performs task operations on behalf of an authenticated owner.
// ownerID always comes from a verified token, never from request input.
type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

// NewTask is the input for Create.
type NewTask struct {
	Title       string
	Description *string
	Status      domain.TaskStatus
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

func (uc *UseCase) List(ctx context.Context, ownerID int64) ([]domain.Task, error) {
	return uc.tasks.List(ctx, ownerID)
}

func (uc *UseCase) Get(ctx context.Context, ownerID, id int64) (*domain.Task, error) {
	return uc.tasks.Get(ctx, ownerID, id)
}

func (uc *UseCase) Create(ctx context.Context, ownerID int64, input NewTask) (*domain.Task, error) {
	task := &domain.Task{
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
	}
	if task.Status == "" {
		task.Status = domain.TaskPending
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}
	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}
	appLogger.FromContext(ctx, uc.logger).Debug("task created", zap.Int64("owner_id", ownerID), zap.Int64("task_id", created.ID))
	return created, nil
}

func (uc *UseCase) Update(ctx context.Context, ownerID, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	updated, err := uc.tasks.Update(ctx, ownerID, id, patch)
	if err != nil {
		return nil, err
	}
	appLogger.FromContext(ctx, uc.logger).Debug("task updated", zap.Int64("task_id", id), zap.String("status", string(updated.Status)))
	return updated, nil
}

func (uc *UseCase) Delete(ctx context.Context, ownerID, id int64) error {
	if err := uc.tasks.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	appLogger.FromContext(ctx, uc.logger).Debug("task deleted", zap.Int64("task_id", id))
	return nil
}
