package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todo/api/transport"
	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/pkg/httpcontext"
	taskUC "github.com/fastygo/todo/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List the caller's tasks
// @Tags tasks
// @Router /account/tasks [get]
func (h *TaskHandler) List(ctx *fasthttp.RequestCtx) {
	ownerID, ok := h.callerID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.List(stdCtx, ownerID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	h.respondJSON(ctx, http.StatusOK, tasks)
}

// @Summary Get one of the caller's tasks
// @Tags tasks
// @Router /account/tasks/{id} [get]
func (h *TaskHandler) Get(ctx *fasthttp.RequestCtx) {
	ownerID, ok := h.callerID(ctx)
	if !ok {
		return
	}
	id, err := taskID(ctx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.Get(stdCtx, ownerID, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, task)
}

// @Summary Create a task
// @Tags tasks
// @Router /account/tasks [post]
func (h *TaskHandler) Create(ctx *fasthttp.RequestCtx) {
	ownerID, ok := h.callerID(ctx)
	if !ok {
		return
	}

	var req transport.TaskCreateRequest
	if err := bind(ctx, &req); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, ownerID, taskUC.NewTask{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, transport.TaskCreatedResponse{
		Msg:     "Task successfully created",
		Success: true,
		ID:      created.ID,
	})
}

// @Summary Edit a task
// @Tags tasks
// @Router /account/tasks/{id} [put]
func (h *TaskHandler) Update(ctx *fasthttp.RequestCtx) {
	ownerID, ok := h.callerID(ctx)
	if !ok {
		return
	}
	id, err := taskID(ctx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	var req transport.TaskEditRequest
	if err := bind(ctx, &req); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	patch := domain.TaskPatch{
		Title:       nonEmpty(req.Title),
		Description: nonEmpty(req.Description),
		Status:      domain.TaskStatus(req.Status),
	}
	if _, err := h.uc.Update(stdCtx, ownerID, id, patch); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondMessage(ctx, http.StatusOK, "Successfully edited")
}

// @Summary Delete a task
// @Tags tasks
// @Router /account/task/{id} [delete]
func (h *TaskHandler) Delete(ctx *fasthttp.RequestCtx) {
	ownerID, ok := h.callerID(ctx)
	if !ok {
		return
	}
	id, err := taskID(ctx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, ownerID, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondMessage(ctx, http.StatusOK, "Task successfully deleted")
}

// nonEmpty treats an empty string like an absent field: edits never blank
// out a title or description.
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
