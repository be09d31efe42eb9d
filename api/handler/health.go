package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todo/api/transport"
	"github.com/fastygo/todo/internal/infrastructure/monitor"
	"github.com/fastygo/todo/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

type healthResponse struct {
	Success   bool            `json:"success"`
	Timestamp time.Time       `json:"timestamp"`
	LastCheck time.Time       `json:"last_check"`
	Services  map[string]bool `json:"services"`
}

func NewHealthHandler(mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	if h.monitor == nil {
		h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("monitor not configured"))
		return
	}
	status := h.monitor.GetStatus()
	payload := healthResponse{
		Success:   status.Healthy,
		Timestamp: time.Now().UTC(),
		LastCheck: status.LastCheck.UTC(),
		Services:  status.Checks,
	}

	if status.Healthy {
		h.respondJSON(ctx, http.StatusOK, payload)
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable, payload)
}
