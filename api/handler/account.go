package handler

import (
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todo/api/transport"
	"github.com/fastygo/todo/pkg/httpcontext"
)

type AccountHandler struct {
	baseHandler
}

func NewAccountHandler(adapter *httpcontext.Adapter, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{baseHandler: newBaseHandler(adapter, logger)}
}

// @Summary Account page
// @Tags account
// @Router /account [get]
func (h *AccountHandler) Get(ctx *fasthttp.RequestCtx) {
	uid, ok := h.callerID(ctx)
	if !ok {
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.AccountResponse{
		Msg:     "Your account page",
		UID:     strconv.FormatInt(uid, 10),
		Success: true,
	})
}
