package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todo/api/transport"
	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/pkg/httpcontext"
)

const msgInternal = "Internal server error"

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode response", zap.String("request_id", httpcontext.RequestID(ctx)), zap.Error(err))
		status = http.StatusInternalServerError
		body, _ = json.Marshal(transport.NewError(msgInternal))
	}
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func (h baseHandler) respondMessage(ctx *fasthttp.RequestCtx, status int, msg string) {
	h.respondJSON(ctx, status, transport.NewSuccess(msg))
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	status, msg := mapError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("request_id", httpcontext.RequestID(ctx)),
			zap.String("path", string(ctx.Path())),
			zap.Error(err))
	}
	h.respondJSON(ctx, status, transport.NewError(msg))
}

// mapError translates the domain taxonomy into fixed HTTP statuses. Both
// kinds of credential failure collapse into one 401 message.
func mapError(err error) (int, string) {
	var dErr *domain.Error
	if !errors.As(err, &dErr) {
		return http.StatusInternalServerError, msgInternal
	}
	switch dErr.Code {
	case domain.ErrCodeUnauthorized:
		return http.StatusUnauthorized, transport.AccessDenied
	case domain.ErrCodeConflict, domain.ErrCodeForbidden:
		return http.StatusForbidden, dErr.Message
	case domain.ErrCodeInvalid:
		return http.StatusBadRequest, dErr.Message
	case domain.ErrCodeNotFound:
		return http.StatusNotFound, dErr.Message
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// bind decodes the request into dst. JSON bodies are used as is; for empty
// or form-encoded bodies the query and form arguments are collected instead.
func bind(ctx *fasthttp.RequestCtx, dst interface{}) error {
	body := ctx.PostBody()
	contentType := string(ctx.Request.Header.ContentType())
	if len(body) > 0 && !isFormContent(contentType) {
		if err := json.Unmarshal(body, dst); err != nil {
			return domain.ErrInvalidPayload
		}
		return nil
	}

	values := make(map[string]string)
	ctx.QueryArgs().VisitAll(func(key, value []byte) {
		values[string(key)] = string(value)
	})
	ctx.PostArgs().VisitAll(func(key, value []byte) {
		values[string(key)] = string(value)
	})
	if len(values) == 0 {
		return nil
	}

	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return domain.ErrInvalidPayload
	}
	return nil
}

func isFormContent(contentType string) bool {
	return strings.HasPrefix(contentType, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(contentType, "multipart/form-data")
}

// taskID reads the {id} path parameter. Unparseable ids behave like ids
// that do not exist.
func taskID(ctx *fasthttp.RequestCtx) (int64, error) {
	raw, _ := ctx.UserValue("id").(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrTaskNotFound
	}
	return id, nil
}

// callerID returns the user id verified by the access guard.
func (h baseHandler) callerID(ctx *fasthttp.RequestCtx) (int64, bool) {
	uid, ok := httpcontext.UserID(ctx)
	if !ok {
		h.respondError(ctx, domain.ErrMissingCredential)
	}
	return uid, ok
}
