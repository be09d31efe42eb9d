package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/todo/pkg/logger"
)

const (
	HeaderRequestID = "X-Request-ID"

	requestIDValue = "httpcontext.request_id"
	userIDValue    = "httpcontext.user_id"
)

// Adapter converts fasthttp.RequestCtx into a stdlib context with deadlines and metadata.
type Adapter struct {
	timeout time.Duration
}

// NewAdapter constructs a new Adapter using the provided timeout.
func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{
		timeout: timeout,
	}
}

// Attach creates a context with timeout derived from the adapter carrying the
// request id and, on authenticated routes, the caller's id. Use cases read
// them back through logger.FromContext.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)

	stdCtx = appLogger.ContextWithRequestID(stdCtx, RequestID(ctx))
	if uid, ok := UserID(ctx); ok {
		stdCtx = appLogger.ContextWithUserID(stdCtx, uid)
	}

	return stdCtx, cancel
}

// RequestID returns the request id for ctx, taking it from the X-Request-ID
// header or generating one. The id is echoed on the response once.
func RequestID(ctx *fasthttp.RequestCtx) string {
	if ctx == nil {
		return uuid.NewString()
	}
	if id, ok := ctx.UserValue(requestIDValue).(string); ok {
		return id
	}
	id := string(ctx.Request.Header.Peek(HeaderRequestID))
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}
	ctx.SetUserValue(requestIDValue, id)
	ctx.Response.Header.Set(HeaderRequestID, id)
	return id
}

// SetUserID records the verified caller on the request. Only the access
// guard calls it.
func SetUserID(ctx *fasthttp.RequestCtx, userID int64) {
	ctx.SetUserValue(userIDValue, userID)
}

// UserID returns the verified caller recorded by SetUserID.
func UserID(ctx *fasthttp.RequestCtx) (int64, bool) {
	if ctx == nil {
		return 0, false
	}
	uid, ok := ctx.UserValue(userIDValue).(int64)
	return uid, ok
}
