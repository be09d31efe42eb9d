package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todo/api/transport"
	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/internal/security"
	"github.com/fastygo/todo/pkg/httpcontext"
)

const (
	DefaultCookieName = "access_token"
	CSRFCookieName    = "csrf_access_token"
	CSRFHeader        = "X-CSRF-Token"
)

// SessionCookies describes how the access token travels in cookies.
type SessionCookies struct {
	Name        string
	Secure      bool
	CSRFProtect bool
}

// CookieName returns the access token cookie name.
func (c SessionCookies) CookieName() string {
	if c.Name == "" {
		return DefaultCookieName
	}
	return c.Name
}

// Middleware wraps a handler.
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// Auth is the access guard for protected routes. It accepts a bearer token
// from the Authorization header or the session cookie; cookie-borne tokens on
// unsafe methods must also present the CSRF value in the X-CSRF-Token header.
// Every failure is answered with the same 401 body.
func Auth(tokens *security.TokenIssuer, cookies SessionCookies, logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			userID, err := authenticate(ctx, tokens, cookies)
			if err != nil {
				logger.Debug("request rejected by access guard",
					zap.String("request_id", httpcontext.RequestID(ctx)),
					zap.String("path", string(ctx.Path())),
					zap.Error(err))
				Unauthorized(ctx)
				return
			}
			httpcontext.SetUserID(ctx, userID)
			next(ctx)
		}
	}
}

// Unauthorized writes the uniform 401 response.
func Unauthorized(ctx *fasthttp.RequestCtx) {
	body, _ := json.Marshal(transport.NewError(transport.AccessDenied))
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	ctx.SetBody(body)
}

func authenticate(ctx *fasthttp.RequestCtx, tokens *security.TokenIssuer, cookies SessionCookies) (int64, error) {
	tokenString, fromCookie := extractToken(ctx, cookies.CookieName())
	if tokenString == "" {
		return 0, domain.ErrMissingCredential
	}

	claims, err := tokens.Parse(tokenString)
	if err != nil {
		return 0, domain.WrapError(domain.ErrCodeUnauthorized, domain.ErrInvalidCredential.Message, err)
	}

	if fromCookie && cookies.CSRFProtect && !isSafeMethod(ctx) {
		header := ctx.Request.Header.Peek(CSRFHeader)
		if claims.CSRF == "" || subtle.ConstantTimeCompare(header, []byte(claims.CSRF)) != 1 {
			return 0, domain.WrapError(domain.ErrCodeUnauthorized, domain.ErrInvalidCredential.Message, errors.New("csrf mismatch"))
		}
	}

	userID, err := claims.UserID()
	if err != nil {
		return 0, domain.WrapError(domain.ErrCodeUnauthorized, domain.ErrInvalidCredential.Message, err)
	}
	return userID, nil
}

// extractToken prefers the Authorization header and falls back to the cookie.
func extractToken(ctx *fasthttp.RequestCtx, cookieName string) (string, bool) {
	header := strings.TrimSpace(string(ctx.Request.Header.Peek(fasthttp.HeaderAuthorization)))
	if header != "" {
		if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
			return strings.TrimSpace(header[7:]), false
		}
		return header, false
	}
	return string(ctx.Request.Header.Cookie(cookieName)), true
}

func isSafeMethod(ctx *fasthttp.RequestCtx) bool {
	return ctx.IsGet() || ctx.IsHead() || ctx.IsOptions()
}
