package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todo/api/transport"
	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/internal/middleware"
	"github.com/fastygo/todo/internal/security"
	"github.com/fastygo/todo/pkg/httpcontext"
	authUC "github.com/fastygo/todo/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc      *authUC.UseCase
	cookies middleware.SessionCookies
}

func NewAuthHandler(uc *authUC.UseCase, cookies middleware.SessionCookies, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		cookies:     cookies,
	}
}

// @Summary Auth page
// @Tags auth
// @Router /auth [get]
func (h *AuthHandler) Page(ctx *fasthttp.RequestCtx) {
	h.respondJSON(ctx, http.StatusOK, "Auth page")
}

// @Summary Log in and receive the session cookie
// @Tags auth
// @Router /auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.CredentialsRequest
	if err := bind(ctx, &req); err != nil {
		h.respondError(ctx, domain.ErrInvalidCredentials)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	issued, err := h.uc.Login(stdCtx, req.Login, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.setSessionCookies(ctx, issued)
	h.respondJSON(ctx, http.StatusOK, transport.LoginResponse{
		Msg:         "Access approved",
		Success:     true,
		AccessToken: issued.Token,
		ExpiresAt:   issued.ExpiresAt.Unix(),
	})
}

// @Summary Register a new account
// @Tags auth
// @Router /auth/registration [post]
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	var req transport.CredentialsRequest
	if err := bind(ctx, &req); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if _, err := h.uc.Register(stdCtx, req.Login, req.Password); err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) {
			h.logger.Info("registration rejected: login taken", zap.String("request_id", httpcontext.RequestID(ctx)))
		}
		h.respondError(ctx, err)
		return
	}
	h.respondMessage(ctx, http.StatusCreated, "Successfully registered")
}

// @Summary Drop the session cookies
// @Tags auth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	h.expireCookie(ctx, h.cookies.CookieName())
	h.expireCookie(ctx, middleware.CSRFCookieName)
	h.respondMessage(ctx, http.StatusOK, "Logged out")
}

func (h *AuthHandler) setSessionCookies(ctx *fasthttp.RequestCtx, issued security.IssuedToken) {
	maxAge := int(time.Until(issued.ExpiresAt).Seconds())

	h.setCookie(ctx, h.cookies.CookieName(), issued.Token, maxAge, issued.ExpiresAt, true)
	if h.cookies.CSRFProtect {
		// readable by scripts so the client can echo it in X-CSRF-Token
		h.setCookie(ctx, middleware.CSRFCookieName, issued.CSRF, maxAge, issued.ExpiresAt, false)
	}
}

func (h *AuthHandler) setCookie(ctx *fasthttp.RequestCtx, name, value string, maxAge int, expires time.Time, httpOnly bool) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)

	c.SetKey(name)
	c.SetValue(value)
	c.SetPath("/")
	c.SetHTTPOnly(httpOnly)
	c.SetSecure(h.cookies.Secure)
	c.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	c.SetMaxAge(maxAge)
	c.SetExpire(expires)
	ctx.Response.Header.SetCookie(c)
}

func (h *AuthHandler) expireCookie(ctx *fasthttp.RequestCtx, name string) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)

	c.SetKey(name)
	c.SetPath("/")
	c.SetExpire(fasthttp.CookieExpireDelete)
	ctx.Response.Header.SetCookie(c)
}
