package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todo/api/transport"
)

// DocsPath is where unmatched GET requests are redirected.
const DocsPath = "/docs"

// RouteInfo describes one entry of the route table.
type RouteInfo struct {
	Method  string `json:"method"`
	Path    string `json:"path"`
	Auth    bool   `json:"auth"`
	Summary string `json:"summary"`
}

type DocsHandler struct {
	baseHandler
	title  string
	routes []RouteInfo
}

func NewDocsHandler(title string, routes []RouteInfo, logger *zap.Logger) *DocsHandler {
	return &DocsHandler{
		baseHandler: newBaseHandler(nil, logger),
		title:       title,
		routes:      routes,
	}
}

// @Summary API description
// @Tags docs
// @Router /docs [get]
func (h *DocsHandler) Index(ctx *fasthttp.RequestCtx) {
	h.respondJSON(ctx, http.StatusOK, map[string]interface{}{
		"title":  h.title,
		"routes": h.routes,
	})
}

// NotFound redirects unmatched GET requests to the docs; other methods get a 404.
func (h *DocsHandler) NotFound(ctx *fasthttp.RequestCtx) {
	if ctx.IsGet() {
		ctx.Redirect(DocsPath, http.StatusTemporaryRedirect)
		return
	}
	h.respondJSON(ctx, http.StatusNotFound, transport.NewError("Not Found"))
}
