package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/todo/api/handler"
	"github.com/fastygo/todo/internal/middleware"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Account *apiHandler.AccountHandler
	Task    *apiHandler.TaskHandler
	Health  *apiHandler.HealthHandler
	Docs    *apiHandler.DocsHandler
}

type route struct {
	info    apiHandler.RouteInfo
	handler func(Handlers) fasthttp.RequestHandler
}

var routes = []route{
	{apiHandler.RouteInfo{Method: fasthttp.MethodGet, Path: "/auth", Summary: "Auth page"},
		func(h Handlers) fasthttp.RequestHandler { return h.Auth.Page }},
	{apiHandler.RouteInfo{Method: fasthttp.MethodPost, Path: "/auth/login", Summary: "Log in and receive an access token"},
		func(h Handlers) fasthttp.RequestHandler { return h.Auth.Login }},
	{apiHandler.RouteInfo{Method: fasthttp.MethodPost, Path: "/auth/registration", Summary: "Register a new user"},
		func(h Handlers) fasthttp.RequestHandler { return h.Auth.Register }},
	{apiHandler.RouteInfo{Method: fasthttp.MethodPost, Path: "/auth/logout", Summary: "Clear the session cookies"},
		func(h Handlers) fasthttp.RequestHandler { return h.Auth.Logout }},
	{apiHandler.RouteInfo{Method: fasthttp.MethodGet, Path: "/account", Auth: true, Summary: "Account page"},
		func(h Handlers) fasthttp.RequestHandler { return h.Account.Get }},
	{apiHandler.RouteInfo{Method: fasthttp.MethodGet, Path: "/account/tasks", Auth: true, Summary: "List own tasks"},
		func(h Handlers) fasthttp.RequestHandler { return h.Task.List }},
	{apiHandler.RouteInfo{Method: fasthttp.MethodPost, Path: "/account/tasks", Auth: true, Summary: "Create a task"},
		func(h Handlers) fasthttp.RequestHandler { return h.Task.Create }},
	{apiHandler.RouteInfo{Method: fasthttp.MethodGet, Path: "/account/tasks/{id}", Auth: true, Summary: "Get one own task"},
		func(h Handlers) fasthttp.RequestHandler { return h.Task.Get }},
	{apiHandler.RouteInfo{Method: fasthttp.MethodPut, Path: "/account/tasks/{id}", Auth: true, Summary: "Edit one own task"},
		func(h Handlers) fasthttp.RequestHandler { return h.Task.Update }},
	{apiHandler.RouteInfo{Method: fasthttp.MethodDelete, Path: "/account/task/{id}", Auth: true, Summary: "Delete one own task"},
		func(h Handlers) fasthttp.RequestHandler { return h.Task.Delete }},
	{apiHandler.RouteInfo{Method: fasthttp.MethodGet, Path: "/health", Summary: "Dependency health"},
		func(h Handlers) fasthttp.RequestHandler { return h.Health.Check }},
	{apiHandler.RouteInfo{Method: fasthttp.MethodGet, Path: apiHandler.DocsPath, Summary: "Route table"},
		func(h Handlers) fasthttp.RequestHandler { return h.Docs.Index }},
}

// Table returns the route descriptions served by the docs endpoint.
func Table() []apiHandler.RouteInfo {
	table := make([]apiHandler.RouteInfo, 0, len(routes))
	for _, rt := range routes {
		table = append(table, rt.info)
	}
	return table
}

// New builds the router. Routes marked Auth are wrapped with the access guard.
func New(handlers Handlers, authMiddleware middleware.Middleware) *router.Router {
	r := router.New()
	r.RedirectTrailingSlash = false

	for _, rt := range routes {
		h := rt.handler(handlers)
		if rt.info.Auth {
			h = authMiddleware(h)
		}
		r.Handle(rt.info.Method, rt.info.Path, h)
	}

	r.NotFound = handlers.Docs.NotFound
	r.HandleMethodNotAllowed = false
	return r
}

// Handler wraps the router with mws; the first one runs outermost.
func Handler(r *router.Router, mws ...middleware.Middleware) fasthttp.RequestHandler {
	h := r.Handler
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
