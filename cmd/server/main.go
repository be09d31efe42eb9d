package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/todo/api/handler"
	"github.com/fastygo/todo/internal/config"
	"github.com/fastygo/todo/internal/infrastructure/monitor"
	"github.com/fastygo/todo/internal/middleware"
	"github.com/fastygo/todo/internal/router"
	"github.com/fastygo/todo/internal/security"
	"github.com/fastygo/todo/internal/services/lifecycle"
	"github.com/fastygo/todo/pkg/httpcontext"
	"github.com/fastygo/todo/pkg/logger"
	authUC "github.com/fastygo/todo/usecase/auth"
	taskUC "github.com/fastygo/todo/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	mon := monitor.New(cfg.Monitor.Interval, zapLogger)

	store, err := openStorage(appCtx, cfg, mon, manager, zapLogger)
	if err != nil {
		zapLogger.Fatal("storage initialisation failed", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}

	if err := mon.Start(); err != nil {
		zapLogger.Fatal("monitor start failed", zap.Error(err))
	}
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop(ctx)
		return nil
	})

	tokens, err := security.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTTL)
	if err != nil {
		zapLogger.Fatal("token issuer", zap.Error(err))
	}
	hasher := security.NewPasswordHasher(cfg.Security.BcryptCost)

	authUseCase := authUC.New(store.users, hasher, tokens, zapLogger)
	taskUseCase := taskUC.New(store.tasks, zapLogger)

	cookies := middleware.SessionCookies{
		Name:        cfg.JWT.CookieName,
		Secure:      cfg.JWT.CookieSecure,
		CSRFProtect: cfg.JWT.CSRFProtect,
	}
	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:    apiHandler.NewAuthHandler(authUseCase, cookies, ctxAdapter, zapLogger),
		Account: apiHandler.NewAccountHandler(ctxAdapter, zapLogger),
		Task:    apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Health:  apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
		Docs:    apiHandler.NewDocsHandler(cfg.AppName, router.Table(), zapLogger),
	}

	r := router.New(handlers, middleware.Auth(tokens, cookies, zapLogger))

	server := &fasthttp.Server{
		Handler:      router.Handler(r, middleware.AccessLog(zapLogger)),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	manager.Go("http_server", func() error {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("driver", cfg.Database.Driver),
			zap.String("env", cfg.Environment))
		return server.ListenAndServe(cfg.Address())
	})
	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	if err := manager.Wait(appCtx); err != nil {
		zapLogger.Error("server stopped unexpectedly", zap.Error(err))
	}

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
