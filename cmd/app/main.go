package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"gezi/cmd/fx/config_fx"
	"gezi/cmd/fx/controllers_fx"
	"gezi/cmd/fx/llm_fx"
	"gezi/cmd/fx/memcache_fx"
	"gezi/cmd/fx/plan_fx"
	"gezi/internal/api/controllers"
	"gezi/internal/infra"
	mem "gezi/pkg/memcache"
	"gezi/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		llm_fx.Module,
		memcache_fx.Module,
		plan_fx.Module,
		controllers_fx.Module,

		fx.Invoke(StartServer),
		fx.Provide(ProvideRouter),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *infra.Config, engine *gin.Engine) {
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", cfg.Port)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return server.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *infra.Config,
	visitors mem.VisitorStore,
	planController *controllers.PlanController,
	systemController *controllers.SystemController) *gin.Engine {

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger())
	r.Use(gin.CustomRecovery(systemController.RecoveryHandler))
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	RegisterRoutes(r, middleware.RateLimitMiddleware(visitors), planController, systemController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	rateLimit gin.HandlerFunc,
	planController *controllers.PlanController,
	systemController *controllers.SystemController) {

	r.GET("/", systemController.IndexHandler)

	api := r.Group("/api")
	api.GET("/health", systemController.HealthHandler)
	api.GET("/test", systemController.TestHandler)
	api.GET("/raw-test", systemController.RawTestHandler)

	planGroup := api.Group("/plan", rateLimit)
	planGroup.POST("", planController.CreatePlanHandler)
	planGroup.POST("/chat", planController.ChatPlanHandler)

	r.NoRoute(systemController.NotFoundHandler)
}
