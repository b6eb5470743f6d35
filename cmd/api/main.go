package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/7svn/smeta-backend/config"
	"github.com/7svn/smeta-backend/internal/bootstrap"
	estimateshttp "github.com/7svn/smeta-backend/internal/estimates/http"
	"github.com/7svn/smeta-backend/internal/estimates/service"
	"github.com/7svn/smeta-backend/internal/estimates/syncer"
	"github.com/7svn/smeta-backend/internal/logger"
	"github.com/7svn/smeta-backend/internal/suggest"
)

const serviceName = "smeta-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger.SetLevel(cfg.App.LogLevel)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backends, err := bootstrap.OpenBackends(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer backends.Close()
	log.Printf("store backend: %s", cfg.Store.Backend)

	authMW, err := bootstrap.AuthMiddleware(ctx, cfg)
	if err != nil {
		log.Fatalf("auth: %v", err)
	}
	log.Printf("auth mode: %s", cfg.Firebase.AuthMode)

	var (
		syncOpts []syncer.Option
		events   estimateshttp.EventSource
	)
	if backends.Redis != nil {
		pub := syncer.NewRedisPublisher(backends.Redis)
		syncOpts = append(syncOpts, syncer.WithPublisher(pub))
		events = pub
	}
	sync := syncer.New(backends.Store, syncOpts...)
	if err := sync.Start(cfg.Sync.FlushSpec); err != nil {
		log.Fatalf("sync: %v", err)
	}

	gen := suggest.Unconfigured()
	if cfg.Gemini.APIKey != "" {
		g, err := suggest.NewGeminiGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Fatalf("gemini: %v", err)
		}
		defer g.Close()
		gen = g
	} else {
		log.Printf("[warn] GEMINI_API_KEY is not set, suggestions will fail")
	}
	suggester := suggest.NewService(gen, suggest.Options{
		Timeout:       cfg.Gemini.Timeout,
		RatePerMinute: cfg.Gemini.RatePerMinute,
	})

	ws := service.NewWorkspace(backends.Store, sync, suggester)

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		StoreName:   cfg.Store.Backend,
		CORSOrigins: cfg.Server.CORSOrigins,
		Auth:        authMW,
		Workspace:   ws,
		Events:      events,
		Health:      backends.HealthChecks(),
		SyncQueue:   sync.Len,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[error] http shutdown: %v", err)
	}
	res := sync.Stop(shutdownCtx)
	log.Printf("sync drained: applied=%d failed=%d", res.Applied, res.Failed)
}
