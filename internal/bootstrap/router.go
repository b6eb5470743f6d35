package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/7svn/smeta-backend/config"
	httpapi "github.com/7svn/smeta-backend/internal/api/http"
	"github.com/7svn/smeta-backend/internal/api/http/middleware"
	"github.com/7svn/smeta-backend/internal/auth"
	estimateshttp "github.com/7svn/smeta-backend/internal/estimates/http"
	"github.com/7svn/smeta-backend/internal/estimates/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	StoreName   string
	CORSOrigins []string
	Auth        gin.HandlerFunc
	Workspace   *service.Workspace
	Events      estimateshttp.EventSource
	Health      map[string]httpapi.Pinger
	SyncQueue   func() int
}

// AuthMiddleware picks the identity middleware for the configured mode.
func AuthMiddleware(ctx context.Context, cfg *config.Config) (gin.HandlerFunc, error) {
	switch cfg.Firebase.AuthMode {
	case config.AuthModeFirebase:
		client, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			return nil, err
		}
		return auth.FirebaseAuth(client), nil
	case config.AuthModeHeader:
		return auth.HeaderIdentity(), nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Firebase.AuthMode)
	}
}

func corsConfig(origins []string) cors.Config {
	cc := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id", "X-User-Id", "X-User-Email"},
		ExposeHeaders:    []string{"X-Request-Id", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cc.AllowAllOrigins = true
		cc.AllowCredentials = false
	} else {
		cc.AllowOrigins = origins
	}
	return cc
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(corsConfig(dep.CORSOrigins)))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.StoreName, dep.Health)
	if dep.SyncQueue != nil {
		healthHandler.WithSyncQueue(dep.SyncQueue)
	}
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	if dep.Auth != nil {
		api.Use(dep.Auth)
	}
	api.GET("/me", auth.Me)

	estimateshttp.New(dep.Workspace, dep.Events).Register(api)

	return r
}
