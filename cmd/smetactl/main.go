package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/7svn/smeta-backend/config"
	"github.com/7svn/smeta-backend/internal/bootstrap"
	"github.com/7svn/smeta-backend/internal/estimates/store"
	"github.com/7svn/smeta-backend/internal/logger"
)

func openConfiguredStore(ctx context.Context) (store.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger.SetLevel(cfg.App.LogLevel)
	b, err := bootstrap.OpenBackends(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return b.Store, b.Close, nil
}

func main() {
	root := newRootCmd(&app{open: openConfiguredStore, now: time.Now})
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
