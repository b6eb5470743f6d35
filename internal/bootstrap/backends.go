package bootstrap

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/7svn/smeta-backend/config"
	httpapi "github.com/7svn/smeta-backend/internal/api/http"
	"github.com/7svn/smeta-backend/internal/estimates/store"
)

// Backends holds the project store and the connections behind it.
type Backends struct {
	Store store.Store
	DB    *pgxpool.Pool
	Redis *redis.Client
}

// OpenBackends connects the configured store. Redis is opened whenever an
// address is set since it also carries sync events.
func OpenBackends(ctx context.Context, cfg *config.Config) (*Backends, error) {
	b := &Backends{}

	if cfg.Redis.Addr != "" {
		client, err := OpenRedis(ctx, cfg.Redis)
		if err != nil {
			if cfg.Store.Backend == config.StoreBackendRedis {
				return nil, err
			}
			log.Printf("[warn] redis unavailable, events disabled: %v", err)
		} else {
			b.Redis = client
		}
	}

	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		pool, err := OpenDB(ctx, DBOptions{
			DSN:      cfg.Database.DSN,
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			b.Close()
			return nil, err
		}
		b.DB = pool
		pg := store.NewPostgresStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			b.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		b.Store = pg
	case config.StoreBackendRedis:
		b.Store = store.NewRedisStore(b.Redis)
	default:
		b.Store = store.NewMemoryStore()
	}
	return b, nil
}

// HealthChecks lists the connections for /health; absent ones are disabled.
func (b *Backends) HealthChecks() map[string]httpapi.Pinger {
	deps := map[string]httpapi.Pinger{"db": nil, "redis": nil}
	if b.DB != nil {
		deps["db"] = b.DB
	}
	if b.Redis != nil {
		deps["redis"] = redisPinger{b.Redis}
	}
	return deps
}

func (b *Backends) Close() {
	if b.DB != nil {
		b.DB.Close()
	}
	if b.Redis != nil {
		_ = b.Redis.Close()
	}
}

type redisPinger struct{ client *redis.Client }

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
