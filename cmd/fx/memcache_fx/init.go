package memcache_fx

import (
	"context"
	"time"

	"go.uber.org/fx"

	"gezi/internal/infra"
	mem "gezi/pkg/memcache"
)

const (
	visitorTTL    = 10 * time.Minute
	sweepInterval = time.Minute
)

var Module = fx.Provide(provideVisitorStore)

func provideVisitorStore(lc fx.Lifecycle, cfg *infra.Config) mem.VisitorStore {
	visitors := mem.NewVisitors(cfg.RateLimitPerMinute, visitorTTL)
	stop := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go visitors.Janitor(sweepInterval, stop)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(stop)
			return nil
		},
	})
	return visitors
}
