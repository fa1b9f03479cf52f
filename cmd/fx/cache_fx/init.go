package cache_fx

import (
	"context"

	"go.uber.org/fx"

	"tiffin/internal/infra"
)

var Module = fx.Options(
	fx.Provide(provideCache),
	fx.Invoke(registerClose),
)

func provideCache() *infra.RedisCache {
	return infra.InitRedis()
}

func registerClose(lc fx.Lifecycle, cache *infra.RedisCache) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return cache.Close()
		},
	})
}
