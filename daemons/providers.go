package daemons

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(NewScheduleDaemon),
	fx.Invoke(func(lc fx.Lifecycle, daemon *ScheduleDaemon) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return daemon.Start(ctx)
			},
			OnStop: func(ctx context.Context) error {
				return daemon.Stop(ctx)
			},
		})
	}),
)
