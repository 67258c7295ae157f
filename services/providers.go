package services

import (
	"go.uber.org/fx"

	"github.com/zestdev/zest/shared"
)

var Module = fx.Options(
	fx.Provide(fx.Annotate(NewVersionService, fx.As(new(shared.VersionService)))),
	fx.Provide(fx.Annotate(NewAppService, fx.As(new(shared.AppService)))),
	fx.Provide(fx.Annotate(NewScriptService, fx.As(new(shared.ScriptService)))),
	fx.Provide(fx.Annotate(NewSecretService, fx.As(new(shared.SecretService)))),
	fx.Provide(fx.Annotate(NewScheduleService, fx.As(new(shared.ScheduleService)))),
)
