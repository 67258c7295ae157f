package controllers

import (
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(NewAppController),
	fx.Provide(NewScriptController),
	fx.Provide(NewSecretController),
	fx.Provide(NewVersionController),
	fx.Provide(NewScheduleController),
)
