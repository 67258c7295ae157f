package storage

import (
	"go.uber.org/fx"

	"github.com/zestdev/zest/shared"
)

var Module = fx.Options(
	fx.Provide(NewObjectStorage),
	fx.Provide(fx.Annotate(NewVersionStorage, fx.As(new(shared.VersionStorage)))),
)
