package relay

import (
	"go.uber.org/fx"

	"github.com/zestdev/zest/shared"
)

var Module = fx.Options(
	fx.Provide(fx.Annotate(NewClient, fx.As(new(shared.RelayClient)))),
)
