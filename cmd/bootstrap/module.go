package bootstrap

import (
	"slot-hold-gateway/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	UpstreamModule,
	components.UseCaseModule,
	components.HandlerModule,
)
