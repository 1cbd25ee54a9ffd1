package components

import (
	"context"

	"slot-hold-gateway/internal/pkg/clock"
	"slot-hold-gateway/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		usecase.NewRegistry,
	),
	fx.Invoke(registerRegistryShutdown),
)

// Workflows hold backend slots; shutting the server down must free them
// instead of leaving holds to expire by TTL.
func registerRegistryShutdown(lc fx.Lifecycle, flows *usecase.Registry) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			flows.Shutdown()
			return nil
		},
	})
}
