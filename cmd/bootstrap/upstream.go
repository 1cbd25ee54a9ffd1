package bootstrap

import (
	"log/slog"

	"slot-hold-gateway/internal/infra/upstream"
	"slot-hold-gateway/internal/pkg/config"
	"slot-hold-gateway/internal/usecase"

	"go.uber.org/fx"
)

var UpstreamModule = fx.Module("upstream",
	fx.Provide(
		fx.Annotate(
			NewSlotService,
			fx.As(new(usecase.SlotService)),
		),
	),
)

func NewSlotService(cfg config.Config, logger *slog.Logger) *upstream.Client {
	return upstream.NewClient(cfg.Upstream, logger)
}
