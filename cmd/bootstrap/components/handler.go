package components

import (
	"slot-hold-gateway/internal/handler"
	"slot-hold-gateway/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewWorkflowHandler,
	),
	fx.Invoke(handler.NewRouter),
)
