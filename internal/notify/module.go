package notify

import (
	"log/slog"

	"go.uber.org/fx"
)

// Module provides the notification dispatcher boundary.
var Module = fx.Provide(
	func(logger *slog.Logger) Dispatcher { return NewLogDispatcher(logger) },
)
