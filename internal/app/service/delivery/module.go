package delivery

import "go.uber.org/fx"

// Module exposes the delivery calendar service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
