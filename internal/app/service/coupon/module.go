package coupon

import "go.uber.org/fx"

// Module exposes the coupon service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
