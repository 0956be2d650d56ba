package checkout

import (
	"go.uber.org/fx"

	"github.com/freshtiffin/mealbox/internal/platform/gateway"
)

// Module exposes the checkout service and its gateway client via Fx.
var Module = fx.Options(
	fx.Provide(
		gateway.NewHTTPClient,
		func(c *gateway.HTTPClient) gateway.Client { return c },
		NewService,
	),
)
