package handlers

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func routeSet(r *gin.Engine) map[string]bool {
	set := make(map[string]bool)
	for _, rt := range r.Routes() {
		set[rt.Method+" "+rt.Path] = true
	}
	return set
}

func TestRegisterCheckoutRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterCheckoutRoutes(r.Group("/api/v1"), nil)

	routes := routeSet(r)
	require.True(t, routes["POST /api/v1/checkout"])
	require.True(t, routes["POST /api/v1/payment/confirm"])
	require.True(t, routes["POST /api/v1/payment/webhook"])
}

func TestRegisterSubscriptionRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterSubscriptionRoutes(r.Group("/api/v1/subscriptions"), nil, nil)

	routes := routeSet(r)
	require.True(t, routes["POST /api/v1/subscriptions/:id/pause"])
	require.True(t, routes["POST /api/v1/subscriptions/:id/resume"])
	require.True(t, routes["POST /api/v1/subscriptions/:id/cancel"])
	require.True(t, routes["POST /api/v1/subscriptions/:id/skip"])
	require.True(t, routes["POST /api/v1/subscriptions/:id/unskip"])
	require.True(t, routes["POST /api/v1/subscriptions/:id/delivered"])
	require.True(t, routes["GET /api/v1/subscriptions/:id/deliveries"])
}

func TestRegisterAdminRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterAdminRoutes(r.Group("/api/v1/admin"), nil, nil, nil)

	routes := routeSet(r)
	require.True(t, routes["GET /api/v1/admin/kitchen-report"])
	require.True(t, routes["POST /api/v1/admin/rollover"])
	require.True(t, routes["POST /api/v1/admin/orders/list"])
}

func TestRegisterHealthRoutes_RegistersEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterHealthRoutes(r)

	require.True(t, routeSet(r)["GET /healthz"])
}
