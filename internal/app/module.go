package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/freshtiffin/mealbox/internal/app/api/server"
	"github.com/freshtiffin/mealbox/internal/app/service/checkout"
	"github.com/freshtiffin/mealbox/internal/app/service/coupon"
	"github.com/freshtiffin/mealbox/internal/app/service/delivery"
	"github.com/freshtiffin/mealbox/internal/app/service/eventlog"
	"github.com/freshtiffin/mealbox/internal/app/service/subscription"
	"github.com/freshtiffin/mealbox/internal/platform/db"
	"github.com/freshtiffin/mealbox/pkg/config"
	"github.com/freshtiffin/mealbox/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	server.Module,
	subscription.Module,
	delivery.Module,
	coupon.Module,
	eventlog.Module,
	checkout.Module,
)
