package delivery

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/freshtiffin/mealbox/internal/models"
	"github.com/freshtiffin/mealbox/pkg/types"
)

// Service serves read-only calendar views backed by the subscription table.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// KitchenReport aggregates how many meals the kitchen must prepare on one
// date across all active subscriptions.
type KitchenReport struct {
	Date        string `json:"date"`
	VegMeals    int    `json:"veg_meals"`
	NonVegMeals int    `json:"non_veg_meals"`
	Breakfasts  int    `json:"breakfasts"`
	Deliveries  int    `json:"deliveries"`
}

// DailyKitchenReport computes the prep totals for date. Read-only.
func (s *Service) DailyKitchenReport(ctx context.Context, date time.Time) (*KitchenReport, error) {
	var subs []*models.Subscription
	if err := s.db.WithContext(ctx).
		Where("status = ?", types.SubscriptionStatusActive).
		Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to load active subscriptions: %w", err)
	}

	report := &KitchenReport{Date: date.Format(models.DateLayout)}
	for _, sub := range subs {
		for _, d := range Schedule(sub, date, date) {
			report.Deliveries++
			if d.Kind == MealKindVeg {
				report.VegMeals++
			} else {
				report.NonVegMeals++
			}
			if d.WithBreakfast {
				report.Breakfasts++
			}
		}
	}
	return report, nil
}

// UpcomingDeliveries returns the schedule for one subscription over the
// next days, the profile-view collaborator call.
func (s *Service) UpcomingDeliveries(ctx context.Context, subscriptionID string, days int) ([]Delivery, error) {
	if days <= 0 {
		days = 7
	}
	var sub models.Subscription
	if err := s.db.WithContext(ctx).Where("id = ?", subscriptionID).First(&sub).Error; err != nil {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	if sub.Status != types.SubscriptionStatusActive {
		return nil, nil
	}
	from := time.Now()
	return Schedule(&sub, from, from.AddDate(0, 0, days-1)), nil
}
