package checkout

import (
	"context"

	"github.com/samber/lo"
	"gorm.io/gorm/clause"

	"github.com/freshtiffin/mealbox/internal/models"
	"github.com/freshtiffin/mealbox/pkg/types"
)

// ListOrdersRequest is the admin order listing query.
type ListOrdersRequest struct {
	Filters  []*types.CommonFilter `json:"filters"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
}

type ListOrdersResult struct {
	Orders []*models.Order `json:"orders"`
	Total  int64           `json:"total"`
}

// ListOrders pages through orders for the admin surface. Filters map
// directly onto order columns; unknown fields are rejected before they
// reach SQL.
func (s *Service) ListOrders(ctx context.Context, req *ListOrdersRequest) (*ListOrdersResult, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 200 {
		req.PageSize = 50
	}

	allowed := []string{"user_id", "status", "payment_status", "subscription_id", "total", "created_at", "external_order_ref"}
	filters := lo.Filter(req.Filters, func(f *types.CommonFilter, _ int) bool {
		return f != nil && lo.Contains(allowed, f.Field)
	})
	exprs := lo.Map(filters, func(f *types.CommonFilter, _ int) clause.Expression { return f })

	query := s.db.WithContext(ctx).Model(&models.Order{})
	if len(exprs) > 0 {
		query = query.Clauses(clause.Where{Exprs: exprs})
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var orders []*models.Order
	if err := query.
		Order("created_at DESC").
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Find(&orders).Error; err != nil {
		return nil, err
	}

	return &ListOrdersResult{Orders: orders, Total: total}, nil
}
