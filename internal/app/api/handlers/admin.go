package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freshtiffin/mealbox/internal/app/service/checkout"
	"github.com/freshtiffin/mealbox/internal/app/service/delivery"
	subsvc "github.com/freshtiffin/mealbox/internal/app/service/subscription"
	"github.com/freshtiffin/mealbox/internal/models"
	"github.com/freshtiffin/mealbox/pkg/response"
)

// @Summary      Daily kitchen report
// @Description  Aggregates veg and non-veg meal counts plus the per-subscription delivery list for one date.
// @Tags         Admin
// @Produce      json
// @Param        date query string false "Report date YYYY-MM-DD (default today)"
// @Success      200  {object}  response.APIResponse[delivery.KitchenReport]
// @Router       /api/v1/admin/kitchen-report [get]
func ApiKitchenReport(svc *delivery.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := time.Now()
		if v := c.Query("date"); v != "" {
			d, err := time.Parse(models.DateLayout, v)
			if err != nil {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
				return
			}
			date = d
		}

		report, err := svc.DailyKitchenReport(c.Request.Context(), date)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(report))
	}
}

type rolloverResp struct {
	RolledOver int `json:"rolled_over"`
}

// @Summary      Roll over due billing periods
// @Description  Advances every subscription whose period has elapsed and resets its meal quota. Idempotent.
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  response.APIResponse[handlers.rolloverResp]
// @Router       /api/v1/admin/rollover [post]
func ApiRolloverPeriods(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := svc.RolloverDuePeriods(c.Request.Context(), time.Now())
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(rolloverResp{RolledOver: count}))
	}
}

// @Summary      List orders
// @Description  Pages through orders with optional column filters.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body checkout.ListOrdersRequest true "Filters and paging"
// @Success      200  {object}  response.APIResponse[checkout.ListOrdersResult]
// @Router       /api/v1/admin/orders/list [post]
func ApiListOrders(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkout.ListOrdersRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		res, err := svc.ListOrders(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterAdminRoutes(r gin.IRouter, delSvc *delivery.Service, subSvc *subsvc.Service, chkSvc *checkout.Service) {
	r.GET("/kitchen-report", ApiKitchenReport(delSvc))
	r.POST("/rollover", ApiRolloverPeriods(subSvc))
	r.POST("/orders/list", ApiListOrders(chkSvc))
}
