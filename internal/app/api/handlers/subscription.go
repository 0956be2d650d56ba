package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freshtiffin/mealbox/internal/app/service/delivery"
	subsvc "github.com/freshtiffin/mealbox/internal/app/service/subscription"
	"github.com/freshtiffin/mealbox/internal/models"
	"github.com/freshtiffin/mealbox/pkg/response"
)

type skipRequest struct {
	// Date of the delivery to skip or restore, "2006-01-02".
	Date string `json:"date" binding:"required"`
}

func subscriptionErrResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, subsvc.ErrSubscriptionNotFound),
		errors.Is(err, subsvc.ErrInvalidTransition),
		errors.Is(err, subsvc.ErrDateNotDeliverable),
		errors.Is(err, subsvc.ErrDateNotSkipped):
		c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
	default:
		c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
	}
}

func subscriptionAction(action func(c *gin.Context) (*models.Subscription, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID(c) == "" {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing user id"))
			return
		}
		sub, err := action(c)
		if err != nil {
			subscriptionErrResponse(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(sub))
	}
}

// @Summary      Pause subscription
// @Tags         Subscription
// @Produce      json
// @Param        id path string true "Subscription ID"
// @Success      200  {object}  response.APIResponse[models.Subscription]
// @Router       /api/v1/subscriptions/{id}/pause [post]
func ApiPauseSubscription(svc *subsvc.Service) gin.HandlerFunc {
	return subscriptionAction(func(c *gin.Context) (*models.Subscription, error) {
		return svc.Pause(c.Request.Context(), userID(c), c.Param("id"))
	})
}

// @Summary      Resume subscription
// @Tags         Subscription
// @Produce      json
// @Param        id path string true "Subscription ID"
// @Success      200  {object}  response.APIResponse[models.Subscription]
// @Router       /api/v1/subscriptions/{id}/resume [post]
func ApiResumeSubscription(svc *subsvc.Service) gin.HandlerFunc {
	return subscriptionAction(func(c *gin.Context) (*models.Subscription, error) {
		return svc.Resume(c.Request.Context(), userID(c), c.Param("id"))
	})
}

// @Summary      Cancel subscription
// @Tags         Subscription
// @Produce      json
// @Param        id path string true "Subscription ID"
// @Success      200  {object}  response.APIResponse[models.Subscription]
// @Router       /api/v1/subscriptions/{id}/cancel [post]
func ApiCancelSubscription(svc *subsvc.Service) gin.HandlerFunc {
	return subscriptionAction(func(c *gin.Context) (*models.Subscription, error) {
		return svc.Cancel(c.Request.Context(), userID(c), c.Param("id"))
	})
}

// @Summary      Skip a delivery
// @Description  Marks one future delivery date as skipped. Skipping an already-skipped date is a no-op.
// @Tags         Subscription
// @Accept       json
// @Produce      json
// @Param        id path string true "Subscription ID"
// @Param        request body handlers.skipRequest true "Delivery date"
// @Success      200  {object}  response.APIResponse[models.Subscription]
// @Router       /api/v1/subscriptions/{id}/skip [post]
func ApiSkipDelivery(svc *subsvc.Service) gin.HandlerFunc {
	return subscriptionAction(func(c *gin.Context) (*models.Subscription, error) {
		var req skipRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		date, err := time.Parse(models.DateLayout, req.Date)
		if err != nil {
			return nil, err
		}
		return svc.SkipDelivery(c.Request.Context(), userID(c), c.Param("id"), date)
	})
}

// @Summary      Restore a skipped delivery
// @Tags         Subscription
// @Accept       json
// @Produce      json
// @Param        id path string true "Subscription ID"
// @Param        request body handlers.skipRequest true "Delivery date"
// @Success      200  {object}  response.APIResponse[models.Subscription]
// @Router       /api/v1/subscriptions/{id}/unskip [post]
func ApiUnskipDelivery(svc *subsvc.Service) gin.HandlerFunc {
	return subscriptionAction(func(c *gin.Context) (*models.Subscription, error) {
		var req skipRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		date, err := time.Parse(models.DateLayout, req.Date)
		if err != nil {
			return nil, err
		}
		return svc.UnskipDelivery(c.Request.Context(), userID(c), c.Param("id"), date)
	})
}

// @Summary      Report a completed delivery
// @Description  Consumes one meal of the period quota. Invoked by the delivery system, not the customer.
// @Tags         Subscription
// @Produce      json
// @Param        id path string true "Subscription ID"
// @Success      200  {object}  response.APIResponse[models.Subscription]
// @Router       /api/v1/subscriptions/{id}/delivered [post]
func ApiMarkDelivered(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, err := svc.MarkDelivered(c.Request.Context(), c.Param("id"))
		if err != nil {
			subscriptionErrResponse(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(sub))
	}
}

// @Summary      Upcoming deliveries
// @Description  Lists the concrete delivery dates of the next N days, excluding skips.
// @Tags         Subscription
// @Produce      json
// @Param        id path string true "Subscription ID"
// @Param        days query int false "Horizon in days (default 14)"
// @Success      200  {object}  response.APIResponse[[]delivery.Delivery]
// @Router       /api/v1/subscriptions/{id}/deliveries [get]
func ApiUpcomingDeliveries(subSvc *subsvc.Service, delSvc *delivery.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := userID(c)
		if uid == "" {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing user id"))
			return
		}

		// ownership check before exposing the calendar
		sub, err := subSvc.Get(c.Request.Context(), c.Param("id"))
		if err != nil || sub.UserID != uid {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, subsvc.ErrSubscriptionNotFound.Error()))
			return
		}

		days := 14
		if v := c.Query("days"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 90 {
				days = n
			}
		}

		deliveries, err := delSvc.UpcomingDeliveries(c.Request.Context(), sub.ID, days)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(deliveries))
	}
}

func RegisterSubscriptionRoutes(r gin.IRouter, subSvc *subsvc.Service, delSvc *delivery.Service) {
	r.POST("/:id/pause", ApiPauseSubscription(subSvc))
	r.POST("/:id/resume", ApiResumeSubscription(subSvc))
	r.POST("/:id/cancel", ApiCancelSubscription(subSvc))
	r.POST("/:id/skip", ApiSkipDelivery(subSvc))
	r.POST("/:id/unskip", ApiUnskipDelivery(subSvc))
	r.POST("/:id/delivered", ApiMarkDelivered(subSvc))
	r.GET("/:id/deliveries", ApiUpcomingDeliveries(subSvc, delSvc))
}
