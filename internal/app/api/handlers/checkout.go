package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshtiffin/mealbox/internal/app/service/checkout"
	"github.com/freshtiffin/mealbox/pkg/metrics"
	"github.com/freshtiffin/mealbox/pkg/response"
)

// userID extracts the pre-authenticated user id set by the fronting auth
// proxy. Core services never look up sessions themselves.
func userID(c *gin.Context) string {
	return c.GetHeader("X-User-ID")
}

// @Summary      Checkout
// @Description  Prices a meal plan, applies a coupon when valid and opens a gateway order.
// @Tags         Checkout
// @Accept       json
// @Produce      json
// @Param        request body checkout.CheckoutRequest true "Checkout request"
// @Success      200  {object}  response.APIResponse[checkout.CheckoutResult]
// @Router       /api/v1/checkout [post]
func ApiCheckout(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := userID(c)
		if uid == "" {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing user id"))
			return
		}

		var req checkout.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		req.UserID = uid

		res, err := svc.Checkout(c.Request.Context(), &req)
		if err != nil {
			metrics.CheckoutTotal.WithLabelValues("error").Inc()
			if errors.Is(err, checkout.ErrPlanNotFound) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		metrics.CheckoutTotal.WithLabelValues("ok").Inc()
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Confirm payment
// @Description  Verifies the gateway payment signature and activates the subscription. Duplicate confirmations return the stored outcome.
// @Tags         Checkout
// @Accept       json
// @Produce      json
// @Param        request body checkout.ConfirmRequest true "Payment confirmation"
// @Success      200  {object}  response.APIResponse[checkout.ConfirmResult]
// @Router       /api/v1/payment/confirm [post]
func ApiConfirmPayment(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := userID(c)
		if uid == "" {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing user id"))
			return
		}

		var req checkout.ConfirmRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		req.UserID = uid

		res, err := svc.ConfirmPayment(c.Request.Context(), &req)
		if err != nil {
			metrics.PaymentCaptureTotal.WithLabelValues("error").Inc()
			if errors.Is(err, checkout.ErrPaymentVerificationFailed) || errors.Is(err, checkout.ErrOrderNotFound) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		if res.Duplicate {
			metrics.PaymentCaptureTotal.WithLabelValues("duplicate").Inc()
		} else {
			metrics.PaymentCaptureTotal.WithLabelValues("ok").Inc()
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Gateway webhook
// @Description  Receives asynchronous subscription lifecycle events from the payment gateway.
// @Tags         Checkout
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.APIResponse[string]
// @Router       /api/v1/payment/webhook [post]
func ApiGatewayWebhook(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		signature := c.GetHeader("X-Gateway-Signature")
		traceID := c.GetString("traceID")

		outcome, err := svc.HandleWebhook(c.Request.Context(), payload, signature, traceID)
		metrics.WebhookEventTotal.WithLabelValues(string(outcome)).Inc()
		if err != nil {
			// non-2xx so the gateway redelivers
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(string(outcome)))
	}
}

func RegisterCheckoutRoutes(r gin.IRouter, svc *checkout.Service) {
	r.POST("/checkout", ApiCheckout(svc))
	r.POST("/payment/confirm", ApiConfirmPayment(svc))
	r.POST("/payment/webhook", ApiGatewayWebhook(svc))
}
