package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradeflex/internal/auth"
	"tradeflex/internal/entitlement"
	"tradeflex/internal/service"
)

type SubscriptionHandler struct {
	Entitlements *entitlement.Resolver
	Checkout     *service.CheckoutService
	Auth         gin.HandlerFunc
}

func (h *SubscriptionHandler) Register(r *gin.Engine) {
	r.GET("/api/subscription", h.Auth, h.status)
	r.POST("/api/checkout", h.Auth, h.checkout)
}

// @Summary My entitlement status
// @Tags billing
// @Produce json
// @Success 200 {object} entitlement.Status
// @Security BearerAuth
// @Router /api/subscription [get]
func (h *SubscriptionHandler) status(c *gin.Context) {
	if h.Entitlements == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	claims, ok := auth.CurrentUser(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "missing token", nil)
		return
	}
	status, err := h.Entitlements.Resolve(c.Request.Context(), claims.UserID(), claims.Email)
	if err != nil {
		// Degrades to the free tier; surface that rather than a 5xx.
		Ok(c, status, map[string]any{"degraded": true})
		return
	}
	Ok(c, status, nil)
}

type checkoutRequest struct {
	Plan string `json:"plan"`
}

// @Summary Start a Pro checkout
// @Tags billing
// @Accept json
// @Produce json
// @Param body body checkoutRequest true "monthly or yearly"
// @Success 200 {object} billing.Session
// @Security BearerAuth
// @Router /api/checkout [post]
func (h *SubscriptionHandler) checkout(c *gin.Context) {
	if h.Checkout == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	claims, ok := auth.CurrentUser(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "missing token", nil)
		return
	}
	var in checkoutRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	session, err := h.Checkout.CreateSession(c.Request.Context(), claims.UserID(), claims.Email, in.Plan)
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, session, nil)
}
