package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradeflex/internal/auth"
	"tradeflex/internal/entitlement"
	"tradeflex/internal/service"
)

// SentimentHandler serves the crowd positioning signal, a Pro-only read.
type SentimentHandler struct {
	Sentiment    *service.SentimentService
	Entitlements *entitlement.Resolver
	Auth         gin.HandlerFunc
}

func (h *SentimentHandler) Register(r *gin.Engine) {
	r.GET("/api/sentiment", h.Auth, h.signal)
	r.GET("/api/sentiment/:ticker", h.Auth, h.signal)
}

// @Summary Crowd positioning signal
// @Tags sentiment
// @Produce json
// @Param ticker path string false "ticker, omit for the whole tape"
// @Success 200 {object} service.SentimentSignal
// @Security BearerAuth
// @Router /api/sentiment/{ticker} [get]
func (h *SentimentHandler) signal(c *gin.Context) {
	if h.Sentiment == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	claims, ok := auth.CurrentUser(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "missing token", nil)
		return
	}
	if h.Entitlements != nil {
		status, _ := h.Entitlements.Resolve(c.Request.Context(), claims.UserID(), claims.Email)
		if !status.IsPro() {
			Error(c, http.StatusForbidden, "pro required", nil)
			return
		}
	}
	signal, err := h.Sentiment.Signal(c.Request.Context(), c.Param("ticker"))
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, signal, nil)
}
