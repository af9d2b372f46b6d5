package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"tradeflex/internal/billing"
	"tradeflex/internal/service"
)

const webhookBodyLimit = 1 << 20

// WebhookHandler is the one unauthenticated write endpoint; the HMAC
// signature is the auth.
type WebhookHandler struct {
	Webhooks *service.WebhookService
}

func (h *WebhookHandler) Register(r *gin.Engine) {
	r.POST("/api/webhooks/payment", h.receive)
}

// @Summary Payment provider webhook
// @Tags billing
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /api/webhooks/payment [post]
func (h *WebhookHandler) receive(c *gin.Context) {
	if h.Webhooks == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, webhookBodyLimit))
	if err != nil {
		Error(c, http.StatusBadRequest, "unreadable body", nil)
		return
	}
	if err := h.Webhooks.Process(c.Request.Context(), payload, c.GetHeader(billing.SignatureHeader)); err != nil {
		if err == service.ErrWebhookRejected {
			Error(c, http.StatusBadRequest, "signature verification failed", nil)
			return
		}
		Error(c, http.StatusInternalServerError, "webhook handler failed", nil)
		return
	}
	Ok(c, gin.H{"received": true}, nil)
}
