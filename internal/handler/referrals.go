package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradeflex/internal/auth"
	"tradeflex/internal/models"
	"tradeflex/internal/service"
)

type ReferralHandler struct {
	Referrals *service.ReferralService
	Profiles  *service.ProfileService
	Auth      gin.HandlerFunc
}

func (h *ReferralHandler) Register(r *gin.Engine) {
	group := r.Group("/api/referrals", h.Auth)
	group.GET("/me", h.status)
	group.POST("/claim", h.claim)
}

func (h *ReferralHandler) caller(c *gin.Context) (*models.Profile, bool) {
	claims, ok := auth.CurrentUser(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "missing token", nil)
		return nil, false
	}
	profile, err := h.Profiles.Ensure(c.Request.Context(), claims)
	if err != nil {
		serviceError(c, err)
		return nil, false
	}
	return profile, true
}

// @Summary My referral code and progress
// @Tags referrals
// @Produce json
// @Success 200 {object} service.ReferralStatus
// @Security BearerAuth
// @Router /api/referrals/me [get]
func (h *ReferralHandler) status(c *gin.Context) {
	if h.Referrals == nil || h.Profiles == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	profile, ok := h.caller(c)
	if !ok {
		return
	}
	out, err := h.Referrals.Status(c.Request.Context(), profile)
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, out, nil)
}

type claimRequest struct {
	Code string `json:"code"`
}

// @Summary Claim a referral code
// @Tags referrals
// @Accept json
// @Produce json
// @Param body body claimRequest true "invite code"
// @Success 200 {object} map[string]bool
// @Security BearerAuth
// @Router /api/referrals/claim [post]
func (h *ReferralHandler) claim(c *gin.Context) {
	if h.Referrals == nil || h.Profiles == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	profile, ok := h.caller(c)
	if !ok {
		return
	}
	var in claimRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	if err := h.Referrals.Claim(c.Request.Context(), profile, in.Code); err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, gin.H{"claimed": true}, nil)
}
