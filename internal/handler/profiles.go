package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradeflex/internal/auth"
	"tradeflex/internal/models"
	"tradeflex/internal/service"
)

type ProfileHandler struct {
	Profiles *service.ProfileService
	Follows  *service.FollowService
	Auth     gin.HandlerFunc
	Optional gin.HandlerFunc
}

func (h *ProfileHandler) Register(r *gin.Engine) {
	r.GET("/api/profiles/me", h.Auth, h.me)
	r.PATCH("/api/profiles/me", h.Auth, h.update)
	r.GET("/api/profiles/:id", h.Optional, h.get)
	r.POST("/api/profiles/:id/follow", h.Auth, h.follow)
	r.DELETE("/api/profiles/:id/follow", h.Auth, h.unfollow)
}

type profileResponse struct {
	Profile *models.Profile      `json:"profile"`
	Stats   service.ProfileStats `json:"stats"`
	// Following is set when the viewer is authenticated.
	Following *bool `json:"following,omitempty"`
}

// @Summary My profile
// @Tags profiles
// @Produce json
// @Success 200 {object} profileResponse
// @Security BearerAuth
// @Router /api/profiles/me [get]
func (h *ProfileHandler) me(c *gin.Context) {
	if h.Profiles == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	claims, ok := auth.CurrentUser(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "missing token", nil)
		return
	}
	profile, err := h.Profiles.Ensure(c.Request.Context(), claims)
	if err != nil {
		serviceError(c, err)
		return
	}
	stats, err := h.Profiles.Stats(c.Request.Context(), profile.ID)
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, profileResponse{Profile: profile, Stats: stats}, nil)
}

// @Summary Update my profile
// @Tags profiles
// @Accept json
// @Produce json
// @Param body body service.UpdateProfileInput true "fields to change"
// @Success 200 {object} models.Profile
// @Security BearerAuth
// @Router /api/profiles/me [patch]
func (h *ProfileHandler) update(c *gin.Context) {
	if h.Profiles == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	claims, ok := auth.CurrentUser(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "missing token", nil)
		return
	}
	if _, err := h.Profiles.Ensure(c.Request.Context(), claims); err != nil {
		serviceError(c, err)
		return
	}
	var in service.UpdateProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	profile, err := h.Profiles.Update(c.Request.Context(), claims.UserID(), in)
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, profile, nil)
}

// @Summary Public profile with trade stats
// @Tags profiles
// @Produce json
// @Param id path string true "user id or display name"
// @Success 200 {object} profileResponse
// @Router /api/profiles/{id} [get]
func (h *ProfileHandler) get(c *gin.Context) {
	if h.Profiles == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	profile, err := h.Profiles.GetByIDOrName(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	stats, err := h.Profiles.Stats(c.Request.Context(), profile.ID)
	if err != nil {
		serviceError(c, err)
		return
	}
	resp := profileResponse{Profile: profile, Stats: stats}
	if claims, ok := auth.CurrentUser(c); ok && h.Follows != nil {
		if following, err := h.Follows.IsFollowing(c.Request.Context(), claims.UserID(), profile.ID); err == nil {
			resp.Following = &following
		}
	}
	Ok(c, resp, nil)
}

// @Summary Follow a trader
// @Tags profiles
// @Produce json
// @Param id path string true "user id"
// @Success 200 {object} map[string]bool
// @Security BearerAuth
// @Router /api/profiles/{id}/follow [post]
func (h *ProfileHandler) follow(c *gin.Context) {
	if h.Follows == nil || h.Profiles == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	claims, ok := auth.CurrentUser(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "missing token", nil)
		return
	}
	follower, err := h.Profiles.Ensure(c.Request.Context(), claims)
	if err != nil {
		serviceError(c, err)
		return
	}
	if err := h.Follows.Follow(c.Request.Context(), follower, c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, gin.H{"following": true}, nil)
}

// @Summary Unfollow a trader
// @Tags profiles
// @Produce json
// @Param id path string true "user id"
// @Success 200 {object} map[string]bool
// @Security BearerAuth
// @Router /api/profiles/{id}/follow [delete]
func (h *ProfileHandler) unfollow(c *gin.Context) {
	if h.Follows == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	claims, ok := auth.CurrentUser(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "missing token", nil)
		return
	}
	if err := h.Follows.Unfollow(c.Request.Context(), claims.UserID(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, gin.H{"following": false}, nil)
}
