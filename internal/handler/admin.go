package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradeflex/internal/auth"
	"tradeflex/internal/entitlement"
	"tradeflex/internal/repository"
	"tradeflex/internal/service"
)

type AdminHandler struct {
	Admin        *service.AdminService
	Entitlements *entitlement.Resolver
	Auth         gin.HandlerFunc
}

func (h *AdminHandler) Register(r *gin.Engine) {
	group := r.Group("/api/admin", h.Auth, h.requireAdmin)
	group.GET("/stats", h.stats)
	group.GET("/users", h.users)
}

func (h *AdminHandler) requireAdmin(c *gin.Context) {
	claims, ok := auth.CurrentUser(c)
	if !ok || h.Entitlements == nil || !h.Entitlements.IsAdmin(claims.Email) {
		Error(c, http.StatusForbidden, "admin only", nil)
		c.Abort()
		return
	}
	c.Next()
}

// @Summary Platform stats
// @Tags admin
// @Produce json
// @Success 200 {object} service.AdminStats
// @Security BearerAuth
// @Router /api/admin/stats [get]
func (h *AdminHandler) stats(c *gin.Context) {
	if h.Admin == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	out, err := h.Admin.Stats(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, out, nil)
}

// @Summary List users
// @Tags admin
// @Produce json
// @Param search query string false "match display name or email"
// @Success 200 {array} models.Profile
// @Security BearerAuth
// @Router /api/admin/users [get]
func (h *AdminHandler) users(c *gin.Context) {
	if h.Admin == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	items, total, err := h.Admin.ListUsers(c.Request.Context(), repository.ListProfilesParams{
		Limit:  limit,
		Offset: offset,
		Search: strQueryPtr(c, "search"),
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}
