package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradeflex/internal/auth"
	"tradeflex/internal/repository"
)

type NotificationHandler struct {
	Repo repository.Repository
	Auth gin.HandlerFunc
}

func (h *NotificationHandler) Register(r *gin.Engine) {
	group := r.Group("/api/notifications", h.Auth)
	group.GET("", h.list)
	group.GET("/unread-count", h.unreadCount)
	group.PATCH("", h.markRead)
}

// @Summary List my notifications
// @Tags notifications
// @Produce json
// @Param unread query bool false "unread only"
// @Success 200 {array} models.Notification
// @Security BearerAuth
// @Router /api/notifications [get]
func (h *NotificationHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	claims, ok := auth.CurrentUser(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "missing token", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	items, err := h.Repo.ListNotifications(c.Request.Context(), repository.ListNotificationsParams{
		Limit:      limit,
		Offset:     offset,
		UserID:     claims.UserID(),
		UnreadOnly: boolQueryDefault(c, "unread", false),
	})
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	unread, err := h.Repo.CountUnreadNotifications(c.Request.Context(), claims.UserID())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, map[string]any{"unread": unread})
}

// @Summary Unread notification count
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]int64
// @Security BearerAuth
// @Router /api/notifications/unread-count [get]
func (h *NotificationHandler) unreadCount(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	claims, ok := auth.CurrentUser(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "missing token", nil)
		return
	}
	count, err := h.Repo.CountUnreadNotifications(c.Request.Context(), claims.UserID())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"unread": count}, nil)
}

type markReadRequest struct {
	IDs []uint64 `json:"ids"`
	All bool     `json:"all"`
}

// @Summary Mark notifications read
// @Tags notifications
// @Accept json
// @Produce json
// @Param body body markReadRequest true "ids, or all"
// @Success 200 {object} map[string]int64
// @Security BearerAuth
// @Router /api/notifications [patch]
func (h *NotificationHandler) markRead(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	claims, ok := auth.CurrentUser(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "missing token", nil)
		return
	}
	var in markReadRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, "invalid payload", nil)
		return
	}

	var n int64
	var err error
	if in.All {
		n, err = h.Repo.MarkAllNotificationsRead(c.Request.Context(), claims.UserID())
	} else {
		n, err = h.Repo.MarkNotificationsRead(c.Request.Context(), claims.UserID(), in.IDs)
	}
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"marked": n}, nil)
}
