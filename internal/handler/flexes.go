package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradeflex/internal/auth"
	"tradeflex/internal/repository"
	"tradeflex/internal/service"
)

type FlexHandler struct {
	Flexes   *service.FlexService
	Profiles *service.ProfileService
	Auth     gin.HandlerFunc
}

func (h *FlexHandler) Register(r *gin.Engine) {
	group := r.Group("/api/flexes")
	group.GET("", h.list)
	group.GET("/:id", h.get)
	group.GET("/:id/card.png", h.card)
	group.POST("", h.Auth, h.create)
}

// @Summary Create a flex
// @Tags flexes
// @Accept json
// @Produce json
// @Param body body service.CreateFlexInput true "trade"
// @Success 200 {object} models.Flex
// @Security BearerAuth
// @Router /api/flexes [post]
func (h *FlexHandler) create(c *gin.Context) {
	if h.Flexes == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	claims, ok := auth.CurrentUser(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "missing token", nil)
		return
	}

	// Provision the profile before the first write so feed items and
	// leaderboard joins always find an author row.
	if h.Profiles != nil {
		if _, err := h.Profiles.Ensure(c.Request.Context(), claims); err != nil {
			serviceError(c, err)
			return
		}
	}

	var in service.CreateFlexInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	item, err := h.Flexes.Create(c.Request.Context(), claims.UserID(), in)
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, item, nil)
}

// @Summary List flexes
// @Tags flexes
// @Produce json
// @Param user_id query string false "filter by author"
// @Param ticker query string false "filter by ticker"
// @Success 200 {array} models.Flex
// @Router /api/flexes [get]
func (h *FlexHandler) list(c *gin.Context) {
	if h.Flexes == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	items, total, err := h.Flexes.List(c.Request.Context(), repository.ListFlexesParams{
		Limit:      limit,
		Offset:     offset,
		UserID:     strQueryPtr(c, "user_id"),
		Ticker:     strQueryPtr(c, "ticker"),
		Position:   strQueryPtr(c, "position"),
		Instrument: strQueryPtr(c, "instrument"),
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

// @Summary Get a flex
// @Tags flexes
// @Produce json
// @Param id path string true "flex id"
// @Success 200 {object} models.Flex
// @Router /api/flexes/{id} [get]
func (h *FlexHandler) get(c *gin.Context) {
	if h.Flexes == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	item, err := h.Flexes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, item, nil)
}

// @Summary Export the shareable card
// @Tags flexes
// @Produce png
// @Param id path string true "flex id"
// @Success 200 {file} binary
// @Router /api/flexes/{id}/card.png [get]
func (h *FlexHandler) card(c *gin.Context) {
	if h.Flexes == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	png, filename, err := h.Flexes.CardPNG(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "image/png", png)
}
