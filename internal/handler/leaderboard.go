package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tradeflex/internal/service"
)

type LeaderboardHandler struct {
	Leaderboard *service.LeaderboardService
}

func (h *LeaderboardHandler) Register(r *gin.Engine) {
	r.GET("/api/leaderboard", h.get)
}

// @Summary Leaderboard
// @Tags leaderboard
// @Produce json
// @Param window query string false "day, week or all" default(day)
// @Param board query string false "gainers or losers; omit for both"
// @Success 200 {object} map[string]any
// @Router /api/leaderboard [get]
func (h *LeaderboardHandler) get(c *gin.Context) {
	if h.Leaderboard == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	window := strings.ToLower(strings.TrimSpace(c.DefaultQuery("window", service.LeaderboardWindowDay)))
	board := strings.ToLower(strings.TrimSpace(c.Query("board")))

	if board != "" {
		rows, err := h.Leaderboard.Get(c.Request.Context(), window, board == "losers")
		if err != nil {
			serviceError(c, err)
			return
		}
		Ok(c, rows, map[string]any{"window": window, "board": board})
		return
	}

	mooners, err := h.Leaderboard.Get(c.Request.Context(), window, false)
	if err != nil {
		serviceError(c, err)
		return
	}
	rekt, err := h.Leaderboard.Get(c.Request.Context(), window, true)
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, gin.H{"mooners": mooners, "rekt": rekt}, map[string]any{"window": window})
}
