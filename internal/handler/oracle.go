package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradeflex/internal/auth"
	"tradeflex/internal/service"
)

type OracleHandler struct {
	Oracle   *service.OracleService
	Auth     gin.HandlerFunc
	Optional gin.HandlerFunc
}

func (h *OracleHandler) Register(r *gin.Engine) {
	group := r.Group("/api/oracle")
	group.GET("/today", h.Optional, h.today)
	group.POST("/vote", h.Auth, h.vote)
}

// @Summary Today's oracle tally
// @Tags oracle
// @Produce json
// @Success 200 {object} service.OracleToday
// @Router /api/oracle/today [get]
func (h *OracleHandler) today(c *gin.Context) {
	if h.Oracle == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	userID := ""
	if claims, ok := auth.CurrentUser(c); ok {
		userID = claims.UserID()
	}
	out, err := h.Oracle.Today(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, out, nil)
}

type oracleVoteRequest struct {
	Side string `json:"side"`
}

// @Summary Cast or flip today's vote
// @Tags oracle
// @Accept json
// @Produce json
// @Param body body oracleVoteRequest true "bullish or bearish"
// @Success 200 {object} service.OracleToday
// @Security BearerAuth
// @Router /api/oracle/vote [post]
func (h *OracleHandler) vote(c *gin.Context) {
	if h.Oracle == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	claims, ok := auth.CurrentUser(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "missing token", nil)
		return
	}
	var in oracleVoteRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	out, err := h.Oracle.Vote(c.Request.Context(), claims.UserID(), in.Side)
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, out, nil)
}
