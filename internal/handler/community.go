package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tradeflex/internal/auth"
	"tradeflex/internal/models"
	"tradeflex/internal/repository"
	"tradeflex/internal/service"
)

type CommunityHandler struct {
	Community *service.CommunityService
	Profiles  *service.ProfileService
	Auth      gin.HandlerFunc
}

func (h *CommunityHandler) Register(r *gin.Engine) {
	group := r.Group("/api/community/posts")
	group.GET("", h.listPosts)
	group.GET("/:id/comments", h.listComments)
	group.POST("", h.Auth, h.createPost)
	group.POST("/:id/like", h.Auth, h.likePost)
	group.POST("/:id/comments", h.Auth, h.addComment)
	r.POST("/api/community/comments/:id/like", h.Auth, h.likeComment)
}

// @Summary List forum posts
// @Tags community
// @Produce json
// @Param ticker query string false "filter by ticker"
// @Param sort query string false "new or hot" default(new)
// @Success 200 {array} models.CommunityPost
// @Router /api/community/posts [get]
func (h *CommunityHandler) listPosts(c *gin.Context) {
	if h.Community == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	items, total, err := h.Community.ListPosts(c.Request.Context(), repository.ListPostsParams{
		Limit:     limit,
		Offset:    offset,
		Ticker:    strQueryPtr(c, "ticker"),
		Sentiment: strQueryPtr(c, "sentiment"),
		UserID:    strQueryPtr(c, "user_id"),
		Sort:      strings.ToLower(strings.TrimSpace(c.Query("sort"))),
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

func (h *CommunityHandler) author(c *gin.Context) (*models.Profile, bool) {
	claims, found := auth.CurrentUser(c)
	if !found {
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

// @Summary Create a forum post
// @Tags community
// @Accept json
// @Produce json
// @Param body body service.CreatePostInput true "post"
// @Success 200 {object} models.CommunityPost
// @Security BearerAuth
// @Router /api/community/posts [post]
func (h *CommunityHandler) createPost(c *gin.Context) {
	if h.Community == nil || h.Profiles == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	author, ok := h.author(c)
	if !ok {
		return
	}
	var in service.CreatePostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	post, err := h.Community.CreatePost(c.Request.Context(), author, in)
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, post, nil)
}

// @Summary Like a post
// @Tags community
// @Produce json
// @Param id path string true "post id"
// @Success 200 {object} map[string]int
// @Security BearerAuth
// @Router /api/community/posts/{id}/like [post]
func (h *CommunityHandler) likePost(c *gin.Context) {
	if h.Community == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	likes, err := h.Community.LikePost(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, gin.H{"likes": likes}, nil)
}

// @Summary Like a comment
// @Tags community
// @Produce json
// @Param id path string true "comment id"
// @Success 200 {object} map[string]int
// @Security BearerAuth
// @Router /api/community/comments/{id}/like [post]
func (h *CommunityHandler) likeComment(c *gin.Context) {
	if h.Community == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	likes, err := h.Community.LikeComment(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, gin.H{"likes": likes}, nil)
}

type addCommentRequest struct {
	Content string `json:"content"`
}

// @Summary Comment on a post
// @Tags community
// @Accept json
// @Produce json
// @Param id path string true "post id"
// @Param body body addCommentRequest true "comment"
// @Success 200 {object} models.CommunityComment
// @Security BearerAuth
// @Router /api/community/posts/{id}/comments [post]
func (h *CommunityHandler) addComment(c *gin.Context) {
	if h.Community == nil || h.Profiles == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	author, ok := h.author(c)
	if !ok {
		return
	}
	var in addCommentRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	comment, err := h.Community.AddComment(c.Request.Context(), author, c.Param("id"), in.Content)
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, comment, nil)
}

// @Summary List comments for a post
// @Tags community
// @Produce json
// @Param id path string true "post id"
// @Success 200 {array} models.CommunityComment
// @Router /api/community/posts/{id}/comments [get]
func (h *CommunityHandler) listComments(c *gin.Context) {
	if h.Community == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	items, err := h.Community.ListComments(c.Request.Context(), c.Param("id"),
		intQuery(c, "limit", 100), intQuery(c, "offset", 0))
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, items, nil)
}
