package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tradeflex/internal/models"
	"tradeflex/internal/repository"
)

type CommunityService struct {
	Repo     repository.Repository
	Notifier *Notifier
	Logger   *zap.Logger
}

type CreatePostInput struct {
	Ticker    string `json:"ticker"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Sentiment string `json:"sentiment"`
}

func (s *CommunityService) CreatePost(ctx context.Context, author *models.Profile, in CreatePostInput) (*models.CommunityPost, error) {
	if s == nil || s.Repo == nil {
		return nil, ErrNotFound
	}
	if author == nil {
		return nil, ErrInvalid
	}

	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || len(title) > 200 || content == "" {
		return nil, ErrInvalid
	}

	sentiment := strings.ToLower(strings.TrimSpace(in.Sentiment))
	switch sentiment {
	case "":
		sentiment = models.SentimentNeutral
	case models.SentimentBullish, models.SentimentBearish, models.SentimentNeutral:
	default:
		return nil, ErrInvalid
	}

	post := &models.CommunityPost{
		ID:          uuid.NewString(),
		UserID:      author.ID,
		Username:    author.DisplayName,
		AvatarEmoji: author.AvatarEmoji,
		Title:       title,
		Content:     content,
		Sentiment:   sentiment,
	}
	if ticker := strings.ToUpper(strings.TrimSpace(in.Ticker)); ticker != "" {
		if len(ticker) > 16 {
			return nil, ErrInvalid
		}
		post.Ticker = &ticker
	}

	if err := s.Repo.InsertPost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *CommunityService) ListPosts(ctx context.Context, params repository.ListPostsParams) ([]models.CommunityPost, int64, error) {
	if s == nil || s.Repo == nil {
		return nil, 0, ErrNotFound
	}
	items, err := s.Repo.ListPosts(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.CountPosts(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *CommunityService) LikePost(ctx context.Context, postID string) (int, error) {
	if s == nil || s.Repo == nil {
		return 0, ErrNotFound
	}
	post, err := s.Repo.GetPostByID(ctx, postID)
	if err != nil {
		return 0, err
	}
	if post == nil {
		return 0, ErrNotFound
	}
	return s.Repo.LikePost(ctx, postID)
}

func (s *CommunityService) LikeComment(ctx context.Context, commentID string) (int, error) {
	if s == nil || s.Repo == nil {
		return 0, ErrNotFound
	}
	likes, err := s.Repo.LikeComment(ctx, commentID)
	if err != nil {
		return 0, err
	}
	if likes == 0 {
		return 0, ErrNotFound
	}
	return likes, nil
}

// AddComment writes the comment and pings the post author, unless they are
// commenting on their own thread.
func (s *CommunityService) AddComment(ctx context.Context, author *models.Profile, postID, content string) (*models.CommunityComment, error) {
	if s == nil || s.Repo == nil {
		return nil, ErrNotFound
	}
	if author == nil {
		return nil, ErrInvalid
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrInvalid
	}

	post, err := s.Repo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	comment := &models.CommunityComment{
		ID:          uuid.NewString(),
		PostID:      post.ID,
		UserID:      author.ID,
		Username:    author.DisplayName,
		AvatarEmoji: author.AvatarEmoji,
		Content:     content,
	}
	if err := s.Repo.InsertComment(ctx, comment); err != nil {
		return nil, err
	}

	if post.UserID != author.ID {
		s.Notifier.Notify(ctx, post.UserID,
			models.NotificationKindComment,
			author.DisplayName+" commented on your post",
			truncate(content, 140),
			map[string]any{"post_id": post.ID, "comment_id": comment.ID})
	}
	return comment, nil
}

func (s *CommunityService) ListComments(ctx context.Context, postID string, limit, offset int) ([]models.CommunityComment, error) {
	if s == nil || s.Repo == nil {
		return nil, ErrNotFound
	}
	post, err := s.Repo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return s.Repo.ListComments(ctx, postID, limit, offset)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
