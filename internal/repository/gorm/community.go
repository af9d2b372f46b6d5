package gormrepository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"tradeflex/internal/models"
	"tradeflex/internal/repository"
)

func (s *Store) InsertPost(ctx context.Context, item *models.CommunityPost) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetPostByID(ctx context.Context, id string) (*models.CommunityPost, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	var item models.CommunityPost
	err := s.db.WithContext(ctx).Model(&models.CommunityPost{}).Where("id = ?", id).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func applyPostFilters(query *gorm.DB, params repository.ListPostsParams) *gorm.DB {
	if params.Ticker != nil && strings.TrimSpace(*params.Ticker) != "" {
		query = query.Where("ticker = ?", strings.ToUpper(strings.TrimSpace(*params.Ticker)))
	}
	if params.Sentiment != nil && strings.TrimSpace(*params.Sentiment) != "" {
		query = query.Where("sentiment = ?", strings.TrimSpace(*params.Sentiment))
	}
	if params.UserID != nil && strings.TrimSpace(*params.UserID) != "" {
		query = query.Where("user_id = ?", strings.TrimSpace(*params.UserID))
	}
	return query
}

func (s *Store) ListPosts(ctx context.Context, params repository.ListPostsParams) ([]models.CommunityPost, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyPostFilters(s.db.WithContext(ctx).Model(&models.CommunityPost{}), params)
	switch params.Sort {
	case "hot":
		query = query.Order("likes desc, created_at desc")
	default:
		query = query.Order("created_at desc")
	}
	limit := normalizeLimit(params.Limit, 50)
	offset := normalizeOffset(params.Offset)
	var items []models.CommunityPost
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountPosts(ctx context.Context, params repository.ListPostsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	query := applyPostFilters(s.db.WithContext(ctx).Model(&models.CommunityPost{}), params)
	var count int64
	err := query.Count(&count).Error
	return count, err
}

// LikePost bumps the counter atomically and returns the new value.
func (s *Store) LikePost(ctx context.Context, id string) (int, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return 0, nil
	}
	var likes int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CommunityPost{}).
			Where("id = ?", id).
			Update("likes", gorm.Expr("likes + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&models.CommunityPost{}).
			Where("id = ?", id).
			Pluck("likes", &likes).Error
	})
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	return likes, err
}

// LikeComment bumps the counter atomically and returns the new value.
func (s *Store) LikeComment(ctx context.Context, id string) (int, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return 0, nil
	}
	var likes int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CommunityComment{}).
			Where("id = ?", id).
			Update("likes", gorm.Expr("likes + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&models.CommunityComment{}).
			Where("id = ?", id).
			Pluck("likes", &likes).Error
	})
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	return likes, err
}

// InsertComment writes the row and bumps the parent's comment_count in one
// transaction.
func (s *Store) InsertComment(ctx context.Context, item *models.CommunityComment) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		res := tx.Model(&models.CommunityPost{}).
			Where("id = ?", item.PostID).
			Update("comment_count", gorm.Expr("comment_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (s *Store) ListComments(ctx context.Context, postID string, limit, offset int) ([]models.CommunityComment, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	postID = strings.TrimSpace(postID)
	if postID == "" {
		return nil, nil
	}
	limit = normalizeLimit(limit, 100)
	offset = normalizeOffset(offset)
	var items []models.CommunityComment
	if err := s.db.WithContext(ctx).
		Model(&models.CommunityComment{}).
		Where("post_id = ?", postID).
		Order("created_at asc").
		Limit(limit).Offset(offset).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
