package gormrepository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tradeflex/internal/models"
)

func (s *Store) InsertFollow(ctx context.Context, item *models.Follow) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.FollowerID) == "" || strings.TrimSpace(item.FollowingID) == "" {
		return nil
	}
	// Re-following is a no-op, not an error.
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "follower_id"}, {Name: "following_id"}},
		DoNothing: true,
	}).Create(item).Error
}

func (s *Store) DeleteFollow(ctx context.Context, followerID, followingID string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	followerID = strings.TrimSpace(followerID)
	followingID = strings.TrimSpace(followingID)
	if followerID == "" || followingID == "" {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	return res.RowsAffected, res.Error
}

func (s *Store) FollowExists(ctx context.Context, followerID, followingID string) (bool, error) {
	if s == nil || s.db == nil {
		return false, nil
	}
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) CountFollowers(ctx context.Context, userID string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (s *Store) CountFollowing(ctx context.Context, userID string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (s *Store) InsertReferral(ctx context.Context, item *models.Referral) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.ReferrerID) == "" || strings.TrimSpace(item.ReferredID) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetReferralByReferredID(ctx context.Context, referredID string) (*models.Referral, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	referredID = strings.TrimSpace(referredID)
	if referredID == "" {
		return nil, nil
	}
	var item models.Referral
	err := s.db.WithContext(ctx).
		Model(&models.Referral{}).
		Where("referred_id = ?", referredID).
		First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) CountReferralsByReferrer(ctx context.Context, referrerID string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	referrerID = strings.TrimSpace(referrerID)
	if referrerID == "" {
		return 0, nil
	}
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Referral{}).
		Where("referrer_id = ?", referrerID).
		Count(&count).Error
	return count, err
}
