package gormrepository

import (
	"context"
	"strings"
	"time"

	"tradeflex/internal/models"
	"tradeflex/internal/repository"
)

func (s *Store) InsertNotification(ctx context.Context, item *models.Notification) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.UserID) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListNotifications(ctx context.Context, params repository.ListNotificationsParams) ([]models.Notification, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	userID := strings.TrimSpace(params.UserID)
	if userID == "" {
		return nil, nil
	}
	query := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ?", userID)
	if params.UnreadOnly {
		query = query.Where("read = ?", false)
	}
	limit := normalizeLimit(params.Limit, 50)
	offset := normalizeOffset(params.Offset)
	var items []models.Notification
	if err := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountUnreadNotifications(ctx context.Context, userID string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, nil
	}
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Where("read = ?", false).
		Count(&count).Error
	return count, err
}

func (s *Store) MarkNotificationsRead(ctx context.Context, userID string, ids []uint64) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	userID = strings.TrimSpace(userID)
	if userID == "" || len(ids) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Where("id IN ?", ids).
		Update("read", true)
	return res.RowsAffected, res.Error
}

func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Where("read = ?", false).
		Update("read", true)
	return res.RowsAffected, res.Error
}

func (s *Store) PurgeReadNotifications(ctx context.Context, before time.Time) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	if before.IsZero() {
		before = time.Now().UTC().AddDate(0, 0, -30)
	}
	res := s.db.WithContext(ctx).
		Where("read = ?", true).
		Where("created_at < ?", before).
		Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}
