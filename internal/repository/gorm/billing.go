package gormrepository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tradeflex/internal/models"
)

func (s *Store) UpsertSubscription(ctx context.Context, item *models.Subscription) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.UserID) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"customer_id",
			"subscription_id",
			"status",
			"plan",
			"current_period_end",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) GetSubscriptionByUserID(ctx context.Context, userID string) (*models.Subscription, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}
	var item models.Subscription
	err := s.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("user_id = ?", userID).
		First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetSubscriptionByCustomerID(ctx context.Context, customerID string) (*models.Subscription, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, nil
	}
	var item models.Subscription
	err := s.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("customer_id = ?", customerID).
		First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpdateSubscriptionStatus(ctx context.Context, userID, status string, periodEnd *time.Time) error {
	if s == nil || s.db == nil {
		return nil
	}
	userID = strings.TrimSpace(userID)
	if userID == "" || strings.TrimSpace(status) == "" {
		return nil
	}
	updates := map[string]any{
		"status":     strings.TrimSpace(status),
		"updated_at": time.Now().UTC(),
	}
	if periodEnd != nil && !periodEnd.IsZero() {
		updates["current_period_end"] = *periodEnd
	}
	return s.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("user_id = ?", userID).
		Updates(updates).
		Error
}

// ExpireLapsedSubscriptions flips active rows whose period has ended; the
// cron sweep calls it so entitlement lookups stay a single indexed read.
func (s *Store) ExpireLapsedSubscriptions(ctx context.Context, now time.Time) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}
	res := s.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("status = ?", models.SubscriptionStatusActive).
		Where("current_period_end < ?", now).
		Updates(map[string]any{
			"status":     models.SubscriptionStatusExpired,
			"updated_at": now,
		})
	return res.RowsAffected, res.Error
}

func (s *Store) CountActiveSubscriptions(ctx context.Context) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("status = ?", models.SubscriptionStatusActive).
		Where("current_period_end > ?", time.Now().UTC()).
		Count(&count).Error
	return count, err
}
