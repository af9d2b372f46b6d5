package gormrepository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tradeflex/internal/models"
	"tradeflex/internal/repository"
)

func (s *Store) UpsertProfile(ctx context.Context, item *models.Profile) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.ID) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email",
			"display_name",
			"avatar_emoji",
			"bio",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) GetProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	var item models.Profile
	err := s.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetProfileByDisplayName(ctx context.Context, name string) (*models.Profile, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	var item models.Profile
	err := s.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("LOWER(display_name) = LOWER(?)", name).
		First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetProfileByReferralCode(ctx context.Context, code string) (*models.Profile, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	var item models.Profile
	err := s.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("referral_code = ?", code).
		First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListProfiles(ctx context.Context, params repository.ListProfilesParams) ([]models.Profile, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Profile{})
	if params.Search != nil && strings.TrimSpace(*params.Search) != "" {
		needle := "%" + strings.TrimSpace(*params.Search) + "%"
		query = query.Where("display_name ILIKE ? OR email ILIKE ?", needle, needle)
	}
	query = applyOrder(query, params.OrderBy, params.Asc, "created_at")
	limit := normalizeLimit(params.Limit, 50)
	offset := normalizeOffset(params.Offset)
	var items []models.Profile
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountProfiles(ctx context.Context) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Profile{}).Count(&count).Error
	return count, err
}

func (s *Store) UpdateProfile(ctx context.Context, id string, updates map[string]any) error {
	if s == nil || s.db == nil {
		return nil
	}
	id = strings.TrimSpace(id)
	if id == "" || len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now().UTC()
	return s.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}
