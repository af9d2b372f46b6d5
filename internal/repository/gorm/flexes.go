package gormrepository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"tradeflex/internal/models"
	"tradeflex/internal/repository"
)

func (s *Store) InsertFlex(ctx context.Context, item *models.Flex) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetFlexByID(ctx context.Context, id string) (*models.Flex, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	var item models.Flex
	err := s.db.WithContext(ctx).Model(&models.Flex{}).Where("id = ?", id).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func applyFlexFilters(query *gorm.DB, params repository.ListFlexesParams) *gorm.DB {
	if params.UserID != nil && strings.TrimSpace(*params.UserID) != "" {
		query = query.Where("user_id = ?", strings.TrimSpace(*params.UserID))
	}
	if params.Ticker != nil && strings.TrimSpace(*params.Ticker) != "" {
		query = query.Where("ticker = ?", strings.ToUpper(strings.TrimSpace(*params.Ticker)))
	}
	if params.Position != nil && strings.TrimSpace(*params.Position) != "" {
		query = query.Where("position = ?", strings.TrimSpace(*params.Position))
	}
	if params.Instrument != nil && strings.TrimSpace(*params.Instrument) != "" {
		query = query.Where("instrument = ?", strings.TrimSpace(*params.Instrument))
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("created_at >= ?", *params.Since)
	}
	return query
}

func (s *Store) ListFlexes(ctx context.Context, params repository.ListFlexesParams) ([]models.Flex, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyFlexFilters(s.db.WithContext(ctx).Model(&models.Flex{}), params)
	query = applyOrder(query, params.OrderBy, params.Asc, "created_at")
	limit := normalizeLimit(params.Limit, 50)
	offset := normalizeOffset(params.Offset)
	var items []models.Flex
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountFlexes(ctx context.Context, params repository.ListFlexesParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	query := applyFlexFilters(s.db.WithContext(ctx).Model(&models.Flex{}), params)
	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (s *Store) CountFlexesSince(ctx context.Context, since time.Time) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Flex{})
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

// ListTopFlexes keeps one row per user, the user's best (or worst) flex in
// the window, ranked by pnl_percent. Gainer boards carry only positive
// percents, loser boards only negative ones.
func (s *Store) ListTopFlexes(ctx context.Context, params repository.LeaderboardParams) ([]repository.LeaderboardEntry, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	limit := normalizeLimit(params.Limit, 5)
	direction := "DESC"
	sign := "f.pnl_percent > 0"
	if params.Losers {
		direction = "ASC"
		sign = "f.pnl_percent < 0"
	}

	query := s.db.WithContext(ctx).
		Table("flexes AS f").
		Select(`
			f.id AS flex_id,
			f.user_id AS user_id,
			p.display_name AS display_name,
			p.avatar_emoji AS avatar_emoji,
			f.ticker AS ticker,
			f.instrument AS instrument,
			f.position AS position,
			f.pnl_percent AS pn_l_percent,
			f.pnl_amount AS pn_l_amount,
			f.created_at AS created_at
		`).
		Joins("JOIN profiles AS p ON p.id = f.user_id").
		Where("f.status = ?", models.TradeStatusClosed).
		Where(sign).
		Where(`f.id = (
			SELECT f2.id FROM flexes AS f2
			WHERE f2.user_id = f.user_id AND f2.status = 'closed'
			ORDER BY f2.pnl_percent ` + direction + `, f2.created_at DESC
			LIMIT 1
		)`)
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("f.created_at >= ?", *params.Since)
	}

	var rows []repository.LeaderboardEntry
	if err := query.Order("f.pnl_percent " + direction).Limit(limit).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) TickerPositionCounts(ctx context.Context, since time.Time, limit int) ([]repository.TickerPositionRow, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	limit = normalizeLimit(limit, 50)
	query := s.db.WithContext(ctx).
		Table("flexes").
		Select("ticker, position, COUNT(*) AS count").
		Group("ticker, position").
		Order("count DESC")
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}
	var rows []repository.TickerPositionRow
	if err := query.Limit(limit).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) UserTradeStats(ctx context.Context, userID string) (repository.TradeStats, error) {
	var stats repository.TradeStats
	if s == nil || s.db == nil {
		return stats, nil
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return stats, nil
	}
	err := s.db.WithContext(ctx).
		Table("flexes").
		Select(`
			COUNT(*) AS total_flexes,
			COUNT(*) FILTER (WHERE pnl_percent >= 0) AS wins,
			COUNT(*) FILTER (WHERE pnl_percent < 0) AS losses,
			COALESCE(MAX(pnl_percent), 0) AS best_percent,
			COALESCE(SUM(pnl_amount), 0) AS total_amount
		`).
		Where("user_id = ?", userID).
		Where("status = ?", models.TradeStatusClosed).
		Scan(&stats).Error
	return stats, err
}
