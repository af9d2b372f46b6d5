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

// UpsertOracleVote lets a user flip their side for the day; the unique index
// on (user_id, poll_date) holds the vote to one row.
func (s *Store) UpsertOracleVote(ctx context.Context, item *models.OracleVote) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.UserID) == "" || strings.TrimSpace(item.PollDate) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "poll_date"}},
		DoUpdates: clause.Assignments(map[string]any{
			"side":       item.Side,
			"updated_at": time.Now().UTC(),
		}),
	}).Create(item).Error
}

func (s *Store) GetOracleVote(ctx context.Context, userID, pollDate string) (*models.OracleVote, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	userID = strings.TrimSpace(userID)
	pollDate = strings.TrimSpace(pollDate)
	if userID == "" || pollDate == "" {
		return nil, nil
	}
	var item models.OracleVote
	err := s.db.WithContext(ctx).
		Model(&models.OracleVote{}).
		Where("user_id = ? AND poll_date = ?", userID, pollDate).
		First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) OracleTally(ctx context.Context, pollDate string) (repository.OracleTally, error) {
	tally := repository.OracleTally{PollDate: pollDate}
	if s == nil || s.db == nil {
		return tally, nil
	}
	if strings.TrimSpace(pollDate) == "" {
		return tally, nil
	}
	err := s.db.WithContext(ctx).
		Table("oracle_votes").
		Select(`
			COUNT(*) FILTER (WHERE side = 'bullish') AS bullish,
			COUNT(*) FILTER (WHERE side = 'bearish') AS bearish
		`).
		Where("poll_date = ?", pollDate).
		Scan(&tally).Error
	return tally, err
}

func (s *Store) CountOracleVotes(ctx context.Context) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.OracleVote{}).Count(&count).Error
	return count, err
}
