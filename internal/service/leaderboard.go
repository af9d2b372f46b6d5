package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tradeflex/internal/cache"
	"tradeflex/internal/repository"
)

const (
	LeaderboardWindowDay  = "day"
	LeaderboardWindowWeek = "week"
	LeaderboardWindowAll  = "all"
	leaderboardSize       = 5
)

type LeaderboardService struct {
	Repo   repository.Repository
	Cache  cache.Store
	Logger *zap.Logger
	TTL    time.Duration
}

type LeaderboardRow struct {
	Rank        int       `json:"rank"`
	FlexID      string    `json:"flex_id"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	AvatarEmoji string    `json:"avatar_emoji,omitempty"`
	Ticker      string    `json:"ticker"`
	Instrument  string    `json:"instrument"`
	Position    string    `json:"position"`
	PnLPercent  string    `json:"pnl_percent"`
	PnLAmount   string    `json:"pnl_amount,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func leaderboardKey(window string, losers bool) string {
	side := "gainers"
	if losers {
		side = "losers"
	}
	return fmt.Sprintf("leaderboard:%s:%s", window, side)
}

func windowStart(window string, now time.Time) *time.Time {
	switch window {
	case LeaderboardWindowDay:
		since := now.UTC().Truncate(24 * time.Hour)
		return &since
	case LeaderboardWindowWeek:
		since := now.UTC().AddDate(0, 0, -7)
		return &since
	default:
		return nil
	}
}

func (s *LeaderboardService) Get(ctx context.Context, window string, losers bool) ([]LeaderboardRow, error) {
	if s == nil || s.Repo == nil {
		return nil, ErrNotFound
	}
	switch window {
	case LeaderboardWindowDay, LeaderboardWindowWeek, LeaderboardWindowAll:
	default:
		return nil, ErrInvalid
	}

	key := leaderboardKey(window, losers)
	if s.Cache != nil {
		if b, found, err := s.Cache.Get(ctx, key); err == nil && found {
			var rows []LeaderboardRow
			if err := json.Unmarshal(b, &rows); err == nil {
				return rows, nil
			}
		}
	}

	rows, err := s.build(ctx, window, losers)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, rows)
	return rows, nil
}

func (s *LeaderboardService) build(ctx context.Context, window string, losers bool) ([]LeaderboardRow, error) {
	entries, err := s.Repo.ListTopFlexes(ctx, repository.LeaderboardParams{
		Limit:  leaderboardSize,
		Since:  windowStart(window, time.Now()),
		Losers: losers,
	})
	if err != nil {
		return nil, err
	}
	rows := make([]LeaderboardRow, 0, len(entries))
	for i, e := range entries {
		row := LeaderboardRow{
			Rank:        i + 1,
			FlexID:      e.FlexID,
			UserID:      e.UserID,
			DisplayName: e.DisplayName,
			AvatarEmoji: e.AvatarEmoji,
			Ticker:      e.Ticker,
			Instrument:  e.Instrument,
			Position:    e.Position,
			PnLPercent:  e.PnLPercent.StringFixed(2),
			CreatedAt:   e.CreatedAt,
		}
		if e.PnLAmount != nil {
			row.PnLAmount = e.PnLAmount.StringFixed(2)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *LeaderboardService) store(ctx context.Context, key string, rows []LeaderboardRow) {
	if s.Cache == nil {
		return
	}
	ttl := s.TTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, b, ttl); err != nil && s.Logger != nil {
		s.Logger.Warn("leaderboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Refresh rebuilds every board variant; the cron job calls it so the cache is
// warm before traffic hits it.
func (s *LeaderboardService) Refresh(ctx context.Context) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	for _, window := range []string{LeaderboardWindowDay, LeaderboardWindowWeek, LeaderboardWindowAll} {
		for _, losers := range []bool{false, true} {
			rows, err := s.build(ctx, window, losers)
			if err != nil {
				return err
			}
			s.store(ctx, leaderboardKey(window, losers), rows)
		}
	}
	return nil
}
