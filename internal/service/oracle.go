package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"tradeflex/internal/cache"
	"tradeflex/internal/models"
	"tradeflex/internal/repository"
)

const oracleCacheKeyPrefix = "oracle:tally:"

// OracleService runs the daily bull/bear poll. One vote per user per UTC day;
// revoting flips the side.
type OracleService struct {
	Repo   repository.Repository
	Cache  cache.Store
	Logger *zap.Logger
	TTL    time.Duration
}

type OracleToday struct {
	PollDate   string `json:"poll_date"`
	Bullish    int64  `json:"bullish"`
	Bearish    int64  `json:"bearish"`
	BullishPct int    `json:"bullish_pct"`
	UserSide   string `json:"user_side,omitempty"`
}

func PollDate(now time.Time) string {
	return now.UTC().Format("2006-01-02")
}

func (s *OracleService) Vote(ctx context.Context, userID, side string) (OracleToday, error) {
	var out OracleToday
	if s == nil || s.Repo == nil {
		return out, ErrNotFound
	}
	side = strings.ToLower(strings.TrimSpace(side))
	if side != models.OracleSideBullish && side != models.OracleSideBearish {
		return out, ErrInvalid
	}

	day := PollDate(time.Now())
	if err := s.Repo.UpsertOracleVote(ctx, &models.OracleVote{
		UserID:   userID,
		PollDate: day,
		Side:     side,
	}); err != nil {
		return out, err
	}
	s.invalidate(ctx, day)
	return s.Today(ctx, userID)
}

// Today serves the tally from cache when fresh; the voter's own side is
// always read through.
func (s *OracleService) Today(ctx context.Context, userID string) (OracleToday, error) {
	var out OracleToday
	if s == nil || s.Repo == nil {
		return out, ErrNotFound
	}
	day := PollDate(time.Now())

	tally, ok := s.cachedTally(ctx, day)
	if !ok {
		fresh, err := s.Repo.OracleTally(ctx, day)
		if err != nil {
			return out, err
		}
		tally = fresh
		s.storeTally(ctx, tally)
	}

	out.PollDate = day
	out.Bullish = tally.Bullish
	out.Bearish = tally.Bearish
	if total := tally.Bullish + tally.Bearish; total > 0 {
		out.BullishPct = int(tally.Bullish * 100 / total)
	}

	if userID != "" {
		vote, err := s.Repo.GetOracleVote(ctx, userID, day)
		if err != nil {
			return out, err
		}
		if vote != nil {
			out.UserSide = vote.Side
		}
	}
	return out, nil
}

func (s *OracleService) cachedTally(ctx context.Context, day string) (repository.OracleTally, bool) {
	var tally repository.OracleTally
	if s.Cache == nil {
		return tally, false
	}
	b, found, err := s.Cache.Get(ctx, oracleCacheKeyPrefix+day)
	if err != nil || !found {
		return tally, false
	}
	if err := json.Unmarshal(b, &tally); err != nil {
		return tally, false
	}
	return tally, true
}

func (s *OracleService) storeTally(ctx context.Context, tally repository.OracleTally) {
	if s.Cache == nil {
		return
	}
	ttl := s.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	b, err := json.Marshal(tally)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, oracleCacheKeyPrefix+tally.PollDate, b, ttl); err != nil && s.Logger != nil {
		s.Logger.Warn("oracle tally cache write failed", zap.Error(err))
	}
}

func (s *OracleService) invalidate(ctx context.Context, day string) {
	if s.Cache == nil {
		return
	}
	_ = s.Cache.Delete(ctx, oracleCacheKeyPrefix+day)
}
