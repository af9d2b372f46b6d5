package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"tradeflex/internal/cache"
	"tradeflex/internal/models"
	"tradeflex/internal/repository"
)

const sentimentCacheKeyPrefix = "sentiment:signal:"

// SentimentService derives a crowd positioning signal from the last day of
// flexes: the long share of all posted positions.
type SentimentService struct {
	Repo  repository.Repository
	Cache cache.Store
	TTL   time.Duration
}

type SentimentSignal struct {
	Ticker     string `json:"ticker,omitempty"`
	LongCount  int64  `json:"long_count"`
	ShortCount int64  `json:"short_count"`
	LongPct    int    `json:"long_pct"`
	Label      string `json:"label"`
}

const (
	SentimentLabelGreed   = "EXTREME GREED"
	SentimentLabelFear    = "EXTREME FEAR"
	SentimentLabelNeutral = "NEUTRAL"
)

func sentimentLabel(longPct int, total int64) string {
	if total == 0 {
		return SentimentLabelNeutral
	}
	switch {
	case longPct >= 80:
		return SentimentLabelGreed
	case longPct <= 20:
		return SentimentLabelFear
	default:
		return SentimentLabelNeutral
	}
}

// buildSentimentSignal aggregates position counts; an empty ticker means the
// whole tape.
func buildSentimentSignal(rows []repository.TickerPositionRow, ticker string) SentimentSignal {
	signal := SentimentSignal{Ticker: ticker}
	for _, row := range rows {
		if ticker != "" && row.Ticker != ticker {
			continue
		}
		switch row.Position {
		case models.PositionLong:
			signal.LongCount += row.Count
		case models.PositionShort:
			signal.ShortCount += row.Count
		}
	}
	total := signal.LongCount + signal.ShortCount
	if total > 0 {
		signal.LongPct = int(signal.LongCount * 100 / total)
	}
	signal.Label = sentimentLabel(signal.LongPct, total)
	return signal
}

func (s *SentimentService) Signal(ctx context.Context, ticker string) (SentimentSignal, error) {
	var signal SentimentSignal
	if s == nil || s.Repo == nil {
		return signal, ErrNotFound
	}
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	key := sentimentCacheKeyPrefix + "all"
	if ticker != "" {
		key = sentimentCacheKeyPrefix + ticker
	}
	if s.Cache != nil {
		if b, found, err := s.Cache.Get(ctx, key); err == nil && found {
			if err := json.Unmarshal(b, &signal); err == nil {
				return signal, nil
			}
		}
	}

	since := time.Now().UTC().Add(-24 * time.Hour)
	rows, err := s.Repo.TickerPositionCounts(ctx, since, 200)
	if err != nil {
		return signal, err
	}
	signal = buildSentimentSignal(rows, ticker)

	if s.Cache != nil {
		ttl := s.TTL
		if ttl <= 0 {
			ttl = time.Minute
		}
		if b, err := json.Marshal(signal); err == nil {
			_ = s.Cache.Set(ctx, key, b, ttl)
		}
	}
	return signal, nil
}
