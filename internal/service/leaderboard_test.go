package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tradeflex/internal/repository"
)

type fakeLeaderboardRepo struct {
	repository.Repository
	lastParams repository.LeaderboardParams
	entries    []repository.LeaderboardEntry
}

func (f *fakeLeaderboardRepo) ListTopFlexes(ctx context.Context, params repository.LeaderboardParams) ([]repository.LeaderboardEntry, error) {
	f.lastParams = params
	return f.entries, nil
}

func TestLeaderboardGet_RequestsFiveRowsPerBoard(t *testing.T) {
	repo := &fakeLeaderboardRepo{}
	svc := &LeaderboardService{Repo: repo}

	if _, err := svc.Get(context.Background(), LeaderboardWindowAll, false); err != nil {
		t.Fatalf("gainers: %v", err)
	}
	if repo.lastParams.Limit != 5 {
		t.Fatalf("gainers limit=%d want 5", repo.lastParams.Limit)
	}
	if repo.lastParams.Losers {
		t.Fatalf("gainers board must not set the losers flag")
	}

	if _, err := svc.Get(context.Background(), LeaderboardWindowAll, true); err != nil {
		t.Fatalf("losers: %v", err)
	}
	if repo.lastParams.Limit != 5 {
		t.Fatalf("losers limit=%d want 5", repo.lastParams.Limit)
	}
	if !repo.lastParams.Losers {
		t.Fatalf("losers board must set the losers flag")
	}
}

func TestLeaderboardGet_WindowStart(t *testing.T) {
	repo := &fakeLeaderboardRepo{}
	svc := &LeaderboardService{Repo: repo}

	if _, err := svc.Get(context.Background(), LeaderboardWindowWeek, false); err != nil {
		t.Fatalf("week: %v", err)
	}
	if repo.lastParams.Since == nil {
		t.Fatalf("week window must bound the query")
	}
	if age := time.Since(*repo.lastParams.Since); age < 6*24*time.Hour || age > 8*24*time.Hour {
		t.Fatalf("week window start off by %v", age)
	}

	if _, err := svc.Get(context.Background(), LeaderboardWindowAll, false); err != nil {
		t.Fatalf("all: %v", err)
	}
	if repo.lastParams.Since != nil {
		t.Fatalf("all-time window must not bound the query")
	}
}

func TestLeaderboardGet_RanksAndFormats(t *testing.T) {
	amount := decimal.RequireFromString("1250.5")
	repo := &fakeLeaderboardRepo{entries: []repository.LeaderboardEntry{
		{FlexID: "f1", UserID: "u1", DisplayName: "alice", Ticker: "TSLA",
			PnLPercent: decimal.RequireFromString("50"), PnLAmount: &amount},
		{FlexID: "f2", UserID: "u2", DisplayName: "bob", Ticker: "SPY",
			PnLPercent: decimal.RequireFromString("12.345")},
	}}
	svc := &LeaderboardService{Repo: repo}

	rows, err := svc.Get(context.Background(), LeaderboardWindowDay, false)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows=%d", len(rows))
	}
	if rows[0].Rank != 1 || rows[1].Rank != 2 {
		t.Fatalf("ranks=%d,%d", rows[0].Rank, rows[1].Rank)
	}
	if rows[0].PnLPercent != "50.00" || rows[0].PnLAmount != "1250.50" {
		t.Fatalf("row0=%+v", rows[0])
	}
	if rows[1].PnLPercent != "12.35" || rows[1].PnLAmount != "" {
		t.Fatalf("row1=%+v", rows[1])
	}
}

func TestLeaderboardGet_RejectsUnknownWindow(t *testing.T) {
	svc := &LeaderboardService{Repo: &fakeLeaderboardRepo{}}
	if _, err := svc.Get(context.Background(), "month", false); err != ErrInvalid {
		t.Fatalf("err=%v want ErrInvalid", err)
	}
}
