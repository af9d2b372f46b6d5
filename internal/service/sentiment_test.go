package service

import (
	"testing"

	"tradeflex/internal/repository"
)

func TestBuildSentimentSignal_Labels(t *testing.T) {
	cases := []struct {
		name      string
		long      int64
		short     int64
		wantPct   int
		wantLabel string
	}{
		{"all long", 10, 0, 100, SentimentLabelGreed},
		{"greed boundary", 8, 2, 80, SentimentLabelGreed},
		{"balanced", 5, 5, 50, SentimentLabelNeutral},
		{"fear boundary", 2, 8, 20, SentimentLabelFear},
		{"all short", 0, 10, 0, SentimentLabelFear},
		{"no data", 0, 0, 0, SentimentLabelNeutral},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows := []repository.TickerPositionRow{
				{Ticker: "BTC", Position: "long", Count: tc.long},
				{Ticker: "BTC", Position: "short", Count: tc.short},
			}
			got := buildSentimentSignal(rows, "")
			if got.LongPct != tc.wantPct {
				t.Fatalf("pct=%d want %d", got.LongPct, tc.wantPct)
			}
			if got.Label != tc.wantLabel {
				t.Fatalf("label=%q want %q", got.Label, tc.wantLabel)
			}
		})
	}
}

func TestBuildSentimentSignal_SumsAcrossTickers(t *testing.T) {
	rows := []repository.TickerPositionRow{
		{Ticker: "BTC", Position: "long", Count: 3},
		{Ticker: "SPY", Position: "long", Count: 2},
		{Ticker: "TSLA", Position: "short", Count: 5},
	}
	got := buildSentimentSignal(rows, "")
	if got.LongCount != 5 || got.ShortCount != 5 {
		t.Fatalf("counts=%d/%d", got.LongCount, got.ShortCount)
	}
	if got.LongPct != 50 || got.Label != SentimentLabelNeutral {
		t.Fatalf("signal=%+v", got)
	}
}

func TestBuildSentimentSignal_TickerFilter(t *testing.T) {
	rows := []repository.TickerPositionRow{
		{Ticker: "BTC", Position: "long", Count: 9},
		{Ticker: "BTC", Position: "short", Count: 1},
		{Ticker: "TSLA", Position: "short", Count: 20},
	}
	got := buildSentimentSignal(rows, "BTC")
	if got.Ticker != "BTC" {
		t.Fatalf("ticker=%q", got.Ticker)
	}
	if got.LongCount != 9 || got.ShortCount != 1 {
		t.Fatalf("counts=%d/%d", got.LongCount, got.ShortCount)
	}
	if got.Label != SentimentLabelGreed {
		t.Fatalf("label=%q", got.Label)
	}
}
