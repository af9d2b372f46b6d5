package pnl

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCompute_LongGain(t *testing.T) {
	out := Compute(Input{
		Instrument: "stock",
		Position:   "long",
		EntryPrice: dec("100"),
		ExitPrice:  dec("150"),
		Quantity:   dec("10"),
	})
	if out.Percent.StringFixed(2) != "50.00" {
		t.Fatalf("percent=%s want 50.00", out.Percent)
	}
	if out.Amount == nil || out.Amount.StringFixed(2) != "500.00" {
		t.Fatalf("amount=%v want 500.00", out.Amount)
	}
}

func TestCompute_ShortOptionLoss(t *testing.T) {
	out := Compute(Input{
		Instrument: "option",
		Position:   "short",
		EntryPrice: dec("4.20"),
		ExitPrice:  dec("12.50"),
		Quantity:   dec("50"),
	})
	if out.Percent.StringFixed(2) != "-197.62" {
		t.Fatalf("percent=%s want -197.62", out.Percent)
	}
	if out.Amount == nil || out.Amount.StringFixed(2) != "-41500.00" {
		t.Fatalf("amount=%v want -41500.00", out.Amount)
	}
}

func TestCompute_ZeroPriceGuard(t *testing.T) {
	for _, in := range []Input{
		{Position: "long", EntryPrice: dec("0"), ExitPrice: dec("150")},
		{Position: "long", EntryPrice: dec("100"), ExitPrice: dec("0")},
		{Position: "short", EntryPrice: dec("-5"), ExitPrice: dec("10")},
	} {
		out := Compute(in)
		if !out.Percent.IsZero() {
			t.Fatalf("percent=%s want 0 for %+v", out.Percent, in)
		}
		if out.Amount != nil {
			t.Fatalf("amount=%v want nil for %+v", out.Amount, in)
		}
	}
}

func TestCompute_FlatTrade(t *testing.T) {
	out := Compute(Input{
		Instrument: "stock",
		Position:   "long",
		EntryPrice: dec("100"),
		ExitPrice:  dec("100"),
		Quantity:   dec("5"),
	})
	if out.Percent.StringFixed(2) != "0.00" {
		t.Fatalf("percent=%s want 0.00", out.Percent)
	}
	if out.Amount == nil || out.Amount.StringFixed(2) != "0.00" {
		t.Fatalf("amount=%v want 0.00", out.Amount)
	}
}

func TestCompute_SignSymmetry(t *testing.T) {
	cases := [][2]string{
		{"100", "150"},
		{"4.20", "12.50"},
		{"0.003", "0.002"},
		{"250", "250"},
	}
	for _, c := range cases {
		long := Compute(Input{Position: "long", EntryPrice: dec(c[0]), ExitPrice: dec(c[1])})
		short := Compute(Input{Position: "short", EntryPrice: dec(c[0]), ExitPrice: dec(c[1])})
		if !long.Percent.Equal(short.Percent.Neg()) {
			t.Fatalf("entry=%s exit=%s long=%s short=%s", c[0], c[1], long.Percent, short.Percent)
		}
	}
}

func TestCompute_AmountLinearInQuantity(t *testing.T) {
	base := Compute(Input{Position: "long", EntryPrice: dec("40"), ExitPrice: dec("55"), Quantity: dec("1")})
	if base.Amount == nil {
		t.Fatalf("base amount missing")
	}
	for _, q := range []string{"2", "7", "130", "0.5"} {
		out := Compute(Input{Position: "long", EntryPrice: dec("40"), ExitPrice: dec("55"), Quantity: dec(q)})
		want := base.Amount.Mul(dec(q))
		if out.Amount == nil || !out.Amount.Equal(want) {
			t.Fatalf("q=%s amount=%v want %s", q, out.Amount, want)
		}
	}
}

func TestCompute_OptionMultiplier(t *testing.T) {
	stock := Compute(Input{Instrument: "stock", Position: "long", EntryPrice: dec("4.20"), ExitPrice: dec("6.30"), Quantity: dec("3")})
	option := Compute(Input{Instrument: "option", Position: "long", EntryPrice: dec("4.20"), ExitPrice: dec("6.30"), Quantity: dec("3")})
	if stock.Amount == nil || option.Amount == nil {
		t.Fatalf("missing amounts")
	}
	if !option.Amount.Equal(stock.Amount.Mul(dec("100"))) {
		t.Fatalf("option=%s stock=%s", option.Amount, stock.Amount)
	}
	if !option.Percent.Equal(stock.Percent) {
		t.Fatalf("percent differs: option=%s stock=%s", option.Percent, stock.Percent)
	}
}

func TestCompute_NoQuantityNoAmount(t *testing.T) {
	out := Compute(Input{Position: "long", EntryPrice: dec("10"), ExitPrice: dec("12")})
	if out.Amount != nil {
		t.Fatalf("amount=%v want nil", out.Amount)
	}
}

func TestParseAmount(t *testing.T) {
	if !ParseAmount("abc").IsZero() {
		t.Fatalf("malformed input must coerce to zero")
	}
	if !ParseAmount("").IsZero() {
		t.Fatalf("empty input must coerce to zero")
	}
	if ParseAmount(" 42.5 ").StringFixed(1) != "42.5" {
		t.Fatalf("trimmed numeric input must parse")
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(dec("50")); got != "+50.00" {
		t.Fatalf("got %q", got)
	}
	if got := FormatPercent(dec("-197.619")); got != "-197.62" {
		t.Fatalf("got %q", got)
	}
	if got := FormatPercent(decimal.Zero); got != "0.00" {
		t.Fatalf("got %q", got)
	}
}
