package pnl

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Input describes one trade as entered by the user. Values come straight from
// form fields, so the parse helpers below coerce malformed numbers to zero
// instead of failing.
type Input struct {
	Instrument string // "stock" or "option"
	Position   string // "long" or "short"
	EntryPrice decimal.Decimal
	ExitPrice  decimal.Decimal
	Quantity   decimal.Decimal
}

// Result is the derived P&L. Amount is nil when quantity is not given; percent
// is zero when either price is missing ("no signal", not an error).
type Result struct {
	Percent decimal.Decimal
	Amount  *decimal.Decimal
}

var (
	hundred          = decimal.NewFromInt(100)
	optionMultiplier = decimal.NewFromInt(100)
)

// Compute is total over all inputs: no division by zero, no panics. Short P&L
// is the retail approximation (entry-exit)/entry, matching the card the user
// expects, not margin accounting.
func Compute(in Input) Result {
	var out Result

	if in.EntryPrice.Sign() <= 0 || in.ExitPrice.Sign() <= 0 {
		return out
	}

	delta := in.ExitPrice.Sub(in.EntryPrice)
	if strings.EqualFold(in.Position, "short") {
		delta = in.EntryPrice.Sub(in.ExitPrice)
	}

	out.Percent = delta.Div(in.EntryPrice).Mul(hundred)

	if in.Quantity.Sign() > 0 {
		amount := delta.Mul(in.Quantity)
		if strings.EqualFold(in.Instrument, "option") {
			amount = amount.Mul(optionMultiplier)
		}
		out.Amount = &amount
	}

	return out
}

// ParseAmount coerces a form field to a decimal, falling back to zero on any
// malformed input.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatPercent renders a percent at display precision, with an explicit plus
// sign for gains: "+50.00", "-197.62", "0.00".
func FormatPercent(p decimal.Decimal) string {
	s := p.StringFixed(2)
	if p.Sign() > 0 {
		return "+" + s
	}
	return s
}
