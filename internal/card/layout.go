package card

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tradeflex/internal/pnl"
)

// The card is laid out on a 9:16 point grid and rasterized at a fixed pixel
// density. All colors are explicit hex values; the raster layer has no notion
// of derived or functional color syntax.
const (
	BaseWidth  = 540
	BaseHeight = 960
)

type ElementKind string

const (
	KindBadge     ElementKind = "badge"
	KindText      ElementKind = "text"
	KindEmoji     ElementKind = "emoji"
	KindWatermark ElementKind = "watermark"
	// KindControl marks interactive chrome (share button) that belongs to the
	// on-screen card but must never appear in the exported image.
	KindControl ElementKind = "control"
)

type Element struct {
	Kind  ElementKind
	Text  string
	X     float64
	Y     float64
	Size  float64
	Color string
	Bold  bool
}

type Theme struct {
	Accent string
	// Top gradient stop as RGBA components in [0,255]; fades to black.
	TopR, TopG, TopB float64
	TopAlpha         float64
}

var (
	profitTheme = Theme{Accent: "#22c55e", TopR: 20, TopG: 83, TopB: 45, TopAlpha: 0.4}
	lossTheme   = Theme{Accent: "#ef4444", TopR: 127, TopG: 29, TopB: 29, TopAlpha: 0.4}
)

const (
	defaultProfitEmoji = "🤑"
	defaultLossEmoji   = "😭"
)

// Snapshot is everything the renderer needs; it is captured once at export
// time and never mutated.
type Snapshot struct {
	Brand      string
	Ticker     string
	Percent    decimal.Decimal
	Amount     *decimal.Decimal
	EntryPrice decimal.Decimal
	ExitPrice  decimal.Decimal
	Instrument string
	Position   string
	Status     string

	OptionStrike *decimal.Decimal
	OptionExpiry *time.Time
	OptionSide   *string

	Emoji *string
	Pro   bool
}

type Layout struct {
	Width    float64
	Height   float64
	Theme    Theme
	Elements []Element
}

// BuildLayout is a pure mapping from snapshot to layout; identical snapshots
// yield identical layouts.
func BuildLayout(s Snapshot) Layout {
	profit := s.Percent.Sign() >= 0
	theme := profitTheme
	if !profit {
		theme = lossTheme
	}

	ticker := strings.ToUpper(strings.TrimSpace(s.Ticker))
	if ticker == "" {
		ticker = "BTC"
	}

	emoji := defaultProfitEmoji
	if !profit {
		emoji = defaultLossEmoji
	}
	if s.Emoji != nil && strings.TrimSpace(*s.Emoji) != "" {
		emoji = strings.TrimSpace(*s.Emoji)
	}

	cx := float64(BaseWidth) / 2

	elems := []Element{
		{Kind: KindBadge, Text: ticker, X: cx, Y: 140, Size: 48, Color: "#ffffff", Bold: true},
		{Kind: KindText, Text: pnl.FormatPercent(s.Percent) + "%", X: cx, Y: 420, Size: 64, Color: theme.Accent, Bold: true},
	}

	if s.Amount != nil {
		elems = append(elems, Element{
			Kind: KindText, Text: formatAmount(*s.Amount), X: cx, Y: 480, Size: 28, Color: theme.Accent, Bold: true,
		})
	}

	elems = append(elems,
		Element{Kind: KindEmoji, Text: emoji, X: cx, Y: 580, Size: 96, Color: "#ffffff"},
		Element{Kind: KindText, Text: "ENTRY", X: 165, Y: 700, Size: 14, Color: "#71717a"},
		Element{Kind: KindText, Text: "$" + s.EntryPrice.StringFixed(2), X: 165, Y: 730, Size: 22, Color: "#ffffff", Bold: true},
		Element{Kind: KindText, Text: "EXIT", X: 405, Y: 700, Size: 14, Color: "#71717a"},
		Element{Kind: KindText, Text: "$" + s.ExitPrice.StringFixed(2), X: 405, Y: 730, Size: 22, Color: "#ffffff", Bold: true},
	)

	if strings.EqualFold(s.Instrument, "option") {
		elems = append(elems, Element{
			Kind: KindText, Text: optionLine(s), X: cx, Y: 790, Size: 14, Color: "#a1a1aa",
		})
	}

	if strings.EqualFold(s.Status, "open") {
		elems = append(elems, Element{
			Kind: KindText, Text: "POSITION OPEN", X: cx, Y: 830, Size: 12, Color: "#eab308", Bold: true,
		})
	}

	brand := strings.TrimSpace(s.Brand)
	if brand == "" {
		brand = "TradeFlex"
	}
	elems = append(elems, Element{
		Kind: KindText, Text: "VERIFIED BY " + strings.ToUpper(brand), X: cx, Y: 912, Size: 12, Color: "#ffffff80", Bold: true,
	})

	if !s.Pro {
		elems = append(elems, Element{
			Kind: KindWatermark, Text: strings.ToUpper(brand), Size: 26, Color: "#ffffff14", Bold: true,
		})
	}

	// On-screen chrome; stripped from the capture by the render filter.
	elems = append(elems, Element{
		Kind: KindControl, Text: "SHARE", X: 490, Y: 48, Size: 16, Color: "#ffffff",
	})

	return Layout{
		Width:    BaseWidth,
		Height:   BaseHeight,
		Theme:    theme,
		Elements: elems,
	}
}

// Filename follows the export template "<brand>-<ticker>-<percent>%.png".
func Filename(brand, ticker string, percent decimal.Decimal) string {
	brand = strings.TrimSpace(brand)
	if brand == "" {
		brand = "TradeFlex"
	}
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		ticker = "BTC"
	}
	return fmt.Sprintf("%s-%s-%s%%.png", brand, ticker, percent.StringFixed(2))
}

func formatAmount(d decimal.Decimal) string {
	if d.Sign() < 0 {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "+$" + d.StringFixed(2)
}

func optionLine(s Snapshot) string {
	parts := make([]string, 0, 3)
	if s.OptionStrike != nil {
		parts = append(parts, "STRIKE $"+s.OptionStrike.StringFixed(2))
	}
	if s.OptionSide != nil && *s.OptionSide != "" {
		parts = append(parts, strings.ToUpper(*s.OptionSide))
	}
	if s.OptionExpiry != nil {
		parts = append(parts, "EXP "+s.OptionExpiry.UTC().Format("2006-01-02"))
	}
	if len(parts) == 0 {
		return "OPTION"
	}
	return strings.Join(parts, " · ")
}
