package card

import (
	"bytes"
	"image/png"
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

func snapshot() Snapshot {
	amount := dec("500")
	return Snapshot{
		Brand:      "TradeFlex",
		Ticker:     "TSLA",
		Percent:    dec("50"),
		Amount:     &amount,
		EntryPrice: dec("100"),
		ExitPrice:  dec("150"),
		Instrument: "stock",
		Position:   "long",
		Status:     "closed",
	}
}

func findElement(l Layout, kind ElementKind) (Element, bool) {
	for _, e := range l.Elements {
		if e.Kind == kind {
			return e, true
		}
	}
	return Element{}, false
}

func TestBuildLayout_ProfitTheme(t *testing.T) {
	l := BuildLayout(snapshot())
	if l.Theme.Accent != "#22c55e" {
		t.Fatalf("accent=%s want profit green", l.Theme.Accent)
	}
	e, ok := findElement(l, KindEmoji)
	if !ok {
		t.Fatalf("no emoji element")
	}
	if e.Text != "🤑" {
		t.Fatalf("emoji=%q want default profit emoji", e.Text)
	}
}

func TestBuildLayout_LossTheme(t *testing.T) {
	s := snapshot()
	s.Percent = dec("-12.5")
	l := BuildLayout(s)
	if l.Theme.Accent != "#ef4444" {
		t.Fatalf("accent=%s want loss red", l.Theme.Accent)
	}
	e, _ := findElement(l, KindEmoji)
	if e.Text != "😭" {
		t.Fatalf("emoji=%q want default loss emoji", e.Text)
	}
}

func TestBuildLayout_ZeroPercentIsProfit(t *testing.T) {
	s := snapshot()
	s.Percent = decimal.Zero
	s.Amount = nil
	if l := BuildLayout(s); l.Theme.Accent != "#22c55e" {
		t.Fatalf("zero percent must render the profit theme")
	}
}

func TestBuildLayout_SelectedEmojiWins(t *testing.T) {
	s := snapshot()
	emoji := "🚀"
	s.Emoji = &emoji
	l := BuildLayout(s)
	e, _ := findElement(l, KindEmoji)
	if e.Text != "🚀" {
		t.Fatalf("emoji=%q want selected emoji", e.Text)
	}
}

func TestBuildLayout_WatermarkOnlyForFree(t *testing.T) {
	free := BuildLayout(snapshot())
	if _, ok := findElement(free, KindWatermark); !ok {
		t.Fatalf("free tier layout must carry the watermark")
	}

	s := snapshot()
	s.Pro = true
	pro := BuildLayout(s)
	if _, ok := findElement(pro, KindWatermark); ok {
		t.Fatalf("pro layout must not carry the watermark")
	}
}

func TestBuildLayout_OptionRow(t *testing.T) {
	s := snapshot()
	s.Instrument = "option"
	strike := dec("450")
	side := "call"
	s.OptionStrike = &strike
	s.OptionSide = &side
	l := BuildLayout(s)
	found := false
	for _, e := range l.Elements {
		if e.Kind == KindText && bytes.Contains([]byte(e.Text), []byte("STRIKE $450.00")) {
			found = true
		}
	}
	if !found {
		t.Fatalf("option layout missing strike row")
	}
}

func TestBuildLayout_AspectRatio(t *testing.T) {
	l := BuildLayout(snapshot())
	if l.Width*16 != l.Height*9 {
		t.Fatalf("layout %fx%f is not 9:16", l.Width, l.Height)
	}
}

func TestDefaultFilter_ExcludesControls(t *testing.T) {
	l := BuildLayout(snapshot())
	ctrl, ok := findElement(l, KindControl)
	if !ok {
		t.Fatalf("layout should include on-screen controls")
	}
	if DefaultFilter(ctrl) {
		t.Fatalf("controls must be excluded from capture")
	}
	badge, _ := findElement(l, KindBadge)
	if !DefaultFilter(badge) {
		t.Fatalf("badge must be captured")
	}
}

func TestRender_Deterministic(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	l := BuildLayout(snapshot())
	first, err := r.Render(l)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := r.Render(l)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("identical layouts must produce byte-identical images")
	}
}

func TestRender_OutputDimensions(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	out, err := r.Render(BuildLayout(snapshot()))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != BaseWidth*DefaultScale || b.Dy() != BaseHeight*DefaultScale {
		t.Fatalf("got %dx%d want %dx%d", b.Dx(), b.Dy(), BaseWidth*DefaultScale, BaseHeight*DefaultScale)
	}
}

func TestRender_EmojiVisible(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	l := BuildLayout(snapshot())
	e, ok := findElement(l, KindEmoji)
	if !ok {
		t.Fatalf("no emoji element")
	}

	out, err := r.Render(l)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	px := int(e.X * DefaultScale)
	py := int(e.Y * DefaultScale)
	cr, _, cb, _ := img.At(px, py).RGBA()
	if cr>>8 < 180 || cb>>8 > 120 {
		t.Fatalf("emoji center pixel r=%d b=%d, not the face fill", cr>>8, cb>>8)
	}

	bare := &Renderer{
		Scale:   r.Scale,
		Filter:  func(e Element) bool { return DefaultFilter(e) && e.Kind != KindEmoji },
		regular: r.regular,
		bold:    r.bold,
	}
	without, err := bare.Render(l)
	if err != nil {
		t.Fatalf("render without emoji: %v", err)
	}
	blank, err := png.Decode(bytes.NewReader(without))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.At(px, py) == blank.At(px, py) {
		t.Fatalf("emoji element left no pixels behind")
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("TradeFlex", "tsla", dec("50")); got != "TradeFlex-TSLA-50.00%.png" {
		t.Fatalf("got %q", got)
	}
	if got := Filename("TradeFlex", "SPY", dec("-197.619047")); got != "TradeFlex-SPY--197.62%.png" {
		t.Fatalf("got %q", got)
	}
	if got := Filename("", "", decimal.Zero); got != "TradeFlex-BTC-0.00%.png" {
		t.Fatalf("got %q", got)
	}
}
