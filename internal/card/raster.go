package card

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DefaultScale is the export pixel density multiplier: 540x960 points become
// a 1080x1920 PNG.
const DefaultScale = 2

// Renderer rasterizes a Layout to PNG bytes. It holds parsed fonts only, so a
// single instance is safe for concurrent use.
type Renderer struct {
	Scale float64
	// Filter decides which elements are captured. Nil means DefaultFilter.
	Filter func(Element) bool

	regular *opentype.Font
	bold    *opentype.Font
}

// DefaultFilter captures everything except interactive controls.
func DefaultFilter(e Element) bool {
	return e.Kind != KindControl
}

func NewRenderer() (*Renderer, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &Renderer{
		Scale:   DefaultScale,
		regular: regular,
		bold:    bold,
	}, nil
}

// Render produces the PNG for a layout. Output is byte-identical for
// identical layouts; nothing here reads the clock or randomness.
func (r *Renderer) Render(l Layout) ([]byte, error) {
	if r == nil || r.regular == nil || r.bold == nil {
		return nil, fmt.Errorf("renderer not initialized")
	}
	scale := r.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	filter := r.Filter
	if filter == nil {
		filter = DefaultFilter
	}

	w := int(l.Width * scale)
	h := int(l.Height * scale)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid layout size %dx%d", w, h)
	}

	dc := gg.NewContext(w, h)

	if err := r.drawBackground(dc, l, scale); err != nil {
		return nil, err
	}

	for _, e := range l.Elements {
		if !filter(e) {
			continue
		}
		if err := r.drawElement(dc, l, e, scale); err != nil {
			return nil, fmt.Errorf("draw %s element: %w", e.Kind, err)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawBackground(dc *gg.Context, l Layout, scale float64) error {
	w := l.Width * scale
	h := l.Height * scale

	top := color.NRGBA{
		R: uint8(l.Theme.TopR),
		G: uint8(l.Theme.TopG),
		B: uint8(l.Theme.TopB),
		A: uint8(l.Theme.TopAlpha * 255),
	}

	dc.SetRGB(0, 0, 0)
	dc.Clear()

	grad := gg.NewLinearGradient(0, 0, w, h)
	grad.AddColorStop(0, top)
	grad.AddColorStop(1, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	// Thin card border, matching the on-screen white/10 edge.
	dc.SetRGBA(1, 1, 1, 0.1)
	dc.SetLineWidth(2 * scale)
	dc.DrawRoundedRectangle(scale, scale, w-2*scale, h-2*scale, 24*scale)
	dc.Stroke()
	return nil
}

func (r *Renderer) drawElement(dc *gg.Context, l Layout, e Element, scale float64) error {
	if e.Kind == KindWatermark {
		return r.drawWatermark(dc, l, e, scale)
	}
	if e.Kind == KindEmoji {
		return r.drawEmoji(dc, l, e, scale)
	}

	face, err := r.face(e, scale)
	if err != nil {
		return err
	}
	defer face.Close()
	dc.SetFontFace(face)
	dc.SetHexColor(e.Color)

	x := e.X * scale
	y := e.Y * scale

	if e.Kind == KindBadge {
		tw, th := dc.MeasureString(e.Text)
		padX := 24 * scale
		padY := 14 * scale
		dc.SetRGBA(0, 0, 0, 0.2)
		dc.DrawRoundedRectangle(x-tw/2-padX, y-th/2-padY, tw+2*padX, th+2*padY, 16*scale)
		dc.Fill()
		dc.SetRGBA(1, 1, 1, 0.1)
		dc.SetLineWidth(scale)
		dc.DrawRoundedRectangle(x-tw/2-padX, y-th/2-padY, tw+2*padX, th+2*padY, 16*scale)
		dc.Stroke()
		dc.SetHexColor(e.Color)
	}

	dc.DrawStringAnchored(e.Text, x, y, 0.5, 0.4)
	return nil
}

// drawEmoji renders the mood slot as a vector face. The bundled Go fonts
// carry no emoji glyphs, so drawing the emoji text would rasterize a .notdef
// box instead of the face.
func (r *Renderer) drawEmoji(dc *gg.Context, l Layout, e Element, scale float64) error {
	x := e.X * scale
	y := e.Y * scale
	radius := e.Size / 2 * scale

	dc.SetHexColor("#fbbf24")
	dc.DrawCircle(x, y, radius)
	dc.Fill()
	dc.SetHexColor("#b45309")
	dc.SetLineWidth(2 * scale)
	dc.DrawCircle(x, y, radius)
	dc.Stroke()

	eyeY := y - radius*0.25
	eyeDX := radius * 0.38
	eyeR := radius * 0.11
	dc.SetHexColor("#451a03")
	dc.DrawCircle(x-eyeDX, eyeY, eyeR)
	dc.DrawCircle(x+eyeDX, eyeY, eyeR)
	dc.Fill()

	mouthR := radius * 0.55
	dc.SetLineWidth(3 * scale)
	if l.Theme.Accent == lossTheme.Accent {
		dc.DrawArc(x, y+radius*0.72, mouthR, math.Pi+math.Pi/6, 2*math.Pi-math.Pi/6)
		dc.Stroke()
		dc.SetHexColor("#38bdf8")
		dc.DrawCircle(x-eyeDX, eyeY+radius*0.3, eyeR*0.8)
		dc.DrawCircle(x+eyeDX, eyeY+radius*0.3, eyeR*0.8)
		dc.Fill()
	} else {
		dc.DrawArc(x, y+radius*0.1, mouthR, math.Pi/6, math.Pi-math.Pi/6)
		dc.Stroke()
	}
	return nil
}

// drawWatermark tiles the brand diagonally across the full card for free-tier
// exports.
func (r *Renderer) drawWatermark(dc *gg.Context, l Layout, e Element, scale float64) error {
	face, err := r.face(e, scale)
	if err != nil {
		return err
	}
	defer face.Close()
	dc.SetFontFace(face)
	dc.SetHexColor(e.Color)

	w := l.Width * scale
	h := l.Height * scale
	stepX := 260 * scale
	stepY := 130 * scale

	dc.Push()
	dc.RotateAbout(-math.Pi/6, w/2, h/2)
	row := 0
	for y := -h; y < 2*h; y += stepY {
		offset := 0.0
		if row%2 == 1 {
			offset = stepX / 2
		}
		for x := -w; x < 2*w; x += stepX {
			dc.DrawStringAnchored(e.Text, x+offset, y, 0.5, 0.5)
		}
		row++
	}
	dc.Pop()
	return nil
}

func (r *Renderer) face(e Element, scale float64) (font.Face, error) {
	src := r.regular
	if e.Bold {
		src = r.bold
	}
	return opentype.NewFace(src, &opentype.FaceOptions{
		Size:    e.Size * scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
