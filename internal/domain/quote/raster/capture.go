// Package raster captures a quote preview as a single tall image, the way a
// browser screenshot of the preview pane would look.
package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"unicode/utf8"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"cotizador/go_backend/internal/domain/quote"
	"cotizador/go_backend/internal/domain/quote/pdf"
)

var ErrInvalidOptions = errors.New("raster: invalid options")

// Options control the captured surface. Width is the layout width in pixels
// before scaling; Scale multiplies both dimensions.
type Options struct {
	Width int
	Scale float64
}

func DefaultOptions() Options { return Options{Width: 794, Scale: 2} }

const (
	minWidth   = 400
	margin     = 32
	lineHeight = 18
	colWidth   = 115
	qtyWidth   = 50
	fontSize   = 12
)

var (
	regularFont = mustParse(goregular.TTF)
	boldFont    = mustParse(gobold.TTF)
	ruleGray    = color.Gray{Y: 0xbb}
)

func mustParse(ttf []byte) *opentype.Font {
	f, err := opentype.Parse(ttf)
	if err != nil {
		panic(err)
	}
	return f
}

// faces holds the regular and bold faces of one render. Faces are not safe
// for concurrent use, so every Render opens its own.
type faces struct {
	regular font.Face
	bold    font.Face
}

func newFaces() (*faces, error) {
	opts := &opentype.FaceOptions{Size: fontSize, DPI: 72, Hinting: font.HintingFull}
	r, err := opentype.NewFace(regularFont, opts)
	if err != nil {
		return nil, err
	}
	b, err := opentype.NewFace(boldFont, opts)
	if err != nil {
		r.Close()
		return nil, err
	}
	return &faces{regular: r, bold: b}, nil
}

func (f *faces) pick(bold bool) font.Face {
	if bold {
		return f.bold
	}
	return f.regular
}

func (f *faces) Close() {
	f.regular.Close()
	f.bold.Close()
}

// Capturer implements the capture capability of the export pipeline.
type Capturer struct {
	Options Options
}

func NewCapturer(opts Options) *Capturer { return &Capturer{Options: opts} }

func (c *Capturer) Capture(p quote.Preview) (pdf.Image, error) {
	img, err := Render(p, c.Options)
	if err != nil {
		return pdf.Image{}, err
	}
	b, err := EncodePNG(img)
	if err != nil {
		return pdf.Image{}, err
	}
	return pdf.Image{PNG: b, Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}, nil
}

// Render lays p out on a white surface. The height grows with the content.
func Render(p quote.Preview, opts Options) (*image.RGBA, error) {
	if opts.Width < minWidth || !(opts.Scale > 0) || math.IsInf(opts.Scale, 0) {
		return nil, ErrInvalidOptions
	}

	ff, err := newFaces()
	if err != nil {
		return nil, err
	}
	defer ff.Close()

	l := newLayout(opts.Width, ff)
	l.text(margin, "COTIZACIÓN", true)
	l.gap(8)

	l.heading("Cliente")
	for _, e := range p.Customer {
		l.entry(e)
	}
	l.gap(6)
	l.heading("Vehículo")
	for _, e := range p.Vehicle {
		l.entry(e)
	}
	l.gap(6)
	l.entry(quote.Entry{Label: "Servicio", Value: p.Service})
	l.gap(10)

	l.itemsTable(p.Items)
	l.gap(10)

	l.heading("Observaciones")
	for _, line := range wrap(p.Notes, l.lineWidth(), l.measure) {
		l.text(margin, line, false)
	}
	l.gap(10)

	l.rule()
	l.total("Mano de obra", p.Totals.Labor, false)
	l.total("Refacciones", p.Totals.Parts, false)
	l.total("Subtotal", p.Totals.Subtotal, false)
	l.total("IVA", p.Totals.Tax, false)
	l.total("Total", p.Totals.Total, true)

	src := l.draw()
	if opts.Scale == 1 {
		return src, nil
	}
	w := int(math.Round(float64(src.Bounds().Dx()) * opts.Scale))
	h := int(math.Round(float64(src.Bounds().Dy()) * opts.Scale))
	if w < 1 || h < 1 {
		return nil, ErrInvalidOptions
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// EncodePNG encodes img favouring speed over size.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type opKind int

const (
	opText opKind = iota
	opRule
)

type op struct {
	kind  opKind
	x, y  int
	text  string
	right bool
	bold  bool
}

// layout records draw operations top to bottom so the final height is known
// before the surface is allocated.
type layout struct {
	width int
	y     int
	ops   []op
	faces *faces
}

func newLayout(width int, ff *faces) *layout { return &layout{width: width, y: margin, faces: ff} }

func (l *layout) lineWidth() int { return l.width - 2*margin }

func (l *layout) measure(s string) int { return font.MeasureString(l.faces.regular, s).Ceil() }

func (l *layout) gap(px int) { l.y += px }

func (l *layout) text(x int, s string, bold bool) {
	l.ops = append(l.ops, op{kind: opText, x: x, y: l.y, text: s, bold: bold})
	l.y += lineHeight
}

func (l *layout) heading(s string) {
	l.text(margin, s, true)
	l.rule()
}

func (l *layout) rule() {
	l.ops = append(l.ops, op{kind: opRule, y: l.y})
	l.y += 4
}

func (l *layout) entry(e quote.Entry) {
	for _, line := range wrap(e.Label+": "+e.Value, l.lineWidth(), l.measure) {
		l.text(margin, line, false)
	}
}

func (l *layout) total(label, value string, bold bool) {
	right := l.width - margin
	l.ops = append(l.ops,
		op{kind: opText, x: right - 2*colWidth, y: l.y, text: label, right: true, bold: bold},
		op{kind: opText, x: right, y: l.y, text: value, right: true, bold: bold},
	)
	l.y += lineHeight
}

func (l *layout) itemsTable(rows []quote.PreviewRow) {
	right := l.width - margin
	descX := margin + qtyWidth
	descWidth := right - 3*colWidth - descX

	cell := func(x int, s string, alignRight, bold bool) {
		l.ops = append(l.ops, op{kind: opText, x: x, y: l.y, text: s, right: alignRight, bold: bold})
	}

	cell(margin, "Cant.", false, true)
	cell(descX, "Descripción", false, true)
	cell(right-2*colWidth, "P. unitario", true, true)
	cell(right-colWidth, "Importe", true, true)
	cell(right, "M.O.", true, true)
	l.y += lineHeight
	l.rule()

	for _, r := range rows {
		cell(margin, r.Quantity, false, false)
		cell(descX, clip(r.Description, descWidth, l.measure), false, false)
		cell(right-2*colWidth, r.UnitPrice, true, false)
		cell(right-colWidth, r.Amount, true, false)
		cell(right, r.Labor, true, false)
		l.y += lineHeight
	}
	l.rule()
}

func (l *layout) draw() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, l.width, l.y+margin))
	xdraw.Draw(img, img.Bounds(), image.White, image.Point{}, xdraw.Src)

	d := &font.Drawer{Dst: img, Src: image.Black}
	for _, o := range l.ops {
		switch o.kind {
		case opRule:
			r := image.Rect(margin, o.y+1, l.width-margin, o.y+2)
			xdraw.Draw(img, r, image.NewUniform(ruleGray), image.Point{}, xdraw.Src)
		case opText:
			if o.text == "" {
				continue
			}
			d.Face = l.faces.pick(o.bold)
			x := o.x
			if o.right {
				x -= d.MeasureString(o.text).Ceil()
			}
			d.Dot = fixed.P(x, o.y+d.Face.Metrics().Ascent.Ceil()+2)
			d.DrawString(o.text)
		}
	}
	return img
}

// wrap breaks s into lines no wider than maxWidth, splitting on spaces and
// hard-splitting words that do not fit on a line of their own.
func wrap(s string, maxWidth int, measure func(string) int) []string {
	var lines []string
	cur := ""
	for _, para := range strings.Split(s, "\n") {
		for _, w := range strings.Fields(para) {
			for measure(w) > maxWidth {
				if cur != "" {
					lines = append(lines, cur)
					cur = ""
				}
				n := fit(w, maxWidth, measure)
				lines = append(lines, w[:n])
				w = w[n:]
			}
			if cur != "" && measure(cur+" "+w) > maxWidth {
				lines = append(lines, cur)
				cur = ""
			}
			if cur != "" {
				cur += " "
			}
			cur += w
		}
		if cur != "" {
			lines = append(lines, cur)
			cur = ""
		}
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}

// fit returns the byte length of the longest rune prefix of s no wider than
// maxWidth. At least one rune is always taken.
func fit(s string, maxWidth int, measure func(string) int) int {
	n := 0
	for i := range s {
		if i > 0 && measure(s[:i]) > maxWidth {
			break
		}
		n = i
	}
	if measure(s) <= maxWidth {
		return len(s)
	}
	if n == 0 {
		_, size := utf8.DecodeRuneInString(s)
		return size
	}
	return n
}

func clip(s string, maxWidth int, measure func(string) int) string {
	const ellipsis = "..."
	if measure(s) <= maxWidth || maxWidth < measure(ellipsis)+1 {
		return s
	}
	r := []rune(s)
	for n := len(r) - 1; n > 0; n-- {
		if t := string(r[:n]) + ellipsis; measure(t) <= maxWidth {
			return t
		}
	}
	return ellipsis
}
