package facultycert

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
)

// All lengths are millimetres, the unit of tdewolff/canvas.
const (
	mmPerInch    = 25.4
	pageWidth    = 8.5 * mmPerInch
	pageHeight   = 11 * mmPerInch
	pageMargin   = 1 * mmPerInch
	footerOffset = 0.5 * mmPerInch
)

func inches(v float64) float64 {
	return v * mmPerInch
}

type flowPage struct {
	canvas *canvas.Canvas
	ctx    *canvas.Context
}

// flow places blocks top to bottom and opens a new page when a block does not fit.
// cursor is the distance from the top edge of the current page.
type flow struct {
	width    float64
	height   float64
	margin   float64
	cursor   float64
	pages    []*flowPage
	decorate func(ctx *canvas.Context, width, height float64)
}

func newFlow(decorate func(ctx *canvas.Context, width, height float64)) *flow {
	f := &flow{
		width:    pageWidth,
		height:   pageHeight,
		margin:   pageMargin,
		decorate: decorate,
	}
	f.newPage()
	return f
}

func (f *flow) newPage() {
	c := canvas.New(f.width, f.height)
	ctx := canvas.NewContext(c)
	if f.decorate != nil {
		f.decorate(ctx, f.width, f.height)
	}

	f.pages = append(f.pages, &flowPage{canvas: c, ctx: ctx})
	f.cursor = f.margin
}

func (f *flow) ctx() *canvas.Context {
	return f.pages[len(f.pages)-1].ctx
}

func (f *flow) contentWidth() float64 {
	return f.width - 2*f.margin
}

func (f *flow) remaining() float64 {
	return f.height - f.margin - f.cursor
}

// top is the cursor in canvas coordinates, where y grows upwards from the bottom edge.
func (f *flow) top() float64 {
	return f.height - f.cursor
}

// ensure breaks the page unless h fits. A block taller than a whole page is placed anyway.
func (f *flow) ensure(h float64) {
	if h > f.remaining() && f.cursor > f.margin {
		f.newPage()
	}
}

func (f *flow) space(h float64) {
	f.cursor += h
}

func textBox(face *canvas.FontFace, text string, width float64, align canvas.TextAlign) *canvas.Text {
	rt := canvas.NewRichText(face)
	rt.WriteString(text)
	return rt.ToText(width, 0.0, align, canvas.Top, 0.0, 0.0)
}

func (f *flow) paragraph(face *canvas.FontFace, text string, align canvas.TextAlign, spaceAfter float64) {
	if strings.TrimSpace(text) == "" {
		return
	}

	box := textBox(face, text, f.contentWidth(), align)
	h := box.Bounds().H()
	f.ensure(h)
	f.ctx().DrawText(f.margin, f.top(), box)
	f.cursor += h + spaceAfter
}

// fitImage scales a pixel size into the box, keeping the aspect ratio.
func fitImage(px, py int, maxW, maxH float64) (float64, float64) {
	if px <= 0 || py <= 0 {
		return 0, 0
	}
	scale := min(maxW/float64(px), maxH/float64(py))
	return float64(px) * scale, float64(py) * scale
}

func (f *flow) image(img image.Image, maxW, maxH float64, align canvas.TextAlign) {
	px, py := img.Bounds().Dx(), img.Bounds().Dy()
	w, h := fitImage(px, py, maxW, maxH)
	if w == 0 {
		return
	}

	f.ensure(h)
	x := f.margin
	switch align {
	case canvas.Center:
		x += (f.contentWidth() - w) / 2
	case canvas.Right:
		x += f.contentWidth() - w
	}

	f.ctx().DrawImage(x, f.top()-h, img, canvas.DPMM(float64(px)/w))
	f.cursor += h
}

func fillRect(ctx *canvas.Context, x, yTop, w, h float64, fill color.Color) {
	ctx.Push()
	ctx.SetFillColor(fill)
	ctx.SetStrokeColor(canvas.Transparent)
	ctx.DrawPath(x, yTop-h, canvas.Rectangle(w, h))
	ctx.Pop()
}

func strokeRect(ctx *canvas.Context, x, yTop, w, h, width float64, stroke color.Color) {
	ctx.Push()
	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeColor(stroke)
	ctx.SetStrokeWidth(width)
	ctx.DrawPath(x, yTop-h, canvas.Rectangle(w, h))
	ctx.Pop()
}

// pageDecoration draws the per-layout page furniture.
func pageDecoration(layout LayoutType, primary color.RGBA) func(ctx *canvas.Context, width, height float64) {
	switch layout {
	case LayoutFormal:
		return func(ctx *canvas.Context, width, height float64) {
			outer, inner := inches(0.4), inches(0.45)
			strokeRect(ctx, outer, height-outer, width-2*outer, height-2*outer, 0.8, primary)
			strokeRect(ctx, inner, height-inner, width-2*inner, height-2*inner, 0.3, primary)
		}
	case LayoutModern:
		return func(ctx *canvas.Context, width, height float64) {
			fillRect(ctx, 0, height, width, inches(0.35), primary)
		}
	default:
		return nil
	}
}

// finish stamps the page footers. It must run after the last block is placed.
func (f *flow) finish(face *canvas.FontFace) {
	total := len(f.pages)
	for i, p := range f.pages {
		box := textBox(face, fmt.Sprintf("Page %d of %d", i+1, total), f.contentWidth(), canvas.Center)
		p.ctx.DrawText(f.margin, footerOffset+box.Bounds().H(), box)
	}
}

func (f *flow) writePDF(w io.Writer) error {
	renderer := pdf.New(w, f.width, f.height, nil)
	for i, p := range f.pages {
		if i > 0 {
			renderer.NewPage(f.width, f.height)
		}
		p.canvas.RenderTo(renderer)
	}
	return renderer.Close()
}
