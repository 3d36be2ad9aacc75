package scene

import (
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/bitmapfont/v2"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

type LongMode int64

const (
	LONG_CLIP LongMode = iota
	LONG_SCROLL_CIRCULAR
)

const scrollStep = 100 * time.Millisecond
const scrollGap = 20

// Label draws a single line of text with the bitmap font.
type Label struct {
	Object
	text      string
	textColor color.Color
	longMode  LongMode

	scrollElapsed time.Duration
	scrollOffset  int
}

func NewLabel(parent *Container) *Label {
	l := &Label{Object: newObject(parent), textColor: color.White}
	l.SetBorderWidth(0)
	l.SetBgOpa(OPA_TRANSP)
	if parent != nil {
		parent.add(l)
	}
	return l
}

func (l *Label) SetText(text string) {
	l.text = text
	l.scrollElapsed = 0
	l.scrollOffset = 0
}

func (l *Label) Text() string {
	return l.text
}

func (l *Label) SetTextColor(c color.Color) {
	l.textColor = c
}

func (l *Label) SetLongMode(mode LongMode) {
	l.longMode = mode
}

// ScrollOffset is how many pixels a scrolling label has moved.
func (l *Label) ScrollOffset() int {
	return l.scrollOffset
}

func (l *Label) Tick(elapsed time.Duration) {
	if l.longMode != LONG_SCROLL_CIRCULAR || l.text == "" {
		return
	}
	l.scrollElapsed += elapsed
	for l.scrollElapsed >= scrollStep {
		l.scrollElapsed -= scrollStep
		l.scrollOffset++
	}
}

func (l *Label) Render(dst draw.Image, area image.Rectangle) {
	l.renderBase(dst, area)
	if l.text == "" {
		return
	}

	textWidth := textWidth(l.text)
	clipped := clipTo(dst, area)
	baseline := area.Min.Y + bitmapfont.Face.Metrics().Ascent.Ceil()

	if l.longMode == LONG_SCROLL_CIRCULAR && textWidth > area.Dx() {
		period := textWidth + scrollGap
		deltaX := l.scrollOffset % period
		l.drawString(clipped, area.Min.X-deltaX, baseline)
		l.drawString(clipped, area.Min.X-deltaX+period, baseline)
	} else {
		l.drawString(clipped, area.Min.X, baseline)
	}
}

func (l *Label) drawString(dst draw.Image, x, y int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(l.textColor),
		Face: bitmapfont.Face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(l.text)
}

func (l *Label) contentSize() image.Point {
	return image.Pt(textWidth(l.text), bitmapfont.Face.Metrics().Height.Ceil())
}

func textWidth(text string) int {
	return font.MeasureString(bitmapfont.Face, text).Ceil()
}
