package images

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// FrameSize is the width and height of every animation frame.
const FrameSize = 64

type mouthKind int

const (
	FLAT_MOUTH mouthKind = iota
	SMILE_MOUTH
	FROWN_MOUTH
	OPEN_MOUTH
	WAVY_MOUTH
)

type browKind int

const (
	NO_BROW browKind = iota
	ANGRY_BROW
	WORRIED_BROW
	RAISED_BROW
)

var (
	inkColor  = color.RGBA{0, 0, 0, 255}
	tearColor = color.RGBA{40, 90, 200, 255}

	neutralColor = color.RGBA{235, 235, 235, 255}
	happyColor   = color.RGBA{255, 220, 80, 255}
	sadColor     = color.RGBA{120, 180, 255, 255}
	angerColor   = color.RGBA{255, 120, 80, 255}
	scareColor   = color.RGBA{200, 160, 255, 255}
	buxueColor   = color.RGBA{150, 230, 150, 255}
)

// face describes one frame. Face colors stay bright enough to light up a
// monochrome panel, ink and tear stay dark.
type face struct {
	color     color.RGBA
	dx, dy    float32
	eyeOpen   float32
	eyeShift  float32
	mouth     mouthKind
	mouthSize float32
	brow      browKind
	tearY     float32
	delay     int
}

var staticstateFaces = []face{
	{color: neutralColor, eyeOpen: 1, mouth: FLAT_MOUTH, mouthSize: 1, tearY: -1, delay: 100},
	{color: neutralColor, eyeOpen: 1, mouth: FLAT_MOUTH, mouthSize: 1, tearY: -1, delay: 100},
	{color: neutralColor, eyeOpen: 0.1, mouth: FLAT_MOUTH, mouthSize: 1, tearY: -1, delay: 12},
	{color: neutralColor, eyeOpen: 1, mouth: FLAT_MOUTH, mouthSize: 1, tearY: -1, delay: 60},
}

var happyFaces = []face{
	{color: happyColor, eyeOpen: 1, mouth: SMILE_MOUTH, mouthSize: 1, tearY: -1, delay: 15},
	{color: happyColor, dy: -2, eyeOpen: 0.6, mouth: SMILE_MOUTH, mouthSize: 1.1, tearY: -1, delay: 15},
	{color: happyColor, dy: -3, eyeOpen: 0.4, mouth: SMILE_MOUTH, mouthSize: 1.2, tearY: -1, delay: 15},
	{color: happyColor, dy: -2, eyeOpen: 0.6, mouth: SMILE_MOUTH, mouthSize: 1.1, tearY: -1, delay: 15},
}

var sadFaces = []face{
	{color: sadColor, eyeOpen: 0.7, mouth: FROWN_MOUTH, mouthSize: 1, brow: WORRIED_BROW, tearY: 34, delay: 20},
	{color: sadColor, eyeOpen: 0.7, mouth: FROWN_MOUTH, mouthSize: 1, brow: WORRIED_BROW, tearY: 40, delay: 20},
	{color: sadColor, eyeOpen: 0.7, mouth: FROWN_MOUTH, mouthSize: 1, brow: WORRIED_BROW, tearY: 46, delay: 20},
	{color: sadColor, eyeOpen: 0.7, mouth: FROWN_MOUTH, mouthSize: 1, brow: WORRIED_BROW, tearY: -1, delay: 40},
}

var angerFaces = []face{
	{color: angerColor, dx: -2, eyeOpen: 0.6, mouth: FROWN_MOUTH, mouthSize: 0.8, brow: ANGRY_BROW, tearY: -1, delay: 8},
	{color: angerColor, dx: 2, eyeOpen: 0.6, mouth: FROWN_MOUTH, mouthSize: 0.8, brow: ANGRY_BROW, tearY: -1, delay: 8},
	{color: angerColor, dx: -2, eyeOpen: 0.6, mouth: FROWN_MOUTH, mouthSize: 0.8, brow: ANGRY_BROW, tearY: -1, delay: 8},
	{color: angerColor, eyeOpen: 0.6, mouth: FROWN_MOUTH, mouthSize: 0.8, brow: ANGRY_BROW, tearY: -1, delay: 50},
}

var scareFaces = []face{
	{color: scareColor, eyeOpen: 1.2, mouth: OPEN_MOUTH, mouthSize: 0.6, brow: RAISED_BROW, tearY: -1, delay: 12},
	{color: scareColor, eyeOpen: 1.3, mouth: OPEN_MOUTH, mouthSize: 0.9, brow: RAISED_BROW, tearY: -1, delay: 12},
	{color: scareColor, eyeOpen: 1.3, mouth: OPEN_MOUTH, mouthSize: 1.1, brow: RAISED_BROW, tearY: -1, delay: 30},
	{color: scareColor, eyeOpen: 1.2, mouth: OPEN_MOUTH, mouthSize: 0.9, brow: RAISED_BROW, tearY: -1, delay: 12},
}

var buxueFaces = []face{
	{color: buxueColor, eyeOpen: 0.9, eyeShift: -3, mouth: WAVY_MOUTH, mouthSize: 1, tearY: -1, delay: 40},
	{color: buxueColor, eyeOpen: 0.9, mouth: WAVY_MOUTH, mouthSize: 1, tearY: -1, delay: 20},
	{color: buxueColor, eyeOpen: 0.9, eyeShift: 3, mouth: WAVY_MOUTH, mouthSize: 1, tearY: -1, delay: 40},
	{color: buxueColor, eyeOpen: 0.9, mouth: WAVY_MOUTH, mouthSize: 1, tearY: -1, delay: 20},
}

func (f face) palette() color.Palette {
	return color.Palette{inkColor, color.RGBA{255, 255, 255, 255}, f.color, tearColor}
}

func (f face) draw() *image.Paletted {
	bounds := image.Rect(0, 0, FrameSize, FrameSize)
	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, image.NewUniform(inkColor), image.Point{}, draw.Src)

	cx := float32(FrameSize)/2 + f.dx
	cy := float32(FrameSize)/2 + f.dy

	// Head
	fillEllipse(img, cx, cy, 28, 28, f.color)

	// Eyes
	eyeRy := 6 * f.eyeOpen
	if eyeRy < 0.8 {
		eyeRy = 0.8
	}
	for _, side := range []float32{-1, 1} {
		ex := cx + side*10 + f.eyeShift
		ey := cy - 6
		fillEllipse(img, ex, ey, 4, eyeRy, inkColor)

		switch f.brow {
		case ANGRY_BROW:
			fillLine(img, ex-side*6, ey-12, ex+side*5, ey-8, 2.5, inkColor)
		case WORRIED_BROW:
			fillLine(img, ex-side*6, ey-8, ex+side*5, ey-12, 2.5, inkColor)
		case RAISED_BROW:
			fillLine(img, ex-5, ey-14, ex+5, ey-14, 2.5, inkColor)
		}
	}

	// Mouth
	my := cy + 10
	s := f.mouthSize
	switch f.mouth {
	case SMILE_MOUTH:
		z := newRasterizer()
		z.MoveTo(cx-12*s, my)
		z.QuadTo(cx, my+14*s, cx+12*s, my)
		z.QuadTo(cx, my+6*s, cx-12*s, my)
		z.ClosePath()
		z.Draw(img, bounds, image.NewUniform(inkColor), image.Point{})
	case FROWN_MOUTH:
		z := newRasterizer()
		z.MoveTo(cx-10*s, my+6)
		z.QuadTo(cx, my+6-12*s, cx+10*s, my+6)
		z.QuadTo(cx, my+6-4*s, cx-10*s, my+6)
		z.ClosePath()
		z.Draw(img, bounds, image.NewUniform(inkColor), image.Point{})
	case OPEN_MOUTH:
		fillEllipse(img, cx, my+3, 6*s, 7*s, inkColor)
	case WAVY_MOUTH:
		points := [][2]float32{{cx - 12, my + 4}, {cx - 6, my}, {cx, my + 4}, {cx + 6, my}, {cx + 12, my + 4}}
		for i := 1; i < len(points); i++ {
			fillLine(img, points[i-1][0], points[i-1][1], points[i][0], points[i][1], 3, inkColor)
		}
	default:
		fillLine(img, cx-8*s, my+3, cx+8*s, my+3, 3, inkColor)
	}

	// Tear
	if f.tearY >= 0 {
		fillEllipse(img, cx+14, f.tearY+f.dy, 2.5, 3.5, tearColor)
	}

	frame := image.NewPaletted(bounds, f.palette())
	draw.Draw(frame, bounds, img, image.Point{}, draw.Src)
	return frame
}

func newRasterizer() *vector.Rasterizer {
	return vector.NewRasterizer(FrameSize, FrameSize)
}

// bezierCircle is the cubic control distance approximating a quarter circle.
const bezierCircle = 0.5522848

func fillEllipse(dst draw.Image, cx, cy, rx, ry float32, c color.Color) {
	z := newRasterizer()
	kx, ky := bezierCircle*rx, bezierCircle*ry
	z.MoveTo(cx+rx, cy)
	z.CubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	z.CubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	z.CubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	z.CubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	z.ClosePath()
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

func fillLine(dst draw.Image, x0, y0, x1, y1, width float32, c color.Color) {
	dx, dy := x1-x0, y1-y0
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2

	z := newRasterizer()
	z.MoveTo(x0+nx, y0+ny)
	z.LineTo(x1+nx, y1+ny)
	z.LineTo(x1-nx, y1-ny)
	z.LineTo(x0-nx, y0-ny)
	z.ClosePath()
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}
