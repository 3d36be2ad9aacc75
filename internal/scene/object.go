// Package scene is a small retained-mode tree of visual elements rendered
// onto a draw.Image. It is not safe for concurrent use: the display owning
// the tree serialises access with its surface lock.
package scene

import (
	"image"
	"image/color"
	"time"

	"golang.org/x/image/draw"
)

type Align int64

const (
	ALIGN_TOP_LEFT Align = iota
	ALIGN_CENTER
	ALIGN_BOTTOM_MID
)

// Opa is a background opacity, from OPA_TRANSP to OPA_COVER.
type Opa uint8

const (
	OPA_TRANSP Opa = 0
	OPA_50     Opa = 127
	OPA_COVER  Opa = 255
)

// Element is anything a Container can hold.
type Element interface {
	Obj() *Object
	Tick(elapsed time.Duration)
	Render(dst draw.Image, area image.Rectangle)
	contentSize() image.Point
}

// Object holds the geometry, flags and style shared by every element.
type Object struct {
	parent *Container

	x, y          int
	width, height int
	align         Align
	hidden        bool

	borderWidth int
	borderColor color.Color
	bgColor     color.Color
	bgOpa       Opa
}

// Default theme
func newObject(parent *Container) Object {
	return Object{
		parent:      parent,
		borderWidth: 1,
		borderColor: color.White,
		bgColor:     color.Black,
		bgOpa:       OPA_COVER,
	}
}

func (o *Object) Obj() *Object {
	return o
}

func (o *Object) Parent() *Container {
	return o.parent
}

// SetSize sets the element size; 0 means "fit the content".
func (o *Object) SetSize(width, height int) {
	o.width = width
	o.height = height
}

func (o *Object) Size() (int, int) {
	return o.width, o.height
}

func (o *Object) SetPos(x, y int) {
	o.x = x
	o.y = y
}

func (o *Object) SetAlign(align Align) {
	o.align = align
}

func (o *Object) Align() Align {
	return o.align
}

func (o *Object) Center() {
	o.align = ALIGN_CENTER
	o.x = 0
	o.y = 0
}

func (o *Object) SetHidden(hidden bool) {
	o.hidden = hidden
}

func (o *Object) IsHidden() bool {
	return o.hidden
}

func (o *Object) SetBorderWidth(width int) {
	o.borderWidth = width
}

func (o *Object) BorderWidth() int {
	return o.borderWidth
}

func (o *Object) SetBorderColor(c color.Color) {
	o.borderColor = c
}

func (o *Object) SetBgColor(c color.Color) {
	o.bgColor = c
}

func (o *Object) SetBgOpa(opa Opa) {
	o.bgOpa = opa
}

func (o *Object) BgOpa() Opa {
	return o.bgOpa
}

// area places an element of the given content size inside parent.
func (o *Object) area(parent image.Rectangle, content image.Point) image.Rectangle {
	w, h := o.width, o.height
	if w <= 0 {
		w = content.X
	}
	if h <= 0 {
		h = content.Y
	}

	var min image.Point
	switch o.align {
	case ALIGN_CENTER:
		min = image.Pt(parent.Min.X+(parent.Dx()-w)/2, parent.Min.Y+(parent.Dy()-h)/2)
	case ALIGN_BOTTOM_MID:
		min = image.Pt(parent.Min.X+(parent.Dx()-w)/2, parent.Max.Y-h)
	default:
		min = parent.Min
	}
	min = min.Add(image.Pt(o.x, o.y))

	return image.Rectangle{Min: min, Max: min.Add(image.Pt(w, h))}
}

func (o *Object) renderBase(dst draw.Image, area image.Rectangle) {
	o.renderBackground(dst, area)
	o.renderBorder(dst, area)
}

func (o *Object) renderBackground(dst draw.Image, area image.Rectangle) {
	if o.bgOpa > 0 && o.bgColor != nil {
		draw.DrawMask(dst, area, image.NewUniform(o.bgColor), image.Point{}, image.NewUniform(color.Alpha{A: uint8(o.bgOpa)}), image.Point{}, draw.Over)
	}
}

func (o *Object) renderBorder(dst draw.Image, area image.Rectangle) {
	if o.borderWidth > 0 && o.borderColor != nil {
		border := image.NewUniform(o.borderColor)
		bw := o.borderWidth
		draw.Draw(dst, image.Rect(area.Min.X, area.Min.Y, area.Max.X, area.Min.Y+bw).Intersect(area), border, image.Point{}, draw.Src)
		draw.Draw(dst, image.Rect(area.Min.X, area.Max.Y-bw, area.Max.X, area.Max.Y).Intersect(area), border, image.Point{}, draw.Src)
		draw.Draw(dst, image.Rect(area.Min.X, area.Min.Y, area.Min.X+bw, area.Max.Y).Intersect(area), border, image.Point{}, draw.Src)
		draw.Draw(dst, image.Rect(area.Max.X-bw, area.Min.Y, area.Max.X, area.Max.Y).Intersect(area), border, image.Point{}, draw.Src)
	}
}
