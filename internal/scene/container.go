package scene

import (
	"image"
	"time"

	"golang.org/x/image/draw"
)

// Container holds child elements, rendered in insertion order. A container
// has no content of its own: give it an explicit size.
type Container struct {
	Object
	children []Element
}

// NewScreen creates a root container of the given size.
func NewScreen(width, height int) *Container {
	screen := &Container{Object: newObject(nil)}
	screen.SetSize(width, height)
	screen.SetBorderWidth(0)
	return screen
}

func NewContainer(parent *Container) *Container {
	c := &Container{Object: newObject(parent)}
	if parent != nil {
		parent.add(c)
	}
	return c
}

func (c *Container) add(e Element) {
	c.children = append(c.children, e)
}

func (c *Container) Children() []Element {
	children := make([]Element, len(c.children))
	copy(children, c.children)
	return children
}

func (c *Container) Tick(elapsed time.Duration) {
	for _, child := range c.children {
		child.Tick(elapsed)
	}
}

func (c *Container) Render(dst draw.Image, area image.Rectangle) {
	if c.hidden {
		return
	}
	c.renderBase(dst, area)
	for _, child := range c.children {
		if child.Obj().IsHidden() {
			continue
		}
		child.Render(dst, child.Obj().area(area, child.contentSize()))
	}
}

// Area returns where the child is placed when the container covers area.
func (c *Container) Area(child Element, area image.Rectangle) image.Rectangle {
	return child.Obj().area(area, child.contentSize())
}

func (c *Container) contentSize() image.Point {
	return image.Point{}
}

// clipImage restricts drawing to clip.
type clipImage struct {
	draw.Image
	clip image.Rectangle
}

func (c clipImage) Bounds() image.Rectangle {
	return c.clip
}

func clipTo(dst draw.Image, area image.Rectangle) draw.Image {
	return clipImage{Image: dst, clip: area.Intersect(dst.Bounds())}
}
