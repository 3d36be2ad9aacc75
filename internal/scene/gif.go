package scene

import (
	"image"
	"time"

	"github.com/jypelle/vekimoji/internal/images"
	"golang.org/x/image/draw"
)

// Gif plays an animation. Frames are scaled to the element size.
type Gif struct {
	Object
	src *images.Animation

	frame        int
	frameElapsed time.Duration
	loop         int
	done         bool
}

func NewGif(parent *Container) *Gif {
	g := &Gif{Object: newObject(parent)}
	if parent != nil {
		parent.add(g)
	}
	return g
}

// SetSrc binds an animation and restarts playback from its first frame.
func (g *Gif) SetSrc(src *images.Animation) {
	g.src = src
	g.frame = 0
	g.frameElapsed = 0
	g.loop = 0
	g.done = false
}

func (g *Gif) Src() *images.Animation {
	return g.src
}

func (g *Gif) Frame() int {
	return g.frame
}

func (g *Gif) Tick(elapsed time.Duration) {
	if g.src == nil || g.done || g.src.FrameCount() <= 1 {
		return
	}
	g.frameElapsed += elapsed
	for g.frameElapsed >= g.src.FrameDelay(g.frame) {
		g.frameElapsed -= g.src.FrameDelay(g.frame)
		g.frame++
		if g.frame < g.src.FrameCount() {
			continue
		}
		g.loop++
		// LoopCount follows image/gif: 0 forever, -1 once, n extra loops
		if (g.src.LoopCount < 0 && g.loop >= 1) || (g.src.LoopCount > 0 && g.loop > g.src.LoopCount) {
			g.frame = g.src.FrameCount() - 1
			g.frameElapsed = 0
			g.done = true
			return
		}
		g.frame = 0
	}
}

func (g *Gif) Render(dst draw.Image, area image.Rectangle) {
	g.renderBackground(dst, area)
	if g.src != nil && g.src.FrameCount() > 0 {
		frame := g.src.Image[g.frame]
		if frame.Bounds().Size() == area.Size() {
			draw.Draw(dst, area, frame, frame.Bounds().Min, draw.Over)
		} else {
			draw.NearestNeighbor.Scale(dst, area, frame, frame.Bounds(), draw.Over, nil)
		}
	}
	g.renderBorder(dst, area)
}

func (g *Gif) contentSize() image.Point {
	if g.src == nil || g.src.FrameCount() == 0 {
		return image.Point{}
	}
	return g.src.Image[0].Bounds().Size()
}
