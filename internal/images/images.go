package images

import (
	"image/gif"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// minFrameDelay mirrors what gif players do with 0 or 1 centisecond delays.
const minFrameDelay = 20 * time.Millisecond

// Animation is an animated image asset, identified by its name.
type Animation struct {
	Name string
	*gif.GIF
}

func (a *Animation) FrameCount() int {
	return len(a.Image)
}

// FrameDelay returns how long frame i stays on screen.
func (a *Animation) FrameDelay(i int) time.Duration {
	if i < 0 || i >= len(a.Delay) {
		return minFrameDelay
	}
	delay := time.Duration(a.Delay[i]) * 10 * time.Millisecond
	if delay < minFrameDelay {
		return minFrameDelay
	}
	return delay
}

func (a *Animation) Encode(w io.Writer) error {
	return gif.EncodeAll(w, a.GIF)
}

var StaticstateAnimation *Animation

var HappyAnimation *Animation

var SadAnimation *Animation

var AngerAnimation *Animation

var ScareAnimation *Animation

var BuxueAnimation *Animation

var animations []*Animation

func init() {
	// Draw animations
	StaticstateAnimation = newAnimation("staticstate", staticstateFaces)
	HappyAnimation = newAnimation("happy", happyFaces)
	SadAnimation = newAnimation("sad", sadFaces)
	AngerAnimation = newAnimation("anger", angerFaces)
	ScareAnimation = newAnimation("scare", scareFaces)
	BuxueAnimation = newAnimation("buxue", buxueFaces)

	animations = []*Animation{
		StaticstateAnimation,
		HappyAnimation,
		SadAnimation,
		AngerAnimation,
		ScareAnimation,
		BuxueAnimation,
	}
}

func newAnimation(name string, faces []face) *Animation {
	if len(faces) == 0 {
		logrus.Panicf("Can't draw %s animation: no frame", name)
	}
	g := &gif.GIF{}
	for _, f := range faces {
		g.Image = append(g.Image, f.draw())
		g.Delay = append(g.Delay, f.delay)
	}
	return &Animation{Name: name, GIF: g}
}

// ByName returns the animation called name, or nil.
func ByName(name string) *Animation {
	for _, a := range animations {
		if a.Name == name {
			return a
		}
	}
	return nil
}

func All() []*Animation {
	all := make([]*Animation, len(animations))
	copy(all, animations)
	return all
}
