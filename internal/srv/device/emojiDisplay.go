package device

import (
	"github.com/jypelle/vekimoji/internal/emotion"
	"github.com/jypelle/vekimoji/internal/scene"
	"github.com/sirupsen/logrus"
)

// Surface is what EmojiDisplay needs from the underlying display.
type Surface interface {
	Lock()
	Unlock()
	Content() *scene.Container
	// EmojiLabel may be nil.
	EmojiLabel() *scene.Label
	HorRes() int
	SetChatMessage(role, content string)
}

// EmojiDisplay shows emotions as animations instead of the text status.
type EmojiDisplay struct {
	surface     Surface
	resolver    *emotion.Resolver
	sizeDivisor int

	emotionGif *scene.Gif
}

// NewEmojiDisplay sets the animation up on surface. The animation is a
// square of HorRes()/sizeDivisor pixels, 2 when sizeDivisor is not positive.
func NewEmojiDisplay(surface Surface, resolver *emotion.Resolver, sizeDivisor int) *EmojiDisplay {
	if sizeDivisor <= 0 {
		sizeDivisor = 2
	}

	d := &EmojiDisplay{
		surface:     surface,
		resolver:    resolver,
		sizeDivisor: sizeDivisor,
	}
	d.setupGifContainer()

	logrus.Infof("Emoji display initialized")
	return d
}

func (d *EmojiDisplay) setupGifContainer() {
	d.surface.Lock()
	defer d.surface.Unlock()

	// The text status stays in the scene but is replaced by the animation
	if label := d.surface.EmojiLabel(); label != nil {
		label.SetHidden(true)
	}

	gif := scene.NewGif(d.surface.Content())
	gifSize := d.surface.HorRes() / d.sizeDivisor
	gif.SetSize(gifSize, gifSize)
	gif.SetBorderWidth(0)
	gif.SetBgOpa(scene.OPA_TRANSP)
	gif.Center()

	gif.SetSrc(d.resolver.Default())
	d.emotionGif = gif

	logrus.Debugf("Emotion animation set up: %dx%d", gifSize, gifSize)
}

// SetEmotion shows the animation of emotion, the default one when emotion
// is unknown. An empty emotion is ignored.
func (d *EmojiDisplay) SetEmotion(emotion string) {
	if emotion == "" || d.emotionGif == nil {
		return
	}

	d.surface.Lock()
	defer d.surface.Unlock()

	gif, ok := d.resolver.Lookup(emotion)
	if !ok {
		d.emotionGif.SetSrc(d.resolver.Default())
		logrus.Infof("Unknown emotion '%s', using default", emotion)
		return
	}
	d.emotionGif.SetSrc(gif)
	logrus.Infof("Set emotion: %s", emotion)
}

func (d *EmojiDisplay) SetChatMessage(role, content string) {
	d.surface.SetChatMessage(role, content)
}
