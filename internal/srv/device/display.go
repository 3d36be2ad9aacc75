package device

import (
	"image"
	"image/color"
	"io"
	"sync"
	"time"

	"github.com/jypelle/vekimoji/internal/scene"
	"github.com/jypelle/vekimoji/internal/srv/config"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
)

// Display is the base panel display. It owns the scene, refreshes it on a
// ticker and pushes frames to the panel (or the simulation window).
//
// Lock order: surfaceLock, then lock, then oledLock. No panel I/O happens
// while surfaceLock is held.
type Display struct {
	oledLock sync.Mutex
	panel    Panel

	surfaceLock sync.Mutex
	screen      *scene.Container
	content     *scene.Container
	emojiLabel  *scene.Label
	chatLabel   *scene.Label

	param         config.DisplayParam
	width, height int

	lock           sync.RWMutex
	on             bool
	simulationMode bool
	lastImg        image.Image
	simulation     simulationWindow

	askDone chan bool
	done    chan bool
}

// NewDisplay builds the display scene. panel may be nil in simulation mode.
func NewDisplay(panel Panel, param config.DisplayParam, simulationMode bool) *Display {
	width, height := param.Width, param.Height
	if width <= 0 || height <= 0 {
		width, height = 128, 64
		if panel != nil {
			width, height = panel.Bounds().Dx(), panel.Bounds().Dy()
			if param.SwapXY {
				width, height = height, width
			}
		}
	}

	d := &Display{
		panel:          panel,
		param:          param,
		width:          width,
		height:         height,
		simulationMode: simulationMode,
		lastImg:        image.NewRGBA(image.Rect(0, 0, width, height)),
		askDone:        make(chan bool),
		done:           make(chan bool),
	}

	d.screen = scene.NewScreen(width, height)

	d.content = scene.NewContainer(d.screen)
	d.content.SetSize(width, height)
	d.content.SetBorderWidth(0)
	d.content.SetBgOpa(scene.OPA_TRANSP)

	d.emojiLabel = scene.NewLabel(d.content)
	d.emojiLabel.Center()
	d.emojiLabel.SetText("(-_-)")

	d.chatLabel = scene.NewLabel(d.screen)
	d.chatLabel.SetSize(width, 0)
	d.chatLabel.SetAlign(scene.ALIGN_BOTTOM_MID)
	d.chatLabel.SetLongMode(scene.LONG_SCROLL_CIRCULAR)
	d.chatLabel.SetBgColor(color.Black)
	d.chatLabel.SetBgOpa(scene.OPA_COVER)
	d.chatLabel.SetHidden(true)

	return d
}

// Lock gives exclusive access to the scene.
func (d *Display) Lock() {
	d.surfaceLock.Lock()
}

func (d *Display) Unlock() {
	d.surfaceLock.Unlock()
}

// Content is the container new elements are created under.
func (d *Display) Content() *scene.Container {
	return d.content
}

// EmojiLabel is the text status element showing the emotion.
func (d *Display) EmojiLabel() *scene.Label {
	return d.emojiLabel
}

// HorRes is the horizontal resolution of the scene.
func (d *Display) HorRes() int {
	return d.width
}

func (d *Display) VerRes() int {
	return d.height
}

func (d *Display) SetChatMessage(role, content string) {
	d.Lock()
	defer d.Unlock()

	logrus.Debugf("Chat message from %s: %s", role, content)
	d.chatLabel.SetText(content)
	d.chatLabel.SetHidden(content == "")
}

func (d *Display) Start() {
	logrus.Infof("Start display device")

	d.lock.Lock()
	d.on = true
	d.lock.Unlock()

	if d.simulationMode {
		d.simulation.start(d)
	} else if d.panel != nil {
		d.oledLock.Lock()
		if err := d.panel.SetContrast(d.param.Contrast); err != nil {
			logrus.Warnf("Unable to set display contrast: %v", err)
		}
		d.oledLock.Unlock()
	}

	refreshTicker := time.NewTicker(d.param.GetFrameInterval())
	go func() {
		last := time.Now()
		for loop := true; loop; {
			select {
			case <-d.askDone:
				loop = false
			case now := <-refreshTicker.C:
				img := d.renderFrame(now.Sub(last))
				last = now
				d.show(img)
			}
		}
		refreshTicker.Stop()
		d.done <- true
	}()
}

func (d *Display) Stop() {
	logrus.Infof("Stop display device")

	d.askDone <- true
	<-d.done

	if d.simulationMode {
		d.simulation.close()
	} else if d.panel != nil {
		d.oledLock.Lock()
		defer d.oledLock.Unlock()
		if err := d.panel.Halt(); err != nil {
			logrus.Warnf("Unable to halt display: %v", err)
		}
		if closer, ok := d.panel.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				logrus.Warnf("Unable to close display: %v", err)
			}
		}
	}
}

// renderFrame advances the animations by elapsed and composes a frame in
// panel orientation.
func (d *Display) renderFrame(elapsed time.Duration) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, d.width, d.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	d.Lock()
	d.screen.Tick(elapsed)
	d.screen.Render(img, img.Bounds())
	d.Unlock()

	return d.transform(img)
}

func (d *Display) transform(src *image.RGBA) *image.RGBA {
	if !d.param.MirrorX && !d.param.MirrorY && !d.param.SwapXY {
		return src
	}

	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	ow, oh := w, h
	if d.param.SwapXY {
		ow, oh = h, w
	}
	dst := image.NewRGBA(image.Rect(0, 0, ow, oh))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			tx, ty := x, y
			if d.param.MirrorX {
				tx = w - 1 - x
			}
			if d.param.MirrorY {
				ty = h - 1 - y
			}
			if d.param.SwapXY {
				tx, ty = ty, tx
			}
			dst.SetRGBA(tx, ty, src.RGBAAt(x, y))
		}
	}
	return dst
}

// panelRect is where a frame lands on the panel.
func (d *Display) panelRect(img image.Image) image.Rectangle {
	return img.Bounds().Add(image.Pt(d.param.OffsetX, d.param.OffsetY))
}

func (d *Display) show(img image.Image) {
	d.lock.Lock()
	d.lastImg = img
	on := d.on
	d.lock.Unlock()

	if !on {
		return
	}

	if d.simulationMode {
		d.simulation.invalidate()
	} else if d.panel != nil {
		d.oledLock.Lock()
		defer d.oledLock.Unlock()
		if err := d.panel.Draw(d.panelRect(img), img, image.Point{}); err != nil {
			logrus.Warnf("Unable to draw on display: %v", err)
		}
	}
}

func (d *Display) LastImage() image.Image {
	d.lock.RLock()
	defer d.lock.RUnlock()
	return d.lastImg
}

func (d *Display) SetOff() {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.setOff()
}

func (d *Display) setOff() {
	d.on = false
	if !d.simulationMode && d.panel != nil {
		d.oledLock.Lock()
		if err := d.panel.Halt(); err != nil {
			logrus.Warnf("Unable to halt display: %v", err)
		}
		d.oledLock.Unlock()
	}
}

func (d *Display) SetOn() {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.setOn()
}

func (d *Display) setOn() {
	d.on = true
	if d.simulationMode {
		d.simulation.invalidate()
	} else if d.panel != nil {
		d.oledLock.Lock()
		// Hack to force display on (calling Draw() is not enough)
		if err := d.panel.SetContrast(d.param.Contrast); err != nil {
			logrus.Warnf("Unable to set display contrast: %v", err)
		}
		d.oledLock.Unlock()
	}
}

func (d *Display) Switch() bool {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.on {
		d.setOff()
	} else {
		d.setOn()
	}

	return d.on
}

func (d *Display) IsOn() bool {
	d.lock.RLock()
	defer d.lock.RUnlock()
	return d.on
}
