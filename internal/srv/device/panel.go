package device

import (
	"fmt"
	"image"

	"github.com/jypelle/vekimoji/internal/srv/config"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"
)

// Panel is the pixel sink of a Display. *ssd1306.Dev satisfies it.
type Panel interface {
	Bounds() image.Rectangle
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
	Halt() error
	SetContrast(level byte) error
}

// OledPanel is a ssd1306 OLED on an I²C bus.
type OledPanel struct {
	*ssd1306.Dev
	bus i2c.BusCloser
}

func OpenOledPanel(param config.DisplayParam) (*OledPanel, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}

	// Open a handle to the I²C bus, the first available one when unnamed
	bus, err := i2creg.Open(param.I2cBus)
	if err != nil {
		return nil, fmt.Errorf("unable to open i2c bus: %w", err)
	}

	opts := ssd1306.DefaultOpts
	width, height := param.Width, param.Height
	if param.SwapXY {
		width, height = height, width
	}
	if width > 0 && height > 0 {
		opts.W = width + param.OffsetX
		opts.H = height + param.OffsetY
	}

	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("unable to initialize oled display: %w", err)
	}
	logrus.Debugf("Oled display %v opened", dev.Bounds())

	return &OledPanel{Dev: dev, bus: bus}, nil
}

func (p *OledPanel) Close() error {
	return p.bus.Close()
}
