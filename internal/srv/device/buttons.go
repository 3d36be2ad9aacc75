package device

import (
	"fmt"
	"sync"
	"time"

	"github.com/jypelle/vekimoji/internal/srv/config"
	"github.com/jypelle/vekimoji/internal/srv/event"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

const pressStepDuration = 160 * time.Millisecond

// pinReader is the part of gpio.PinIO a button reads.
type pinReader interface {
	Read() gpio.Level
}

type Button struct {
	buttonId       event.ButtonId
	pin            pinReader
	isPressed      bool
	pressStepCount int64
	lastChange     time.Time
}

func NewButton(buttonId event.ButtonId, name string) (*Button, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("failed to find %s button", name)
	}

	// Set it as input, with an internal pull up resistor:
	if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("failed to setup %s button: %w", name, err)
	}
	return &Button{buttonId: buttonId, pin: pin}, nil
}

// Refresh samples the pin: a held button emits a press event every step,
// releasing it emits the number of steps it was held.
func (b *Button) Refresh(buttonEventChannel chan event.ButtonEvent, now time.Time) {
	wasPressed := b.isPressed
	b.isPressed = bool(!b.pin.Read())

	if !b.isPressed && wasPressed {
		b.lastChange = now
		buttonEventChannel <- event.ButtonEvent{ButtonId: b.buttonId, ButtonEventType: event.RELEASE_EVENT_TYPE, PressStepCount: b.pressStepCount}
		b.pressStepCount = 0
	} else if b.isPressed && b.lastChange.Add(pressStepDuration).Before(now) {
		b.lastChange = now
		b.pressStepCount++
		buttonEventChannel <- event.ButtonEvent{ButtonId: b.buttonId, ButtonEventType: event.PRESS_EVENT_TYPE, PressStepCount: b.pressStepCount}
	}
}

type Buttons struct {
	lock         sync.RWMutex
	eventChannel chan event.ButtonEvent
	simulation   bool
	param        config.ButtonsParam

	buttons []*Button

	checkTicker *time.Ticker

	askDone chan bool
	done    chan bool
}

func NewButtons(param config.ButtonsParam, simulation bool) *Buttons {
	device := Buttons{
		eventChannel: make(chan event.ButtonEvent),
		simulation:   simulation,
		param:        param,
		askDone:      make(chan bool),
		done:         make(chan bool),
	}

	return &device
}

func (d *Buttons) Start() {
	logrus.Infof("Start buttons device")

	d.lock.Lock()
	defer d.lock.Unlock()

	if !d.simulation && (d.param.DisplaySwitch != "" || d.param.EmotionCycle != "") {
		if _, err := host.Init(); err != nil {
			logrus.Fatalf("Unable to initialize gpio: %v", err)
		}
		d.addButton(event.DISPLAY_SWITCH_BUTTON, d.param.DisplaySwitch)
		d.addButton(event.EMOTION_CYCLE_BUTTON, d.param.EmotionCycle)
	}

	// Start periodic check
	d.checkTicker = time.NewTicker(5 * time.Millisecond)
	go func() {
		for loop := true; loop; {
			select {
			case now := <-d.checkTicker.C:
				for _, button := range d.buttons {
					button.Refresh(d.eventChannel, now)
				}
			case <-d.askDone:
				loop = false
			}
		}
		d.done <- true
	}()
}

func (d *Buttons) addButton(buttonId event.ButtonId, pinName string) {
	if pinName == "" {
		return
	}
	button, err := NewButton(buttonId, pinName)
	if err != nil {
		logrus.Fatalf("Unable to add button: %v", err)
	}
	d.buttons = append(d.buttons, button)
}

func (d *Buttons) StopSendingEvent() {
	logrus.Infof("Stop buttons device")

	d.lock.Lock()
	defer d.lock.Unlock()

	d.checkTicker.Stop()
	d.askDone <- true
	<-d.done
}

func (d *Buttons) EventChannel() chan event.ButtonEvent {
	return d.eventChannel
}
