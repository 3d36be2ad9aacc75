package device

import (
	"testing"
	"time"

	"github.com/jypelle/vekimoji/internal/srv/config"
	"github.com/jypelle/vekimoji/internal/srv/event"
	"github.com/stretchr/testify/assert"
	"periph.io/x/conn/v3/gpio"
)

type fakePin struct {
	level gpio.Level
}

func (p *fakePin) Read() gpio.Level {
	return p.level
}

func TestButtonRefresh(t *testing.T) {
	pin := &fakePin{level: gpio.High}
	b := &Button{buttonId: event.EMOTION_CYCLE_BUTTON, pin: pin}
	events := make(chan event.ButtonEvent, 10)

	start := time.Now()
	b.Refresh(events, start)
	assert.Len(t, events, 0)

	// Pulled up: pressed reads low
	pin.level = gpio.Low
	b.Refresh(events, start.Add(10*time.Millisecond))
	b.Refresh(events, start.Add(20*time.Millisecond))
	b.Refresh(events, start.Add(200*time.Millisecond))
	pin.level = gpio.High
	b.Refresh(events, start.Add(210*time.Millisecond))

	assert.Equal(t, event.ButtonEvent{ButtonId: event.EMOTION_CYCLE_BUTTON, ButtonEventType: event.PRESS_EVENT_TYPE, PressStepCount: 1}, <-events)
	assert.Equal(t, event.ButtonEvent{ButtonId: event.EMOTION_CYCLE_BUTTON, ButtonEventType: event.PRESS_EVENT_TYPE, PressStepCount: 2}, <-events)
	assert.Equal(t, event.ButtonEvent{ButtonId: event.EMOTION_CYCLE_BUTTON, ButtonEventType: event.RELEASE_EVENT_TYPE, PressStepCount: 2}, <-events)
	assert.Len(t, events, 0)
}

func TestButtonsInSimulation(t *testing.T) {
	d := NewButtons(config.ButtonsParam{DisplaySwitch: "GPIO25"}, true)
	d.Start()
	d.StopSendingEvent()
	assert.Empty(t, d.buttons)
}
