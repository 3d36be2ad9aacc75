package srv

import (
	"github.com/jypelle/vekimoji/internal/srv/event"
	"github.com/sirupsen/logrus"
)

func (s *ServerApp) eventLoop() {
	var apiEventChannel chan event.ApiEvent
	if s.apiDevice != nil {
		apiEventChannel = s.apiDevice.EventChannel()
	}

	for loop := true; loop; {
		select {
		case ev := <-apiEventChannel:
			s.handleApiEvent(ev)
		case ev := <-s.buttonsDevice.EventChannel():
			s.handleButtonEvent(ev)
		case <-s.eventLoopAskDone:
			loop = false
		}
	}
	s.eventLoopDone <- true
}

func (s *ServerApp) handleApiEvent(ev event.ApiEvent) {
	switch data := ev.Data.(type) {
	case event.ApiEventEmotionData:
		logrus.Debugf("Receive api emotion event: %s", data.Emotion)
		s.showEmotion(data.Emotion)
		ev.Result <- nil
	case event.ApiEventChatMessageData:
		logrus.Debugf("Receive api chat message event")
		s.emojiDisplay.SetChatMessage(data.Role, data.Content)
		ev.Result <- nil
	case event.ApiEventDisplaySwitchData:
		logrus.Debugf("Receive api display switch event")
		s.switchDisplay()
		ev.Result <- nil
	default:
		logrus.Warnf("Unexpected api event: %T", ev.Data)
		ev.Result <- nil
	}
}

func (s *ServerApp) handleButtonEvent(ev event.ButtonEvent) {
	logrus.Debugf("Receive button event: %d, %d, %d", ev.ButtonId, ev.ButtonEventType, ev.PressStepCount)
	switch ev.ButtonId {
	case event.DISPLAY_SWITCH_BUTTON:
		if ev.ButtonEventType == event.RELEASE_EVENT_TYPE && ev.PressStepCount < 5 {
			logrus.Debugf("Switch display on/off")
			s.switchDisplay()
		}
	case event.EMOTION_CYCLE_BUTTON:
		if ev.ButtonEventType == event.PRESS_EVENT_TYPE && (ev.PressStepCount-1)%3 == 0 {
			s.showEmotion(s.resolver.NextEmotion(s.Emotion()))
		}
	}
}

// showEmotion displays emotion, remembers it and tells the api clients.
func (s *ServerApp) showEmotion(emotion string) {
	s.emojiDisplay.SetEmotion(emotion)
	if emotion == "" {
		return
	}
	s.ServerState.SetEmotion(emotion)
	if s.apiDevice != nil {
		s.apiDevice.NotifyEmotion(s.CurrentEmotion())
	}
}

func (s *ServerApp) switchDisplay() {
	on := s.displayDevice.Switch()
	s.SetDisplayOn(on)
}
