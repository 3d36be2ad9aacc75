package event

// Buttons
type ButtonId int

const (
	DISPLAY_SWITCH_BUTTON ButtonId = iota
	EMOTION_CYCLE_BUTTON
)

type ButtonEventType int

const (
	PRESS_EVENT_TYPE ButtonEventType = iota
	RELEASE_EVENT_TYPE
)

type ButtonEvent struct {
	ButtonId        ButtonId
	ButtonEventType ButtonEventType
	PressStepCount  int64
}

// Api
type ApiEvent struct {
	Result chan error
	Data   interface{}
}

type ApiEventEmotionData struct {
	Emotion string
}

type ApiEventChatMessageData struct {
	Role    string
	Content string
}

type ApiEventDisplaySwitchData struct{}
