package apimodel

// EmotionState is the emotion currently shown and the animation it maps to.
type EmotionState struct {
	Emotion string `json:"emotion"`
	Asset   string `json:"asset"`
}

type EmotionMapping struct {
	Emotion string `json:"emotion"`
	Asset   string `json:"asset"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type DisplayState struct {
	On bool `json:"on"`
}
