package config

import (
	_ "embed"
	"time"
)

//go:embed param_default.yaml
var ParamDefaultFile []byte

type ServerParam struct {
	Display        DisplayParam      `yaml:"display"`
	EmotionAliases map[string]string `yaml:"emotion_aliases"`
	Buttons        ButtonsParam      `yaml:"buttons"`
	Api            ApiParam          `yaml:"api"`
}

// DisplayParam describes the panel geometry and refresh policy.
type DisplayParam struct {
	I2cBus           string `yaml:"i2c_bus"`
	Width            int    `yaml:"width"`
	Height           int    `yaml:"height"`
	OffsetX          int    `yaml:"offset_x"`
	OffsetY          int    `yaml:"offset_y"`
	MirrorX          bool   `yaml:"mirror_x"`
	MirrorY          bool   `yaml:"mirror_y"`
	SwapXY           bool   `yaml:"swap_xy"`
	Contrast         byte   `yaml:"contrast"`
	FrameInterval    int64  `yaml:"frame_interval"`
	EmojiSizeDivisor int    `yaml:"emoji_size_divisor"`
}

func (p DisplayParam) GetFrameInterval() time.Duration {
	if p.FrameInterval <= 0 {
		return 50 * time.Millisecond
	}
	return time.Duration(p.FrameInterval) * time.Millisecond
}

func (p DisplayParam) GetEmojiSizeDivisor() int {
	if p.EmojiSizeDivisor <= 0 {
		return 2
	}
	return p.EmojiSizeDivisor
}

// ButtonsParam holds GPIO pin names, empty when the button is not wired.
type ButtonsParam struct {
	DisplaySwitch string `yaml:"display_switch"`
	EmotionCycle  string `yaml:"emotion_cycle"`
}

type ApiParam struct {
	Enabled bool   `yaml:"enabled"`
	Ssl     bool   `yaml:"ssl"`
	Port    int64  `yaml:"port"`
	ApiKey  string `yaml:"api_key"`
}
