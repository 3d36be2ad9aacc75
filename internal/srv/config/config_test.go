package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerConfigCreatesDefaults(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "vekimoji")

	sc := NewServerConfig(configDir, true, true)

	assert.True(t, sc.DebugMode)
	assert.True(t, sc.SimulationMode)
	assert.FileExists(t, filepath.Join(configDir, paramFilename))

	assert.Equal(t, 128, sc.Display.Width)
	assert.Equal(t, 64, sc.Display.Height)
	assert.Equal(t, 2, sc.Display.GetEmojiSizeDivisor())
	assert.Equal(t, 50*time.Millisecond, sc.Display.GetFrameInterval())
	assert.Equal(t, "happy", sc.EmotionAliases["joyful"])
	assert.False(t, sc.Api.Enabled)
	assert.Equal(t, int64(8443), sc.Api.Port)

	assert.Equal(t, "neutral", sc.Emotion())
	assert.True(t, sc.DisplayOn())
	sc.FlushSave()
	assert.FileExists(t, filepath.Join(configDir, stateFilename))
}

func TestNewServerConfigReadsParamFile(t *testing.T) {
	configDir := t.TempDir()
	param := `
display:
  width: 240
  height: 240
  mirror_x: true
  emoji_size_divisor: 3
emotion_aliases:
  grumpy: anger
api:
  enabled: true
  port: 8080
  api_key: secret
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, paramFilename), []byte(param), 0660))

	sc := NewServerConfig(configDir, false, false)

	assert.Equal(t, 240, sc.Display.Width)
	assert.True(t, sc.Display.MirrorX)
	assert.Equal(t, 3, sc.Display.GetEmojiSizeDivisor())
	assert.Equal(t, map[string]string{"grumpy": "anger"}, sc.EmotionAliases)
	assert.True(t, sc.Api.Enabled)
	assert.Equal(t, "secret", sc.Api.ApiKey)
}

func TestEnvironmentOverrides(t *testing.T) {
	configDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(configDir, envFilename), []byte("VEKIMOJI_I2C_BUS=/dev/i2c-3\n"), 0660))
	t.Cleanup(func() { os.Unsetenv("VEKIMOJI_I2C_BUS") })
	t.Setenv("VEKIMOJI_API_PORT", "9443")
	t.Setenv("VEKIMOJI_API_KEY", "from-env")

	sc := NewServerConfig(configDir, false, false)

	assert.Equal(t, "/dev/i2c-3", sc.Display.I2cBus)
	assert.Equal(t, int64(9443), sc.Api.Port)
	assert.Equal(t, "from-env", sc.Api.ApiKey)

	// Overrides stay out of the param file
	raw, err := os.ReadFile(filepath.Join(configDir, paramFilename))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "from-env")
}

func TestDisplayParamFallbacks(t *testing.T) {
	var p DisplayParam
	assert.Equal(t, 2, p.GetEmojiSizeDivisor())
	assert.Equal(t, 50*time.Millisecond, p.GetFrameInterval())

	p.FrameInterval = 20
	assert.Equal(t, 20*time.Millisecond, p.GetFrameInterval())
}

func TestServerStateSaveAndRestore(t *testing.T) {
	filename := filepath.Join(t.TempDir(), stateFilename)

	ss := NewServerState(filename)
	ss.saveDelay = time.Hour
	ss.SetEmotion("crying")
	ss.SetDisplayOn(false)
	_, err := os.Stat(filename)
	assert.True(t, os.IsNotExist(err))

	ss.FlushSave()

	restored := NewServerState(filename)
	assert.Equal(t, "crying", restored.Emotion())
	assert.False(t, restored.DisplayOn())
}

func TestServerStateDebouncedSave(t *testing.T) {
	filename := filepath.Join(t.TempDir(), stateFilename)

	ss := NewServerState(filename)
	ss.FlushSave()
	ss.saveDelay = 10 * time.Millisecond
	ss.SetEmotion("angry")

	assert.Eventually(t, func() bool {
		raw, err := os.ReadFile(filename)
		return err == nil && strings.Contains(string(raw), "emotion: angry")
	}, 2*time.Second, 20*time.Millisecond)
}
