package emotion

import (
	"sync"
	"testing"

	"github.com/jypelle/vekimoji/internal/images"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBuiltinTable(t *testing.T) {
	tests := []struct {
		emotion  string
		expected *images.Animation
	}{
		{"neutral", images.StaticstateAnimation},
		{"relaxed", images.StaticstateAnimation},
		{"sleepy", images.StaticstateAnimation},
		{"happy", images.HappyAnimation},
		{"laughing", images.HappyAnimation},
		{"funny", images.HappyAnimation},
		{"loving", images.HappyAnimation},
		{"confident", images.HappyAnimation},
		{"winking", images.HappyAnimation},
		{"cool", images.HappyAnimation},
		{"delicious", images.HappyAnimation},
		{"kissy", images.HappyAnimation},
		{"silly", images.HappyAnimation},
		{"sad", images.SadAnimation},
		{"crying", images.SadAnimation},
		{"angry", images.AngerAnimation},
		{"surprised", images.ScareAnimation},
		{"shocked", images.ScareAnimation},
		{"embarrassed", images.ScareAnimation},
		{"thinking", images.BuxueAnimation},
		{"confused", images.BuxueAnimation},
	}

	r := NewResolver(nil)
	require.Len(t, r.Maps(), len(tests))
	for _, tt := range tests {
		assert.Same(t, tt.expected, r.Resolve(tt.emotion), "Resolve(%q)", tt.emotion)
		// Repeatable
		assert.Same(t, tt.expected, r.Resolve(tt.emotion), "Resolve(%q) again", tt.emotion)
	}
}

func TestResolveUnknownFallsBackToDefault(t *testing.T) {
	r := NewResolver(nil)
	require.Same(t, images.StaticstateAnimation, r.Default())

	for _, emotion := range []string{"", "zzz-unknown", "Happy", "HAPPY", " happy", "happy ", "angry\n"} {
		assert.Same(t, r.Default(), r.Resolve(emotion), "Resolve(%q)", emotion)
		_, ok := r.Lookup(emotion)
		assert.False(t, ok, "Lookup(%q)", emotion)
	}
}

func TestResolveIsCaseSensitive(t *testing.T) {
	r := NewResolver(nil)
	assert.Same(t, images.HappyAnimation, r.Resolve("happy"))
	assert.Same(t, images.StaticstateAnimation, r.Resolve("Happy"))
}

func TestAliases(t *testing.T) {
	r := NewResolver(map[string]string{
		"joyful":   "happy",
		"furious":  "anger",
		"happy":    "sad",
		"mystery":  "does-not-exist",
		"":         "happy",
		"pensive":  "buxue",
		"startled": "scare",
	})

	assert.Same(t, images.HappyAnimation, r.Resolve("joyful"))
	assert.Same(t, images.AngerAnimation, r.Resolve("furious"))
	assert.Same(t, images.BuxueAnimation, r.Resolve("pensive"))
	assert.Same(t, images.ScareAnimation, r.Resolve("startled"))

	// Built-in entries come first
	assert.Same(t, images.HappyAnimation, r.Resolve("happy"))

	// Unknown targets are skipped
	_, ok := r.Lookup("mystery")
	assert.False(t, ok)
	assert.Same(t, r.Default(), r.Resolve(""))

	maps := r.Maps()
	require.Len(t, maps, len(emotionMaps)+5)
	var appended []string
	for _, m := range maps[len(emotionMaps):] {
		appended = append(appended, m.Name)
	}
	assert.Equal(t, []string{"furious", "happy", "joyful", "pensive", "startled"}, appended)
}

func TestMapsReturnsCopy(t *testing.T) {
	r := NewResolver(nil)
	maps := r.Maps()
	maps[0].Gif = images.AngerAnimation
	assert.Same(t, images.StaticstateAnimation, r.Resolve("neutral"))
}

func TestRepresentativesAndNextEmotion(t *testing.T) {
	r := NewResolver(map[string]string{"joyful": "happy"})

	assert.Equal(t, []string{"neutral", "happy", "sad", "angry", "surprised", "thinking"}, r.Representatives())

	assert.Equal(t, "happy", r.NextEmotion("neutral"))
	assert.Equal(t, "happy", r.NextEmotion(""))
	assert.Equal(t, "happy", r.NextEmotion("unknown"))
	assert.Equal(t, "sad", r.NextEmotion("laughing"))
	assert.Equal(t, "sad", r.NextEmotion("joyful"))
	assert.Equal(t, "neutral", r.NextEmotion("confused"))
}

func TestResolveConcurrently(t *testing.T) {
	r := NewResolver(nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Same(t, images.SadAnimation, r.Resolve("crying"))
			}
		}()
	}
	wg.Wait()
}
