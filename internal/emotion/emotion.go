// Package emotion maps emotion labels onto the animated face assets.
//
// Many labels share one asset. Lookups are case sensitive exact matches done
// in table order, the first matching entry wins, and anything unknown falls
// back to the neutral asset so the face is never left blank.
package emotion

import (
	"sort"

	"github.com/jypelle/vekimoji/internal/images"
	"github.com/sirupsen/logrus"
)

type EmotionMap struct {
	Name string
	Gif  *images.Animation
}

// Built-in emotion table: 21 emotions onto 6 animations.
var emotionMaps = []EmotionMap{
	// Neutral/calm emotions
	{"neutral", images.StaticstateAnimation},
	{"relaxed", images.StaticstateAnimation},
	{"sleepy", images.StaticstateAnimation},

	// Positive/happy emotions
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

	// Sad emotions
	{"sad", images.SadAnimation},
	{"crying", images.SadAnimation},

	// Angry emotions
	{"angry", images.AngerAnimation},

	// Surprised/shocked emotions
	{"surprised", images.ScareAnimation},
	{"shocked", images.ScareAnimation},
	{"embarrassed", images.ScareAnimation},

	// Thinking/confused emotions
	{"thinking", images.BuxueAnimation},
	{"confused", images.BuxueAnimation},
}

// Resolver is immutable once built and safe for concurrent use.
type Resolver struct {
	maps       []EmotionMap
	defaultGif *images.Animation
}

// NewResolver builds a resolver from the built-in table followed by aliases
// (label -> animation name) in label order. An alias never shadows a
// built-in label since the first match wins.
func NewResolver(aliases map[string]string) *Resolver {
	r := &Resolver{
		maps:       make([]EmotionMap, len(emotionMaps), len(emotionMaps)+len(aliases)),
		defaultGif: images.StaticstateAnimation,
	}
	copy(r.maps, emotionMaps)

	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if name == "" {
			continue
		}
		gif := images.ByName(aliases[name])
		if gif == nil {
			logrus.Warnf("Ignore emotion alias %s: unknown animation %s", name, aliases[name])
			continue
		}
		r.maps = append(r.maps, EmotionMap{Name: name, Gif: gif})
	}

	return r
}

// Lookup reports the animation of the first entry named emotion.
func (r *Resolver) Lookup(emotion string) (*images.Animation, bool) {
	for _, m := range r.maps {
		if m.Name == emotion {
			return m.Gif, true
		}
	}
	return nil, false
}

// Resolve never fails: unknown emotions get the default animation.
func (r *Resolver) Resolve(emotion string) *images.Animation {
	if gif, ok := r.Lookup(emotion); ok {
		return gif
	}
	return r.defaultGif
}

func (r *Resolver) Default() *images.Animation {
	return r.defaultGif
}

func (r *Resolver) Maps() []EmotionMap {
	maps := make([]EmotionMap, len(r.maps))
	copy(maps, r.maps)
	return maps
}

// Representatives returns, for each distinct animation in table order, the
// first emotion mapped onto it.
func (r *Resolver) Representatives() []string {
	var emotions []string
	seen := make(map[*images.Animation]bool)
	for _, m := range r.maps {
		if !seen[m.Gif] {
			seen[m.Gif] = true
			emotions = append(emotions, m.Name)
		}
	}
	return emotions
}

// NextEmotion cycles through the representatives, starting from the
// animation current resolves to.
func (r *Resolver) NextEmotion(current string) string {
	emotions := r.Representatives()
	gif := r.Resolve(current)
	for i, e := range emotions {
		if r.Resolve(e) == gif {
			return emotions[(i+1)%len(emotions)]
		}
	}
	return emotions[0]
}
