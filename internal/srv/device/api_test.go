package device

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/gif"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jypelle/vekimoji/apimodel"
	"github.com/jypelle/vekimoji/internal/images"
	"github.com/jypelle/vekimoji/internal/srv/config"
	"github.com/jypelle/vekimoji/internal/srv/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testApiKey = "secret"

type fakeState struct {
	mu      sync.Mutex
	emotion apimodel.EmotionState
	on      bool
}

func (s *fakeState) CurrentEmotion() apimodel.EmotionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.emotion
}

func (s *fakeState) EmotionMappings() []apimodel.EmotionMapping {
	return []apimodel.EmotionMapping{{Emotion: "neutral", Asset: "staticstate"}, {Emotion: "happy", Asset: "happy"}}
}

func (s *fakeState) IsDisplayOn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.on
}

// newTestApi serves events like the event loop would, failing emotions
// named "fail".
func newTestApi(t *testing.T) (*Api, *fakeState, chan interface{}) {
	state := &fakeState{emotion: apimodel.EmotionState{Emotion: "neutral", Asset: "staticstate"}, on: true}
	api := NewApi(&config.ServerConfig{ServerParam: &config.ServerParam{Api: config.ApiParam{Enabled: true, ApiKey: testApiKey}}}, state)

	received := make(chan interface{}, 10)
	done := make(chan bool)
	go func() {
		for {
			select {
			case ev := <-api.EventChannel():
				received <- ev.Data
				switch data := ev.Data.(type) {
				case event.ApiEventEmotionData:
					if data.Emotion == "fail" {
						ev.Result <- errors.New("refused")
						continue
					}
					state.mu.Lock()
					state.emotion = apimodel.EmotionState{Emotion: data.Emotion, Asset: "happy"}
					state.mu.Unlock()
				case event.ApiEventDisplaySwitchData:
					state.mu.Lock()
					state.on = !state.on
					state.mu.Unlock()
				}
				ev.Result <- nil
			case <-done:
				return
			}
		}
	}()
	t.Cleanup(func() { close(done) })

	return api, state, received
}

func doRequest(api *Api, method, path, apiKey string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if apiKey != "" {
		req.Header.Set("x-api-key", apiKey)
	}
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	return rec
}

func TestApiRequiresKey(t *testing.T) {
	api, _, _ := newTestApi(t)

	rec := doRequest(api, "GET", "/api/is_alive", "", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(api, "GET", "/api/is_alive", "wrong", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(api, "GET", "/api/is_alive", testApiKey, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(api, "GET", "/api/is_alive?api_key="+testApiKey, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApiSetEmotion(t *testing.T) {
	api, _, received := newTestApi(t)

	rec := doRequest(api, "POST", "/api/emotion/laughing", testApiKey, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, event.ApiEventEmotionData{Emotion: "laughing"}, <-received)

	var state apimodel.EmotionState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, apimodel.EmotionState{Emotion: "laughing", Asset: "happy"}, state)

	rec = doRequest(api, "GET", "/api/emotion", testApiKey, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"emotion":"laughing","asset":"happy"}`, rec.Body.String())

	rec = doRequest(api, "POST", "/api/emotion/fail", testApiKey, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "refused")

	rec = doRequest(api, "GET", "/api/emotion/laughing", testApiKey, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestApiEmotions(t *testing.T) {
	api, _, _ := newTestApi(t)

	rec := doRequest(api, "GET", "/api/emotions", testApiKey, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"emotion":"neutral","asset":"staticstate"},{"emotion":"happy","asset":"happy"}]`, rec.Body.String())
}

func TestApiAsset(t *testing.T) {
	api, _, _ := newTestApi(t)

	rec := doRequest(api, "GET", "/api/asset/sad", testApiKey, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/gif", rec.Header().Get("Content-Type"))
	decoded, err := gif.DecodeAll(rec.Body)
	require.NoError(t, err)
	assert.Len(t, decoded.Image, images.SadAnimation.FrameCount())

	rec = doRequest(api, "GET", "/api/asset/unknown", testApiKey, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApiChat(t *testing.T) {
	api, _, received := newTestApi(t)

	rec := doRequest(api, "POST", "/api/chat", testApiKey, []byte(`{"role":"assistant","content":"Hello!"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, event.ApiEventChatMessageData{Role: "assistant", Content: "Hello!"}, <-received)

	rec = doRequest(api, "POST", "/api/chat", testApiKey, []byte(`not json`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApiDisplay(t *testing.T) {
	api, _, received := newTestApi(t)

	rec := doRequest(api, "GET", "/api/display", testApiKey, nil)
	assert.JSONEq(t, `{"on":true}`, rec.Body.String())

	rec = doRequest(api, "POST", "/api/display/switch", testApiKey, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, event.ApiEventDisplaySwitchData{}, <-received)
	assert.JSONEq(t, `{"on":false}`, rec.Body.String())
}

func TestApiNotFound(t *testing.T) {
	api, _, _ := newTestApi(t)

	rec := doRequest(api, "GET", "/api/nothing", testApiKey, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"status_code":404,"message":"Page not found"}`, rec.Body.String())
}

func TestApiEventsWebsocket(t *testing.T) {
	api, _, _ := newTestApi(t)
	server := httptest.NewServer(api.router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/events?api_key=" + testApiKey
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var state apimodel.EmotionState
	require.NoError(t, conn.ReadJSON(&state))
	assert.Equal(t, "neutral", state.Emotion)

	api.NotifyEmotion(apimodel.EmotionState{Emotion: "crying", Asset: "sad"})
	require.NoError(t, conn.ReadJSON(&state))
	assert.Equal(t, apimodel.EmotionState{Emotion: "crying", Asset: "sad"}, state)

	_, _, err = websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/api/events", nil)
	assert.Error(t, err)
}
