package device

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/jypelle/vekimoji/apimodel"
	"github.com/jypelle/vekimoji/internal/images"
	"github.com/jypelle/vekimoji/internal/srv/config"
	"github.com/jypelle/vekimoji/internal/srv/event"
	"github.com/jypelle/vekimoji/internal/tool"
	"github.com/sirupsen/logrus"
)

const websocketWriteTimeout = time.Second

// StateProvider gives the api read access to the server state.
type StateProvider interface {
	CurrentEmotion() apimodel.EmotionState
	EmotionMappings() []apimodel.EmotionMapping
	IsDisplayOn() bool
}

type Api struct {
	lock         sync.Mutex
	eventChannel chan event.ApiEvent

	router    *mux.Router
	apiRouter *mux.Router
	server    *http.Server

	upgrader websocket.Upgrader
	clients  map[*websocket.Conn]bool

	config *config.ServerConfig
	state  StateProvider
}

func NewApi(config *config.ServerConfig, state StateProvider) *Api {
	api := Api{
		config:       config,
		state:        state,
		eventChannel: make(chan event.ApiEvent),
		clients:      make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			// Same policy as the CORS headers
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	api.router = mux.NewRouter().StrictSlash(false)

	// API Routes
	api.apiRouter = api.router.PathPrefix("/api").Subrouter()
	api.apiRouter.NotFoundHandler = http.HandlerFunc(ErrorNotFoundAction)
	api.apiRouter.MethodNotAllowedHandler = http.HandlerFunc(ErrorMethodNotAllowedAction)

	// Auth middleware
	api.apiRouter.Use(
		func(handler http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				defer func() {
					if rec := recover(); rec != nil {
						logrus.Warningf("recovered from panic : [%v] - stack trace : \n [%s]", rec, debug.Stack())
						strMessage := fmt.Sprintf("%v", rec)
						GlobalErrorAction(w, strMessage, http.StatusInternalServerError)
					}
				}()

				// Check API Key, from the query for websockets
				apiKey := r.Header.Get("x-api-key")
				if apiKey == "" {
					apiKey = r.URL.Query().Get("api_key")
				}
				if apiKey != config.ServerParam.Api.ApiKey {
					ErrorStatusAction(w, r, http.StatusForbidden)
					return
				}

				logrus.Debugf("PATH: %s %s", r.Host, r.URL.Path)

				handler.ServeHTTP(w, r)
			})
		})

	api.apiRouter.HandleFunc("/is_alive",
		func(w http.ResponseWriter, r *http.Request) {
			ErrorStatusAction(w, r, http.StatusOK)
		}).Methods("GET")
	api.apiRouter.HandleFunc("/emotion",
		func(w http.ResponseWriter, r *http.Request) {
			writeJson(w, api.state.CurrentEmotion())
		}).Methods("GET")
	api.apiRouter.HandleFunc("/emotion/{emotion}",
		func(w http.ResponseWriter, r *http.Request) {
			emotion, ok := mux.Vars(r)["emotion"]
			if !ok || emotion == "" {
				ErrorStatusAction(w, r, http.StatusBadRequest)
				return
			}
			err := api.send(event.ApiEventEmotionData{Emotion: emotion})
			if err != nil {
				GlobalErrorAction(w, err.Error(), http.StatusForbidden)
				return
			}
			writeJson(w, api.state.CurrentEmotion())
		}).Methods("POST")
	api.apiRouter.HandleFunc("/emotions",
		func(w http.ResponseWriter, r *http.Request) {
			writeJson(w, api.state.EmotionMappings())
		}).Methods("GET")
	api.apiRouter.HandleFunc("/asset/{asset}",
		func(w http.ResponseWriter, r *http.Request) {
			animation := images.ByName(mux.Vars(r)["asset"])
			if animation == nil {
				ErrorStatusAction(w, r, http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "image/gif")
			if err := animation.Encode(w); err != nil {
				logrus.Warnf("Unable to encode %s animation: %v", animation.Name, err)
			}
		}).Methods("GET")
	api.apiRouter.HandleFunc("/chat",
		func(w http.ResponseWriter, r *http.Request) {
			var chatMessage apimodel.ChatMessage
			if err := json.NewDecoder(r.Body).Decode(&chatMessage); err != nil {
				apimodel.WrongParametersErrorMessage.SendError(w)
				return
			}
			err := api.send(event.ApiEventChatMessageData{Role: chatMessage.Role, Content: chatMessage.Content})
			if err != nil {
				GlobalErrorAction(w, err.Error(), http.StatusForbidden)
				return
			}
			ErrorStatusAction(w, r, http.StatusOK)
		}).Methods("POST")
	api.apiRouter.HandleFunc("/display",
		func(w http.ResponseWriter, r *http.Request) {
			writeJson(w, apimodel.DisplayState{On: api.state.IsDisplayOn()})
		}).Methods("GET")
	api.apiRouter.HandleFunc("/display/switch",
		func(w http.ResponseWriter, r *http.Request) {
			err := api.send(event.ApiEventDisplaySwitchData{})
			if err != nil {
				GlobalErrorAction(w, err.Error(), http.StatusForbidden)
				return
			}
			writeJson(w, apimodel.DisplayState{On: api.state.IsDisplayOn()})
		}).Methods("POST")
	api.apiRouter.HandleFunc("/events", api.eventsAction).Methods("GET")

	// Tell the browser that it's OK for JS to communicate with the server
	headersOk := handlers.AllowedHeaders([]string{"Authorization", "Content-Type", "X-Api-Key"})
	originsOk := handlers.AllowedOrigins([]string{"*"})
	methodsOk := handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	compressed := handlers.CompressHandler(handlers.CORS(originsOk, headersOk, methodsOk)(api.router))

	api.server = &http.Server{
		Addr: ":" + strconv.FormatInt(config.ServerParam.Api.Port, 10),
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Websockets need the raw connection
			if websocket.IsWebSocketUpgrade(r) {
				api.router.ServeHTTP(w, r)
				return
			}
			compressed.ServeHTTP(w, r)
		}),
		ReadTimeout:  time.Second * 240,
		WriteTimeout: time.Second * 240,
		IdleTimeout:  time.Second * 240,
	}

	return &api
}

func (d *Api) Start() {
	logrus.Infof("Start api device")

	if !d.config.Api.Ssl {
		go func() {
			err := d.server.ListenAndServe()
			if err != nil && err != http.ErrServerClosed {
				logrus.Error(err)
			}
		}()
		return
	}

	existServerCert, err := tool.IsFileExists(d.selfSignedCertFilename())
	if err != nil {
		logrus.Fatalf("Unable to access %s: %v\n", d.selfSignedCertFilename(), err)
	}

	existServerKey, err := tool.IsFileExists(d.selfSignedKeyFilename())
	if err != nil {
		logrus.Fatalf("Unable to access %s: %v\n", d.selfSignedKeyFilename(), err)
	}

	if !existServerCert || !existServerKey {
		logrus.Info("Missing cert and key files, trying to generate them...")
		err = tool.GenerateTlsCertificate(
			"jypelle",
			"Vekimoji Server",
			d.selfSignedKeyFilename(),
			d.selfSignedCertFilename(),
			[]string{"localhost"})
		if err != nil {
			logrus.Fatalf("Unable to generate cert and key files : %v\n", err)
		}
		logrus.Info("Self-signed cert and key files generated")
	}

	// Launch https server
	go func() {
		err := d.server.ListenAndServeTLS(d.selfSignedCertFilename(), d.selfSignedKeyFilename())
		if err != nil && err != http.ErrServerClosed {
			logrus.Error(err)
		}
	}()
}

func (d *Api) StopSendingEvent() {
	logrus.Infof("Stop api device")
	d.server.Shutdown(context.Background())

	d.lock.Lock()
	defer d.lock.Unlock()
	for conn := range d.clients {
		conn.Close()
		delete(d.clients, conn)
	}
}

func (d *Api) EventChannel() chan event.ApiEvent {
	return d.eventChannel
}

// send hands data to the event loop and waits for its result.
func (d *Api) send(data interface{}) error {
	result := make(chan error)
	d.eventChannel <- event.ApiEvent{Result: result, Data: data}
	return <-result
}

// NotifyEmotion pushes state to every websocket client.
func (d *Api) NotifyEmotion(state apimodel.EmotionState) {
	d.lock.Lock()
	defer d.lock.Unlock()

	for conn := range d.clients {
		if err := d.write(conn, state); err != nil {
			logrus.Debugf("Drop websocket client %s: %v", conn.RemoteAddr(), err)
			conn.Close()
			delete(d.clients, conn)
		}
	}
}

func (d *Api) write(conn *websocket.Conn, v interface{}) error {
	if err := conn.SetWriteDeadline(time.Now().Add(websocketWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}

func (d *Api) eventsAction(w http.ResponseWriter, r *http.Request) {
	conn, err := d.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied
		logrus.Debugf("Websocket upgrade failed: %v", err)
		return
	}

	d.lock.Lock()
	err = d.write(conn, d.state.CurrentEmotion())
	if err == nil {
		d.clients[conn] = true
	}
	d.lock.Unlock()
	if err != nil {
		conn.Close()
		return
	}

	// Clients only listen: read until the connection goes away
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	d.lock.Lock()
	if d.clients[conn] {
		conn.Close()
		delete(d.clients, conn)
	}
	d.lock.Unlock()
}

func (d *Api) selfSignedKeyFilename() string {
	return filepath.Join(d.config.ConfigDir, "key.pem")
}

func (d *Api) selfSignedCertFilename() string {
	return filepath.Join(d.config.ConfigDir, "cert.pem")
}

func writeJson(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Warnf("Unable to encode response: %v", err)
	}
}

func ErrorNotFoundAction(w http.ResponseWriter, r *http.Request) {
	ErrorStatusAction(w, r, http.StatusNotFound)
}

func ErrorMethodNotAllowedAction(w http.ResponseWriter, r *http.Request) {
	ErrorStatusAction(w, r, http.StatusMethodNotAllowed)
}

func ErrorStatusAction(w http.ResponseWriter, r *http.Request, status int) {
	GlobalErrorAction(w, "", status)
}

func GlobalErrorAction(w http.ResponseWriter, message string, status int) {
	apimodel.ErrorMessage{ErrStatusCode: status, ErrMessage: message}.SendError(w)
}
