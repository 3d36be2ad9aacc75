package srv

import (
	"github.com/jypelle/vekimoji/apimodel"
	"github.com/jypelle/vekimoji/internal/emotion"
	"github.com/jypelle/vekimoji/internal/srv/config"
	"github.com/jypelle/vekimoji/internal/srv/device"
	"github.com/jypelle/vekimoji/internal/version"
	"github.com/sirupsen/logrus"
)

type ServerApp struct {
	*config.ServerConfig
	resolver *emotion.Resolver

	displayDevice *device.Display
	emojiDisplay  *device.EmojiDisplay
	buttonsDevice *device.Buttons
	apiDevice     *device.Api

	eventLoopAskDone chan bool
	eventLoopDone    chan bool
}

func NewServerApp(configDir string, debugMode bool, simulationMode bool) *ServerApp {

	logrus.Debugf("Creation of vekimoji server %s ...", version.AppVersion.String())

	app := &ServerApp{
		eventLoopAskDone: make(chan bool),
		eventLoopDone:    make(chan bool),
		ServerConfig:     config.NewServerConfig(configDir, debugMode, simulationMode),
	}

	app.resolver = emotion.NewResolver(app.EmotionAliases)

	var panel device.Panel
	if !app.SimulationMode {
		oledPanel, err := device.OpenOledPanel(app.Display)
		if err != nil {
			logrus.Fatalf("Unable to open display: %v\n", err)
		}
		panel = oledPanel
	}
	app.displayDevice = device.NewDisplay(panel, app.Display, app.SimulationMode)
	app.emojiDisplay = device.NewEmojiDisplay(app.displayDevice, app.resolver, app.Display.GetEmojiSizeDivisor())
	app.buttonsDevice = device.NewButtons(app.Buttons, app.SimulationMode)
	if app.Api.Enabled {
		app.apiDevice = device.NewApi(app.ServerConfig, app)
	}

	logrus.Debugln("Server created")

	return app
}

func (s *ServerApp) Start() {
	logrus.Printf("Starting vekimoji server ...")

	// Restore last emotion before the first frame
	s.emojiDisplay.SetEmotion(s.Emotion())

	logrus.Printf("Starting devices ...")

	// Start display device
	s.displayDevice.Start()
	if !s.DisplayOn() {
		s.displayDevice.SetOff()
	}

	// Start event loop
	go s.eventLoop()

	// Start buttons device
	s.buttonsDevice.Start()

	// Start api device
	if s.apiDevice != nil {
		s.apiDevice.Start()
	}
}

func (s *ServerApp) Stop() {
	logrus.Printf("Stopping vekimoji server ...")

	// Stop api
	if s.apiDevice != nil {
		s.apiDevice.StopSendingEvent()
	}

	// Stop buttons device
	s.buttonsDevice.StopSendingEvent()

	// Stop event loop
	logrus.Infof("Stop event loop")
	s.eventLoopAskDone <- true
	<-s.eventLoopDone

	// Stop display device
	s.displayDevice.Stop()

	// Flush config backup
	s.FlushSave()

	logrus.Printf("Server stopped")
}

func (s *ServerApp) CurrentEmotion() apimodel.EmotionState {
	emotion := s.Emotion()
	return apimodel.EmotionState{Emotion: emotion, Asset: s.resolver.Resolve(emotion).Name}
}

func (s *ServerApp) EmotionMappings() []apimodel.EmotionMapping {
	maps := s.resolver.Maps()
	mappings := make([]apimodel.EmotionMapping, 0, len(maps))
	for _, m := range maps {
		mappings = append(mappings, apimodel.EmotionMapping{Emotion: m.Name, Asset: m.Gif.Name})
	}
	return mappings
}

func (s *ServerApp) IsDisplayOn() bool {
	return s.displayDevice.IsOn()
}
