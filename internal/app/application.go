// Package app wires the autoclicker together: GUI, sequencer, hotkeys,
// profile store and event bus, plus the shutdown order between them.
package app

import (
	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/clientwatch"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/config"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/events"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/gui"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/hotkeys"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/logger"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/mouse"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/profiles"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/sequencer"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/shutdown"
)

const (
	AppName    = "OSRS AutoClicker"
	AppID      = "com.louisiaegerv.osrs-autoclicker"
	AppVersion = "1.0.0"

	WindowWidth  = 860
	WindowHeight = 560

	eventBufferSize = 64
)

type Application struct {
	fyneApp  fyne.App
	window   fyne.Window
	settings config.Settings
	logger   logger.Logger

	bus        *events.Bus
	guiManager *gui.Manager
	runner     *sequencer.Runner
	listener   *hotkeys.Listener
	handlers   *Handlers
	shutdown   *shutdown.Manager
}

func New(settings config.Settings, log logger.Logger) (*Application, error) {
	fyneApp := fyneapp.NewWithID(AppID)

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	window.CenterOnScreen()
	window.SetMaster()

	bus := events.NewBus(eventBufferSize)
	store := profiles.NewStore(settings.ProfilesDir)
	controller := mouse.NewRobotgo()
	watcher := clientwatch.New(settings.ClientProcessNames)

	guiManager, err := gui.NewManager(window, log)
	if err != nil {
		return nil, err
	}

	engine := sequencer.NewEngine(controller, log, sequencer.Callbacks{
		OnStatus: guiManager.UpdateStatus,
		OnClick: func(index, x, y, clicks int) {
			bus.Publish(events.TypeClick, map[string]interface{}{
				"point":  index + 1,
				"x":      x,
				"y":      y,
				"clicks": clicks,
			})
		},
		OnLoopComplete: func(loop int) {
			bus.Publish(events.TypeLoopComplete, map[string]interface{}{
				"loop": loop,
			})
		},
	})
	runner := sequencer.NewRunner(engine, log)

	handlers := NewHandlers(guiManager, runner, store, controller, watcher, bus, settings, log)
	runner.SetFinishedHandler(handlers.onRunFinished)

	dispatcher := hotkeys.NewDispatcher(hotkeys.Callbacks{
		OnStart:         handlers.HotkeyStart,
		OnStop:          handlers.HotkeyStop,
		OnEnterRapidAdd: handlers.EnterRapidAdd,
		OnCapture:       handlers.CapturePoint,
		OnExitRapidAdd:  handlers.ExitRapidAdd,
	})
	listener := hotkeys.NewListener(dispatcher, log)

	bus.SubscribeAll(events.NewHandler("event-log", func(ev events.Event) {
		log.Debug("Events", ev.Type, ev.Data)
	}))

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		settings:   settings,
		logger:     log,
		bus:        bus,
		guiManager: guiManager,
		runner:     runner,
		listener:   listener,
		handlers:   handlers,
		shutdown:   shutdown.NewManager(log),
	}

	application.wireGUI()
	application.registerShutdown()

	log.Info("Application", "initialization complete", map[string]interface{}{
		"version":      AppVersion,
		"profiles_dir": settings.ProfilesDir,
	})
	return application, nil
}

func (a *Application) wireGUI() {
	m := a.guiManager
	h := a.handlers

	m.SetStartHandler(h.HandleStart)
	m.SetStopHandler(h.HandleStop)
	m.SetStartDelayHandler(h.HandleStartDelayChange)
	m.SetLoopCountHandler(h.HandleLoopCountChange)

	m.SetAddPointHandler(h.HandleAddPoint)
	m.SetClearPointsHandler(h.HandleClearPoints)
	m.SetEditPointHandler(h.HandleEditPoint)
	m.SetRemovePointHandler(h.HandleRemovePoint)
	m.SetTogglePointHandler(h.HandleTogglePoint)

	m.SetProfileSaveHandler(h.HandleProfileSave)
	m.SetProfileSaveAsHandler(h.HandleProfileSaveAs)
	m.SetProfileLoadHandler(h.HandleProfileLoad)
	m.SetProfileDeleteHandler(h.HandleProfileDelete)
	m.SetProfileRefreshHandler(h.HandleProfileRefresh)
}
