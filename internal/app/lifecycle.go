package app

import (
	"fyne.io/fyne/v2"
)

// registerShutdown orders the teardown. Components stop in reverse
// registration order: hotkeys first so no new actions arrive, then the
// runner, the GUI, the bus, and the Fyne event loop last.
func (a *Application) registerShutdown() {
	a.shutdown.RegisterFunc("fyne-app", func() {
		fyne.Do(a.fyneApp.Quit)
	})
	a.shutdown.Register("event-bus", a.bus)
	a.shutdown.Register("gui", a.guiManager)
	a.shutdown.Register("runner", a.runner)
	a.shutdown.Register("hotkeys", a.listener)
}

// Run starts the hotkey listener and the Fyne event loop. It blocks until
// the window is closed or a shutdown signal arrives.
func (a *Application) Run() error {
	a.listener.Start()
	a.shutdown.Listen()

	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "window close requested", nil)
		// Shutdown blocks on component timeouts, keep it off the UI thread.
		go a.shutdown.Shutdown()
	})

	a.handlers.Bootstrap()

	a.window.SetContent(a.guiManager.GetMainContainer())
	a.window.Show()

	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	return nil
}
