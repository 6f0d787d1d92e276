package app

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"

	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/clientwatch"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/config"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/events"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/gui"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/logger"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/models"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/mouse"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/profiles"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/sequencer"
)

const (
	// addPointCountdown gives the user time to place the cursor after
	// pressing the Add Point button.
	addPointCountdown = 3
	// statsRefreshInterval drives the Loops/Clicks label while running.
	statsRefreshInterval = 100 * time.Millisecond
)

// Handlers bridges GUI and hotkey intent to the domain components. It owns
// the working sequence; the runner gets a clone of it per run.
type Handlers struct {
	gui      *gui.Manager
	runner   *sequencer.Runner
	store    *profiles.Store
	mouse    mouse.Controller
	watcher  *clientwatch.Watcher
	bus      *events.Bus
	settings config.Settings
	logger   logger.Logger

	mu           sync.Mutex
	seq          *models.Sequence
	loadedPath   string
	profilePaths map[string]string
	tickerStop   chan struct{}
}

func NewHandlers(
	guiManager *gui.Manager,
	runner *sequencer.Runner,
	store *profiles.Store,
	controller mouse.Controller,
	watcher *clientwatch.Watcher,
	bus *events.Bus,
	settings config.Settings,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		gui:          guiManager,
		runner:       runner,
		store:        store,
		mouse:        controller,
		watcher:      watcher,
		bus:          bus,
		settings:     settings,
		logger:       log,
		seq:          models.NewSequence(),
		profilePaths: make(map[string]string),
	}
}

// Bootstrap applies the configured defaults and fills the initial GUI state.
// Called once before the event loop starts.
func (h *Handlers) Bootstrap() {
	if err := h.store.Ensure(); err != nil {
		h.logger.Error("Handlers", err, nil)
	}

	h.gui.SetVerifyPosition(h.settings.VerifyPosition)
	h.gui.RefreshPoints(h.snapshotPoints())
	h.gui.UpdateStatus("Ready - Press F6 to add click points")
	h.refreshProfiles()
}

// --- run control ---

// HandleStart reads the run toggles on the UI thread and hands the rest to
// a goroutine.
func (h *Handlers) HandleStart() {
	verify := h.gui.VerifyPosition()
	debug := h.gui.DebugClicks()
	go h.startRun(verify, debug)
}

func (h *Handlers) HandleStop() {
	h.runner.Stop()
}

// HotkeyStart bounces F7 onto the UI thread so widget state is read there;
// the hook goroutine returns immediately.
func (h *Handlers) HotkeyStart() {
	fyne.Do(h.HandleStart)
}

func (h *Handlers) HotkeyStop() {
	go h.HandleStop()
}

func (h *Handlers) startRun(verifyPosition, debugClicks bool) {
	h.mu.Lock()
	run := h.seq.Clone()
	h.mu.Unlock()

	enabled := len(run.EnabledPoints())
	if enabled == 0 {
		h.gui.UpdateStatus("No enabled click points!")
		h.logger.Warning("Handlers", "start rejected, no enabled click points", nil)
		return
	}

	if process, ok := h.watcher.ClientRunning(); ok {
		h.logger.Debug("Handlers", "game client detected", map[string]interface{}{
			"process": process,
		})
	} else {
		h.gui.UpdateStatus("Game client not detected - starting anyway")
		h.logger.Warning("Handlers", "no game client process found", map[string]interface{}{
			"watched": h.settings.ClientProcessNames,
		})
	}

	runID, err := h.runner.Start(run, sequencer.Options{
		VerifyPosition: verifyPosition,
		DebugClicks:    debugClicks,
	})
	if err != nil {
		if errors.Is(err, sequencer.ErrAlreadyRunning) {
			h.gui.UpdateStatus("Already running")
			return
		}
		h.gui.ShowError("Start Failed", err)
		return
	}

	h.gui.SetRunning(true)
	h.startStatsTicker()
	h.bus.Publish(events.TypeRunStarted, map[string]interface{}{
		"run_id":      runID,
		"points":      enabled,
		"loop_count":  run.LoopCount,
		"start_delay": run.StartDelay,
	})
}

// onRunFinished is fired from the run goroutine after every run.
func (h *Handlers) onRunFinished(stats sequencer.Stats, err error) {
	h.stopStatsTicker()
	h.gui.SetRunning(false)
	h.gui.UpdateStats(stats.Loops, stats.Clicks)

	h.bus.Publish(events.TypeRunStopped, map[string]interface{}{
		"run_id": stats.RunID,
		"loops":  stats.Loops,
		"clicks": stats.Clicks,
	})
	_ = err // the engine reported it via status; the runner logged it
}

func (h *Handlers) startStatsTicker() {
	h.mu.Lock()
	if h.tickerStop != nil {
		h.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	h.tickerStop = stop
	h.mu.Unlock()

	go func() {
		ticker := time.NewTicker(statsRefreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				stats := h.runner.Stats()
				h.gui.UpdateStats(stats.Loops, stats.Clicks)
			}
		}
	}()
}

func (h *Handlers) stopStatsTicker() {
	h.mu.Lock()
	stop := h.tickerStop
	h.tickerStop = nil
	h.mu.Unlock()

	if stop != nil {
		close(stop)
	}
}

// --- point management ---

// HandleAddPoint counts down so the user can move the cursor onto the
// target, then captures it with the default delay.
func (h *Handlers) HandleAddPoint() {
	go func() {
		for i := addPointCountdown; i > 0; i-- {
			h.gui.UpdateStatus(fmt.Sprintf("Adding point in %d... position the cursor", i))
			time.Sleep(time.Second)
		}
		h.capturePoint(models.DefaultRapidAddDelay)
	}()
}

// CapturePoint handles a rapid-add capture from the hotkey listener.
func (h *Handlers) CapturePoint(delaySeconds float64) {
	go h.capturePoint(delaySeconds)
}

func (h *Handlers) capturePoint(delaySeconds float64) {
	x, y := h.mouse.Position()
	width, height := h.mouse.ScreenSize()
	x, y = mouse.Clamp(x, y, width, height)

	point := models.NewClickPoint(x, y)
	point.Delay = delaySeconds

	h.mu.Lock()
	h.seq.Points = append(h.seq.Points, point)
	total := len(h.seq.Points)
	h.mu.Unlock()

	h.gui.RefreshPoints(h.snapshotPoints())
	h.gui.UpdateStatus(fmt.Sprintf("Added point at (%d, %d) with %gs delay", x, y, delaySeconds))

	h.bus.Publish(events.TypePointCaptured, map[string]interface{}{
		"x":     x,
		"y":     y,
		"delay": delaySeconds,
		"total": total,
	})
}

func (h *Handlers) EnterRapidAdd() {
	h.gui.SetRapidAdd(true)
	h.gui.UpdateStatus("RAPID ADD MODE: move the cursor, press 0-9 for delay (0 = 10s), F6 = 3s, F9/Esc to exit")
	h.logger.Debug("Handlers", "rapid add mode entered", nil)
}

func (h *Handlers) ExitRapidAdd() {
	h.gui.SetRapidAdd(false)
	h.gui.UpdateStatus("Rapid add mode exited - Press F6 to add more, F7 to start")
	h.logger.Debug("Handlers", "rapid add mode exited", nil)
}

func (h *Handlers) HandleEditPoint(index int) {
	h.mu.Lock()
	if index < 0 || index >= len(h.seq.Points) {
		h.mu.Unlock()
		return
	}
	point := h.seq.Points[index]
	h.mu.Unlock()

	h.gui.ShowPointEditor(index, point, func(i int, edited models.ClickPoint) {
		h.mu.Lock()
		if i >= 0 && i < len(h.seq.Points) {
			h.seq.Points[i] = edited
		}
		h.mu.Unlock()
		h.gui.RefreshPoints(h.snapshotPoints())
	})
}

func (h *Handlers) HandleRemovePoint(index int) {
	h.mu.Lock()
	if index >= 0 && index < len(h.seq.Points) {
		h.seq.Points = append(h.seq.Points[:index], h.seq.Points[index+1:]...)
	}
	h.mu.Unlock()

	h.gui.RefreshPoints(h.snapshotPoints())
}

func (h *Handlers) HandleTogglePoint(index int, enabled bool) {
	h.mu.Lock()
	if index >= 0 && index < len(h.seq.Points) {
		h.seq.Points[index].Enabled = enabled
	}
	h.mu.Unlock()

	h.gui.RefreshPoints(h.snapshotPoints())
}

func (h *Handlers) HandleClearPoints() {
	h.mu.Lock()
	count := len(h.seq.Points)
	h.mu.Unlock()
	if count == 0 {
		return
	}

	h.gui.ShowConfirm("Clear All", fmt.Sprintf("Remove all %d click points?", count), func() {
		h.mu.Lock()
		h.seq.Points = nil
		h.mu.Unlock()

		h.gui.RefreshPoints(nil)
		h.gui.UpdateStatus("All points cleared")
	})
}

func (h *Handlers) HandleStartDelayChange(value float64) {
	h.mu.Lock()
	h.seq.StartDelay = value
	h.mu.Unlock()
}

func (h *Handlers) HandleLoopCountChange(count int) {
	h.mu.Lock()
	h.seq.LoopCount = count
	h.mu.Unlock()
}

func (h *Handlers) snapshotPoints() []models.ClickPoint {
	h.mu.Lock()
	defer h.mu.Unlock()

	points := make([]models.ClickPoint, len(h.seq.Points))
	copy(points, h.seq.Points)
	return points
}

// --- profiles ---

// HandleProfileSave overwrites the loaded profile file; with nothing loaded
// it behaves like Save As.
func (h *Handlers) HandleProfileSave() {
	h.mu.Lock()
	path := h.loadedPath
	h.mu.Unlock()

	if path == "" {
		h.HandleProfileSaveAs()
		return
	}

	name := strings.TrimSpace(h.gui.ProfileName())
	description := strings.TrimSpace(h.gui.ProfileDescription())
	go h.saveProfileTo(path, name, description)
}

func (h *Handlers) HandleProfileSaveAs() {
	name := strings.TrimSpace(h.gui.ProfileName())
	description := strings.TrimSpace(h.gui.ProfileDescription())
	if name == "" {
		h.gui.ShowError("Save Failed", errors.New("profile name must not be empty"))
		return
	}

	go h.saveProfileAs(name, description)
}

func (h *Handlers) saveProfileAs(name, description string) {
	seq, ok := h.sequenceForSave(name, description)
	if !ok {
		return
	}

	path, err := h.store.Save(seq)
	if err != nil {
		h.gui.ShowError("Save Failed", err)
		return
	}

	h.mu.Lock()
	h.loadedPath = path
	h.seq.Name = seq.Name
	h.seq.Description = seq.Description
	h.mu.Unlock()

	h.finishSave(seq.Name, path)
}

func (h *Handlers) saveProfileTo(path, name, description string) {
	seq, ok := h.sequenceForSave(name, description)
	if !ok {
		return
	}

	if err := h.store.SaveTo(path, seq); err != nil {
		h.gui.ShowError("Save Failed", err)
		return
	}

	h.mu.Lock()
	h.seq.Name = seq.Name
	h.seq.Description = seq.Description
	h.mu.Unlock()

	h.finishSave(seq.Name, path)
}

// sequenceForSave clones the working sequence with the given metadata and
// validates it. A name left empty keeps the current one.
func (h *Handlers) sequenceForSave(name, description string) (*models.Sequence, bool) {
	h.mu.Lock()
	seq := h.seq.Clone()
	h.mu.Unlock()

	if name != "" {
		seq.Name = name
	}
	seq.Description = description

	if len(seq.Points) == 0 {
		h.gui.UpdateStatus("No click points to save")
		return nil, false
	}
	if err := seq.Validate(); err != nil {
		h.gui.ShowError("Save Failed", err)
		return nil, false
	}
	return seq, true
}

func (h *Handlers) finishSave(name, path string) {
	h.gui.SetCanSave(true)
	h.gui.UpdateStatus(fmt.Sprintf("Saved profile %q", name))

	h.bus.Publish(events.TypeProfileSaved, map[string]interface{}{
		"name": name,
		"path": path,
	})
	h.logger.Info("Handlers", "profile saved", map[string]interface{}{
		"name": name,
		"path": path,
	})

	h.refreshProfiles()
}

func (h *Handlers) HandleProfileLoad(name string) {
	go h.loadProfile(name)
}

func (h *Handlers) loadProfile(name string) {
	h.mu.Lock()
	path, ok := h.profilePaths[name]
	h.mu.Unlock()
	if !ok {
		h.gui.ShowError("Load Failed", fmt.Errorf("profile %q not found", name))
		return
	}

	seq, err := h.store.Load(path)
	if err != nil {
		h.gui.ShowError("Load Failed", err)
		return
	}

	displayName := seq.Name
	if displayName == "" {
		displayName = name
	}

	h.mu.Lock()
	h.seq = seq
	h.loadedPath = path
	h.mu.Unlock()

	h.gui.RefreshPoints(h.snapshotPoints())
	h.gui.SetProfileMeta(seq.Name, seq.Description)
	h.gui.SetSequenceSettings(seq.StartDelay, seq.LoopCount)
	h.gui.SetCanSave(true)
	h.gui.UpdateStatus(fmt.Sprintf("Loaded: %s - Press F6 to add click points", displayName))

	h.bus.Publish(events.TypeProfileLoaded, map[string]interface{}{
		"name": displayName,
		"path": path,
	})
	h.logger.Info("Handlers", "profile loaded", map[string]interface{}{
		"name":   displayName,
		"points": len(seq.Points),
	})
}

func (h *Handlers) HandleProfileDelete(name string) {
	h.gui.ShowConfirm("Delete Profile", fmt.Sprintf("Delete profile %q?", name), func() {
		go h.deleteProfile(name)
	})
}

func (h *Handlers) deleteProfile(name string) {
	h.mu.Lock()
	path, ok := h.profilePaths[name]
	h.mu.Unlock()
	if !ok {
		return
	}

	if err := h.store.Delete(path); err != nil {
		h.gui.ShowError("Delete Failed", err)
		return
	}

	h.mu.Lock()
	if h.loadedPath == path {
		h.loadedPath = ""
	}
	stillLoaded := h.loadedPath != ""
	h.mu.Unlock()

	if !stillLoaded {
		h.gui.SetCanSave(false)
	}
	h.gui.UpdateStatus(fmt.Sprintf("Deleted profile %q", name))
	h.logger.Info("Handlers", "profile deleted", map[string]interface{}{
		"name": name,
		"path": path,
	})

	h.refreshProfiles()
}

func (h *Handlers) HandleProfileRefresh() {
	go h.refreshProfiles()
}

func (h *Handlers) refreshProfiles() {
	entries, err := h.store.List()
	if err != nil {
		h.logger.Error("Handlers", err, nil)
		return
	}

	names := make([]string, 0, len(entries))
	paths := make(map[string]string, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name)
		paths[entry.Name] = entry.Path
	}

	h.mu.Lock()
	h.profilePaths = paths
	h.mu.Unlock()

	h.gui.RefreshProfiles(names)
}
