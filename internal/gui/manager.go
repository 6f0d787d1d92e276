package gui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/gui/components"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/logger"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/models"
)

type Manager struct {
	window     fyne.Window
	logger     logger.Logger
	isShutdown bool

	controls *components.RunControls
	points   *components.PointsPanel
	profiles *components.ProfilesPanel
	status   *components.StatusBar
}

func NewManager(window fyne.Window, log logger.Logger) (*Manager, error) {
	manager := &Manager{
		window:   window,
		logger:   log,
		controls: components.NewRunControls(),
		points:   components.NewPointsPanel(),
		profiles: components.NewProfilesPanel(),
		status:   components.NewStatusBar(),
	}

	log.Info("GUIManager", "initialized", nil)
	return manager, nil
}

func (m *Manager) GetMainContainer() *fyne.Container {
	left := container.NewVBox(
		widget.NewCard("Run", "", m.controls.GetContainer()),
		widget.NewCard("Profiles", "", m.profiles.GetContainer()),
	)

	pointsCard := widget.NewCard("Click Points", "", m.points.GetContainer())

	return container.NewBorder(
		nil,
		m.status.GetContainer(),
		left,
		nil,
		pointsCard,
	)
}

func (m *Manager) GetWindow() fyne.Window {
	return m.window
}

func (m *Manager) SetStartHandler(handler func()) {
	m.controls.SetStartHandler(func() {
		m.logger.Debug("GUIManager", "start requested", nil)
		handler()
	})
}

func (m *Manager) SetStopHandler(handler func()) {
	m.controls.SetStopHandler(handler)
}

func (m *Manager) SetStartDelayHandler(handler func(float64)) {
	m.controls.SetStartDelayHandler(handler)
}

func (m *Manager) SetLoopCountHandler(handler func(int)) {
	m.controls.SetLoopCountHandler(handler)
}

func (m *Manager) SetAddPointHandler(handler func()) {
	m.points.SetAddHandler(handler)
}

func (m *Manager) SetClearPointsHandler(handler func()) {
	m.points.SetClearHandler(handler)
}

func (m *Manager) SetEditPointHandler(handler func(index int)) {
	m.points.SetEditHandler(handler)
}

func (m *Manager) SetRemovePointHandler(handler func(index int)) {
	m.points.SetRemoveHandler(handler)
}

func (m *Manager) SetTogglePointHandler(handler func(index int, enabled bool)) {
	m.points.SetToggleHandler(handler)
}

func (m *Manager) SetProfileSaveHandler(handler func()) {
	m.profiles.SetSaveHandler(handler)
}

func (m *Manager) SetProfileSaveAsHandler(handler func()) {
	m.profiles.SetSaveAsHandler(handler)
}

func (m *Manager) SetProfileLoadHandler(handler func(name string)) {
	m.profiles.SetLoadHandler(func(name string) {
		m.logger.Debug("GUIManager", "profile load requested", map[string]interface{}{
			"profile": name,
		})
		handler(name)
	})
}

func (m *Manager) SetProfileDeleteHandler(handler func(name string)) {
	m.profiles.SetDeleteHandler(handler)
}

func (m *Manager) SetProfileRefreshHandler(handler func()) {
	m.profiles.SetRefreshHandler(handler)
}

func (m *Manager) ProfileName() string {
	return m.profiles.Name()
}

func (m *Manager) ProfileDescription() string {
	return m.profiles.Description()
}

func (m *Manager) SetVerifyPosition(enabled bool) {
	fyne.Do(func() {
		m.controls.SetVerifyPosition(enabled)
	})
}

func (m *Manager) VerifyPosition() bool {
	return m.controls.VerifyPosition()
}

func (m *Manager) DebugClicks() bool {
	return m.controls.DebugClicks()
}

func (m *Manager) UpdateStatus(status string) {
	fyne.Do(func() {
		m.status.SetStatus(status)
	})
}

func (m *Manager) UpdateStats(loops, clicks int) {
	fyne.Do(func() {
		m.status.SetStats(loops, clicks)
	})
}

func (m *Manager) SetRunning(running bool) {
	fyne.Do(func() {
		m.controls.SetRunning(running)
		m.status.SetRunning(running)
	})
}

func (m *Manager) RefreshPoints(points []models.ClickPoint) {
	fyne.Do(func() {
		m.points.Update(points)
	})
}

func (m *Manager) SetRapidAdd(active bool) {
	fyne.Do(func() {
		m.points.SetRapidAdd(active)
		if active {
			m.status.SetHint("RAPID ADD active · 0-9 or F6 captures · F9/Esc to finish")
		} else {
			m.status.SetHint("F6 capture · F7 start · F8 stop")
		}
	})
}

func (m *Manager) RefreshProfiles(names []string) {
	fyne.Do(func() {
		m.profiles.UpdateList(names)
	})
}

func (m *Manager) SetProfileMeta(name, description string) {
	fyne.Do(func() {
		m.profiles.SetProfileMeta(name, description)
	})
}

func (m *Manager) SetCanSave(can bool) {
	fyne.Do(func() {
		m.profiles.SetCanSave(can)
	})
}

func (m *Manager) SetSequenceSettings(startDelay float64, loopCount int) {
	fyne.Do(func() {
		m.controls.SetSequenceSettings(startDelay, loopCount)
	})
}

func (m *Manager) ShowError(title string, err error) {
	m.logger.Error("GUIManager", err, map[string]interface{}{
		"title": title,
	})

	fyne.Do(func() {
		dialog.ShowError(err, m.window)
	})
}

func (m *Manager) ShowConfirm(title, message string, onConfirm func()) {
	fyne.Do(func() {
		dialog.ShowConfirm(title, message, func(confirmed bool) {
			if confirmed {
				onConfirm()
			}
		}, m.window)
	})
}

// ShowPointEditor opens a form dialog for one point and hands the edited
// copy back through onSave after validation.
func (m *Manager) ShowPointEditor(index int, p models.ClickPoint, onSave func(index int, edited models.ClickPoint)) {
	xEntry := widget.NewEntry()
	xEntry.SetText(strconv.Itoa(p.X))
	yEntry := widget.NewEntry()
	yEntry.SetText(strconv.Itoa(p.Y))
	delayEntry := widget.NewEntry()
	delayEntry.SetText(strconv.FormatFloat(p.Delay, 'f', 1, 64))

	randomizeCheck := widget.NewCheck("", nil)
	randomizeCheck.SetChecked(p.Randomize)
	rangeEntry := widget.NewEntry()
	rangeEntry.SetText(strconv.Itoa(p.RandomRange))

	items := []*widget.FormItem{
		widget.NewFormItem("X", xEntry),
		widget.NewFormItem("Y", yEntry),
		widget.NewFormItem("Delay (s)", delayEntry),
		widget.NewFormItem("Randomize", randomizeCheck),
		widget.NewFormItem("Range (px)", rangeEntry),
	}

	dialog.ShowForm("Edit Point", "Save", "Cancel", items, func(confirmed bool) {
		if !confirmed {
			return
		}

		edited, err := parsePointForm(xEntry.Text, yEntry.Text, delayEntry.Text,
			randomizeCheck.Checked, rangeEntry.Text, p.Enabled)
		if err != nil {
			m.ShowError("Invalid Point", err)
			return
		}

		onSave(index, edited)
	}, m.window)
}

func parsePointForm(xText, yText, delayText string, randomize bool, rangeText string, enabled bool) (models.ClickPoint, error) {
	x, err := strconv.Atoi(xText)
	if err != nil {
		return models.ClickPoint{}, models.NewValidationError("x", xText, "not a whole number")
	}
	y, err := strconv.Atoi(yText)
	if err != nil {
		return models.ClickPoint{}, models.NewValidationError("y", yText, "not a whole number")
	}
	delay, err := strconv.ParseFloat(delayText, 64)
	if err != nil {
		return models.ClickPoint{}, models.NewValidationError("delay", delayText, "not a number")
	}
	randomRange, err := strconv.Atoi(rangeText)
	if err != nil {
		return models.ClickPoint{}, models.NewValidationError("random_range", rangeText, "not a whole number")
	}

	p := models.ClickPoint{
		X:           x,
		Y:           y,
		Delay:       delay,
		Randomize:   randomize,
		RandomRange: randomRange,
		Enabled:     enabled,
	}
	if err := p.Validate(); err != nil {
		return models.ClickPoint{}, err
	}
	return p, nil
}

func (m *Manager) Shutdown() {
	if m.isShutdown {
		return
	}

	m.isShutdown = true
	m.logger.Info("GUIManager", "shutdown initiated", nil)
}
