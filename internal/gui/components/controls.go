package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/models"
)

type RunControls struct {
	container *fyne.Container

	startButton      *widget.Button
	stopButton       *widget.Button
	startDelaySlider *widget.Slider
	startDelayLabel  *widget.Label
	loopSlider       *widget.Slider
	loopLabel        *widget.Label
	verifyCheck      *widget.Check
	debugCheck       *widget.Check

	startHandler      func()
	stopHandler       func()
	startDelayHandler func(float64)
	loopCountHandler  func(int)
}

func NewRunControls() *RunControls {
	rc := &RunControls{}
	rc.setupControls()
	return rc
}

func (rc *RunControls) setupControls() {
	ranges := models.SettingRanges()

	rc.startButton = widget.NewButton("Start (F7)", rc.onStart)
	rc.startButton.Importance = widget.HighImportance
	rc.stopButton = widget.NewButton("Stop (F8)", rc.onStop)
	rc.stopButton.Disable()

	delayRange := ranges[models.RangeStartDelay]
	rc.startDelayLabel = widget.NewLabel(formatStartDelay(models.DefaultStartDelay))
	rc.startDelaySlider = widget.NewSlider(delayRange.Min, delayRange.Max)
	rc.startDelaySlider.Step = delayRange.Step
	rc.startDelaySlider.SetValue(models.DefaultStartDelay)
	rc.startDelaySlider.OnChanged = func(value float64) {
		rc.startDelayLabel.SetText(formatStartDelay(value))
		if rc.startDelayHandler != nil {
			rc.startDelayHandler(value)
		}
	}

	loopRange := ranges[models.RangeLoopCount]
	rc.loopLabel = widget.NewLabel(formatLoopCount(0))
	rc.loopSlider = widget.NewSlider(loopRange.Min, loopRange.Max)
	rc.loopSlider.Step = loopRange.Step
	rc.loopSlider.OnChanged = func(value float64) {
		count := int(value)
		rc.loopLabel.SetText(formatLoopCount(count))
		if rc.loopCountHandler != nil {
			rc.loopCountHandler(count)
		}
	}

	rc.verifyCheck = widget.NewCheck("Verify cursor position", nil)
	rc.verifyCheck.SetChecked(true)
	rc.debugCheck = widget.NewCheck("Log every click", nil)

	buttons := container.NewGridWithColumns(2, rc.startButton, rc.stopButton)

	rc.container = container.NewVBox(
		buttons,
		widget.NewSeparator(),
		rc.startDelayLabel,
		rc.startDelaySlider,
		rc.loopLabel,
		rc.loopSlider,
		rc.verifyCheck,
		rc.debugCheck,
	)
}

func (rc *RunControls) GetContainer() *fyne.Container {
	return rc.container
}

func (rc *RunControls) SetStartHandler(handler func()) {
	rc.startHandler = handler
}

func (rc *RunControls) SetStopHandler(handler func()) {
	rc.stopHandler = handler
}

func (rc *RunControls) SetStartDelayHandler(handler func(float64)) {
	rc.startDelayHandler = handler
}

func (rc *RunControls) SetLoopCountHandler(handler func(int)) {
	rc.loopCountHandler = handler
}

func (rc *RunControls) SetRunning(running bool) {
	if running {
		rc.startButton.Disable()
		rc.stopButton.Enable()
	} else {
		rc.startButton.Enable()
		rc.stopButton.Disable()
	}
}

func (rc *RunControls) SetSequenceSettings(startDelay float64, loopCount int) {
	rc.startDelaySlider.SetValue(startDelay)
	rc.loopSlider.SetValue(float64(loopCount))
}

func (rc *RunControls) SetVerifyPosition(enabled bool) {
	rc.verifyCheck.SetChecked(enabled)
}

func (rc *RunControls) VerifyPosition() bool {
	return rc.verifyCheck.Checked
}

func (rc *RunControls) DebugClicks() bool {
	return rc.debugCheck.Checked
}

func (rc *RunControls) onStart() {
	if rc.startHandler != nil {
		rc.startHandler()
	}
}

func (rc *RunControls) onStop() {
	if rc.stopHandler != nil {
		rc.stopHandler()
	}
}

func formatStartDelay(value float64) string {
	return fmt.Sprintf("Start delay: %.1fs", value)
}

func formatLoopCount(count int) string {
	if count == 0 {
		return "Loops: ∞"
	}
	return fmt.Sprintf("Loops: %d", count)
}
