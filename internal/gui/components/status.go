package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	statsLabel  *widget.Label
	hintLabel   *widget.Label
	progress    *widget.ProgressBarInfinite
}

func NewStatusBar() *StatusBar {
	statusLabel := widget.NewLabel("Ready")
	statsLabel := widget.NewLabel("Loops: 0 | Clicks: 0")
	hintLabel := widget.NewLabel("F6 capture · F7 start · F8 stop")

	progress := widget.NewProgressBarInfinite()
	progress.Stop()
	progress.Hide()

	mainContainer := container.NewVBox(
		progress,
		container.NewBorder(
			nil, nil,
			statusLabel,
			statsLabel,
		),
		hintLabel,
	)

	return &StatusBar{
		container:   mainContainer,
		statusLabel: statusLabel,
		statsLabel:  statsLabel,
		hintLabel:   hintLabel,
		progress:    progress,
	}
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

func (sb *StatusBar) SetStats(loops, clicks int) {
	sb.statsLabel.SetText(fmt.Sprintf("Loops: %d | Clicks: %d", loops, clicks))
}

func (sb *StatusBar) SetRunning(running bool) {
	if running {
		sb.progress.Show()
		sb.progress.Start()
	} else {
		sb.progress.Stop()
		sb.progress.Hide()
	}
}

func (sb *StatusBar) SetHint(hint string) {
	sb.hintLabel.SetText(hint)
}
