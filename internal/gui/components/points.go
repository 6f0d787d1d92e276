package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/models"
)

type PointsPanel struct {
	container *fyne.Container
	rows      *fyne.Container
	scroll    *container.Scroll

	countLabel  *widget.Label
	rapidLabel  *widget.Label
	addButton   *widget.Button
	clearButton *widget.Button

	addHandler    func()
	clearHandler  func()
	editHandler   func(index int)
	removeHandler func(index int)
	toggleHandler func(index int, enabled bool)
}

func NewPointsPanel() *PointsPanel {
	pp := &PointsPanel{}
	pp.setupPanel()
	return pp
}

func (pp *PointsPanel) setupPanel() {
	pp.countLabel = widget.NewLabel("No points yet")

	pp.rapidLabel = widget.NewLabelWithStyle(
		"RAPID ADD: 0-9 captures with that delay (0 = 10s), F6 = 3s, F9/Esc to finish",
		fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	pp.rapidLabel.Hide()

	pp.addButton = widget.NewButton("Add Point (3s)", pp.onAdd)
	pp.clearButton = widget.NewButton("Clear All", pp.onClear)

	pp.rows = container.NewVBox()
	pp.scroll = container.NewVScroll(pp.rows)
	pp.scroll.SetMinSize(fyne.NewSize(380, 260))

	header := container.NewBorder(nil, nil,
		pp.countLabel,
		container.NewHBox(pp.addButton, pp.clearButton),
	)

	pp.container = container.NewBorder(
		container.NewVBox(header, pp.rapidLabel),
		nil, nil, nil,
		pp.scroll,
	)
}

func (pp *PointsPanel) GetContainer() *fyne.Container {
	return pp.container
}

func (pp *PointsPanel) SetAddHandler(handler func()) {
	pp.addHandler = handler
}

func (pp *PointsPanel) SetClearHandler(handler func()) {
	pp.clearHandler = handler
}

func (pp *PointsPanel) SetEditHandler(handler func(index int)) {
	pp.editHandler = handler
}

func (pp *PointsPanel) SetRemoveHandler(handler func(index int)) {
	pp.removeHandler = handler
}

func (pp *PointsPanel) SetToggleHandler(handler func(index int, enabled bool)) {
	pp.toggleHandler = handler
}

func (pp *PointsPanel) Update(points []models.ClickPoint) {
	pp.rows.RemoveAll()

	enabled := 0
	for index, p := range points {
		if p.Enabled {
			enabled++
		}
		pp.rows.Add(pp.buildRow(index, p))
	}

	if len(points) == 0 {
		pp.countLabel.SetText("No points yet")
	} else {
		pp.countLabel.SetText(fmt.Sprintf("%d points (%d enabled)", len(points), enabled))
	}

	pp.rows.Refresh()
}

func (pp *PointsPanel) SetRapidAdd(active bool) {
	if active {
		pp.rapidLabel.Show()
	} else {
		pp.rapidLabel.Hide()
	}
}

func (pp *PointsPanel) buildRow(index int, p models.ClickPoint) fyne.CanvasObject {
	check := widget.NewCheck("", nil)
	check.SetChecked(p.Enabled)
	check.OnChanged = func(on bool) {
		if pp.toggleHandler != nil {
			pp.toggleHandler(index, on)
		}
	}

	label := widget.NewLabel(formatPoint(index, p))

	editButton := widget.NewButton("Edit", func() {
		if pp.editHandler != nil {
			pp.editHandler(index)
		}
	})
	removeButton := widget.NewButton("Remove", func() {
		if pp.removeHandler != nil {
			pp.removeHandler(index)
		}
	})

	return container.NewBorder(nil, nil,
		check,
		container.NewHBox(editButton, removeButton),
		label,
	)
}

func (pp *PointsPanel) onAdd() {
	if pp.addHandler != nil {
		pp.addHandler()
	}
}

func (pp *PointsPanel) onClear() {
	if pp.clearHandler != nil {
		pp.clearHandler()
	}
}

func formatPoint(index int, p models.ClickPoint) string {
	text := fmt.Sprintf("#%d  (%d, %d)  %.1fs", index+1, p.X, p.Y, p.Delay)
	if p.Randomize && p.RandomRange > 0 {
		text += fmt.Sprintf("  ±%dpx", p.RandomRange)
	}
	return text
}
