package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type ProfilesPanel struct {
	container *fyne.Container

	nameEntry     *widget.Entry
	descEntry     *widget.Entry
	profileSelect *widget.Select

	saveButton    *widget.Button
	saveAsButton  *widget.Button
	loadButton    *widget.Button
	deleteButton  *widget.Button
	refreshButton *widget.Button

	saveHandler    func()
	saveAsHandler  func()
	loadHandler    func(name string)
	deleteHandler  func(name string)
	refreshHandler func()
}

func NewProfilesPanel() *ProfilesPanel {
	pp := &ProfilesPanel{}
	pp.setupPanel()
	return pp
}

func (pp *ProfilesPanel) setupPanel() {
	pp.nameEntry = widget.NewEntry()
	pp.nameEntry.SetPlaceHolder("Profile name")
	pp.descEntry = widget.NewEntry()
	pp.descEntry.SetPlaceHolder("Description")

	pp.profileSelect = widget.NewSelect(nil, nil)
	pp.profileSelect.PlaceHolder = "Saved profiles"

	pp.saveButton = widget.NewButton("Save", pp.onSave)
	pp.saveButton.Disable()
	pp.saveAsButton = widget.NewButton("Save As", pp.onSaveAs)
	pp.loadButton = widget.NewButton("Load", pp.onLoad)
	pp.deleteButton = widget.NewButton("Delete", pp.onDelete)
	pp.refreshButton = widget.NewButton("Refresh", pp.onRefresh)

	pp.container = container.NewVBox(
		pp.nameEntry,
		pp.descEntry,
		container.NewGridWithColumns(2, pp.saveButton, pp.saveAsButton),
		widget.NewSeparator(),
		pp.profileSelect,
		container.NewGridWithColumns(3, pp.loadButton, pp.deleteButton, pp.refreshButton),
	)
}

func (pp *ProfilesPanel) GetContainer() *fyne.Container {
	return pp.container
}

func (pp *ProfilesPanel) SetSaveHandler(handler func()) {
	pp.saveHandler = handler
}

func (pp *ProfilesPanel) SetSaveAsHandler(handler func()) {
	pp.saveAsHandler = handler
}

func (pp *ProfilesPanel) SetLoadHandler(handler func(name string)) {
	pp.loadHandler = handler
}

func (pp *ProfilesPanel) SetDeleteHandler(handler func(name string)) {
	pp.deleteHandler = handler
}

func (pp *ProfilesPanel) SetRefreshHandler(handler func()) {
	pp.refreshHandler = handler
}

func (pp *ProfilesPanel) UpdateList(names []string) {
	selected := pp.profileSelect.Selected
	pp.profileSelect.Options = names

	keep := false
	for _, name := range names {
		if name == selected {
			keep = true
			break
		}
	}
	if !keep {
		pp.profileSelect.ClearSelected()
	}
	pp.profileSelect.Refresh()
}

func (pp *ProfilesPanel) Name() string {
	return pp.nameEntry.Text
}

func (pp *ProfilesPanel) Description() string {
	return pp.descEntry.Text
}

func (pp *ProfilesPanel) SetProfileMeta(name, description string) {
	pp.nameEntry.SetText(name)
	pp.descEntry.SetText(description)
}

func (pp *ProfilesPanel) SetCanSave(can bool) {
	if can {
		pp.saveButton.Enable()
	} else {
		pp.saveButton.Disable()
	}
}

func (pp *ProfilesPanel) Selected() string {
	return pp.profileSelect.Selected
}

func (pp *ProfilesPanel) onSave() {
	if pp.saveHandler != nil {
		pp.saveHandler()
	}
}

func (pp *ProfilesPanel) onSaveAs() {
	if pp.saveAsHandler != nil {
		pp.saveAsHandler()
	}
}

func (pp *ProfilesPanel) onLoad() {
	if pp.loadHandler != nil && pp.profileSelect.Selected != "" {
		pp.loadHandler(pp.profileSelect.Selected)
	}
}

func (pp *ProfilesPanel) onDelete() {
	if pp.deleteHandler != nil && pp.profileSelect.Selected != "" {
		pp.deleteHandler(pp.profileSelect.Selected)
	}
}

func (pp *ProfilesPanel) onRefresh() {
	if pp.refreshHandler != nil {
		pp.refreshHandler()
	}
}
