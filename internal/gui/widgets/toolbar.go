package widgets

import (
	"linux-engraver/internal/scene"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Tool names reported to the tool handler.
const (
	ToolSelect = string(scene.ToolSelect)
	ToolRect   = string(scene.ToolRect)
	ToolCircle = string(scene.ToolCircle)
)

type Toolbar struct {
	container    *fyne.Container
	NewButton    *widget.Button
	openButton   *widget.Button
	SaveButton   *widget.Button
	exportButton *widget.Button
	RectButton   *widget.Button
	CircleButton *widget.Button
	selectButton *widget.Button
	DeleteButton *widget.Button

	newHandler    func()
	openHandler   func()
	saveHandler   func()
	exportHandler func()
	deleteHandler func()
	toolHandler   func(string)
}

func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents()
	toolbar.buildLayout()
	toolbar.SetActiveTool(ToolSelect)
	return toolbar
}

func (t *Toolbar) createComponents() {
	t.NewButton = widget.NewButtonWithIcon("New", theme.DocumentCreateIcon(), t.onNewClicked)
	t.openButton = widget.NewButtonWithIcon("Open", theme.FolderOpenIcon(), t.onOpenClicked)
	t.SaveButton = widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), t.onSaveClicked)
	t.exportButton = widget.NewButton("Export G-code", t.onExportClicked)

	t.RectButton = widget.NewButton("Rectangle", func() { t.onToolClicked(ToolRect) })
	t.CircleButton = widget.NewButton("Circle", func() { t.onToolClicked(ToolCircle) })
	t.selectButton = widget.NewButton("Select", func() { t.onToolClicked(ToolSelect) })

	t.DeleteButton = widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), t.onDeleteClicked)
}

func (t *Toolbar) buildLayout() {
	background := canvas.NewRectangle(theme.Color(theme.ColorNameHeaderBackground))

	content := container.NewHBox(
		t.NewButton,
		t.openButton,
		t.SaveButton,
		t.exportButton,
		widget.NewSeparator(),
		t.RectButton,
		t.CircleButton,
		widget.NewSeparator(),
		t.selectButton,
		t.DeleteButton,
	)

	t.container = container.NewStack(
		background,
		container.NewPadded(content),
	)
}

func (t *Toolbar) onNewClicked() {
	if t.newHandler != nil {
		t.newHandler()
	}
}

func (t *Toolbar) onOpenClicked() {
	if t.openHandler != nil {
		t.openHandler()
	}
}

func (t *Toolbar) onSaveClicked() {
	if t.saveHandler != nil {
		t.saveHandler()
	}
}

func (t *Toolbar) onExportClicked() {
	if t.exportHandler != nil {
		t.exportHandler()
	}
}

func (t *Toolbar) onDeleteClicked() {
	if t.deleteHandler != nil {
		t.deleteHandler()
	}
}

func (t *Toolbar) onToolClicked(tool string) {
	t.SetActiveTool(tool)
	if t.toolHandler != nil {
		t.toolHandler(tool)
	}
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}

func (t *Toolbar) SetNewHandler(handler func()) {
	t.newHandler = handler
}

func (t *Toolbar) SetOpenHandler(handler func()) {
	t.openHandler = handler
}

func (t *Toolbar) SetSaveHandler(handler func()) {
	t.saveHandler = handler
}

func (t *Toolbar) SetExportHandler(handler func()) {
	t.exportHandler = handler
}

func (t *Toolbar) SetDeleteHandler(handler func()) {
	t.deleteHandler = handler
}

func (t *Toolbar) SetToolHandler(handler func(string)) {
	t.toolHandler = handler
}

// SetActiveTool highlights the button of the given tool.
func (t *Toolbar) SetActiveTool(tool string) {
	buttons := map[string]*widget.Button{
		ToolRect:   t.RectButton,
		ToolCircle: t.CircleButton,
		ToolSelect: t.selectButton,
	}

	for name, button := range buttons {
		if name == tool {
			button.Importance = widget.HighImportance
		} else {
			button.Importance = widget.MediumImportance
		}
		button.Refresh()
	}

	if tool == ToolSelect {
		t.DeleteButton.Enable()
	} else {
		t.DeleteButton.Disable()
	}
}
