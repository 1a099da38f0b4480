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
	fileLabel   *widget.Label
	countLabel  *widget.Label
	cursorLabel *widget.Label
}

func NewStatusBar() *StatusBar {
	statusLabel := widget.NewLabel("Ready")
	fileLabel := widget.NewLabel("Untitled")
	countLabel := widget.NewLabel("Shapes: 0")
	cursorLabel := widget.NewLabel("")

	infoContainer := container.NewHBox(
		cursorLabel,
		widget.NewSeparator(),
		countLabel,
		widget.NewSeparator(),
		fileLabel,
	)

	mainContainer := container.NewBorder(
		nil, nil,
		statusLabel,
		infoContainer,
	)

	return &StatusBar{
		container:   mainContainer,
		statusLabel: statusLabel,
		fileLabel:   fileLabel,
		countLabel:  countLabel,
		cursorLabel: cursorLabel,
	}
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

func (sb *StatusBar) Status() string {
	return sb.statusLabel.Text
}

// SetFile shows the current file name; an empty name reads "Untitled".
func (sb *StatusBar) SetFile(name string) {
	if name == "" {
		name = "Untitled"
	}
	sb.fileLabel.SetText(name)
}

func (sb *StatusBar) SetShapeCount(n int) {
	sb.countLabel.SetText(fmt.Sprintf("Shapes: %d", n))
}

func (sb *StatusBar) SetCursor(x, y float64, inside bool) {
	if !inside {
		sb.cursorLabel.SetText("")
		return
	}
	sb.cursorLabel.SetText(fmt.Sprintf("X %.1f  Y %.1f mm", x, y))
}
