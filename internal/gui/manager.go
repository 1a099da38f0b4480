package gui

import (
	"fmt"

	"linux-engraver/internal/gui/components"
	"linux-engraver/internal/gui/widgets"
	"linux-engraver/internal/logger"
	"linux-engraver/internal/models"
	"linux-engraver/internal/scene"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
)

// Manager composes the main window: toolbar on top, design canvas in the
// centre, material panel on the right and the status bar at the bottom.
type Manager struct {
	window     fyne.Window
	logger     logger.Logger
	isShutdown bool

	canvas        *widgets.DesignCanvas
	toolbar       *widgets.Toolbar
	materialPanel *components.MaterialPanel
	statusBar     *components.StatusBar

	changeHandler func()
}

func NewManager(window fyne.Window, sc *scene.Scene, material models.Material, log logger.Logger) *Manager {
	manager := &Manager{
		window:        window,
		logger:        log,
		canvas:        widgets.NewDesignCanvas(sc),
		toolbar:       widgets.NewToolbar(),
		materialPanel: components.NewMaterialPanel(material),
		statusBar:     components.NewStatusBar(),
	}

	manager.canvas.SetOnCursor(func(p scene.Point, inside bool) {
		manager.statusBar.SetCursor(p.X, p.Y, inside)
	})
	manager.canvas.SetOnChanged(manager.canvasChanged)
	manager.toolbar.SetDeleteHandler(manager.deleteSelected)

	log.Info("GUIManager", "initialized", map[string]interface{}{
		"workspace_width":  material.Width,
		"workspace_height": material.Height,
	})

	return manager
}

func (m *Manager) GetMainContainer() *fyne.Container {
	sidebar := container.NewPadded(m.materialPanel.GetContainer())

	return container.NewBorder(
		m.toolbar.GetContainer(),
		container.NewPadded(m.statusBar.GetContainer()),
		nil,
		sidebar,
		m.canvas,
	)
}

func (m *Manager) GetWindow() fyne.Window {
	return m.window
}

func (m *Manager) Canvas() *widgets.DesignCanvas {
	return m.canvas
}

func (m *Manager) SetNewHandler(handler func()) {
	m.toolbar.SetNewHandler(handler)
}

func (m *Manager) SetOpenHandler(handler func()) {
	m.toolbar.SetOpenHandler(handler)
}

func (m *Manager) SetSaveHandler(handler func()) {
	m.toolbar.SetSaveHandler(handler)
}

func (m *Manager) SetExportHandler(handler func()) {
	m.toolbar.SetExportHandler(handler)
}

func (m *Manager) SetToolHandler(handler func(string)) {
	m.toolbar.SetToolHandler(func(tool string) {
		m.logger.Debug("GUIManager", "tool selected", map[string]interface{}{
			"tool": tool,
		})
		handler(tool)
	})
}

func (m *Manager) SetMaterialChangeHandler(handler func(models.Material)) {
	m.materialPanel.SetMaterialChangeHandler(func(material models.Material) {
		m.logger.Debug("GUIManager", "material change", map[string]interface{}{
			"material": material.String(),
		})
		handler(material)
	})
}

// SetChangeHandler registers a callback for shape edits made on the canvas.
func (m *Manager) SetChangeHandler(handler func()) {
	m.changeHandler = handler
}

// ShowMaterial updates the material panel without firing its handler.
func (m *Manager) ShowMaterial(material models.Material) {
	fyne.Do(func() {
		m.materialPanel.SetMaterial(material)
	})
}

// RefreshCanvas redraws the canvas and the shape count after the scene was
// changed programmatically.
func (m *Manager) RefreshCanvas() {
	fyne.Do(func() {
		m.canvas.Refresh()
		m.statusBar.SetShapeCount(m.canvas.Scene().Len())
	})
}

func (m *Manager) UpdateStatus(status string) {
	fyne.Do(func() {
		m.statusBar.SetStatus(status)
		m.logger.Debug("GUIManager", "status updated", map[string]interface{}{
			"status": status,
		})
	})
}

func (m *Manager) SetFileName(name string) {
	fyne.Do(func() {
		m.statusBar.SetFile(name)
		title := "Linux Engraver"
		if name != "" {
			title = fmt.Sprintf("%s - Linux Engraver", name)
		}
		m.window.SetTitle(title)
	})
}

func (m *Manager) ShowError(title, message string, err error) {
	m.logger.Error("GUIManager", err, map[string]interface{}{
		"title": title,
	})

	fyne.Do(func() {
		dialog.ShowError(fmt.Errorf("%s: %s: %w", title, message, err), m.window)
	})
}

func (m *Manager) ShowInfo(title, message string) {
	fyne.Do(func() {
		dialog.ShowInformation(title, message, m.window)
	})
}

func (m *Manager) canvasChanged() {
	m.statusBar.SetShapeCount(m.canvas.Scene().Len())
	if m.changeHandler != nil {
		m.changeHandler()
	}
}

func (m *Manager) deleteSelected() {
	if !m.canvas.DeleteSelected() {
		m.statusBar.SetStatus("Nothing selected")
	}
}

// Shutdown abandons any gesture in progress and detaches the toolbar and
// panel handlers, so no dialog or document change starts while the
// application is going down.
func (m *Manager) Shutdown() {
	if m.isShutdown {
		return
	}

	m.isShutdown = true
	m.logger.Info("GUIManager", "shutdown initiated", nil)

	fyne.Do(func() {
		m.canvas.CancelDrag()
		m.toolbar.SetNewHandler(nil)
		m.toolbar.SetOpenHandler(nil)
		m.toolbar.SetSaveHandler(nil)
		m.toolbar.SetExportHandler(nil)
		m.toolbar.SetToolHandler(nil)
		m.toolbar.SetDeleteHandler(nil)
		m.materialPanel.SetMaterialChangeHandler(nil)
		m.canvas.SetOnChanged(nil)
	})
}
