package app

import (
	"fmt"

	"linux-engraver/internal/config"
	"linux-engraver/internal/export"
	"linux-engraver/internal/gui"
	"linux-engraver/internal/logger"
	"linux-engraver/internal/models"
	"linux-engraver/internal/scene"
	"linux-engraver/internal/shutdown"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName    = "Linux Engraver"
	AppID      = "io.github.linuxengraver"
	AppVersion = "0.1.0"
)

type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	guiManager *gui.Manager
	session    *Session
	handlers   *Handlers
	shutdown   *shutdown.Manager
	logger     logger.Logger
}

func NewApplication(cfg config.Config, log logger.Logger) (*Application, error) {
	material, err := models.NewMaterial(cfg.Material.Width, cfg.Material.Height, cfg.Material.Thickness)
	if err != nil {
		return nil, fmt.Errorf("default material: %w", err)
	}

	fyneApp := app.NewWithID(AppID)
	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	window.CenterOnScreen()
	window.SetMaster()

	guiManager := gui.NewManager(window, scene.New(material.Width, material.Height), material, log)
	session := NewSession(material, GCodeOptions(cfg.GCode), guiManager.Canvas(), log)
	handlers := NewHandlers(session, guiManager, fyneApp.Preferences(), log)

	shutdownMgr := shutdown.NewManager(log)
	shutdownMgr.Register("gui", guiManager)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		guiManager: guiManager,
		session:    session,
		handlers:   handlers,
		shutdown:   shutdownMgr,
		logger:     log,
	}

	application.setupHandlers()

	log.Info("Application", "initialization complete", map[string]interface{}{
		"version":  AppVersion,
		"material": material.String(),
		"window":   fmt.Sprintf("%.0fx%.0f", cfg.Window.Width, cfg.Window.Height),
	})
	return application, nil
}

// GCodeOptions converts the [gcode] config section.
func GCodeOptions(c config.GCodeConfig) export.Options {
	return export.Options{
		SafeZ:          c.SafeZ,
		PlungeFeed:     c.PlungeFeed,
		CutFeed:        c.CutFeed,
		CircleSegments: c.CircleSegments,
	}
}

func (a *Application) setupHandlers() {
	a.guiManager.SetNewHandler(a.handlers.HandleNew)
	a.guiManager.SetOpenHandler(a.handlers.HandleOpen)
	a.guiManager.SetSaveHandler(a.handlers.HandleSave)
	a.guiManager.SetExportHandler(a.handlers.HandleExport)
	a.guiManager.SetToolHandler(a.handlers.HandleToolChange)
	a.guiManager.SetMaterialChangeHandler(a.handlers.HandleMaterialChange)
	a.guiManager.SetChangeHandler(a.handlers.HandleCanvasChange)
}

// Run shows the main window and blocks in the toolkit event loop until the
// window is closed or the process is signalled.
func (a *Application) Run() error {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested", nil)
		a.shutdown.Shutdown()
		a.window.Close()
	})

	a.shutdown.Listen(func() {
		fyne.Do(a.fyneApp.Quit)
	})

	a.window.SetContent(a.guiManager.GetMainContainer())
	a.window.Show()

	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	a.shutdown.Shutdown()
	return nil
}
