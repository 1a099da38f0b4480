package app

import (
	"fmt"

	"linux-engraver/internal/gui"
	"linux-engraver/internal/logger"
	"linux-engraver/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

const (
	prefLastDirectory = "last_directory"

	defaultDesignName = "design.json"
	defaultGCodeName  = "toolpath.gcode"
)

// Handlers binds toolbar and panel actions to the session.
type Handlers struct {
	session    *Session
	guiManager *gui.Manager
	prefs      fyne.Preferences
	logger     logger.Logger
}

func NewHandlers(session *Session, gm *gui.Manager, prefs fyne.Preferences, log logger.Logger) *Handlers {
	return &Handlers{
		session:    session,
		guiManager: gm,
		prefs:      prefs,
		logger:     log,
	}
}

func (h *Handlers) HandleNew() {
	h.session.New()
	h.guiManager.RefreshCanvas()
	h.guiManager.UpdateStatus("New design")
}

func (h *Handlers) HandleOpen() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			h.guiManager.ShowError("Open failed", "Could not open file", err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		h.openFrom(reader)
	}, h.guiManager.GetWindow())

	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	if location := h.dialogLocation(); location != nil {
		d.SetLocation(location)
	}
	d.Show()
}

func (h *Handlers) openFrom(reader fyne.URIReadCloser) {
	uri := reader.URI()
	if err := h.session.Open(reader, uri); err != nil {
		h.logger.Warning("Handlers", "open rejected", map[string]interface{}{
			"file":         uriString(uri),
			"format_error": models.IsFormatError(err),
		})
		h.guiManager.ShowError("Open failed", "Could not open file", err)
		return
	}

	h.rememberDirectory(uri)
	h.guiManager.ShowMaterial(h.session.Document().Material)
	h.guiManager.RefreshCanvas()
	h.guiManager.SetFileName(uri.Name())
	h.guiManager.UpdateStatus(fmt.Sprintf("Opened %s", uri.Name()))
}

// HandleSave writes to the current file, asking for a destination first
// when the design has never been saved.
func (h *Handlers) HandleSave() {
	if current := h.session.CurrentFile(); current != nil {
		writer, err := storage.Writer(current)
		if err != nil {
			h.guiManager.ShowError("Save failed", "Could not save file", err)
			return
		}
		h.saveTo(writer)
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			h.guiManager.ShowError("Save failed", "Could not save file", err)
			return
		}
		if writer == nil {
			return
		}
		h.saveTo(writer)
	}, h.guiManager.GetWindow())

	d.SetFileName(defaultDesignName)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	if location := h.dialogLocation(); location != nil {
		d.SetLocation(location)
	}
	d.Show()
}

func (h *Handlers) saveTo(writer fyne.URIWriteCloser) {
	uri := writer.URI()
	if err := h.session.Save(writer, uri); err != nil {
		h.guiManager.ShowError("Save failed", "Could not save file", err)
		return
	}

	h.rememberDirectory(uri)
	h.guiManager.SetFileName(uri.Name())
	h.guiManager.UpdateStatus(fmt.Sprintf("Saved %s", uri.Name()))
}

func (h *Handlers) HandleExport() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			h.guiManager.ShowError("Export failed", "Could not export G-code", err)
			return
		}
		if writer == nil {
			return
		}
		h.exportTo(writer)
	}, h.guiManager.GetWindow())

	d.SetFileName(defaultGCodeName)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".gcode", ".nc"}))
	if location := h.dialogLocation(); location != nil {
		d.SetLocation(location)
	}
	d.Show()
}

func (h *Handlers) exportTo(writer fyne.URIWriteCloser) {
	uri := writer.URI()
	if err := h.session.Export(writer); err != nil {
		h.guiManager.ShowError("Export failed", "Could not export G-code", err)
		return
	}

	h.guiManager.UpdateStatus(fmt.Sprintf("Exported %s", uri.Name()))
	h.guiManager.ShowInfo("Export complete", fmt.Sprintf("G-code written to:\n%s", uri.Path()))
}

func (h *Handlers) HandleToolChange(tool string) {
	if err := h.session.SetTool(tool); err != nil {
		h.logger.Warning("Handlers", "tool change ignored", map[string]interface{}{
			"tool":  tool,
			"error": err.Error(),
		})
		return
	}
	h.guiManager.RefreshCanvas()
}

func (h *Handlers) HandleMaterialChange(m models.Material) {
	if err := h.session.SetMaterial(m); err != nil {
		h.logger.Warning("Handlers", "material change ignored", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	h.guiManager.RefreshCanvas()
}

func (h *Handlers) HandleCanvasChange() {
	h.guiManager.UpdateStatus("Modified")
}

// dialogLocation starts file dialogs next to the current file, falling
// back to the last directory a design was opened from or saved to.
func (h *Handlers) dialogLocation() fyne.ListableURI {
	if current := h.session.CurrentFile(); current != nil {
		if parent, err := storage.Parent(current); err == nil {
			if lister, err := storage.ListerForURI(parent); err == nil {
				return lister
			}
		}
	}

	saved := h.prefs.String(prefLastDirectory)
	if saved == "" {
		return nil
	}
	uri, err := storage.ParseURI(saved)
	if err != nil {
		return nil
	}
	lister, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return lister
}

func (h *Handlers) rememberDirectory(uri fyne.URI) {
	parent, err := storage.Parent(uri)
	if err != nil {
		return
	}
	h.prefs.SetString(prefLastDirectory, parent.String())
}
