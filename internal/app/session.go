package app

import (
	"fmt"
	"io"

	"linux-engraver/internal/export"
	"linux-engraver/internal/logger"
	"linux-engraver/internal/models"
	"linux-engraver/internal/scene"

	"fyne.io/fyne/v2"
)

// Canvas is the editing surface a session drives. The design canvas widget
// implements it.
type Canvas interface {
	SetTool(tool scene.Tool)
	SetWorkspaceSize(width, height float64)
	ClearShapes()
	AddShape(shape models.Shape)
	ExportShapes() models.Shapes
}

// Session is the open design: the document, the canvas it is edited on and
// the file it was last opened from or saved to. The canvas is the source of
// truth for shapes while editing; the document is synced from it before
// every save or export.
type Session struct {
	doc     *models.Document
	canvas  Canvas
	current fyne.URI
	gcode   export.Options
	logger  logger.Logger
}

func NewSession(material models.Material, gcode export.Options, canvas Canvas, log logger.Logger) *Session {
	canvas.SetWorkspaceSize(material.Width, material.Height)
	return &Session{
		doc:    models.NewDocument(material),
		canvas: canvas,
		gcode:  gcode,
		logger: log,
	}
}

func (s *Session) Document() *models.Document {
	return s.doc
}

// CurrentFile returns the design file URI, or nil for an unsaved design.
func (s *Session) CurrentFile() fyne.URI {
	return s.current
}

// New replaces the document with an empty one on the same material. The
// current file is kept so the next save dialog starts in the same place.
func (s *Session) New() {
	s.doc = models.NewDocument(s.doc.Material)
	s.canvas.ClearShapes()
	s.logger.Info("Session", "new document", map[string]interface{}{
		"material": s.doc.Material.String(),
	})
}

// Open reads a design from r. On failure the session is left untouched.
func (s *Session) Open(r io.Reader, uri fyne.URI) error {
	doc, err := models.ReadDocument(r)
	if err != nil {
		return err
	}

	s.doc = doc
	s.current = uri
	s.syncCanvasFromDocument()

	s.logger.Info("Session", "document opened", map[string]interface{}{
		"file":   uriString(uri),
		"shapes": len(doc.Shapes),
	})
	return nil
}

// Save writes the design to w, closes it and records uri as the current
// file. The current file only changes when both steps succeed.
func (s *Session) Save(w io.WriteCloser, uri fyne.URI) error {
	s.syncDocumentFromCanvas()
	if err := closeAfter(w, s.doc.WriteJSON(w)); err != nil {
		return err
	}

	s.current = uri
	s.logger.Info("Session", "document saved", map[string]interface{}{
		"file":   uriString(uri),
		"shapes": len(s.doc.Shapes),
	})
	return nil
}

// Export writes G-code for the current canvas content to w and closes it.
func (s *Session) Export(w io.WriteCloser) error {
	s.syncDocumentFromCanvas()
	if err := closeAfter(w, export.Export(s.doc, w, s.gcode)); err != nil {
		return fmt.Errorf("export gcode: %w", err)
	}

	s.logger.Info("Session", "gcode exported", map[string]interface{}{
		"shapes": len(s.doc.Shapes),
	})
	return nil
}

func (s *Session) SetMaterial(m models.Material) error {
	if err := m.Validate(); err != nil {
		return err
	}
	s.doc.Material = m
	s.canvas.SetWorkspaceSize(m.Width, m.Height)
	return nil
}

func (s *Session) SetTool(name string) error {
	tool, err := scene.ParseTool(name)
	if err != nil {
		return err
	}
	s.canvas.SetTool(tool)
	return nil
}

// syncCanvasFromDocument applies the material before the shapes.
func (s *Session) syncCanvasFromDocument() {
	s.canvas.SetWorkspaceSize(s.doc.Material.Width, s.doc.Material.Height)
	s.canvas.ClearShapes()
	for _, shape := range s.doc.Shapes {
		s.canvas.AddShape(shape)
	}
}

func (s *Session) syncDocumentFromCanvas() {
	s.doc.Shapes = s.canvas.ExportShapes()
}

// closeAfter closes c and returns err, or the close error when err is nil.
func closeAfter(c io.Closer, err error) error {
	if closeErr := c.Close(); err == nil && closeErr != nil {
		return fmt.Errorf("close: %w", closeErr)
	}
	return err
}

func uriString(uri fyne.URI) string {
	if uri == nil {
		return ""
	}
	return uri.String()
}
