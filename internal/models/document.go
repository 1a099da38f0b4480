package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Document is one design: the material it is engraved into and the
// ordered shapes drawn on it.
type Document struct {
	Material Material `json:"material"`
	Shapes   Shapes   `json:"shapes"`
}

// NewDocument creates an empty design on the given material.
func NewDocument(material Material) *Document {
	return &Document{
		Material: material,
		Shapes:   Shapes{},
	}
}

// Clone returns a deep copy. Shapes are value types so copying the slice
// is enough.
func (d *Document) Clone() *Document {
	shapes := make(Shapes, len(d.Shapes))
	copy(shapes, d.Shapes)
	return &Document{Material: d.Material, Shapes: shapes}
}

func (d *Document) AddShape(shape Shape) {
	d.Shapes = append(d.Shapes, shape)
}

func (d *Document) Validate() error {
	if err := d.Material.Validate(); err != nil {
		return err
	}
	for i, shape := range d.Shapes {
		if shape == nil {
			return fmt.Errorf("shape %d: %w: nil shape", i, ErrUnknownShape)
		}
		if err := shape.Validate(); err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
	}
	return nil
}

// ToJSON encodes the document with two-space indentation.
func (d *Document) ToJSON() ([]byte, error) {
	shapes := d.Shapes
	if shapes == nil {
		shapes = Shapes{}
	}
	return json.MarshalIndent(Document{Material: d.Material, Shapes: shapes}, "", "  ")
}

// FromJSON decodes and validates a document.
func FromJSON(data []byte) (*Document, error) {
	var wire struct {
		Material *Material `json:"material"`
		Shapes   Shapes    `json:"shapes"`
	}

	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if wire.Material == nil {
		return nil, fmt.Errorf("decode document: %w: material is required", ErrInvalidMaterial)
	}
	if wire.Shapes == nil {
		wire.Shapes = Shapes{}
	}

	doc := &Document{Material: *wire.Material, Shapes: wire.Shapes}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

func (d *Document) WriteJSON(w io.Writer) error {
	data, err := d.ToJSON()
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

func ReadDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return FromJSON(data)
}

// Save writes the document to path, replacing any existing file.
func (d *Document) Save(path string) error {
	data, err := d.ToJSON()
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	doc, err := FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return doc, nil
}

// IsFormatError reports whether err came from malformed or invalid document
// content rather than from file access.
func IsFormatError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.Is(err, ErrInvalidMaterial) ||
		errors.Is(err, ErrInvalidShape) ||
		errors.Is(err, ErrUnknownShape)
}
