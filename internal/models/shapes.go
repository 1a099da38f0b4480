package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnknownShape = errors.New("unknown shape type")
	ErrInvalidShape = errors.New("invalid shape")
)

// Kind is the JSON type discriminator of a shape record.
type Kind string

const (
	KindRect   Kind = "rect"
	KindCircle Kind = "circle"
)

// Box is an axis-aligned bounding box in millimetres.
type Box struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

func (b Box) Width() float64  { return b.MaxX - b.MinX }
func (b Box) Height() float64 { return b.MaxY - b.MinY }

// Shape is a 2D primitive placed on the design. The set of implementations
// is closed: Rect and Circle.
type Shape interface {
	Kind() Kind
	Bounds() Box
	Contains(x, y float64) bool
	Translate(dx, dy float64) Shape
	Validate() error

	sealed()
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (Rect) Kind() Kind { return KindRect }
func (Rect) sealed()    {}

func (r Rect) Bounds() Box {
	return Box{MinX: r.X, MinY: r.Y, MaxX: r.X + r.W, MaxY: r.Y + r.H}
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

func (r Rect) Translate(dx, dy float64) Shape {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

func (r Rect) Validate() error {
	if !finite(r.X, r.Y, r.W, r.H) {
		return fmt.Errorf("%w: rect has non-finite geometry", ErrInvalidShape)
	}
	if r.W < 0 || r.H < 0 {
		return fmt.Errorf("%w: rect size must be >= 0, got %vx%v", ErrInvalidShape, r.W, r.H)
	}
	return nil
}

// Circle is given by its centre and radius.
type Circle struct {
	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
	R  float64 `json:"r"`
}

func (Circle) Kind() Kind { return KindCircle }
func (Circle) sealed()    {}

func (c Circle) Bounds() Box {
	return Box{MinX: c.CX - c.R, MinY: c.CY - c.R, MaxX: c.CX + c.R, MaxY: c.CY + c.R}
}

func (c Circle) Contains(x, y float64) bool {
	dx, dy := x-c.CX, y-c.CY
	return dx*dx+dy*dy <= c.R*c.R
}

func (c Circle) Translate(dx, dy float64) Shape {
	return Circle{CX: c.CX + dx, CY: c.CY + dy, R: c.R}
}

func (c Circle) Validate() error {
	if !finite(c.CX, c.CY, c.R) {
		return fmt.Errorf("%w: circle has non-finite geometry", ErrInvalidShape)
	}
	if c.R < 0 {
		return fmt.Errorf("%w: circle radius must be >= 0, got %v", ErrInvalidShape, c.R)
	}
	return nil
}

// Shapes is an ordered shape list that encodes each element as a flat
// record tagged with "type".
type Shapes []Shape

func (s Shapes) MarshalJSON() ([]byte, error) {
	records := make([]json.RawMessage, 0, len(s))
	for i, shape := range s {
		data, err := MarshalShape(shape)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		records = append(records, data)
	}
	return json.Marshal(records)
}

func (s *Shapes) UnmarshalJSON(data []byte) error {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}

	out := make(Shapes, 0, len(records))
	for i, raw := range records {
		shape, err := UnmarshalShape(raw)
		if err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
		out = append(out, shape)
	}
	*s = out
	return nil
}

// MarshalShape encodes one shape as a tagged record.
func MarshalShape(shape Shape) ([]byte, error) {
	switch v := shape.(type) {
	case Rect:
		return json.Marshal(struct {
			Type Kind `json:"type"`
			Rect
		}{KindRect, v})
	case Circle:
		return json.Marshal(struct {
			Type Kind `json:"type"`
			Circle
		}{KindCircle, v})
	case nil:
		return nil, fmt.Errorf("%w: nil shape", ErrUnknownShape)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownShape, shape)
	}
}

// UnmarshalShape decodes a tagged record into a Rect or Circle.
func UnmarshalShape(data []byte) (Shape, error) {
	var tag struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, err
	}

	var shape Shape
	switch tag.Type {
	case KindRect:
		var wire struct {
			X *float64 `json:"x"`
			Y *float64 `json:"y"`
			W *float64 `json:"w"`
			H *float64 `json:"h"`
		}
		if err := json.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		fields := []requiredField{{"x", wire.X}, {"y", wire.Y}, {"w", wire.W}, {"h", wire.H}}
		if err := checkRequired(KindRect, fields); err != nil {
			return nil, err
		}
		shape = Rect{X: *wire.X, Y: *wire.Y, W: *wire.W, H: *wire.H}
	case KindCircle:
		var wire struct {
			CX *float64 `json:"cx"`
			CY *float64 `json:"cy"`
			R  *float64 `json:"r"`
		}
		if err := json.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		fields := []requiredField{{"cx", wire.CX}, {"cy", wire.CY}, {"r", wire.R}}
		if err := checkRequired(KindCircle, fields); err != nil {
			return nil, err
		}
		shape = Circle{CX: *wire.CX, CY: *wire.CY, R: *wire.R}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, tag.Type)
	}

	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return shape, nil
}

type requiredField struct {
	name  string
	value *float64
}

// checkRequired rejects records with absent or null geometry.
func checkRequired(kind Kind, fields []requiredField) error {
	for _, f := range fields {
		if f.value == nil {
			return fmt.Errorf("%w: %s field %q is required", ErrInvalidShape, kind, f.name)
		}
	}
	return nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
