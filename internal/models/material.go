package models

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidMaterial = errors.New("invalid material")

// Material describes the workpiece stock in millimetres.
// Width and Height are the planar XY dimensions, Thickness is Z.
type Material struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Thickness float64 `json:"thickness"`
}

// DefaultMaterial returns the stock a fresh design starts with.
func DefaultMaterial() Material {
	return Material{Width: 100.0, Height: 100.0, Thickness: 10.0}
}

// NewMaterial builds a validated Material.
func NewMaterial(width, height, thickness float64) (Material, error) {
	m := Material{Width: width, Height: height, Thickness: thickness}
	if err := m.Validate(); err != nil {
		return Material{}, err
	}
	return m, nil
}

// Validate requires every dimension to be finite and strictly positive.
func (m Material) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"width", m.Width},
		{"height", m.Height},
		{"thickness", m.Thickness},
	}

	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value <= 0 {
			return fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalidMaterial, f.name, f.value)
		}
	}
	return nil
}

func (m Material) String() string {
	return fmt.Sprintf("%.2f x %.2f x %.3f mm", m.Width, m.Height, m.Thickness)
}
