package scene

import "math"

// Viewport maps scene coordinates onto a view of a given pixel size.
type Viewport struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// FitScale fits the scene bounds into a viewW x viewH view, keeping the
// aspect ratio and centring the slack.
func (s *Scene) FitScale(viewW, viewH float64) Viewport {
	b := s.Bounds()
	if viewW <= 0 || viewH <= 0 || b.Width() <= 0 || b.Height() <= 0 {
		return Viewport{Scale: 1}
	}

	scale := math.Min(viewW/b.Width(), viewH/b.Height())
	return Viewport{
		Scale:   scale,
		OffsetX: (viewW-b.Width()*scale)/2 - b.MinX*scale,
		OffsetY: (viewH-b.Height()*scale)/2 - b.MinY*scale,
	}
}

func (v Viewport) ToView(p Point) (float64, float64) {
	return p.X*v.Scale + v.OffsetX, p.Y*v.Scale + v.OffsetY
}

func (v Viewport) ToScene(x, y float64) Point {
	return Point{X: (x - v.OffsetX) / v.Scale, Y: (y - v.OffsetY) / v.Scale}
}
