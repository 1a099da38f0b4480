// Package scene holds the interactive state behind the design canvas:
// the workspace rectangle, the active tool, drawn items and the drag
// preview. It has no toolkit dependency; widgets render it and feed it
// pointer events in scene coordinates (1 unit = 1 mm).
package scene

import (
	"fmt"
	"math"

	"linux-engraver/internal/models"
)

// Margin is the padding kept around the workspace when fitting the view.
const Margin = 50.0

type Tool string

const (
	ToolSelect Tool = "select"
	ToolRect   Tool = "rect"
	ToolCircle Tool = "circle"
)

func ParseTool(name string) (Tool, error) {
	switch t := Tool(name); t {
	case ToolSelect, ToolRect, ToolCircle:
		return t, nil
	default:
		return "", fmt.Errorf("unknown tool %q", name)
	}
}

type Point struct {
	X, Y float64
}

type Item struct {
	ID    int
	Shape models.Shape
}

type Scene struct {
	width  float64
	height float64
	tool   Tool

	items    []*Item
	nextID   int
	selected map[int]bool

	dragging  bool
	moving    bool
	banding   bool
	dragStart Point
	dragLast  Point
	preview   models.Shape
}

func New(width, height float64) *Scene {
	return &Scene{
		width:    width,
		height:   height,
		tool:     ToolSelect,
		nextID:   1,
		selected: make(map[int]bool),
	}
}

// SetWorkspaceSize resizes the workspace. Items are left where they are.
func (s *Scene) SetWorkspaceSize(width, height float64) {
	s.width = width
	s.height = height
}

func (s *Scene) Workspace() models.Rect {
	return models.Rect{X: 0, Y: 0, W: s.width, H: s.height}
}

// Bounds is the scene extent: the workspace grown by Margin on every side.
func (s *Scene) Bounds() models.Box {
	return models.Box{
		MinX: -Margin,
		MinY: -Margin,
		MaxX: s.width + Margin,
		MaxY: s.height + Margin,
	}
}

func (s *Scene) Tool() Tool {
	return s.tool
}

func (s *Scene) SetTool(tool Tool) {
	s.tool = tool
	s.clearDrag()
	if tool != ToolSelect {
		s.clearSelection()
	}
}

func (s *Scene) Items() []Item {
	out := make([]Item, len(s.items))
	for i, item := range s.items {
		out[i] = *item
	}
	return out
}

func (s *Scene) Len() int {
	return len(s.items)
}

// Preview returns the shape being drawn, or nil.
func (s *Scene) Preview() models.Shape {
	return s.preview
}

// Band returns the rubber band being dragged by the select tool.
func (s *Scene) Band() (models.Box, bool) {
	if !s.banding {
		return models.Box{}, false
	}
	return boxBetween(s.dragStart, s.dragLast), true
}

// Selected returns the selected item IDs in insertion order.
func (s *Scene) Selected() []int {
	var ids []int
	for _, item := range s.items {
		if s.selected[item.ID] {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

func (s *Scene) IsSelected(id int) bool {
	return s.selected[id]
}

func (s *Scene) AddShape(shape models.Shape) Item {
	item := &Item{ID: s.nextID, Shape: shape}
	s.nextID++
	s.items = append(s.items, item)
	return *item
}

// Clear removes every item. The workspace stays.
func (s *Scene) Clear() {
	s.items = nil
	s.clearSelection()
	s.clearDrag()
}

// Shapes exports item geometry in insertion order.
func (s *Scene) Shapes() models.Shapes {
	out := make(models.Shapes, len(s.items))
	for i, item := range s.items {
		out[i] = item.Shape
	}
	return out
}

// ItemAt returns the topmost item containing p.
func (s *Scene) ItemAt(p Point) (Item, bool) {
	if item := s.hit(p); item != nil {
		return *item, true
	}
	return Item{}, false
}

func (s *Scene) hit(p Point) *Item {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].Shape.Contains(p.X, p.Y) {
			return s.items[i]
		}
	}
	return nil
}

// Tap selects only the topmost item under p when the select tool is
// active. Tapping empty space clears the selection.
func (s *Scene) Tap(p Point) {
	if s.tool != ToolSelect {
		return
	}
	s.clearSelection()
	if item := s.hit(p); item != nil {
		s.selected[item.ID] = true
	}
}

// DeleteSelected removes every selected item and reports whether any was.
func (s *Scene) DeleteSelected() bool {
	if len(s.selected) == 0 {
		return false
	}
	kept := s.items[:0]
	for _, item := range s.items {
		if !s.selected[item.ID] {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.clearSelection()
	return true
}

// BeginDrag starts a drawing preview for rect and circle tools. With the
// select tool, pressing on an item moves the selection (selecting the item
// first if needed) and pressing on empty space starts a rubber band.
func (s *Scene) BeginDrag(p Point) bool {
	s.clearDrag()

	switch s.tool {
	case ToolRect, ToolCircle:
		s.dragStart = p
		s.preview = s.previewShape(p)
	case ToolSelect:
		s.dragStart = p
		s.dragLast = p
		if item := s.hit(p); item != nil {
			if !s.selected[item.ID] {
				s.clearSelection()
				s.selected[item.ID] = true
			}
			s.moving = true
		} else {
			s.clearSelection()
			s.banding = true
		}
	default:
		return false
	}

	s.dragging = true
	return true
}

func (s *Scene) DragTo(p Point) {
	if !s.dragging {
		return
	}

	switch {
	case s.moving:
		dx, dy := p.X-s.dragLast.X, p.Y-s.dragLast.Y
		for _, item := range s.items {
			if s.selected[item.ID] {
				item.Shape = item.Shape.Translate(dx, dy)
			}
		}
	case s.banding:
	default:
		s.preview = s.previewShape(p)
	}
	s.dragLast = p
}

// EndDrag finishes the current drag and reports whether shapes changed.
// A drawing preview becomes a regular item unless it has no area. A rubber
// band selects every item whose bounds it intersects.
func (s *Scene) EndDrag() bool {
	if !s.dragging {
		return false
	}
	defer s.clearDrag()

	switch {
	case s.moving:
		return s.dragLast != s.dragStart
	case s.banding:
		band := boxBetween(s.dragStart, s.dragLast)
		for _, item := range s.items {
			if intersects(band, item.Shape.Bounds()) {
				s.selected[item.ID] = true
			}
		}
		return false
	}

	if s.preview == nil || degenerate(s.preview) {
		return false
	}
	s.AddShape(s.preview)
	return true
}

func (s *Scene) CancelDrag() {
	s.clearDrag()
}

func (s *Scene) Dragging() bool {
	return s.dragging
}

func (s *Scene) previewShape(p Point) models.Shape {
	b := boxBetween(s.dragStart, p)
	if s.tool == ToolCircle {
		side := math.Min(b.Width(), b.Height())
		return models.Circle{CX: b.MinX + side/2, CY: b.MinY + side/2, R: side / 2}
	}
	return models.Rect{X: b.MinX, Y: b.MinY, W: b.Width(), H: b.Height()}
}

func (s *Scene) clearDrag() {
	s.dragging = false
	s.moving = false
	s.banding = false
	s.preview = nil
}

func (s *Scene) clearSelection() {
	s.selected = make(map[int]bool)
}

func boxBetween(a, b Point) models.Box {
	return models.Box{
		MinX: math.Min(a.X, b.X),
		MinY: math.Min(a.Y, b.Y),
		MaxX: math.Max(a.X, b.X),
		MaxY: math.Max(a.Y, b.Y),
	}
}

func intersects(a, b models.Box) bool {
	return a.MinX <= b.MaxX && b.MinX <= a.MaxX && a.MinY <= b.MaxY && b.MinY <= a.MaxY
}

func degenerate(shape models.Shape) bool {
	b := shape.Bounds()
	return b.Width() <= 0 || b.Height() <= 0
}
