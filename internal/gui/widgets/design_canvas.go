package widgets

import (
	"image/color"
	"math"

	"linux-engraver/internal/models"
	"linux-engraver/internal/scene"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	dashLength = 6.0
	dashGap    = 4.0
)

var (
	workspaceFill   = color.White
	workspaceStroke = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	shapeStroke     = color.Black
	previewStroke   = color.NRGBA{A: 178}
	bandFill        = color.NRGBA{R: 51, G: 153, B: 255, A: 40}
	backdrop        = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
)

// DesignCanvas draws a scene.Scene and turns pointer input into scene
// operations. One scene unit (1 mm) maps to the largest pixel scale that
// fits the whole workspace plus margin.
type DesignCanvas struct {
	widget.BaseWidget

	scene *scene.Scene

	dragActive bool

	onChanged func()
	onCursor  func(p scene.Point, inside bool)
}

var (
	_ fyne.Tappable     = (*DesignCanvas)(nil)
	_ fyne.Draggable    = (*DesignCanvas)(nil)
	_ desktop.Hoverable = (*DesignCanvas)(nil)
)

func NewDesignCanvas(sc *scene.Scene) *DesignCanvas {
	c := &DesignCanvas{scene: sc}
	c.ExtendBaseWidget(c)
	return c
}

func (c *DesignCanvas) Scene() *scene.Scene {
	return c.scene
}

// SetOnChanged registers a callback fired after the scene content changes
// through user interaction.
func (c *DesignCanvas) SetOnChanged(handler func()) {
	c.onChanged = handler
}

// SetOnCursor registers a callback receiving the pointer position in mm.
func (c *DesignCanvas) SetOnCursor(handler func(p scene.Point, inside bool)) {
	c.onCursor = handler
}

func (c *DesignCanvas) SetTool(tool scene.Tool) {
	c.dragActive = false
	c.scene.SetTool(tool)
	c.Refresh()
}

func (c *DesignCanvas) SetWorkspaceSize(width, height float64) {
	c.scene.SetWorkspaceSize(width, height)
	c.Refresh()
}

func (c *DesignCanvas) ClearShapes() {
	c.dragActive = false
	c.scene.Clear()
	c.Refresh()
}

func (c *DesignCanvas) AddShape(shape models.Shape) {
	c.scene.AddShape(shape)
	c.Refresh()
}

func (c *DesignCanvas) ExportShapes() models.Shapes {
	return c.scene.Shapes()
}

func (c *DesignCanvas) DeleteSelected() bool {
	if !c.scene.DeleteSelected() {
		return false
	}
	c.Refresh()
	c.changed()
	return true
}

// CancelDrag abandons the gesture in progress, dropping any preview.
func (c *DesignCanvas) CancelDrag() {
	c.dragActive = false
	c.scene.CancelDrag()
	c.Refresh()
}

func (c *DesignCanvas) viewport() scene.Viewport {
	size := c.Size()
	return c.scene.FitScale(float64(size.Width), float64(size.Height))
}

func (c *DesignCanvas) toScene(pos fyne.Position) scene.Point {
	return c.viewport().ToScene(float64(pos.X), float64(pos.Y))
}

func (c *DesignCanvas) Tapped(ev *fyne.PointEvent) {
	c.scene.Tap(c.toScene(ev.Position))
	c.Refresh()
}

// Dragged receives per-event deltas; the first event of a gesture recovers
// the press position from it.
func (c *DesignCanvas) Dragged(ev *fyne.DragEvent) {
	if !c.dragActive {
		start := fyne.NewPos(ev.Position.X-ev.Dragged.DX, ev.Position.Y-ev.Dragged.DY)
		if !c.scene.BeginDrag(c.toScene(start)) {
			return
		}
		c.dragActive = true
	}

	p := c.toScene(ev.Position)
	c.scene.DragTo(p)
	c.Refresh()
	c.cursor(p, true)
}

func (c *DesignCanvas) DragEnd() {
	if !c.dragActive {
		return
	}
	c.dragActive = false

	changed := c.scene.EndDrag()
	c.Refresh()
	if changed {
		c.changed()
	}
}

func (c *DesignCanvas) MouseIn(ev *desktop.MouseEvent) {
	c.cursor(c.toScene(ev.Position), true)
}

func (c *DesignCanvas) MouseMoved(ev *desktop.MouseEvent) {
	c.cursor(c.toScene(ev.Position), true)
}

func (c *DesignCanvas) MouseOut() {
	c.cursor(scene.Point{}, false)
}

func (c *DesignCanvas) changed() {
	if c.onChanged != nil {
		c.onChanged()
	}
}

func (c *DesignCanvas) cursor(p scene.Point, inside bool) {
	if c.onCursor != nil {
		c.onCursor(p, inside)
	}
}

func (c *DesignCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &designCanvasRenderer{
		canvas:     c,
		background: canvas.NewRectangle(backdrop),
	}
	r.rebuild(c.Size())
	return r
}

type designCanvasRenderer struct {
	canvas     *DesignCanvas
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
}

func (r *designCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(320, 240)
}

func (r *designCanvasRenderer) Layout(size fyne.Size) {
	r.rebuild(size)
}

func (r *designCanvasRenderer) Refresh() {
	r.rebuild(r.canvas.Size())
	canvas.Refresh(r.canvas)
}

func (r *designCanvasRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *designCanvasRenderer) Destroy() {}

// rebuild regenerates the drawing objects. The scene is small, so a full
// rebuild per refresh keeps the renderer stateless.
func (r *designCanvasRenderer) rebuild(size fyne.Size) {
	sc := r.canvas.scene
	vp := sc.FitScale(float64(size.Width), float64(size.Height))

	r.background.Resize(size)
	r.background.Move(fyne.NewPos(0, 0))
	objects := []fyne.CanvasObject{r.background}

	ws := sc.Workspace()
	paper := canvas.NewRectangle(workspaceFill)
	placeBox(paper, vp, ws.Bounds())
	objects = append(objects, paper)
	objects = append(objects, dashedOutline(vp, ws.Bounds(), workspaceStroke)...)

	accent := theme.Color(theme.ColorNamePrimary)
	for _, item := range sc.Items() {
		stroke := color.Color(shapeStroke)
		width := float32(1)
		if sc.IsSelected(item.ID) {
			stroke = accent
			width = 2
		}
		objects = append(objects, shapeObject(item.Shape, vp, stroke, width))
	}

	if preview := sc.Preview(); preview != nil {
		objects = append(objects, shapeObject(preview, vp, previewStroke, 1))
	}

	if band, ok := sc.Band(); ok {
		rubber := canvas.NewRectangle(bandFill)
		rubber.StrokeColor = accent
		rubber.StrokeWidth = 1
		placeBox(rubber, vp, band)
		objects = append(objects, rubber)
	}

	r.objects = objects
}

func shapeObject(shape models.Shape, vp scene.Viewport, stroke color.Color, width float32) fyne.CanvasObject {
	var obj fyne.CanvasObject

	switch shape.Kind() {
	case models.KindCircle:
		circle := canvas.NewCircle(color.Transparent)
		circle.StrokeColor = stroke
		circle.StrokeWidth = width
		obj = circle
	default:
		rect := canvas.NewRectangle(color.Transparent)
		rect.StrokeColor = stroke
		rect.StrokeWidth = width
		obj = rect
	}

	placeBox(obj, vp, shape.Bounds())
	return obj
}

func placeBox(obj fyne.CanvasObject, vp scene.Viewport, b models.Box) {
	x1, y1 := vp.ToView(scene.Point{X: b.MinX, Y: b.MinY})
	x2, y2 := vp.ToView(scene.Point{X: b.MaxX, Y: b.MaxY})
	obj.Move(fyne.NewPos(float32(x1), float32(y1)))
	obj.Resize(fyne.NewSize(float32(x2-x1), float32(y2-y1)))
}

func dashedOutline(vp scene.Viewport, b models.Box, stroke color.Color) []fyne.CanvasObject {
	x1, y1 := vp.ToView(scene.Point{X: b.MinX, Y: b.MinY})
	x2, y2 := vp.ToView(scene.Point{X: b.MaxX, Y: b.MaxY})

	var out []fyne.CanvasObject
	out = append(out, dashes(x1, y1, x2, y1, stroke)...)
	out = append(out, dashes(x2, y1, x2, y2, stroke)...)
	out = append(out, dashes(x2, y2, x1, y2, stroke)...)
	out = append(out, dashes(x1, y2, x1, y1, stroke)...)
	return out
}

// dashes splits a straight segment into dash lines of dashLength pixels.
func dashes(x1, y1, x2, y2 float64, stroke color.Color) []fyne.CanvasObject {
	length := math.Hypot(x2-x1, y2-y1)
	if length == 0 {
		return nil
	}
	ux, uy := (x2-x1)/length, (y2-y1)/length

	var out []fyne.CanvasObject
	for d := 0.0; d < length; d += dashLength + dashGap {
		end := math.Min(d+dashLength, length)
		line := canvas.NewLine(stroke)
		line.StrokeWidth = 1
		line.Position1 = fyne.NewPos(float32(x1+ux*d), float32(y1+uy*d))
		line.Position2 = fyne.NewPos(float32(x1+ux*end), float32(y1+uy*end))
		out = append(out, line)
	}
	return out
}
