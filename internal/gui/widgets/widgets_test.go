package widgets

import (
	"testing"

	"linux-engraver/internal/models"
	"linux-engraver/internal/scene"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCanvas(t *testing.T) *DesignCanvas {
	t.Helper()
	test.NewTempApp(t)

	c := NewDesignCanvas(scene.New(100, 100))
	// 400x400 view over 200x200 scene bounds: scale 2, origin at (100,100)
	c.Resize(fyne.NewSize(400, 400))
	return c
}

func drag(c *DesignCanvas, from, to fyne.Position) {
	c.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: to},
		Dragged:    fyne.NewDelta(to.X-from.X, to.Y-from.Y),
	})
	c.DragEnd()
}

func TestDesignCanvasDrawRect(t *testing.T) {
	c := newTestCanvas(t)
	changes := 0
	c.SetOnChanged(func() { changes++ })
	c.SetTool(scene.ToolRect)

	drag(c, fyne.NewPos(120, 140), fyne.NewPos(180, 200))

	require.Len(t, c.ExportShapes(), 1)
	assert.Equal(t, models.Rect{X: 10, Y: 20, W: 30, H: 30}, c.ExportShapes()[0])
	assert.Equal(t, 1, changes)
}

func TestDesignCanvasDrawCircle(t *testing.T) {
	c := newTestCanvas(t)
	c.SetTool(scene.ToolCircle)

	drag(c, fyne.NewPos(100, 100), fyne.NewPos(140, 160))

	require.Len(t, c.ExportShapes(), 1)
	assert.Equal(t, models.Circle{CX: 10, CY: 10, R: 10}, c.ExportShapes()[0])
}

func TestDesignCanvasTapSelectAndDelete(t *testing.T) {
	c := newTestCanvas(t)
	c.AddShape(models.Rect{X: 0, Y: 0, W: 20, H: 20})

	c.Tapped(&fyne.PointEvent{Position: fyne.NewPos(110, 110)})
	assert.Len(t, c.Scene().Selected(), 1)

	assert.True(t, c.DeleteSelected())
	assert.Empty(t, c.ExportShapes())
}

func TestDesignCanvasCursorReportsMillimetres(t *testing.T) {
	c := newTestCanvas(t)

	var got scene.Point
	inside := false
	c.SetOnCursor(func(p scene.Point, in bool) {
		got, inside = p, in
	})

	c.MouseMoved(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(150, 120)}})
	assert.True(t, inside)
	assert.InDelta(t, 25, got.X, 1e-6)
	assert.InDelta(t, 10, got.Y, 1e-6)

	c.MouseOut()
	assert.False(t, inside)
}

func TestDesignCanvasRendersItems(t *testing.T) {
	c := newTestCanvas(t)
	r := test.WidgetRenderer(c)
	before := len(r.Objects())

	c.AddShape(models.Circle{CX: 50, CY: 50, R: 5})

	assert.Equal(t, before+1, len(r.Objects()))
}

func TestToolbarActiveTool(t *testing.T) {
	test.NewTempApp(t)
	tb := NewToolbar()

	var picked string
	tb.SetToolHandler(func(tool string) { picked = tool })

	assert.Equal(t, widget.HighImportance, tb.selectButton.Importance)

	test.Tap(tb.CircleButton)
	assert.Equal(t, ToolCircle, picked)
	assert.Equal(t, widget.HighImportance, tb.CircleButton.Importance)
	assert.Equal(t, widget.MediumImportance, tb.selectButton.Importance)
	assert.True(t, tb.DeleteButton.Disabled())

	test.Tap(tb.selectButton)
	assert.Equal(t, ToolSelect, picked)
	assert.False(t, tb.DeleteButton.Disabled())
}

func TestToolbarFileActions(t *testing.T) {
	test.NewTempApp(t)
	tb := NewToolbar()

	var calls []string
	tb.SetNewHandler(func() { calls = append(calls, "new") })
	tb.SetOpenHandler(func() { calls = append(calls, "open") })
	tb.SetSaveHandler(func() { calls = append(calls, "save") })
	tb.SetExportHandler(func() { calls = append(calls, "export") })

	test.Tap(tb.NewButton)
	test.Tap(tb.openButton)
	test.Tap(tb.SaveButton)
	test.Tap(tb.exportButton)

	assert.Equal(t, []string{"new", "open", "save", "export"}, calls)
}

func TestDesignCanvasRubberBandSelection(t *testing.T) {
	c := newTestCanvas(t)
	c.AddShape(models.Rect{X: 20, Y: 20, W: 20, H: 20})
	c.AddShape(models.Rect{X: 70, Y: 70, W: 10, H: 10})
	r := test.WidgetRenderer(c)
	changes := 0
	c.SetOnChanged(func() { changes++ })

	// press on empty paper, then sweep across the first rect only
	c.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(112, 112)},
		Dragged:    fyne.NewDelta(2, 2),
	})
	before := len(r.Objects())
	c.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(160, 160)},
		Dragged:    fyne.NewDelta(48, 48),
	})
	_, banding := c.Scene().Band()
	assert.True(t, banding)
	assert.Equal(t, before, len(r.Objects()))

	c.DragEnd()

	assert.Len(t, c.Scene().Selected(), 1)
	assert.Equal(t, models.Rect{X: 20, Y: 20, W: 20, H: 20}, c.ExportShapes()[0])
	assert.Equal(t, before-1, len(r.Objects()))
	assert.Zero(t, changes)

	assert.True(t, c.DeleteSelected())
	assert.Equal(t, models.Shapes{models.Rect{X: 70, Y: 70, W: 10, H: 10}}, c.ExportShapes())
	assert.Equal(t, 1, changes)
}

func TestDesignCanvasClearShapes(t *testing.T) {
	c := newTestCanvas(t)
	c.AddShape(models.Rect{X: 0, Y: 0, W: 20, H: 20})
	c.SetTool(scene.ToolRect)
	c.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(150, 150)},
		Dragged:    fyne.NewDelta(10, 10),
	})

	c.ClearShapes()

	assert.Empty(t, c.ExportShapes())
	assert.Nil(t, c.Scene().Preview())
	c.DragEnd()
	assert.Empty(t, c.ExportShapes())
}

func TestDesignCanvasWorkspaceAndTool(t *testing.T) {
	c := newTestCanvas(t)

	c.SetWorkspaceSize(300, 200)
	c.SetTool(scene.ToolCircle)

	assert.Equal(t, models.Rect{W: 300, H: 200}, c.Scene().Workspace())
	assert.Equal(t, scene.ToolCircle, c.Scene().Tool())
}
