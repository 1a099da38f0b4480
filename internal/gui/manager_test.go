package gui

import (
	"errors"
	"testing"

	"linux-engraver/internal/logger"
	"linux-engraver/internal/models"
	"linux-engraver/internal/scene"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, fyne.Window) {
	t.Helper()
	a := test.NewTempApp(t)
	w := a.NewWindow("test")

	m := NewManager(w, scene.New(100, 100), models.DefaultMaterial(), logger.NoOpLogger{})
	w.SetContent(m.GetMainContainer())
	w.Resize(fyne.NewSize(1200, 800))
	return m, w
}

func TestManagerShowErrorOpensErrorDialog(t *testing.T) {
	m, w := newTestManager(t)
	require.Nil(t, w.Canvas().Overlays().Top())

	m.ShowError("Save failed", "Could not save file", errors.New("disk full"))

	assert.NotNil(t, w.Canvas().Overlays().Top())
}

func TestManagerForwardsToolbarActions(t *testing.T) {
	m, _ := newTestManager(t)

	var tool string
	saved := false
	m.SetToolHandler(func(name string) { tool = name })
	m.SetSaveHandler(func() { saved = true })

	test.Tap(m.toolbar.RectButton)
	test.Tap(m.toolbar.SaveButton)

	assert.Equal(t, "rect", tool)
	assert.True(t, saved)
	assert.Equal(t, widget.HighImportance, m.toolbar.RectButton.Importance)
}

func TestManagerCanvasChangeUpdatesCount(t *testing.T) {
	m, _ := newTestManager(t)
	changes := 0
	m.SetChangeHandler(func() { changes++ })
	m.Canvas().AddShape(models.Rect{X: 0, Y: 0, W: 10, H: 10})

	m.canvas.Scene().Tap(scene.Point{X: 5, Y: 5})
	test.Tap(m.toolbar.DeleteButton)

	assert.Empty(t, m.Canvas().ExportShapes())
	assert.Equal(t, 1, changes)
}

func TestManagerDeleteWithoutSelection(t *testing.T) {
	m, _ := newTestManager(t)

	test.Tap(m.toolbar.DeleteButton)

	assert.Equal(t, "Nothing selected", m.statusBar.Status())
}

func TestManagerShutdownDetachesHandlers(t *testing.T) {
	m, _ := newTestManager(t)

	calls := 0
	m.SetNewHandler(func() { calls++ })
	m.SetToolHandler(func(string) { calls++ })

	sc := m.canvas.Scene()
	sc.SetTool(scene.ToolRect)
	require.True(t, sc.BeginDrag(scene.Point{X: 1, Y: 1}))

	m.Shutdown()
	m.Shutdown()

	assert.False(t, sc.Dragging())
	test.Tap(m.toolbar.NewButton)
	test.Tap(m.toolbar.CircleButton)
	assert.Zero(t, calls)
}
