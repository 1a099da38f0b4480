package components

import (
	"fmt"
	"strconv"
	"strings"

	"linux-engraver/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// DimensionRange bounds one material entry.
type DimensionRange struct {
	Min      float64
	Max      float64
	Decimals int
}

var (
	PlanarRange    = DimensionRange{Min: 1.0, Max: 10000.0, Decimals: 2}
	ThicknessRange = DimensionRange{Min: 0.1, Max: 1000.0, Decimals: 3}
)

// Parse reads a value in mm. A trailing "mm" suffix is accepted.
func (r DimensionRange) Parse(text string) (float64, error) {
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "mm"))
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", text)
	}
	if value < r.Min || value > r.Max {
		return 0, fmt.Errorf("must be between %g and %g mm", r.Min, r.Max)
	}
	return value, nil
}

func (r DimensionRange) Format(value float64) string {
	return strconv.FormatFloat(value, 'f', r.Decimals, 64)
}

// MaterialPanel edits the stock dimensions of the current document.
type MaterialPanel struct {
	container *fyne.Container

	widthEntry     *widget.Entry
	heightEntry    *widget.Entry
	thicknessEntry *widget.Entry

	material   models.Material
	suppress   bool
	onMaterial func(models.Material)
}

func NewMaterialPanel(initial models.Material) *MaterialPanel {
	panel := &MaterialPanel{material: initial}
	panel.setupPanel()
	panel.SetMaterial(initial)
	return panel
}

func (mp *MaterialPanel) setupPanel() {
	mp.widthEntry = mp.newDimensionEntry(PlanarRange)
	mp.heightEntry = mp.newDimensionEntry(PlanarRange)
	mp.thicknessEntry = mp.newDimensionEntry(ThicknessRange)

	form := widget.NewForm(
		widget.NewFormItem("Width (mm)", mp.widthEntry),
		widget.NewFormItem("Height (mm)", mp.heightEntry),
		widget.NewFormItem("Thickness (mm)", mp.thicknessEntry),
	)

	mp.container = container.NewVBox(
		widget.NewLabelWithStyle("Material", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
	)
}

func (mp *MaterialPanel) newDimensionEntry(r DimensionRange) *widget.Entry {
	entry := widget.NewEntry()
	entry.Validator = func(text string) error {
		_, err := r.Parse(text)
		return err
	}
	entry.OnChanged = func(string) {
		mp.fieldChanged()
	}
	return entry
}

func (mp *MaterialPanel) GetContainer() *fyne.Container {
	return mp.container
}

func (mp *MaterialPanel) SetMaterialChangeHandler(handler func(models.Material)) {
	mp.onMaterial = handler
}

// SetMaterial shows m without notifying the change handler.
func (mp *MaterialPanel) SetMaterial(m models.Material) {
	mp.suppress = true
	defer func() { mp.suppress = false }()

	mp.material = m
	mp.widthEntry.SetText(PlanarRange.Format(m.Width))
	mp.heightEntry.SetText(PlanarRange.Format(m.Height))
	mp.thicknessEntry.SetText(ThicknessRange.Format(m.Thickness))
}

func (mp *MaterialPanel) Material() models.Material {
	return mp.material
}

func (mp *MaterialPanel) fieldChanged() {
	if mp.suppress {
		return
	}

	width, err := PlanarRange.Parse(mp.widthEntry.Text)
	if err != nil {
		return
	}
	height, err := PlanarRange.Parse(mp.heightEntry.Text)
	if err != nil {
		return
	}
	thickness, err := ThicknessRange.Parse(mp.thicknessEntry.Text)
	if err != nil {
		return
	}

	m, err := models.NewMaterial(width, height, thickness)
	if err != nil || m == mp.material {
		return
	}

	mp.material = m
	if mp.onMaterial != nil {
		mp.onMaterial(m)
	}
}
