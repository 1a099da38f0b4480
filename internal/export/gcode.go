// Package export writes designs out in machine formats.
//
// The G-code writer is an early stub: it traces each shape contour once at
// Z=0 and knows nothing about tool diameter, stepover, depth per pass,
// lead-ins or spindle control.
package export

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"linux-engraver/internal/models"
)

type Options struct {
	SafeZ          float64
	PlungeFeed     float64
	CutFeed        float64
	CircleSegments int
}

func DefaultOptions() Options {
	return Options{
		SafeZ:          5.0,
		PlungeFeed:     300.0,
		CutFeed:        600.0,
		CircleSegments: 36,
	}
}

func (o Options) Validate() error {
	if o.SafeZ <= 0 {
		return fmt.Errorf("safe Z must be > 0, got %v", o.SafeZ)
	}
	if o.PlungeFeed <= 0 || o.CutFeed <= 0 {
		return fmt.Errorf("feed rates must be > 0, got plunge=%v cut=%v", o.PlungeFeed, o.CutFeed)
	}
	if o.CircleSegments < 3 {
		return fmt.Errorf("circle segments must be >= 3, got %d", o.CircleSegments)
	}
	return nil
}

// Lines renders the whole program without trailing newlines.
func Lines(doc *models.Document, opts Options) ([]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("gcode options: %w", err)
	}

	lines := preamble(opts)
	for i, shape := range doc.Shapes {
		moves, err := shapeMoves(shape, opts)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		lines = append(lines, moves...)
	}
	return append(lines, postamble(opts)...), nil
}

// Export writes the program to w, one command per line.
func Export(doc *models.Document, w io.Writer, opts Options) error {
	lines, err := Lines(doc, opts)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(lines, "\n") + "\n"); err != nil {
		return fmt.Errorf("write gcode: %w", err)
	}
	return bw.Flush()
}

func ExportFile(doc *models.Document, path string, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := Export(doc, f, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func preamble(opts Options) []string {
	return []string{
		"; Linux Engraver stub G-code",
		"G90 ; absolute positioning",
		"G21 ; units in mm",
		fmt.Sprintf("G0 Z%.1f ; safe height", opts.SafeZ),
	}
}

func postamble(opts Options) []string {
	return []string{
		fmt.Sprintf("G0 Z%.1f", opts.SafeZ),
		"M5 ; spindle stop",
		"M2 ; program end",
	}
}

func shapeMoves(shape models.Shape, opts Options) ([]string, error) {
	switch s := shape.(type) {
	case models.Rect:
		return rectMoves(s, opts), nil
	case models.Circle:
		return circleMoves(s, opts), nil
	default:
		return nil, fmt.Errorf("%w: %T", models.ErrUnknownShape, shape)
	}
}

func rectMoves(r models.Rect, opts Options) []string {
	x, y, w, h := r.X, r.Y, r.W, r.H
	return []string{
		fmt.Sprintf("G0 X%.3f Y%.3f", x, y),
		plunge(opts),
		fmt.Sprintf("G1 X%.3f Y%.3f F%.1f", x+w, y, opts.CutFeed),
		fmt.Sprintf("G1 X%.3f Y%.3f", x+w, y+h),
		fmt.Sprintf("G1 X%.3f Y%.3f", x, y+h),
		fmt.Sprintf("G1 X%.3f Y%.3f", x, y),
		retract(opts),
	}
}

// circleMoves approximates the circle with a closed polygon of
// CircleSegments edges, starting at angle zero.
func circleMoves(c models.Circle, opts Options) []string {
	n := opts.CircleSegments
	point := func(i int) (float64, float64) {
		a := 2 * math.Pi * float64(i) / float64(n)
		return c.CX + c.R*math.Cos(a), c.CY + c.R*math.Sin(a)
	}

	x0, y0 := point(0)
	lines := make([]string, 0, n+3)
	lines = append(lines, fmt.Sprintf("G0 X%.3f Y%.3f", x0, y0), plunge(opts))
	for i := 1; i <= n; i++ {
		x, y := point(i)
		lines = append(lines, fmt.Sprintf("G1 X%.3f Y%.3f F%.1f", x, y, opts.CutFeed))
	}
	return append(lines, retract(opts))
}

func plunge(opts Options) string {
	return fmt.Sprintf("G1 Z0.000 F%.1f", opts.PlungeFeed)
}

func retract(opts Options) string {
	return fmt.Sprintf("G0 Z%.3f", opts.SafeZ)
}
