package compare

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// palette is the fixed 9-color cycle for cluster labels. Label values
// index it modulo its length.
var palette = []color.Color{
	color.RGBA{R: 0x37, G: 0x7e, B: 0xb8, A: 0xff},
	color.RGBA{R: 0xff, G: 0x7f, B: 0x00, A: 0xff},
	color.RGBA{R: 0x4d, G: 0xaf, B: 0x4a, A: 0xff},
	color.RGBA{R: 0xf7, G: 0x81, B: 0xbf, A: 0xff},
	color.RGBA{R: 0xa6, G: 0x56, B: 0x28, A: 0xff},
	color.RGBA{R: 0x98, G: 0x4e, B: 0xa3, A: 0xff},
	color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff},
	color.RGBA{R: 0xe4, G: 0x1a, B: 0x1c, A: 0xff},
	color.RGBA{R: 0xde, G: 0xde, B: 0x00, A: 0xff},
}

// sentinelColor marks outlier points (the Noise label).
var sentinelColor = color.RGBA{A: 0xff}

// ColorFor maps a cluster label to its plot color. Negative labels (the
// outlier sentinel) always map to black, however many clusters exist.
func ColorFor(label int) color.Color {
	if label < 0 {
		return sentinelColor
	}
	return palette[label%len(palette)]
}

// CellData is everything one grid cell renders: the standardized
// points, their labels, the elapsed fit time, and the column title
// (empty outside the first row).
type CellData struct {
	Title   string
	Points  [][]float64
	Labels  []int
	Elapsed time.Duration
}

// Grid assembles scatter plots into a rows × cols figure. There is no
// shared implicitly-current figure: cells are drawn through explicit
// (row, col) calls and nothing else mutates the canvas.
type Grid struct {
	rows, cols int
	plots      [][]*plot.Plot
}

// NewGrid returns an empty grid with the given dimensions.
func NewGrid(rows, cols int) *Grid {
	plots := make([][]*plot.Plot, rows)
	for r := range plots {
		plots[r] = make([]*plot.Plot, cols)
	}
	return &Grid{rows: rows, cols: cols, plots: plots}
}

// Rows returns the number of grid rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of grid columns.
func (g *Grid) Cols() int { return g.cols }

// NumCells returns the total cell count.
func (g *Grid) NumCells() int { return g.rows * g.cols }

// Filled returns how many cells have been drawn.
func (g *Grid) Filled() int {
	var n int
	for _, row := range g.plots {
		for _, p := range row {
			if p != nil {
				n++
			}
		}
	}
	return n
}

// Cell draws one scatter plot into the given grid position: points
// colored by label, fixed [-2.5, 2.5] axes, no tick labels, elapsed fit
// time in the lower-right corner.
func (g *Grid) Cell(row, col int, data CellData) error {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return fmt.Errorf("compare: cell (%d,%d) outside %dx%d grid", row, col, g.rows, g.cols)
	}
	if len(data.Points) != len(data.Labels) {
		return fmt.Errorf("compare: %d points but %d labels", len(data.Points), len(data.Labels))
	}

	p := plot.New()
	p.Title.Text = data.Title
	p.X.Min, p.X.Max = -2.5, 2.5
	p.Y.Min, p.Y.Max = -2.5, 2.5
	p.X.Tick.Marker = plot.ConstantTicks(nil)
	p.Y.Tick.Marker = plot.ConstantTicks(nil)

	// One scatter per label so each gets its palette color.
	byLabel := make(map[int]plotter.XYs)
	for i, pt := range data.Points {
		l := data.Labels[i]
		byLabel[l] = append(byLabel[l], plotter.XY{X: pt[0], Y: pt[1]})
	}
	for label, xys := range byLabel {
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("compare: scatter for label %d: %w", label, err)
		}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(1)
		s.GlyphStyle.Color = ColorFor(label)
		p.Add(s)
	}

	stamp, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: 1.3, Y: -2.35}},
		Labels: []string{fmt.Sprintf("%.2fs", data.Elapsed.Seconds())},
	})
	if err != nil {
		return fmt.Errorf("compare: time label: %w", err)
	}
	p.Add(stamp)

	g.plots[row][col] = p
	return nil
}

// WritePNG renders the whole grid into a single PNG figure.
func (g *Grid) WritePNG(w io.Writer) error {
	const cellSize = 4 * vg.Centimeter

	img := vgimg.New(vg.Length(g.cols)*cellSize, vg.Length(g.rows)*cellSize)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: g.rows,
		Cols: g.cols,
		PadX: vg.Millimeter,
		PadY: vg.Millimeter,
	}

	canvases := plot.Align(g.plots, tiles, dc)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.plots[r][c] != nil {
				g.plots[r][c].Draw(canvases[r][c])
			}
		}
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("compare: write png: %w", err)
	}
	return nil
}
