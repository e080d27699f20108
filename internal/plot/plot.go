// Package plot draws the alpha-cuts of fuzzy sets as scatter plots, one
// colour per set, with distinct glyphs for interval starts, ends and interiors.
package plot

import (
	"fmt"
	"io"
	"strings"

	gonum "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgsvg"

	"github.com/ppiankov/alphacut/internal/fuzzy"
)

// Series is one labelled fuzzy set
type Series struct {
	Name string
	Set  *fuzzy.FuzzySet
}

// Options controls the rendered image
type Options struct {
	Title        string
	WidthInches  float64
	HeightInches float64
	Format       string // png or svg
}

var formats = map[string]bool{"png": true, "svg": true}

// ParseFormat normalises an image format name
func ParseFormat(name string) (string, error) {
	f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "."))
	if !formats[f] {
		return "", fmt.Errorf("unsupported plot format %q (expected png or svg)", name)
	}
	return f, nil
}

// Build assembles a plot of every series. Series without cuts are skipped.
func Build(series []Series, title string) (*gonum.Plot, error) {
	p := gonum.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "membership"
	p.Y.Min = 0
	p.Y.Max = 1.05
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for i, s := range series {
		left, right, inside := split(s.Set.PointsToPlot())
		if len(left)+len(right)+len(inside) == 0 {
			continue
		}
		c := plotutil.Color(i)

		layers := []struct {
			xys   plotter.XYs
			shape draw.GlyphDrawer
			r     vg.Length
		}{
			{inside, draw.CircleGlyph{}, vg.Points(1)},
			{left, draw.BoxGlyph{}, vg.Points(3)},
			{right, draw.PyramidGlyph{}, vg.Points(3)},
		}
		var thumb *plotter.Scatter
		for _, l := range layers {
			if len(l.xys) == 0 {
				continue
			}
			sc, err := plotter.NewScatter(l.xys)
			if err != nil {
				return nil, fmt.Errorf("series %s: %w", s.Name, err)
			}
			sc.GlyphStyle.Color = c
			sc.GlyphStyle.Shape = l.shape
			sc.GlyphStyle.Radius = l.r
			p.Add(sc)
			thumb = sc
		}
		p.Legend.Add(s.Name, thumb)
	}
	return p, nil
}

func split(points []fuzzy.PlotPoint) (left, right, inside plotter.XYs) {
	for _, pt := range points {
		xy := plotter.XY{X: pt.Coord, Y: pt.Level}
		switch pt.Side {
		case fuzzy.SideLeft:
			left = append(left, xy)
		case fuzzy.SideRight:
			right = append(right, xy)
		default:
			inside = append(inside, xy)
		}
	}
	return left, right, inside
}

// Render draws series and writes the encoded image to w
func Render(w io.Writer, series []Series, opts Options) error {
	format, err := ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	if opts.WidthInches <= 0 || opts.HeightInches <= 0 {
		return fmt.Errorf("plot size must be positive, got %gx%g inches", opts.WidthInches, opts.HeightInches)
	}

	p, err := Build(series, opts.Title)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(vg.Length(opts.WidthInches)*vg.Inch, vg.Length(opts.HeightInches)*vg.Inch, format)
	if err != nil {
		return fmt.Errorf("create %s canvas: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	return nil
}
