// Package chart renders flow sweeps.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/janssenerikw/Geothermal-SWM-Pond-Thermal-Mitigation/pond"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var ErrNoConfirmedPoints = errors.New("sweep has no confirmed points")

const (
	width  = 6 * vg.Inch
	height = 7 * vg.Inch
)

var (
	heatColor  = color.RGBA{R: 200, G: 60, B: 40, A: 255}
	thetaColor = color.RGBA{R: 40, G: 90, B: 200, A: 255}
)

/*
SaveSweep draws the heat transfer rate and the pond outflow temperature
against the hydronic flow, one panel each.

	Args:
		points: sweep points; points that are not confirmed are left out
		path: output file; the extension selects the format (png, svg, pdf, ...)
*/
func SaveSweep(points []pond.SweepPoint, path string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")

	heat, theta := series(points)
	if len(heat) == 0 {
		return ErrNoConfirmedPoints
	}

	top, err := panel(heat, "Heat transfer rate", "q [W]", heatColor)
	if err != nil {
		return err
	}
	bottom, err := panel(theta, "Pond outflow temperature", "theta_p2 [degree C]", thetaColor)
	if err != nil {
		return err
	}
	top.X.Label.Text = ""

	c, err := draw.NewFormattedCanvas(width, height, format)
	if err != nil {
		return fmt.Errorf("output format %q: %w", format, err)
	}
	tiles := draw.Tiles{Rows: 2, Cols: 1, PadX: vg.Millimeter, PadY: 3 * vg.Millimeter}
	canvases := plot.Align([][]*plot.Plot{{top}, {bottom}}, tiles, draw.New(c))
	top.Draw(canvases[0][0])
	bottom.Draw(canvases[1][0])

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func series(points []pond.SweepPoint) (heat, theta plotter.XYs) {
	for _, pt := range points {
		if !pt.Result.Confirmed {
			continue
		}
		heat = append(heat, plotter.XY{X: pt.FlowH, Y: pt.Result.Q})
		theta = append(theta, plotter.XY{X: pt.FlowH, Y: pt.Result.ThetaP2})
	}
	return heat, theta
}

func panel(xys plotter.XYs, title, ylabel string, c color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "flow_h [L/min]"
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())

	line, marks, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", title, err)
	}
	line.Color = c
	marks.Color = c
	marks.Shape = draw.CircleGlyph{}
	p.Add(line, marks)
	return p, nil
}
