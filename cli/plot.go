package cli

import (
	"image/color"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"go.viam.com/robotsim/spatialmath"
)

const plotSize = 5 * vg.Inch

var pathColor = color.RGBA{R: 66, G: 133, B: 244, A: 255}

// savePathPlot draws the ground track of poses and saves it to path. The image format follows
// the file extension (png, svg, pdf, ...).
func savePathPlot(path, title string, poses []spatialmath.Pose2D) error {
	xys := make(plotter.XYs, len(poses))
	for i, pose := range poses {
		xys[i].X = pose.X
		xys[i].Y = pose.Y
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return errors.Wrap(err, "cannot plot path")
	}
	line.LineStyle.Color = pathColor
	line.LineStyle.Width = vg.Points(1.5)
	points.GlyphStyle.Color = pathColor
	p.Add(plotter.NewGrid(), line, points)

	if err := p.Save(plotSize, plotSize, path); err != nil {
		return errors.Wrapf(err, "cannot save plot to %s", path)
	}
	return nil
}
