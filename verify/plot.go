package verify

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	scigoErrors "github.com/ezoic/regfixture/pkg/errors"
	"github.com/ezoic/regfixture/pkg/log"
)

// SavePlot draws observed against predicted responses with the identity
// line and writes the figure to path. The image format follows the file
// extension (.png, .svg, .pdf, ...).
func SavePlot(r *Report, path string) error {
	if r == nil || len(r.Observed) == 0 {
		return scigoErrors.NewModelError("verify.SavePlot", "report has no data", scigoErrors.ErrEmptyData)
	}
	if len(r.Observed) != len(r.Predicted) {
		return scigoErrors.NewDimensionError("verify.SavePlot", len(r.Observed), len(r.Predicted), 0)
	}

	pts := make(plotter.XYs, len(r.Observed))
	for i := range pts {
		pts[i].X = r.Predicted[i]
		pts[i].Y = r.Observed[i]
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return scigoErrors.WrapOp(err, "verify.SavePlot", "scatter")
	}
	scatter.GlyphStyle.Radius = vg.Points(1.5)

	lo := math.Min(floats.Min(r.Observed), floats.Min(r.Predicted))
	hi := math.Max(floats.Max(r.Observed), floats.Max(r.Predicted))
	identity, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return scigoErrors.WrapOp(err, "verify.SavePlot", "identity line")
	}
	identity.Width = vg.Points(1)
	identity.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p := plot.New()
	p.Title.Text = "Fixture fit"
	p.X.Label.Text = "predicted y"
	p.Y.Label.Text = "observed y"
	p.Add(plotter.NewGrid(), scatter, identity)
	p.Legend.Add("samples", scatter)
	p.Legend.Add("y = x", identity)
	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return scigoErrors.WrapOp(err, "verify.SavePlot", "save %s", path)
	}

	log.GetLoggerWithName("verify").Debug("Plot saved",
		log.OperationKey, log.OperationPlot,
		log.PathKey, path,
		log.SamplesKey, len(pts),
	)
	return nil
}
