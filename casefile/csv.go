package casefile

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/janssenerikw/Geothermal-SWM-Pond-Thermal-Mitigation/pond"
)

// ResultRow is one line of a batch result table: the case followed by its
// solution.
type ResultRow struct {
	Case
	ThetaP2   float64 `csv:"theta_p2"`
	ThetaH1   float64 `csv:"theta_h1"`
	ThetaH2   float64 `csv:"theta_h2"`
	Q         float64 `csv:"q"`
	Residual  float64 `csv:"residual"`
	Confirmed bool    `csv:"confirmed"`
	Perturbed bool    `csv:"perturbed"`
}

// NewResultRow joins a case and its solution.
func NewResultRow(c Case, r pond.Result) ResultRow {
	return ResultRow{
		Case:      c,
		ThetaP2:   r.ThetaP2,
		ThetaH1:   r.ThetaH1,
		ThetaH2:   r.ThetaH2,
		Q:         r.Q,
		Residual:  r.Residual,
		Confirmed: r.Confirmed,
		Perturbed: r.Perturbed,
	}
}

type sweepRow struct {
	FlowH     float64 `csv:"flow_h"`
	ThetaP2   float64 `csv:"theta_p2"`
	ThetaH1   float64 `csv:"theta_h1"`
	ThetaH2   float64 `csv:"theta_h2"`
	Q         float64 `csv:"q"`
	Confirmed bool    `csv:"confirmed"`
}

/*
ReadCases reads a CSV batch table.

	Args:
		r: CSV with a header row naming the columns name, theta_g, theta_p1,
		   flow_p, flow_h, r_shx, r_ghx, l_shx, l_ghx and optionally rho_p,
		   rho_h, c_p, c_h

	Returns:
		cases in row order, water properties filled where omitted
*/
func ReadCases(r io.Reader) ([]Case, error) {
	var cases []Case
	if err := gocsv.Unmarshal(r, &cases); err != nil {
		return nil, fmt.Errorf("decode case table: %w", err)
	}

	for i := range cases {
		cases[i].Params = cases[i].Params.WithWaterDefaults()
		if cases[i].Name == "" {
			cases[i].Name = fmt.Sprintf("row-%d", i+1)
		}
		if err := cases[i].Validate(); err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", i+1, cases[i].Name, err)
		}
	}
	return cases, nil
}

// WriteResults writes a batch result table.
func WriteResults(w io.Writer, rows []ResultRow) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("encode result table: %w", err)
	}
	return nil
}

// WriteSweep writes one row per sweep point.
func WriteSweep(w io.Writer, points []pond.SweepPoint) error {
	rows := make([]sweepRow, len(points))
	for i, pt := range points {
		rows[i] = sweepRow{
			FlowH:     pt.FlowH,
			ThetaP2:   pt.Result.ThetaP2,
			ThetaH1:   pt.Result.ThetaH1,
			ThetaH2:   pt.Result.ThetaH2,
			Q:         pt.Result.Q,
			Confirmed: pt.Result.Confirmed,
		}
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("encode sweep table: %w", err)
	}
	return nil
}
