package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/decaysim/internal/decay"
)

// CSVHeader returns the column titles for a curve sampled in unit.
func CSVHeader(unit string) []string {
	if unit == "" {
		unit = "s"
	}
	return []string{fmt.Sprintf("t (%s)", unit), "N(t)", "activity ∝ λN(t)"}
}

// CSVFileName returns the download name for an isotope's data table.
func CSVFileName(iso decay.Isotope) string {
	return "decay_" + strings.ReplaceAll(iso.Name, " ", "_") + ".csv"
}

// WriteCSV writes the curve as a header row followed by one row per sample.
// Numbers are written in plain decimal notation.
func WriteCSV(w io.Writer, c *decay.Curve) error {
	return WriteSamplesCSV(w, c.Params.Unit, c.Samples)
}

func WriteSamplesCSV(w io.Writer, unit string, samples []decay.Sample) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader(unit)); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{formatFloat(s.T), formatFloat(s.N), formatFloat(s.A)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadSamplesCSV parses a table written by WriteSamplesCSV and returns the
// unit taken from the first header cell.
func ReadSamplesCSV(r io.Reader) (string, []decay.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3

	records, err := cr.ReadAll()
	if err != nil {
		return "", nil, err
	}
	if len(records) == 0 {
		return "", nil, fmt.Errorf("empty table")
	}

	unit := strings.TrimSuffix(strings.TrimPrefix(records[0][0], "t ("), ")")
	samples := make([]decay.Sample, 0, len(records)-1)
	for i, rec := range records[1:] {
		var vals [3]float64
		for j := range vals {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				return "", nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			vals[j] = v
		}
		samples = append(samples, decay.Sample{T: vals[0], N: vals[1], A: vals[2]})
	}
	return unit, samples, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
