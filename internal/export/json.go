package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/decaysim/internal/decay"
)

type ExportData struct {
	Isotope decay.Isotope  `json:"isotope"`
	Params  decay.Params   `json:"params"`
	Lambda  float64        `json:"lambda"`
	Tau     float64        `json:"tau"`
	TMax    float64        `json:"t_max"`
	Steps   int            `json:"steps"`
	Summary decay.Summary  `json:"summary"`
	Samples []decay.Sample `json:"samples"`
}

func NewExportData(c *decay.Curve) ExportData {
	return ExportData{
		Isotope: c.Isotope,
		Params:  c.Params,
		Lambda:  c.Lambda,
		Tau:     c.Tau,
		TMax:    c.MaxUnit,
		Steps:   c.Len(),
		Summary: c.Summary(),
		Samples: c.Samples,
	}
}

func WriteJSON(w io.Writer, c *decay.Curve) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewExportData(c))
}
