package server

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/san-kum/decaysim/internal/catalog"
	"github.com/san-kum/decaysim/internal/decay"
	"github.com/san-kum/decaysim/internal/export"
)

const (
	svgWidth  = 720
	svgHeight = 440
)

// ErrorResponse is the body of every 4xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// DecayResponse is returned by GET /decay.
type DecayResponse struct {
	Isotope decay.Isotope  `json:"isotope"`
	Params  decay.Params   `json:"params"`
	Lambda  float64        `json:"lambda"`
	Tau     float64        `json:"tau"`
	TMax    float64        `json:"t_max"`
	Summary decay.Summary  `json:"summary"`
	Samples []decay.Sample `json:"samples"`
}

func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":   "healthy",
		"isotopes": catalog.Len(),
	})
}

func (s *Server) ListIsotopes(c echo.Context) error {
	return c.JSON(http.StatusOK, catalog.All())
}

func (s *Server) GetIsotope(c echo.Context) error {
	iso, err := catalog.Lookup(c.Param("key"))
	if err != nil {
		return s.handleError(c, err)
	}
	return c.JSON(http.StatusOK, iso)
}

func (s *Server) ListUnits(c echo.Context) error {
	return c.JSON(http.StatusOK, catalog.Units())
}

func (s *Server) GetDecay(c echo.Context) error {
	curve, err := s.curveFromQuery(c)
	if err != nil {
		return s.handleError(c, err)
	}
	return c.JSON(http.StatusOK, DecayResponse{
		Isotope: curve.Isotope,
		Params:  curve.Params,
		Lambda:  curve.Lambda,
		Tau:     curve.Tau,
		TMax:    curve.MaxUnit,
		Summary: curve.Summary(),
		Samples: curve.Samples,
	})
}

func (s *Server) GetDecayCSV(c echo.Context) error {
	curve, err := s.curveFromQuery(c)
	if err != nil {
		return s.handleError(c, err)
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, curve); err != nil {
		return err
	}
	s.metrics.RecordExport("csv")

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", export.CSVFileName(curve.Isotope)))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (s *Server) GetDecaySVG(c echo.Context) error {
	curve, err := s.curveFromQuery(c)
	if err != nil {
		return s.handleError(c, err)
	}

	logScale := s.cfg.LogScale
	if v := c.QueryParam("log"); v != "" {
		logScale, err = strconv.ParseBool(v)
		if err != nil {
			return s.handleError(c, &decay.ParameterError{Field: "log", Value: math.NaN(), Reason: "must be a boolean"})
		}
	}
	s.metrics.RecordExport("svg")
	return c.Blob(http.StatusOK, "image/svg+xml", []byte(export.CurveToSVG(curve, svgWidth, svgHeight, logScale)))
}

// curveFromQuery resolves the query against the configured defaults and
// returns the (possibly cached) curve.
func (s *Server) curveFromQuery(c echo.Context) (*decay.Curve, error) {
	iso, p, err := s.paramsFromQuery(c)
	if err != nil {
		s.metrics.RecordInvalid(iso.Symbol)
		return nil, err
	}

	key := cacheKey(iso, p)
	if v, ok := s.curves.Get(key); ok {
		s.metrics.RecordCacheHit()
		return v.(*decay.Curve), nil
	}
	s.metrics.RecordCacheMiss()

	start := time.Now()
	curve, err := decay.NewCurve(iso, p)
	if err != nil {
		s.metrics.RecordInvalid(iso.Symbol)
		return nil, err
	}
	s.metrics.RecordComputation(iso.Symbol, curve.Len(), time.Since(start).Seconds())
	s.curves.SetDefault(key, curve)
	return curve, nil
}

func (s *Server) paramsFromQuery(c echo.Context) (decay.Isotope, decay.Params, error) {
	key := c.QueryParam("isotope")
	if key == "" {
		key = s.cfg.Isotope
	}
	iso, err := catalog.Lookup(key)
	if err != nil {
		return decay.Isotope{}, decay.Params{}, err
	}

	unitName := c.QueryParam("unit")
	if unitName == "" {
		unitName = s.cfg.Unit
	}
	unit, err := catalog.ParseUnit(unitName)
	if err != nil {
		return iso, decay.Params{}, err
	}

	n0, err := floatParam(c, "n0", s.cfg.Initial)
	if err != nil {
		return iso, decay.Params{}, err
	}
	multiple, err := floatParam(c, "multiple", s.cfg.Multiple)
	if err != nil {
		return iso, decay.Params{}, err
	}
	if err := catalog.CheckMultiple(multiple); err != nil {
		return iso, decay.Params{}, err
	}
	samples := s.cfg.Samples
	if v := c.QueryParam("samples"); v != "" {
		samples, err = strconv.Atoi(v)
		if err != nil {
			return iso, decay.Params{}, &decay.ParameterError{Field: "sample_count", Value: math.NaN(), Reason: "must be an integer"}
		}
	}

	p := decay.Params{
		Initial:    n0,
		UnitFactor: unit.Seconds,
		Unit:       unit.Name,
		Multiple:   multiple,
		Samples:    samples,
	}
	return iso, p, p.Validate(iso.HalfLife)
}

func floatParam(c echo.Context, name string, def float64) (float64, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &decay.ParameterError{Field: name, Value: math.NaN(), Reason: "must be a number"}
	}
	return f, nil
}

func cacheKey(iso decay.Isotope, p decay.Params) string {
	return strings.Join([]string{
		iso.Symbol,
		strconv.FormatFloat(p.Initial, 'g', -1, 64),
		p.Unit,
		strconv.FormatFloat(p.Multiple, 'g', -1, 64),
		strconv.Itoa(p.Samples),
	}, "|")
}

func (s *Server) handleError(c echo.Context, err error) error {
	var pe *decay.ParameterError
	switch {
	case errors.As(err, &pe):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Field: pe.Field})
	case errors.Is(err, catalog.ErrUnknownIsotope):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Field: "isotope"})
	case errors.Is(err, catalog.ErrUnknownUnit):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Field: "unit"})
	}
	return err
}
