package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/decaysim/internal/decay"
	"github.com/san-kum/decaysim/internal/export"
	"go.uber.org/zap"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

type Store struct {
	baseDir string
	log     *zap.Logger
}

func New(baseDir string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{baseDir: baseDir, log: log}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Isotope   decay.Isotope `json:"isotope"`
	Params    decay.Params  `json:"params"`
	Lambda    float64       `json:"lambda"`
	Tau       float64       `json:"tau"`
	TMax      float64       `json:"t_max"`
	Summary   decay.Summary `json:"summary"`
	LogScale  bool          `json:"log_scale"`
}

// NewRunID returns "<symbol>_<8 hex chars>".
func NewRunID(iso decay.Isotope) string {
	sym := strings.ToLower(iso.Symbol)
	if sym == "" {
		sym = "run"
	}
	return fmt.Sprintf("%s_%s", sym, uuid.NewString()[:8])
}

// Save writes the curve's metadata and sample table under a fresh run id.
// A failed save removes the partial run directory.
func (s *Store) Save(c *decay.Curve, logScale bool) (runID string, err error) {
	runID = NewRunID(c.Isotope)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			runID = ""
			if rmErr := os.RemoveAll(runDir); rmErr != nil {
				s.log.Warn("failed to remove partial run", zap.String("dir", runDir), zap.Error(rmErr))
			}
		}
	}()

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Isotope:   c.Isotope,
		Params:    c.Params,
		Lambda:    c.Lambda,
		Tau:       c.Tau,
		TMax:      c.MaxUnit,
		Summary:   c.Summary(),
		LogScale:  logScale,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}
	if err := writeSamples(filepath.Join(runDir, samplesFile), c); err != nil {
		return "", fmt.Errorf("write samples: %w", err)
	}

	s.log.Debug("run saved",
		zap.String("run_id", runID),
		zap.String("isotope", c.Isotope.Symbol),
		zap.Int("samples", c.Len()))
	return runID, nil
}

func writeJSON(path string, v any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer closeFile(f, &err)

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSamples(path string, c *decay.Curve) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer closeFile(f, &err)

	return export.WriteCSV(f, c)
}

// closeFile reports the close error unless an earlier one is pending.
func closeFile(f *os.File, err *error) {
	if cerr := f.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			s.log.Warn("skipping unreadable run", zap.String("dir", entry.Name()), zap.Error(err))
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]decay.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	_, samples, err := export.ReadSamplesCSV(file)
	return samples, err
}

// LoadCurve rebuilds the curve of a saved run.
func (s *Store) LoadCurve(runID string) (*decay.Curve, *RunMetadata, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	c := &decay.Curve{
		Isotope:    meta.Isotope,
		Params:     meta.Params,
		Lambda:     meta.Lambda,
		Tau:        meta.Tau,
		MaxSeconds: meta.Params.Multiple * meta.Isotope.HalfLife,
		MaxUnit:    meta.TMax,
		Samples:    samples,
	}
	return c, meta, nil
}
