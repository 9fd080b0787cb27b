package mood

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/muesli/clusters"
)

// ModelKind identifies the classifier artifact format.
const ModelKind = "nearest-prototype"

// featureNames defines the feature order expected by the model.
var featureNames = []string{"energy", "danceability", "valence"}

// Model errors.
var (
	ErrInvalidModel = errors.New("invalid model artifact")
	ErrUnknownCode  = errors.New("unknown class code")
)

// Prototype is a point in feature space labelled with a class code.
type Prototype struct {
	Code   int       `json:"code"`
	Center []float64 `json:"center"`
}

// Model is a nearest-prototype classifier: a vector is assigned the code
// of the closest prototype.
type Model struct {
	Kind       string      `json:"kind"`
	Features   []string    `json:"features"`
	Prototypes []Prototype `json:"prototypes"`
}

// Predict returns the class code of the prototype nearest to v.
// Ties resolve to the earlier prototype.
func (m *Model) Predict(v FeatureVector) (int, error) {
	if len(m.Prototypes) == 0 {
		return 0, fmt.Errorf("%w: no prototypes", ErrInvalidModel)
	}

	point := clusters.Coordinates(v.Slice())
	best := 0
	bestDist := point.Distance(m.Prototypes[0].Center)
	for i := 1; i < len(m.Prototypes); i++ {
		if d := point.Distance(m.Prototypes[i].Center); d < bestDist {
			best, bestDist = i, d
		}
	}
	return m.Prototypes[best].Code, nil
}

// Validate checks the model shape against the expected features.
func (m *Model) Validate() error {
	if m.Kind != ModelKind {
		return fmt.Errorf("%w: kind %q", ErrInvalidModel, m.Kind)
	}
	if len(m.Features) != len(featureNames) {
		return fmt.Errorf("%w: %d features, want %d", ErrInvalidModel, len(m.Features), len(featureNames))
	}
	for i, name := range featureNames {
		if m.Features[i] != name {
			return fmt.Errorf("%w: feature %d is %q, want %q", ErrInvalidModel, i, m.Features[i], name)
		}
	}
	if len(m.Prototypes) == 0 {
		return fmt.Errorf("%w: no prototypes", ErrInvalidModel)
	}
	for i, p := range m.Prototypes {
		if len(p.Center) != len(featureNames) {
			return fmt.Errorf("%w: prototype %d has %d dimensions", ErrInvalidModel, i, len(p.Center))
		}
		if p.Code < 0 {
			return fmt.Errorf("%w: prototype %d has negative code", ErrInvalidModel, i)
		}
	}
	return nil
}

// Encoder maps class codes to mood labels. Code i is Classes[i].
type Encoder struct {
	Classes []string `json:"classes"`
}

// Decode returns the label for a class code.
func (e *Encoder) Decode(code int) (string, error) {
	if code < 0 || code >= len(e.Classes) {
		return "", fmt.Errorf("%w: %d", ErrUnknownCode, code)
	}
	return e.Classes[code], nil
}

// Encode returns the class code for a label.
func (e *Encoder) Encode(label string) (int, bool) {
	for i, c := range e.Classes {
		if c == label {
			return i, true
		}
	}
	return 0, false
}

// Labels returns every label the encoder can produce.
func (e *Encoder) Labels() []string {
	return append([]string(nil), e.Classes...)
}

// LoadModel reads a classifier artifact from disk.
func LoadModel(path string) (*Model, error) {
	var m Model
	if err := readJSON(path, &m); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadEncoder reads a label decoder artifact from disk.
func LoadEncoder(path string) (*Encoder, error) {
	var e Encoder
	if err := readJSON(path, &e); err != nil {
		return nil, err
	}
	if len(e.Classes) == 0 {
		return nil, fmt.Errorf("%w: encoder has no classes", ErrInvalidModel)
	}
	return &e, nil
}

// Save writes the model artifact to path.
func (m *Model) Save(path string) error {
	return writeJSON(path, m)
}

// Save writes the encoder artifact to path.
func (e *Encoder) Save(path string) error {
	return writeJSON(path, e)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating artifact directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
