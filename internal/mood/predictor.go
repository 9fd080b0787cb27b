package mood

import (
	"errors"
	"fmt"

	"github.com/justestif/go-mood-song-recommender/internal/catalog"
)

// ErrModelUnavailable is returned when the classifier or label decoder
// cannot be loaded. It is fatal at startup.
var ErrModelUnavailable = errors.New("mood model unavailable")

// Classifier maps a feature vector to an internal class code.
type Classifier interface {
	Predict(v FeatureVector) (int, error)
}

// Decoder maps a class code to a mood label.
type Decoder interface {
	Decode(code int) (string, error)
	Labels() []string
}

// Predictor combines a classifier and a label decoder. It holds no mutable
// state and is safe for concurrent use.
type Predictor struct {
	classifier Classifier
	decoder    Decoder
}

// NewPredictor creates a Predictor from loaded artifacts.
func NewPredictor(classifier Classifier, decoder Decoder) (*Predictor, error) {
	if classifier == nil || decoder == nil {
		return nil, fmt.Errorf("%w: classifier and decoder are required", ErrModelUnavailable)
	}
	return &Predictor{classifier: classifier, decoder: decoder}, nil
}

// LoadPredictor loads both artifacts from disk. Every failure wraps
// ErrModelUnavailable.
func LoadPredictor(modelPath, encoderPath string) (*Predictor, error) {
	model, err := LoadModel(modelPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}

	encoder, err := LoadEncoder(encoderPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}

	for _, p := range model.Prototypes {
		if p.Code >= len(encoder.Classes) {
			return nil, fmt.Errorf("%w: prototype code %d has no label", ErrModelUnavailable, p.Code)
		}
	}

	return NewPredictor(model, encoder)
}

// Predict returns the mood for a feature vector.
func (p *Predictor) Predict(v FeatureVector) (catalog.Mood, error) {
	code, err := p.classifier.Predict(v)
	if err != nil {
		return "", fmt.Errorf("classifying features: %w", err)
	}

	label, err := p.decoder.Decode(code)
	if err != nil {
		return "", fmt.Errorf("decoding class %d: %w", code, err)
	}

	return catalog.Mood(label), nil
}

// Labels returns every mood the predictor can emit.
func (p *Predictor) Labels() []string {
	return p.decoder.Labels()
}
