package mood

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// ErrNoSamples is returned when training is attempted without data.
var ErrNoSamples = errors.New("no training samples")

// TrainConfig holds training parameters.
type TrainConfig struct {
	PrototypesPerClass int // k-means clusters per mood (default: 3)
}

// DefaultTrainConfig returns the recommended default configuration.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{PrototypesPerClass: 3}
}

// Sample is a labelled training example.
type Sample struct {
	Features FeatureVector
	Mood     string
}

// sampleObservation wraps a Sample to implement clusters.Observation interface.
type sampleObservation struct {
	sample *Sample
	coords clusters.Coordinates
}

func (o sampleObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o sampleObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// Train fits a nearest-prototype model. Each mood is partitioned with
// k-means and every non-empty cluster center becomes a prototype for it.
// Classes are sorted, so the encoder matches a sorted label encoding.
func Train(samples []Sample, cfg TrainConfig) (*Model, *Encoder, error) {
	if len(samples) == 0 {
		return nil, nil, ErrNoSamples
	}
	if cfg.PrototypesPerClass <= 0 {
		cfg.PrototypesPerClass = DefaultTrainConfig().PrototypesPerClass
	}

	// Group samples by mood
	byMood := make(map[string][]*Sample)
	for i := range samples {
		s := &samples[i]
		byMood[s.Mood] = append(byMood[s.Mood], s)
	}

	classes := make([]string, 0, len(byMood))
	for m := range byMood {
		classes = append(classes, m)
	}
	slices.Sort(classes)

	model := &Model{
		Kind:     ModelKind,
		Features: slices.Clone(featureNames),
	}

	km := kmeans.New()
	for code, class := range classes {
		group := byMood[class]

		var obs clusters.Observations
		for _, s := range group {
			obs = append(obs, sampleObservation{
				sample: s,
				coords: clusters.Coordinates(s.Features.Slice()),
			})
		}

		k := min(cfg.PrototypesPerClass, len(obs))
		result, err := km.Partition(obs, k)
		if err != nil {
			return nil, nil, fmt.Errorf("partitioning %q: %w", class, err)
		}

		for _, cluster := range result {
			if len(cluster.Observations) == 0 {
				continue
			}
			model.Prototypes = append(model.Prototypes, Prototype{
				Code:   code,
				Center: slices.Clone([]float64(cluster.Center)),
			})
		}
	}

	return model, &Encoder{Classes: classes}, nil
}

// Split shuffles samples with a fixed seed and splits off a test fraction.
// The fraction is clamped to [0, 1].
func Split(samples []Sample, testFraction float64, seed uint64) (train, test []Sample) {
	shuffled := slices.Clone(samples)
	r := rand.New(rand.NewPCG(seed, seed))
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	n := int(float64(len(shuffled)) * min(max(testFraction, 0), 1))
	return shuffled[n:], shuffled[:n]
}

// Accuracy returns the fraction of samples the predictor labels correctly.
func Accuracy(p *Predictor, samples []Sample) (float64, error) {
	if len(samples) == 0 {
		return 0, ErrNoSamples
	}

	correct := 0
	for _, s := range samples {
		got, err := p.Predict(s.Features)
		if err != nil {
			return 0, err
		}
		if string(got) == s.Mood {
			correct++
		}
	}
	return float64(correct) / float64(len(samples)), nil
}
