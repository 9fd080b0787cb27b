// Package mood validates listener scores and predicts a mood from them.
package mood

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Score bounds, inclusive.
const (
	MinScore = 1.0
	MaxScore = 10.0
)

// ErrInvalidInput matches any *InvalidInputError via errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InputErrorKind classifies an input validation failure.
type InputErrorKind int

const (
	// NonNumeric means a score could not be parsed as a finite number.
	NonNumeric InputErrorKind = iota + 1
	// OutOfRange means a score parsed but lies outside [MinScore, MaxScore].
	OutOfRange
)

func (k InputErrorKind) String() string {
	switch k {
	case NonNumeric:
		return "non-numeric"
	case OutOfRange:
		return "out of range"
	default:
		return "unknown"
	}
}

// InvalidInputError reports which field failed validation and why.
type InvalidInputError struct {
	Kind  InputErrorKind
	Field string
	Value string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Kind)
}

// Is lets errors.Is(err, ErrInvalidInput) match.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// FeatureVector holds the three listener scores, each in [1, 10].
type FeatureVector struct {
	Energy       float64
	Danceability float64
	Valence      float64
}

// Slice returns the scores in model feature order.
func (v FeatureVector) Slice() []float64 {
	return []float64{v.Energy, v.Danceability, v.Valence}
}

// ParseFeatures parses and validates raw form values.
// All three values are parsed before any range check, so a non-numeric
// value is reported even when another value is out of range.
func ParseFeatures(energy, danceability, valence string) (FeatureVector, error) {
	fields := []struct {
		name string
		raw  string
	}{
		{"energy", energy},
		{"danceability", danceability},
		{"valence", valence},
	}

	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f.raw), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return FeatureVector{}, &InvalidInputError{Kind: NonNumeric, Field: f.name, Value: f.raw}
		}
		values[i] = v
	}

	for i, f := range fields {
		if values[i] < MinScore || values[i] > MaxScore {
			return FeatureVector{}, &InvalidInputError{Kind: OutOfRange, Field: f.name, Value: f.raw}
		}
	}

	return FeatureVector{
		Energy:       values[0],
		Danceability: values[1],
		Valence:      values[2],
	}, nil
}
