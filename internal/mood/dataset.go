package mood

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMissingColumn is returned when the dataset header lacks a column.
var ErrMissingColumn = errors.New("missing dataset column")

// datasetColumns are the required header names, matched case-insensitively.
var datasetColumns = []string{"energy", "danceability", "valence", "mood"}

// ReadSamples parses a CSV dataset with a header containing Energy,
// Danceability, Valence and Mood columns. Extra columns are ignored.
func ReadSamples(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	cols := make([]int, len(datasetColumns))
	for i, name := range datasetColumns {
		idx, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		cols[i] = idx
	}

	var samples []Sample
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line, err)
		}

		var values [3]float64
		for i := range values {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[cols[i]]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d %s: %w", line, datasetColumns[i], err)
			}
			values[i] = v
		}

		label := strings.TrimSpace(record[cols[3]])
		if label == "" {
			return nil, fmt.Errorf("line %d: empty mood", line)
		}

		samples = append(samples, Sample{
			Features: FeatureVector{Energy: values[0], Danceability: values[1], Valence: values[2]},
			Mood:     label,
		})
	}

	return samples, nil
}
