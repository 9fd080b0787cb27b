// Package recommend turns listener scores into a resolved song selection.
package recommend

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/justestif/go-mood-song-recommender/internal/catalog"
)

// DefaultSampleSize is the maximum number of songs returned per request.
const DefaultSampleSize = 6

// ErrUnknownMood is returned when a mood has no catalog entry.
var ErrUnknownMood = errors.New("unknown mood")

// Rand is the random source used for sampling.
type Rand interface {
	IntN(n int) int
}

// globalRand uses the goroutine-safe math/rand/v2 top-level source.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Sampler draws random songs for a mood.
type Sampler struct {
	catalog *catalog.Catalog
	size    int
	rand    Rand
}

// SamplerOption configures a Sampler.
type SamplerOption func(*Sampler)

// WithSampleSize sets the maximum number of songs drawn.
func WithSampleSize(n int) SamplerOption {
	return func(s *Sampler) {
		if n > 0 {
			s.size = n
		}
	}
}

// WithRand sets the random source. The source must be safe for the
// caller's concurrency; *rand.Rand is not.
func WithRand(r Rand) SamplerOption {
	return func(s *Sampler) {
		if r != nil {
			s.rand = r
		}
	}
}

// NewSampler creates a Sampler over the catalog.
func NewSampler(c *catalog.Catalog, opts ...SamplerOption) *Sampler {
	s := &Sampler{
		catalog: c,
		size:    DefaultSampleSize,
		rand:    globalRand{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sample returns min(size, catalog size) distinct songs for mood, drawn
// uniformly without replacement by a partial Fisher-Yates shuffle.
func (s *Sampler) Sample(mood catalog.Mood) ([]catalog.Song, error) {
	songs, ok := s.catalog.Songs(mood)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMood, mood)
	}

	n := min(s.size, len(songs))
	for i := 0; i < n; i++ {
		j := i + s.rand.IntN(len(songs)-i)
		songs[i], songs[j] = songs[j], songs[i]
	}

	return songs[:n], nil
}
