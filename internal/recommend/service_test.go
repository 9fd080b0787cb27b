package recommend

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justestif/go-mood-song-recommender/internal/catalog"
	"github.com/justestif/go-mood-song-recommender/internal/media"
	"github.com/justestif/go-mood-song-recommender/internal/mood"
)

// mockPredictor returns a fixed mood and counts calls.
type mockPredictor struct {
	mood  catalog.Mood
	err   error
	panic bool
	calls int
}

func (m *mockPredictor) Predict(_ mood.FeatureVector) (catalog.Mood, error) {
	m.calls++
	if m.panic {
		panic("classifier exploded")
	}
	return m.mood, m.err
}

// countingSampler wraps a sampler and counts calls.
type countingSampler struct {
	SongSampler
	calls int
}

func (c *countingSampler) Sample(m catalog.Mood) ([]catalog.Song, error) {
	c.calls++
	return c.SongSampler.Sample(m)
}

// noAssets reports every asset missing.
type noAssets struct{}

func (noAssets) Exists(string) bool { return false }

func newTestService(t *testing.T, p *mockPredictor) (*Service, *countingSampler) {
	t.Helper()
	sampler := &countingSampler{SongSampler: NewSampler(catalog.Default())}
	resolver := media.NewResolver(noAssets{}, "", nil)
	return NewService(p, sampler, resolver, nil), sampler
}

func TestRecommendHappyScenario(t *testing.T) {
	p := &mockPredictor{mood: catalog.Happy}
	svc, _ := newTestService(t, p)
	base, _ := url.Parse("http://localhost:8080")

	res, err := svc.Recommend(Input{Energy: "7", Danceability: "8", Valence: "6"}, base)
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.Equal(t, catalog.Happy, res.Mood)
	assert.Equal(t, mood.FeatureVector{Energy: 7, Danceability: 8, Valence: 6}, res.Features)
	require.NotEmpty(t, res.Songs)
	assert.LessOrEqual(t, len(res.Songs), 6)

	happy, _ := catalog.Default().Songs(catalog.Happy)
	seen := make(map[string]bool)
	for _, s := range res.Songs {
		assert.Contains(t, happy, s.Song)
		assert.False(t, seen[s.Name])
		seen[s.Name] = true
		assert.Equal(t, "http://localhost:8080/static/placeholder.jpg", s.ImageURL)
		assert.Equal(t, "http://localhost:8080/audio/"+s.AudioFile, s.AudioURL)
	}
}

func TestRecommendInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		wantMsg string
	}{
		{"out of range", Input{Energy: "11", Danceability: "5", Valence: "5"}, MsgOutOfRange},
		{"non numeric", Input{Energy: "abc", Danceability: "5", Valence: "5"}, MsgNonNumeric},
		{"missing field", Input{Energy: "5", Valence: "5"}, MsgNonNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &mockPredictor{mood: catalog.Happy}
			svc, sampler := newTestService(t, p)

			res, err := svc.Recommend(tt.in, nil)
			assert.Nil(t, res)

			var recErr *Error
			require.True(t, errors.As(err, &recErr))
			assert.Equal(t, StageValidating, recErr.Stage)
			assert.Equal(t, tt.wantMsg, recErr.Message)
			assert.ErrorIs(t, err, mood.ErrInvalidInput)
			assert.NotErrorIs(t, err, ErrInternal)

			assert.Zero(t, p.calls, "predictor must not be called")
			assert.Zero(t, sampler.calls, "sampler must not be called")
		})
	}
}

func TestRecommendPredictorFailure(t *testing.T) {
	p := &mockPredictor{err: errors.New("boom")}
	svc, sampler := newTestService(t, p)

	res, err := svc.Recommend(Input{Energy: "5", Danceability: "5", Valence: "5"}, nil)
	assert.Nil(t, res)

	var recErr *Error
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, StagePredicting, recErr.Stage)
	assert.Equal(t, MsgInternal, recErr.Message)
	assert.NotContains(t, recErr.Message, "boom")
	assert.ErrorIs(t, err, ErrInternal)
	assert.Zero(t, sampler.calls)
}

func TestRecommendUnknownMood(t *testing.T) {
	svc, _ := newTestService(t, &mockPredictor{mood: "Angry"})

	_, err := svc.Recommend(Input{Energy: "5", Danceability: "5", Valence: "5"}, nil)

	var recErr *Error
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, StageSampling, recErr.Stage)
	assert.Equal(t, MsgInternal, recErr.Message)
	assert.ErrorIs(t, err, ErrUnknownMood)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestRecommendRecoversPanic(t *testing.T) {
	svc, _ := newTestService(t, &mockPredictor{panic: true})

	var res *Result
	var err error
	assert.NotPanics(t, func() {
		res, err = svc.Recommend(Input{Energy: "5", Danceability: "5", Valence: "5"}, nil)
	})
	assert.Nil(t, res)

	var recErr *Error
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, StagePredicting, recErr.Stage)
	assert.Equal(t, MsgInternal, recErr.Message)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestRecommendEveryMoodWithoutAssets(t *testing.T) {
	for _, m := range catalog.Default().Moods() {
		t.Run(string(m), func(t *testing.T) {
			svc, _ := newTestService(t, &mockPredictor{mood: m})
			res, err := svc.Recommend(Input{Energy: "1", Danceability: "10", Valence: "5"}, nil)
			require.NoError(t, err)
			assert.Len(t, res.Songs, 6)
			for _, s := range res.Songs {
				assert.NotEmpty(t, s.ImageURL)
				assert.NotEmpty(t, s.AudioURL)
			}
		})
	}
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "validating", StageValidating.String())
	assert.Equal(t, "responding", StageResponding.String())
	assert.Equal(t, "stage(42)", Stage(42).String())
}
