package recommend

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justestif/go-mood-song-recommender/internal/catalog"
)

func songs(names ...string) []catalog.Song {
	out := make([]catalog.Song, len(names))
	for i, n := range names {
		out[i] = catalog.Song{Name: n, ImageFile: n + ".jpg", AudioFile: n + ".mp3"}
	}
	return out
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(map[catalog.Mood][]catalog.Song{
		catalog.Happy: songs("h1", "h2", "h3", "h4", "h5", "h6", "h7", "h8"),
		catalog.Sad:   songs("s1", "s2", "s3"),
		"Single":      songs("only"),
	})
	require.NoError(t, err)
	return c
}

func assertUnique(t *testing.T, got []catalog.Song) {
	t.Helper()
	seen := make(map[string]bool, len(got))
	for _, s := range got {
		assert.False(t, seen[s.Name], "duplicate song %q", s.Name)
		seen[s.Name] = true
	}
}

func TestSampleSize(t *testing.T) {
	s := NewSampler(testCatalog(t), WithRand(rand.New(rand.NewPCG(1, 2))))

	tests := []struct {
		mood catalog.Mood
		want int
	}{
		{catalog.Happy, 6},
		{catalog.Sad, 3},
		{"Single", 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.mood), func(t *testing.T) {
			got, err := s.Sample(tt.mood)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
			assertUnique(t, got)
		})
	}
}

func TestSampleDrawsFromMood(t *testing.T) {
	c := testCatalog(t)
	s := NewSampler(c)
	all, _ := c.Songs(catalog.Happy)

	for i := 0; i < 50; i++ {
		got, err := s.Sample(catalog.Happy)
		require.NoError(t, err)
		require.Len(t, got, 6)
		assertUnique(t, got)
		for _, song := range got {
			assert.Contains(t, all, song)
		}
	}
}

func TestSampleDoesNotMutateCatalog(t *testing.T) {
	c := testCatalog(t)
	before, _ := c.Songs(catalog.Happy)

	s := NewSampler(c, WithRand(rand.New(rand.NewPCG(7, 7))))
	for i := 0; i < 10; i++ {
		_, err := s.Sample(catalog.Happy)
		require.NoError(t, err)
	}

	after, _ := c.Songs(catalog.Happy)
	assert.Equal(t, before, after)
}

func TestSampleIsRandomized(t *testing.T) {
	s := NewSampler(testCatalog(t), WithRand(rand.New(rand.NewPCG(3, 4))))

	orders := make(map[string]bool)
	for i := 0; i < 20; i++ {
		got, err := s.Sample(catalog.Happy)
		require.NoError(t, err)
		key := ""
		for _, song := range got {
			key += song.Name + ","
		}
		orders[key] = true
	}
	assert.Greater(t, len(orders), 1)
}

func TestSampleEveryPositionReachable(t *testing.T) {
	s := NewSampler(testCatalog(t), WithSampleSize(1), WithRand(rand.New(rand.NewPCG(5, 6))))

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		got, err := s.Sample(catalog.Sad)
		require.NoError(t, err)
		require.Len(t, got, 1)
		seen[got[0].Name] = true
	}
	assert.Len(t, seen, 3)
}

func TestSampleUnknownMood(t *testing.T) {
	s := NewSampler(testCatalog(t))

	got, err := s.Sample("Angry")
	assert.ErrorIs(t, err, ErrUnknownMood)
	assert.Nil(t, got)
}

func TestSamplerOptions(t *testing.T) {
	s := NewSampler(testCatalog(t), WithSampleSize(0), WithRand(nil))
	assert.Equal(t, DefaultSampleSize, s.size)
	assert.Equal(t, globalRand{}, s.rand)

	s = NewSampler(testCatalog(t), WithSampleSize(2))
	got, err := s.Sample(catalog.Happy)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
