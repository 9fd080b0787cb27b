package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		songs   map[Mood][]Song
		wantErr error
	}{
		{
			name:    "no moods",
			songs:   nil,
			wantErr: ErrNoMoods,
		},
		{
			name: "empty mood",
			songs: map[Mood][]Song{
				Happy: {{Name: "a"}},
				Sad:   {},
			},
			wantErr: ErrEmptyMood,
		},
		{
			name: "valid",
			songs: map[Mood][]Song{
				Happy: {{Name: "a"}, {Name: "b"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.songs)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c)
		})
	}
}

func TestCatalogIsImmutable(t *testing.T) {
	input := map[Mood][]Song{Happy: {{Name: "one"}, {Name: "two"}}}
	c, err := New(input)
	require.NoError(t, err)

	input[Happy][0].Name = "changed"
	songs, ok := c.Songs(Happy)
	require.True(t, ok)
	assert.Equal(t, "one", songs[0].Name)

	songs[1].Name = "changed"
	again, _ := c.Songs(Happy)
	assert.Equal(t, "two", again[1].Name)
}

func TestSongsUnknownMood(t *testing.T) {
	songs, ok := Default().Songs("Angry")
	assert.False(t, ok)
	assert.Nil(t, songs)
	assert.Zero(t, Default().Len("Angry"))
}

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, []Mood{Happy, Motivational, Party, Sad}, c.Moods())
	for _, mood := range c.Moods() {
		assert.Equal(t, 6, c.Len(mood), "mood %s", mood)
	}

	happy, ok := c.Songs(Happy)
	require.True(t, ok)
	assert.Equal(t, "Yaarian (ABCD)", happy[0].Name)
	assert.Equal(t, "happy1.jpg", happy[0].ImageFile)
	assert.Equal(t, "happy1.mp3", happy[0].AudioFile)
}

func TestCovers(t *testing.T) {
	c := Default()

	assert.NoError(t, c.Covers([]string{"Happy", "Sad", "Motivational", "Party"}))

	err := c.Covers([]string{"Happy", "Chill"})
	assert.ErrorIs(t, err, ErrUncoveredMood)
	assert.Contains(t, err.Error(), "Chill")
}

func TestFromRecordsKeepsOrder(t *testing.T) {
	records := []Record{
		{Mood: Sad, Song: Song{Name: "s1"}},
		{Mood: Happy, Song: Song{Name: "h1"}},
		{Mood: Sad, Song: Song{Name: "s2"}},
	}

	c, err := FromRecords(records)
	require.NoError(t, err)

	sad, _ := c.Songs(Sad)
	assert.Equal(t, []Song{{Name: "s1"}, {Name: "s2"}}, sad)
	assert.Len(t, c.Records(), 3)
	assert.Equal(t, Happy, c.Records()[0].Mood)
}
