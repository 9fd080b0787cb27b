// Package catalog holds the static mood-keyed song catalog.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// Common errors.
var (
	ErrNoMoods       = errors.New("catalog has no moods")
	ErrEmptyMood     = errors.New("mood has no songs")
	ErrUncoveredMood = errors.New("mood missing from catalog")
)

// Mood is a categorical mood label, such as "Happy".
type Mood string

// Reference moods.
const (
	Happy        Mood = "Happy"
	Sad          Mood = "Sad"
	Motivational Mood = "Motivational"
	Party        Mood = "Party"
)

// Song is a catalog entry. ImageFile and AudioFile are bare filenames
// relative to the image and audio asset directories.
type Song struct {
	Name      string
	Artist    string
	ImageFile string
	AudioFile string
}

// Record is a song paired with its mood, as stored outside the process.
type Record struct {
	Mood Mood
	Song
}

// Catalog maps moods to ordered song lists. It is immutable after
// construction and safe for concurrent reads.
type Catalog struct {
	songs map[Mood][]Song
	moods []Mood
}

// New creates a catalog from the given mapping. The input is copied.
func New(songs map[Mood][]Song) (*Catalog, error) {
	if len(songs) == 0 {
		return nil, ErrNoMoods
	}

	c := &Catalog{
		songs: make(map[Mood][]Song, len(songs)),
		moods: make([]Mood, 0, len(songs)),
	}
	for mood, list := range songs {
		if len(list) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptyMood, mood)
		}
		c.songs[mood] = slices.Clone(list)
		c.moods = append(c.moods, mood)
	}
	sort.Slice(c.moods, func(i, j int) bool { return c.moods[i] < c.moods[j] })

	return c, nil
}

// FromRecords builds a catalog from flat records, keeping record order
// within each mood.
func FromRecords(records []Record) (*Catalog, error) {
	songs := make(map[Mood][]Song)
	for _, r := range records {
		songs[r.Mood] = append(songs[r.Mood], r.Song)
	}
	return New(songs)
}

// Songs returns a copy of the songs for a mood.
func (c *Catalog) Songs(mood Mood) ([]Song, bool) {
	list, ok := c.songs[mood]
	if !ok {
		return nil, false
	}
	return slices.Clone(list), true
}

// Len returns the number of songs for a mood, or 0 if the mood is unknown.
func (c *Catalog) Len(mood Mood) int {
	return len(c.songs[mood])
}

// Moods returns the catalog's moods in sorted order.
func (c *Catalog) Moods() []Mood {
	return slices.Clone(c.moods)
}

// Records flattens the catalog, moods sorted and songs in catalog order.
func (c *Catalog) Records() []Record {
	var records []Record
	for _, mood := range c.moods {
		for _, s := range c.songs[mood] {
			records = append(records, Record{Mood: mood, Song: s})
		}
	}
	return records
}

// Covers reports an error if any label is not a mood in the catalog.
// Every label the predictor can emit must be covered.
func (c *Catalog) Covers(labels []string) error {
	var missing []string
	for _, l := range labels {
		if _, ok := c.songs[Mood(l)]; !ok {
			missing = append(missing, l)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrUncoveredMood, missing)
	}
	return nil
}
