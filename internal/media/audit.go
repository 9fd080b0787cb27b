package media

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/dhowden/tag"
	"github.com/hajimehoshi/go-mp3"
	"go.uber.org/zap"

	"github.com/justestif/go-mood-song-recommender/internal/catalog"
)

// AudioInfo describes an audio asset found during an audit.
type AudioInfo struct {
	Mood     catalog.Mood
	Song     catalog.Song
	Title    string        // embedded tag title, if any
	Artist   string        // embedded tag artist, if any
	Duration time.Duration // zero if the stream could not be decoded
	Err      error         // decode failure, nil if readable
}

// AuditReport summarizes asset availability for a catalog.
type AuditReport struct {
	Songs         int
	MissingImages []string
	MissingAudio  []string
	Audio         []AudioInfo
}

// OK reports whether every referenced asset is present and readable.
func (r *AuditReport) OK() bool {
	if len(r.MissingImages) > 0 || len(r.MissingAudio) > 0 {
		return false
	}
	for _, a := range r.Audio {
		if a.Err != nil {
			return false
		}
	}
	return true
}

// Audit checks every catalog song against the store. Missing assets are
// reported, never treated as fatal; only context cancellation stops it.
func Audit(ctx context.Context, c *catalog.Catalog, store *Store) (*AuditReport, error) {
	report := &AuditReport{}

	for _, rec := range c.Records() {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		report.Songs++

		if !store.Exists(path.Join(ImageDir, rec.ImageFile)) {
			report.MissingImages = append(report.MissingImages, rec.ImageFile)
		}

		name := path.Join(AudioDir, rec.AudioFile)
		if !store.Exists(name) {
			report.MissingAudio = append(report.MissingAudio, rec.AudioFile)
			continue
		}

		info := AudioInfo{Mood: rec.Mood, Song: rec.Song}
		info.Title, info.Artist, info.Duration, info.Err = inspectAudio(store, name)
		report.Audio = append(report.Audio, info)
	}

	return report, nil
}

// inspectAudio reads embedded tags and decodes the MP3 stream length.
// A file without tags is not an error.
func inspectAudio(store *Store, name string) (title, artist string, d time.Duration, err error) {
	f, _, err := store.Open(name)
	if err != nil {
		return "", "", 0, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	switch {
	case err == nil:
		title, artist = m.Title(), m.Artist()
	case errors.Is(err, tag.ErrNoTagsFound):
	default:
		return "", "", 0, fmt.Errorf("reading tags: %w", err)
	}

	if _, err := f.Seek(0, 0); err != nil {
		return title, artist, 0, fmt.Errorf("rewinding: %w", err)
	}

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return title, artist, 0, fmt.Errorf("decoding mp3: %w", err)
	}

	// Decoded output is 16-bit stereo: 4 bytes per sample frame.
	if n := dec.Length(); n > 0 && dec.SampleRate() > 0 {
		d = time.Duration(n) * time.Second / time.Duration(4*dec.SampleRate())
	}

	return title, artist, d, nil
}

// Log writes the report through logger.
func (r *AuditReport) Log(logger *zap.Logger) {
	for _, name := range r.MissingImages {
		logger.Warn("catalog image missing", zap.String("image", name))
	}
	for _, name := range r.MissingAudio {
		logger.Warn("catalog audio missing", zap.String("audio", name))
	}
	for _, a := range r.Audio {
		if a.Err != nil {
			logger.Warn("catalog audio unreadable", zap.String("audio", a.Song.AudioFile), zap.Error(a.Err))
			continue
		}
		logger.Debug("catalog audio",
			zap.String("mood", string(a.Mood)),
			zap.String("audio", a.Song.AudioFile),
			zap.String("tag_title", a.Title),
			zap.String("tag_artist", a.Artist),
			zap.Duration("duration", a.Duration))
	}

	logger.Info("asset audit complete",
		zap.Int("songs", r.Songs),
		zap.Int("missing_images", len(r.MissingImages)),
		zap.Int("missing_audio", len(r.MissingAudio)),
		zap.Bool("ok", r.OK()))
}
