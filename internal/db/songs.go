package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/justestif/go-mood-song-recommender/internal/catalog"
)

// Song is a row of the songs table.
type Song struct {
	Mood      string `db:"mood"`
	Position  int    `db:"position"`
	Name      string `db:"name"`
	Artist    string `db:"artist"`
	ImageFile string `db:"image_file"`
	AudioFile string `db:"audio_file"`
}

// SongRepository handles song database operations.
type SongRepository struct {
	pool *pgxpool.Pool
}

// All returns every song ordered by mood and position.
// Returns ErrNotFound if the table is empty.
func (r *SongRepository) All(ctx context.Context) ([]catalog.Record, error) {
	query := `
		SELECT mood, position, name, artist, image_file, audio_file
		FROM songs
		ORDER BY mood, position
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying songs: %w", err)
	}

	songs, err := pgx.CollectRows(rows, pgx.RowToStructByName[Song])
	if err != nil {
		return nil, fmt.Errorf("scanning songs: %w", err)
	}
	if len(songs) == 0 {
		return nil, ErrNotFound
	}

	return ToRecords(songs), nil
}

// UpsertBatch writes records, numbering positions per mood in input order.
func (r *SongRepository) UpsertBatch(ctx context.Context, records []catalog.Record) error {
	if len(records) == 0 {
		return nil
	}

	query := `
		INSERT INTO songs (mood, position, name, artist, image_file, audio_file)
		SELECT * FROM unnest($1::text[], $2::int[], $3::text[], $4::text[], $5::text[], $6::text[])
		ON CONFLICT (mood, position) DO UPDATE SET
			name = EXCLUDED.name,
			artist = EXCLUDED.artist,
			image_file = EXCLUDED.image_file,
			audio_file = EXCLUDED.audio_file
	`

	songs := FromRecords(records)
	moods := make([]string, len(songs))
	positions := make([]int, len(songs))
	names := make([]string, len(songs))
	artists := make([]string, len(songs))
	images := make([]string, len(songs))
	audios := make([]string, len(songs))

	for i, s := range songs {
		moods[i] = s.Mood
		positions[i] = s.Position
		names[i] = s.Name
		artists[i] = s.Artist
		images[i] = s.ImageFile
		audios[i] = s.AudioFile
	}

	_, err := r.pool.Exec(ctx, query, moods, positions, names, artists, images, audios)
	if err != nil {
		return fmt.Errorf("batch upserting songs: %w", err)
	}
	return nil
}

// DeleteAll removes every song.
func (r *SongRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM songs`); err != nil {
		return fmt.Errorf("deleting songs: %w", err)
	}
	return nil
}

// ToRecords converts rows to catalog records. Rows are expected in
// (mood, position) order.
func ToRecords(songs []Song) []catalog.Record {
	records := make([]catalog.Record, len(songs))
	for i, s := range songs {
		records[i] = catalog.Record{
			Mood: catalog.Mood(s.Mood),
			Song: catalog.Song{
				Name:      s.Name,
				Artist:    s.Artist,
				ImageFile: s.ImageFile,
				AudioFile: s.AudioFile,
			},
		}
	}
	return records
}

// FromRecords converts catalog records to rows, numbering positions from
// zero within each mood.
func FromRecords(records []catalog.Record) []Song {
	next := make(map[catalog.Mood]int)
	songs := make([]Song, len(records))
	for i, r := range records {
		songs[i] = Song{
			Mood:      string(r.Mood),
			Position:  next[r.Mood],
			Name:      r.Name,
			Artist:    r.Artist,
			ImageFile: r.ImageFile,
			AudioFile: r.AudioFile,
		}
		next[r.Mood]++
	}
	return songs
}

// LoadCatalog reads the songs table into an immutable catalog.
func (db *DB) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	records, err := db.Songs().All(ctx)
	if err != nil {
		return nil, err
	}
	c, err := catalog.FromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	return c, nil
}
