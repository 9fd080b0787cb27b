package media

import (
	"net/url"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/justestif/go-mood-song-recommender/internal/catalog"
)

// Public route prefixes.
const (
	StaticRoute = "static"
	AudioRoute  = "audio"
)

// DefaultPlaceholder is the placeholder image, relative to the asset root.
const DefaultPlaceholder = "placeholder.jpg"

// AssetChecker reports whether a relative asset exists.
type AssetChecker interface {
	Exists(name string) bool
}

// ResolvedSong is a catalog song with public URLs attached.
type ResolvedSong struct {
	catalog.Song
	ImageURL string
	AudioURL string
}

// Resolver builds public URLs for songs. It checks image existence on
// every call and keeps no cache.
type Resolver struct {
	assets      AssetChecker
	placeholder []string
	logger      *zap.Logger
}

// NewResolver creates a Resolver. placeholder is a slash-separated path
// relative to the asset root; empty means DefaultPlaceholder.
func NewResolver(assets AssetChecker, placeholder string, logger *zap.Logger) *Resolver {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		assets:      assets,
		placeholder: strings.Split(strings.Trim(placeholder, "/"), "/"),
		logger:      logger,
	}
}

// Resolve attaches image and audio URLs to a song. A missing image falls
// back to the placeholder; the audio URL is always built and checked only
// when served. base may be nil for root-relative URLs.
func (r *Resolver) Resolve(base *url.URL, s catalog.Song) ResolvedSong {
	resolved := ResolvedSong{Song: s}

	if s.ImageFile != "" && r.assets.Exists(path.Join(ImageDir, s.ImageFile)) {
		resolved.ImageURL = buildURL(base, StaticRoute, ImageDir, s.ImageFile)
	} else {
		r.logger.Warn("image not found, using placeholder",
			zap.String("song", s.Name),
			zap.String("image", s.ImageFile))
		resolved.ImageURL = buildURL(base, append([]string{StaticRoute}, r.placeholder...)...)
	}

	resolved.AudioURL = buildURL(base, AudioRoute, s.AudioFile)

	r.logger.Debug("resolved song",
		zap.String("song", s.Name),
		zap.String("image_url", resolved.ImageURL),
		zap.String("audio_url", resolved.AudioURL))

	return resolved
}

// ResolveAll resolves songs in order.
func (r *Resolver) ResolveAll(base *url.URL, songs []catalog.Song) []ResolvedSong {
	out := make([]ResolvedSong, len(songs))
	for i, s := range songs {
		out[i] = r.Resolve(base, s)
	}
	return out
}

// buildURL appends escaped path segments to base, dropping any query or
// fragment. Each segment is escaped as a whole, so a "/" inside a
// filename cannot introduce a new path level.
func buildURL(base *url.URL, segments ...string) string {
	u := url.URL{}
	if base != nil {
		u = *base
	}
	u.RawQuery = ""
	u.Fragment = ""

	p := strings.TrimSuffix(u.Path, "/")
	raw := strings.TrimSuffix(u.EscapedPath(), "/")
	for _, seg := range segments {
		p += "/" + seg
		raw += "/" + url.PathEscape(seg)
	}
	u.Path = p
	u.RawPath = raw

	return u.String()
}
