package web

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/justestif/go-mood-song-recommender/internal/recommend"
)

const pageTitle = "Mood Song Recommender"

// Templates manages HTML template rendering.
type Templates struct {
	templates map[string]*template.Template
	funcs     template.FuncMap
}

// NewTemplates creates a new template manager by loading templates from the given filesystem.
func NewTemplates(templatesFS fs.FS) (*Templates, error) {
	if templatesFS == nil {
		return nil, fmt.Errorf("templates filesystem is required")
	}

	t := &Templates{
		templates: make(map[string]*template.Template),
		funcs:     defaultFuncs(),
	}

	if err := t.load(templatesFS); err != nil {
		return nil, err
	}

	return t, nil
}

// Render renders a page template with the given data.
func (t *Templates) Render(w io.Writer, page string, data any) error {
	tmpl, ok := t.templates[page]
	if !ok {
		return fmt.Errorf("template %q not found", page)
	}

	// Execute the "base" template which includes the page content
	return tmpl.ExecuteTemplate(w, "base", data)
}

// load parses all templates from the filesystem.
func (t *Templates) load(templatesFS fs.FS) error {
	layouts, err := fs.Glob(templatesFS, "layouts/*.html")
	if err != nil {
		return fmt.Errorf("finding layouts: %w", err)
	}

	partials, err := fs.Glob(templatesFS, "partials/*.html")
	if err != nil {
		return fmt.Errorf("finding partials: %w", err)
	}

	pages, err := fs.Glob(templatesFS, "pages/*.html")
	if err != nil {
		return fmt.Errorf("finding pages: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("no page templates found")
	}

	// Common files to include with every page
	commonFiles := append(layouts, partials...)

	for _, page := range pages {
		name := strings.TrimSuffix(filepath.Base(page), ".html")
		files := append([]string{page}, commonFiles...)

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}
		t.templates[name] = tmpl
	}

	return nil
}

// defaultFuncs returns the default template functions.
func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		// moodClass returns a CSS class for a mood label.
		"moodClass": func(mood string) string {
			return "mood-" + strings.ToLower(mood)
		},

		// add adds two integers (for 1-based indexing in loops)
		"add": func(a, b int) int {
			return a + b
		},
	}
}

// PageData contains common data passed to all page templates.
type PageData struct {
	Title       string
	CurrentPath string
}

// FormData echoes the submitted scores back into the form.
type FormData struct {
	Energy       string
	Danceability string
	Valence      string
}

// HomePageData contains data for the home page template.
// Result and Error are never both set.
type HomePageData struct {
	PageData
	Form   FormData
	Result *ResultData
	Error  string
}

// ResultData is a recommendation as shown in the page and the JSON API.
type ResultData struct {
	ID    string     `json:"id"`
	Mood  string     `json:"mood"`
	Songs []SongData `json:"songs"`
}

// SongData contains data for a single recommended song.
type SongData struct {
	Name     string `json:"name"`
	Artist   string `json:"artist"`
	ImageURL string `json:"image_url"`
	AudioURL string `json:"audio_url"`
}

func newResultData(res *recommend.Result) *ResultData {
	songs := make([]SongData, len(res.Songs))
	for i, s := range res.Songs {
		songs[i] = SongData{
			Name:     s.Name,
			Artist:   s.Artist,
			ImageURL: s.ImageURL,
			AudioURL: s.AudioURL,
		}
	}
	return &ResultData{
		ID:    res.ID,
		Mood:  string(res.Mood),
		Songs: songs,
	}
}
