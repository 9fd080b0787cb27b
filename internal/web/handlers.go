package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"github.com/justestif/go-mood-song-recommender/internal/media"
	"github.com/justestif/go-mood-song-recommender/internal/mood"
	"github.com/justestif/go-mood-song-recommender/internal/recommend"
)

// AudioContentType is served for every audio asset.
const AudioContentType = "audio/mpeg"

// Recommender runs the recommendation pipeline.
type Recommender interface {
	Recommend(in recommend.Input, base *url.URL) (*recommend.Result, error)
}

// Handlers contains HTTP handlers for the web application.
type Handlers struct {
	recommender Recommender
	templates   *Templates
	assets      *media.Store
	audio       *media.Store
	baseURL     *url.URL
	logger      *zap.Logger
}

// Home renders the empty form (GET /).
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, HomePageData{
		PageData: PageData{Title: pageTitle, CurrentPath: r.URL.Path},
	})
}

// Recommend handles a form submission (POST /). Validation and pipeline
// failures are shown in the page with status 200.
func (h *Handlers) Recommend(w http.ResponseWriter, r *http.Request) {
	in := recommend.Input{
		Energy:       r.PostFormValue("energy"),
		Danceability: r.PostFormValue("danceability"),
		Valence:      r.PostFormValue("valence"),
	}

	data := HomePageData{
		PageData: PageData{Title: pageTitle, CurrentPath: r.URL.Path},
		Form:     FormData(in),
	}

	res, err := h.recommender.Recommend(in, h.base(r))
	if err != nil {
		data.Error = userMessage(err)
	} else {
		data.Result = newResultData(res)
	}

	h.render(w, r, data)
}

// RecommendJSON handles POST /api/recommendations. It accepts form fields
// or a JSON object with energy, danceability and valence.
func (h *Handlers) RecommendJSON(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: recommend.MsgNonNumeric})
		return
	}

	res, err := h.recommender.Recommend(in, h.base(r))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, mood.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorResponse{Error: userMessage(err)})
		return
	}

	writeJSON(w, http.StatusOK, newResultData(res))
}

// Static serves a file from the asset root (GET /static/*).
func (h *Handlers) Static(w http.ResponseWriter, r *http.Request) {
	name, err := routeParam(r, "*")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	f, info, err := h.assets.Open(name)
	if err != nil {
		if !errors.Is(err, media.ErrAssetMissing) {
			h.logger.Warn("static asset rejected", zap.String("path", name), zap.Error(err))
		}
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	if ct := detectContentType(f); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// Audio streams an audio asset inline (GET /audio/{filename}).
func (h *Handlers) Audio(w http.ResponseWriter, r *http.Request) {
	name, err := routeParam(r, "filename")
	if err != nil {
		http.Error(w, "Audio file not found", http.StatusNotFound)
		return
	}

	f, info, err := h.audio.Open(name)
	switch {
	case errors.Is(err, media.ErrAssetMissing), errors.Is(err, media.ErrOutsideRoot):
		h.logger.Warn("audio file not found", zap.String("filename", name))
		http.Error(w, "Audio file not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("serving audio failed", zap.String("filename", name), zap.Error(err))
		http.Error(w, "Error serving audio file", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", AudioContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": info.Name()}))
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// Health reports liveness (GET /healthz).
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

// render writes the home page, or a 500 if the template fails.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, data HomePageData) {
	var buf bytes.Buffer
	if err := h.templates.Render(&buf, "home", data); err != nil {
		h.logger.Error("rendering template",
			zap.String("request_id", requestID(r)),
			zap.Error(err))
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// base returns the configured public base URL or derives one from r.
func (h *Handlers) base(r *http.Request) *url.URL {
	if h.baseURL != nil {
		return h.baseURL
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p == "http" || p == "https" {
		scheme = p
	}
	return &url.URL{Scheme: scheme, Host: r.Host}
}

// userMessage returns the client-safe message for a pipeline error.
func userMessage(err error) string {
	var recErr *recommend.Error
	if errors.As(err, &recErr) && recErr.Message != "" {
		return recErr.Message
	}
	return recommend.MsgInternal
}

func requestID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}

// routeParam returns an unescaped chi URL parameter. chi matches on the
// raw path when the request path contains escapes such as %2F.
func routeParam(r *http.Request, key string) (string, error) {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v, nil
	}
	return url.PathUnescape(v)
}

// detectContentType sniffs the file header with filetype and rewinds.
// Returns "" when the type is unknown.
func detectContentType(f *os.File) string {
	head := make([]byte, 261)
	n, _ := io.ReadFull(f, head)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return ""
	}

	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown {
		return ""
	}
	return kind.MIME.Value
}

// jsonInput accepts numbers or numeric strings.
type jsonInput struct {
	Energy       json.Number `json:"energy"`
	Danceability json.Number `json:"danceability"`
	Valence      json.Number `json:"valence"`
}

// decodeInput reads input from a JSON body or form values.
func decodeInput(r *http.Request) (recommend.Input, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct != "application/json" {
		return recommend.Input{
			Energy:       r.PostFormValue("energy"),
			Danceability: r.PostFormValue("danceability"),
			Valence:      r.PostFormValue("valence"),
		}, nil
	}

	var body jsonInput
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&body); err != nil {
		return recommend.Input{}, err
	}
	return recommend.Input{
		Energy:       body.Energy.String(),
		Danceability: body.Danceability.String(),
		Valence:      body.Valence.String(),
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}
