package mdpage

import (
	"bytes"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/zeebo/blake3"
)

// HandlerConfig configures NewHandler.
type HandlerConfig struct {
	// SourcePath is re-read on every request.
	SourcePath       string
	Fallback         string
	Title            string
	Theme            Theme
	Engine           Engine
	StripFrontMatter bool
	// Validate turns invalid UTF-8 or binary sources into 500 responses.
	Validate bool
	Logger   Logger
}

// Handler serves the rendered tracker page over HTTP.
type Handler struct {
	cfg HandlerConfig
	log Logger
	mux *http.ServeMux
}

// NewHandler returns a Handler serving "/", "/fragment" and "/healthz".
func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.SourcePath == "" {
		cfg.SourcePath = DefaultSourcePath
	}
	if cfg.Engine == nil {
		cfg.Engine = NewLegacyEngine()
	}
	h := &Handler{cfg: cfg, log: cfg.Logger, mux: http.NewServeMux()}
	if h.log == nil {
		h.log = NopLogger()
	}
	h.mux.HandleFunc("/healthz", h.readOnly(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	h.mux.HandleFunc("/fragment", h.readOnly(h.handleFragment))
	h.mux.HandleFunc("/", h.readOnly(h.handlePage))
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	h.mux.ServeHTTP(rec, r)
	h.log.Info("request",
		"method", r.Method,
		"path", logSafe(r.URL.Path, maxLoggedPath),
		"status", rec.status,
		"bytes", rec.written,
		"duration", time.Since(start).String(),
	)
}

func (h *Handler) readOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	fragment, ok := h.fragment(w)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := WritePage(&buf, Page{Title: h.cfg.Title, Theme: h.cfg.Theme, Fragment: fragment}); err != nil {
		h.log.Error("write page failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	h.respond(w, r, buf.Bytes())
}

func (h *Handler) handleFragment(w http.ResponseWriter, r *http.Request) {
	fragment, ok := h.fragment(w)
	if !ok {
		return
	}
	h.respond(w, r, []byte(fragment))
}

func (h *Handler) fragment(w http.ResponseWriter) (string, bool) {
	src, err := ReadSource(h.cfg.SourcePath, h.cfg.Fallback)
	if err != nil {
		h.log.Error("read source failed", "path", h.cfg.SourcePath, "error", err)
		http.Error(w, "source unavailable", http.StatusInternalServerError)
		return "", false
	}
	fragment, err := renderFragment([]byte(src), RenderRequest{
		Engine:           h.cfg.Engine,
		StripFrontMatter: h.cfg.StripFrontMatter,
		Validate:         h.cfg.Validate,
	})
	if err != nil {
		h.log.Error("render failed", "path", h.cfg.SourcePath, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return "", false
	}
	return fragment, true
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, body []byte) {
	tag := ETag(body)
	hdr := w.Header()
	hdr.Set("ETag", tag)
	hdr.Set("Cache-Control", "no-cache")
	if etagMatches(r.Header.Get("If-None-Match"), tag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	hdr.Set("Content-Type", "text/html; charset=utf-8")
	hdr.Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

// ETag returns a strong entity tag derived from the BLAKE3 hash of body.
func ETag(body []byte) string {
	sum := blake3.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

func etagMatches(header, tag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == tag {
			return true
		}
	}
	return false
}

type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(p []byte) (int, error) {
	n, err := s.ResponseWriter.Write(p)
	s.written += n
	return n, err
}
