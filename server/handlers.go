package server

import (
	"net/http"

	"github.com/rs/zerolog/hlog"
)

const (
	contentTypeIcon = "image/x-icon"
	contentTypeJSON = "application/json; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
)

// HealthHandler answers HEAD on any path with an empty 200.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}

// FaviconHandler serves the icon read at startup, or 404 when there is none.
func (s *Server) FaviconHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.favicon == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeBody(w, http.StatusOK, contentTypeIcon, s.favicon)
	}
}

// BadRequestHandler rejects every path the relay does not know with an empty 400.
func (s *Server) BadRequestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hlog.FromRequest(r).Error().
			Str("path", r.URL.EscapedPath()).
			Str("outcome", "bad_request").
			Msg("Unsupported path")
		w.WriteHeader(http.StatusBadRequest)
	}
}

func (s *Server) MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", "GET, HEAD")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func writeBody(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// redirectTo sets Location verbatim. http.Redirect would resolve targets without a
// scheme against the request path.
func redirectTo(w http.ResponseWriter, location string) {
	w.Header().Set("Location", location)
	w.WriteHeader(http.StatusFound)
}
