package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/oauth-redirect-relay/analytics"
	"github.com/jrsteele09/oauth-redirect-relay/exchange"
	"github.com/jrsteele09/oauth-redirect-relay/internal/errors"
	"github.com/rs/zerolog/hlog"
)

const (
	clientURISegment = 2
	missingCodeMsg   = "Missing code in request"
)

// RelayHandler receives the provider callback on /client_uri/<target>, exchanges the
// code and redirects to the target with the raw token response as "payload".
func (s *Server) RelayHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := hlog.FromRequest(r)

		clientURI, err := parseClientURI(r.URL)
		if err != nil {
			logger.Error().Err(err).
				Str("path", r.URL.EscapedPath()).
				Str("outcome", "bad_request").
				Msg("Invalid client_uri")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		// The first value wins; an empty value counts as absent.
		code := r.URL.Query().Get("code")
		if code == "" {
			logger.Warn().
				Str("client_uri", clientURI).
				Str("outcome", "missing_code").
				Msg("Redirecting without exchange")
			redirectTo(w, clientURI+"?"+url.Values{"error": {missingCodeMsg}}.Encode())
			return
		}

		payload, err := s.exchanger.Exchange(r.Context(), code)
		if err != nil {
			if body, ok := exchange.ProviderBody(err); ok {
				logger.Error().Err(err).
					Str("client_uri", clientURI).
					Str("outcome", "exchange_rejected").
					Msg("Token exchange rejected")
				writeBody(w, http.StatusInternalServerError, bodyContentType(body), body)
				return
			}
			logger.Error().Err(err).
				Str("client_uri", clientURI).
				Str("outcome", "exchange_failed").
				Msg("Token exchange failed")
			writeBody(w, http.StatusInternalServerError, contentTypeText, []byte(err.Error()))
			return
		}

		location := clientURI + "?" + url.Values{"payload": {string(payload)}}.Encode() + "&" + r.URL.RawQuery
		redirectTo(w, location)
		logger.Info().
			Str("client_uri", clientURI).
			Str("outcome", "redirected").
			Msg("Token relayed to client")

		s.reporter.Report(analytics.Event{
			Path:      r.URL.EscapedPath(),
			UserAgent: r.UserAgent(),
			IP:        clientIP(r),
		})
	}
}

// parseClientURI takes the second path segment of /client_uri/<target> and decodes it once.
func parseClientURI(u *url.URL) (string, error) {
	segments := strings.Split(u.EscapedPath(), "/")
	if len(segments) <= clientURISegment || segments[clientURISegment] == "" {
		return "", errors.Wrapf(errors.ErrMissingClientURI, "path %q", u.EscapedPath())
	}
	clientURI, err := url.PathUnescape(segments[clientURISegment])
	if err != nil {
		return "", errors.Wrapf(errors.ErrMalformedRequest, "decode client_uri: %v", err)
	}
	return clientURI, nil
}

func bodyContentType(body []byte) string {
	if json.Valid(body) {
		return contentTypeJSON
	}
	return contentTypeText
}
