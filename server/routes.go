package server

import (
	"net/http"
	"strings"
)

type routeInfo struct {
	method  string
	pattern string
}

// routeTable is only used for the DEV route listing.
var routeTable = []routeInfo{
	{http.MethodHead, RouteHealth},
	{http.MethodGet, RouteFavicon},
	{http.MethodGet, RouteClientURI + "/{client_uri}"},
}

// router dispatches without http.ServeMux: the mux cleans the decoded path, which
// would collapse the "//" of an encoded client URI and answer with a 301.
func (s *Server) router() http.HandlerFunc {
	var (
		health     = s.HealthHandler()
		notAllowed = s.MethodNotAllowedHandler()
		favicon    = s.FaviconHandler()
		relay      = s.RelayHandler()
		badRequest = s.BadRequestHandler()
	)

	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodHead:
			health(w, r)
		case r.Method != http.MethodGet:
			notAllowed(w, r)
		case r.URL.Path == RouteFavicon:
			favicon(w, r)
		case strings.HasPrefix(r.URL.Path, RouteClientURI):
			relay(w, r)
		default:
			badRequest(w, r)
		}
	}
}
