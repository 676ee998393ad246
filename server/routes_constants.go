package server

// Route path constants
const (
	RouteFavicon   = "/favicon.ico"
	RouteClientURI = "/client_uri"

	// Any path answers HEAD for load balancer health checks.
	RouteHealth = "/*"
)
