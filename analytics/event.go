package analytics

const pageviewEventName = "pageview"

// Event is a single pageview as seen by the relay.
type Event struct {
	Path      string
	UserAgent string
	IP        string
}

// collectorPayload is the JSON body accepted by the events API.
type collectorPayload struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Domain string `json:"domain"`
}
