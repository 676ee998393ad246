package config

import "time"

const (
	thisDomainEnvVar      = "THIS_DOMAIN"
	analyticsAPIKeyEnvVar = "ANALYTICS_API_KEY"
)

type AnalyticsConfig interface {
	GetThisDomain() string
	GetAnalyticsURL() string
	GetAnalyticsAPIKey() string
	GetAnalyticsEnabled() bool
	GetAnalyticsTimeout() time.Duration
}

type Analytics struct {
	ThisDomain       string        `envconfig:"THIS_DOMAIN" required:"true"`
	APIKey           string        `envconfig:"ANALYTICS_API_KEY" required:"true"`
	URL              string        `envconfig:"ANALYTICS_URL" default:"https://plausible.io/api/event"`
	Enabled          bool          `envconfig:"ANALYTICS_ENABLED" default:"true"`
	AnalyticsTimeout time.Duration `envconfig:"ANALYTICS_TIMEOUT" default:"5s"`
}

var _ AnalyticsConfig = Analytics{}

// GetThisDomain is the hostname reported to the collector, not the bind address.
func (a Analytics) GetThisDomain() string {
	return a.ThisDomain
}

func (a Analytics) GetAnalyticsURL() string {
	return a.URL
}

func (a Analytics) GetAnalyticsAPIKey() string {
	return a.APIKey
}

func (a Analytics) GetAnalyticsEnabled() bool {
	return a.Enabled
}

func (a Analytics) GetAnalyticsTimeout() time.Duration {
	return a.AnalyticsTimeout
}
