package config

import (
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const (
	clientIDEnvVar     = "CLIENT_ID"
	clientSecretEnvVar = "CLIENT_SECRET"
)

type OAuthConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetTokenEndpoint() oauth2.Endpoint
	GetExchangeTimeout() time.Duration
}

type OAuth struct {
	ClientID        string        `envconfig:"CLIENT_ID" required:"true"`
	ClientSecret    string        `envconfig:"CLIENT_SECRET" required:"true"`
	TokenURL        string        `envconfig:"TOKEN_URL"`
	ExchangeTimeout time.Duration `envconfig:"EXCHANGE_TIMEOUT" default:"5s"`
}

var _ OAuthConfig = OAuth{}

func (o OAuth) GetClientID() string {
	return o.ClientID
}

func (o OAuth) GetClientSecret() string {
	return o.ClientSecret
}

// GetTokenEndpoint defaults to Strava's token endpoint when TOKEN_URL is unset.
func (o OAuth) GetTokenEndpoint() oauth2.Endpoint {
	endpoint := endpoints.Strava
	if o.TokenURL != "" {
		endpoint.TokenURL = o.TokenURL
	}
	endpoint.AuthStyle = oauth2.AuthStyleInParams
	return endpoint
}

func (o OAuth) GetExchangeTimeout() time.Duration {
	return o.ExchangeTimeout
}
