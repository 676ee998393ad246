package config

import (
	"fmt"

	"github.com/jrsteele09/oauth-redirect-relay/internal/errors"
	"github.com/kelseyhightower/envconfig"
)

type Config interface {
	EnvConfig
	OAuthConfig
	AnalyticsConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	IsDev() bool
	GetLogLevel() string
	GetFaviconPath() string
}

type mainConfig struct {
	EnvVars
	OAuth
	Analytics
}

// New reads the process environment once. The returned Config is never mutated.
func New() (Config, error) {
	var c mainConfig
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrMissingConfig, err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c mainConfig) validate() error {
	required := []struct{ name, value string }{
		{clientIDEnvVar, c.ClientID},
		{clientSecretEnvVar, c.ClientSecret},
		{thisDomainEnvVar, c.ThisDomain},
		{analyticsAPIKeyEnvVar, c.APIKey},
	}
	for _, r := range required {
		if r.value == "" {
			return errors.Wrapf(errors.ErrMissingConfig, "%s must not be empty", r.name)
		}
	}
	if c.ExchangeTimeout <= 0 {
		return errors.Wrapf(errors.ErrMissingConfig, "EXCHANGE_TIMEOUT must be positive")
	}
	if c.AnalyticsTimeout <= 0 {
		return errors.Wrapf(errors.ErrMissingConfig, "ANALYTICS_TIMEOUT must be positive")
	}
	return nil
}
