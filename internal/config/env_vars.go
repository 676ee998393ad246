package config

import "strings"

const devEnv = "DEV"

type EnvVars struct {
	AppName     string `envconfig:"APP_NAME" default:"OAuth Redirect Relay"`
	Env         string `envconfig:"ENV" default:"DEV"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	FaviconPath string `envconfig:"FAVICON_PATH" default:"favicon.ico"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	if e.Env == "" {
		return devEnv
	}
	return strings.ToUpper(e.Env)
}

func (e EnvVars) IsDev() bool {
	return e.GetEnv() == devEnv
}

func (e EnvVars) GetLogLevel() string {
	return e.LogLevel
}

// GetFaviconPath returns the icon served at /favicon.ico. A missing file is not an error.
func (e EnvVars) GetFaviconPath() string {
	return e.FaviconPath
}
