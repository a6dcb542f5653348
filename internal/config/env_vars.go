package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	portEnvVar    = "PORT"
	appNameVar    = "APP_NAME"
	apiBaseURLVar = "API_BASE_URL"
	sessionVar    = "SESSION_FILE"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "3000")
	if port != "" || port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Dealer Dashboard Gateway")
}

// GetAPIBaseURL returns the base URL of the upstream dealer REST API.
// All /api/* traffic is fetched from this host.
func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://127.0.0.1:8000")
}

// GetSessionFile returns the path of the persisted session store.
func (EnvVars) GetSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return GetEnv(sessionVar, filepath.Join(home, ".dealerdash", "session.json"))
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
