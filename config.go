package main

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables required at startup. All four must be set and
// non-empty; nothing reads the environment after LoadConfig returns.
const (
	envSessionToken = "SCRAPBOX_CONNECT_SID"
	envBaseURL      = "SCRAPBOX_BASE_URL"
	envProject      = "SCRAPBOX_PROJECT"
	envRootFolderID = "DRIVE_ROOT_FOLDER_ID"
)

// Config holds the per-deployment values sourced from the environment.
type Config struct {
	SessionToken string
	BaseURL      string
	Project      string
	RootFolderID string
}

// LoadConfig reads the required environment variables once. Any missing or
// empty value aborts with a ConfigError.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	for _, v := range []struct {
		key string
		dst *string
	}{
		{envSessionToken, &cfg.SessionToken},
		{envBaseURL, &cfg.BaseURL},
		{envProject, &cfg.Project},
		{envRootFolderID, &cfg.RootFolderID},
	} {
		val := os.Getenv(v.key)
		if val == "" {
			return nil, &ConfigError{Key: v.key}
		}
		*v.dst = val
	}

	return cfg, nil
}

//go:embed config/settings.yaml
var defaultSettings string

// CellMap assigns each KPT section its target cell address.
type CellMap struct {
	Keep    string `yaml:"keep"`
	Problem string `yaml:"problem"`
	Try     string `yaml:"try"`
	Other   string `yaml:"other"`
}

// Settings represents the YAML tunables: cell addresses and the HTTP
// request timeout. Deployment values live in Config, not here.
type Settings struct {
	Cells               CellMap `yaml:"cells"`
	FetchTimeoutSeconds int     `yaml:"fetch_timeout_seconds"`
}

// FetchTimeout returns the per-request HTTP timeout.
func (s *Settings) FetchTimeout() time.Duration {
	return time.Duration(s.FetchTimeoutSeconds) * time.Second
}

// loadSettings loads settings from the given path, or the embedded
// defaults when no path is given. An explicit path must exist.
func loadSettings(path string) (*Settings, error) {
	data := []byte(defaultSettings)
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading settings file %s: %w", path, err)
		}
		data = fileData
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parsing settings YAML: %w", err)
	}

	if settings.FetchTimeoutSeconds <= 0 {
		settings.FetchTimeoutSeconds = 30
	}

	return &settings, nil
}
