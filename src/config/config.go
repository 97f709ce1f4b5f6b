// Package config provides configuration management for the buildwatch
// adapter: the settings describing one watched project and the predicate
// deciding whether those settings are usable at all.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Environment variables read by EnvSource.
const (
	EnvCollectionURL    = "AZURE_DEVOPS_URL"
	EnvAccessToken      = "AZURE_DEVOPS_TOKEN"
	EnvDefinitionFilter = "AZURE_DEVOPS_DEFINITION_FILTER"
)

// Settings describes one watched project. Immutable once resolved at
// adapter initialization.
type Settings struct {
	// CollectionURL is the project collection endpoint, e.g.
	// "https://dev.azure.com/org/project".
	CollectionURL string
	// AccessToken is the personal access token used for authentication.
	AccessToken string
	// DefinitionFilter is a name pattern selecting build definitions;
	// "*" matches all.
	DefinitionFilter string
}

// IsUsable reports whether the settings can ever produce a working adapter:
// an absolute http(s) endpoint and a non-empty credential. Unusable settings
// are not an error; the adapter simply stays inert.
func (s Settings) IsUsable() bool {
	if strings.TrimSpace(s.AccessToken) == "" {
		return false
	}
	u, err := url.Parse(s.CollectionURL)
	if err != nil {
		return false
	}
	if !u.IsAbs() || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// EnvSource resolves Settings from environment variables. It implements the
// adapter's configuration source: variable references like ${VAR} in the
// endpoint are expanded here, before the adapter core sees the settings.
type EnvSource struct{}

// NewEnvSource creates an environment-backed configuration source.
func NewEnvSource() *EnvSource {
	return &EnvSource{}
}

// IsUsable reports whether the environment currently holds usable settings.
func (e *EnvSource) IsUsable() bool {
	s, err := e.Resolve()
	if err != nil {
		return false
	}
	return s.IsUsable()
}

// Resolve loads settings from the environment, expanding ${VAR} references
// in the collection URL. An unset definition filter defaults to "*".
func (e *EnvSource) Resolve() (Settings, error) {
	filter := os.Getenv(EnvDefinitionFilter)
	if filter == "" {
		filter = "*"
	}

	return Settings{
		CollectionURL:    os.ExpandEnv(os.Getenv(EnvCollectionURL)),
		AccessToken:      os.Getenv(EnvAccessToken),
		DefinitionFilter: filter,
	}, nil
}

// MustLoadFromEnv resolves settings from the environment and panics when they
// are unusable. Useful in main() where a broken environment should be fatal.
func MustLoadFromEnv() Settings {
	s, err := NewEnvSource().Resolve()
	if err != nil || !s.IsUsable() {
		panic(fmt.Sprintf("unusable configuration: set %s and %s", EnvCollectionURL, EnvAccessToken))
	}
	return s
}
