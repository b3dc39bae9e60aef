// Package config loads optional YAML provider configuration and builds
// the concrete adapter clients. API keys never live in YAML; they come
// from the environment, and a missing key simply leaves that provider
// unconfigured.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Philberto99/philbot/providers"
)

// Config represents the complete provider configuration.
type Config struct {
	Chat    ChatConfig    `yaml:"chat"`
	Search  SearchConfig  `yaml:"search"`
	Geo     GeoConfig     `yaml:"geolocation"`
	Weather WeatherConfig `yaml:"weather"`
}

// ChatConfig from YAML. Deployment + APIVersion select the Azure style;
// otherwise Model is sent to an OpenAI-compatible endpoint.
type ChatConfig struct {
	Endpoint   string `yaml:"endpoint"`
	Deployment string `yaml:"deployment"`
	APIVersion string `yaml:"api_version"`
	Model      string `yaml:"model"`
}

// SearchConfig from YAML
type SearchConfig struct {
	BaseURL string `yaml:"base_url"`
}

// GeoConfig from YAML
type GeoConfig struct {
	BaseURL string `yaml:"base_url"`
}

// WeatherConfig from YAML
type WeatherConfig struct {
	BaseURL string `yaml:"base_url"`
}

// LoadConfig loads providers.yaml from configDir. A missing file is not
// an error: all values fall back to env vars and built-in defaults.
func LoadConfig(configDir string) (*Config, error) {
	config := &Config{}

	path := filepath.Join(configDir, "providers.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvDefaults(config)
			return config, nil
		}
		return nil, fmt.Errorf("failed to load providers.yaml: %w", err)
	}

	var wrapper struct {
		Providers Config `yaml:"providers"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to parse providers.yaml: %w", err)
	}
	*config = wrapper.Providers

	expandEnvVars(config)
	applyEnvDefaults(config)
	return config, nil
}

// expandEnvVars expands ${VAR} and ${VAR:-default} references in string fields.
func expandEnvVars(config *Config) {
	config.Chat.Endpoint = expandEnv(config.Chat.Endpoint)
	config.Chat.Deployment = expandEnv(config.Chat.Deployment)
	config.Chat.APIVersion = expandEnv(config.Chat.APIVersion)
	config.Chat.Model = expandEnv(config.Chat.Model)
	config.Search.BaseURL = expandEnv(config.Search.BaseURL)
	config.Geo.BaseURL = expandEnv(config.Geo.BaseURL)
	config.Weather.BaseURL = expandEnv(config.Weather.BaseURL)
}

// expandEnv expands environment variables in a string.
func expandEnv(s string) string {
	if strings.Contains(s, "${") {
		return os.Expand(s, func(key string) string {
			// Handle default values like ${VAR:-default}
			parts := strings.SplitN(key, ":-", 2)
			value := os.Getenv(parts[0])
			if value == "" && len(parts) > 1 {
				return parts[1]
			}
			return value
		})
	}
	return s
}

// applyEnvDefaults fills fields the YAML left empty from well-known env vars.
func applyEnvDefaults(config *Config) {
	if config.Chat.Endpoint == "" {
		config.Chat.Endpoint = firstEnv("AZURE_OPENAI_ENDPOINT", "OPENAI_API_URL")
	}
	if config.Chat.Deployment == "" {
		config.Chat.Deployment = os.Getenv("AZURE_OPENAI_DEPLOYMENT")
	}
	if config.Chat.APIVersion == "" {
		config.Chat.APIVersion = os.Getenv("AZURE_OPENAI_API_VERSION")
	}
	if config.Chat.Model == "" {
		config.Chat.Model = os.Getenv("OPENAI_MODEL")
	}
}

// BuildAdapters creates the provider clients from configuration. Absence
// of a credential yields an unconfigured client, never an error.
func BuildAdapters(config *Config) (*providers.ChatClient, *providers.SearchClient, *providers.GeoClient, *providers.WeatherClient) {
	chatKey := firstEnv("AZURE_OPENAI_API_KEY", "OPENAI_API_KEY")

	chat := providers.NewChatClient(
		chatKey,
		config.Chat.Endpoint,
		config.Chat.Deployment,
		config.Chat.APIVersion,
		config.Chat.Model,
	)
	search := providers.NewSearchClient(os.Getenv("SERP_API_KEY"), config.Search.BaseURL)
	geo := providers.NewGeoClient(config.Geo.BaseURL)
	weather := providers.NewWeatherClient(os.Getenv("OPENWEATHER_API_KEY"), config.Weather.BaseURL)

	return chat, search, geo, weather
}

// firstEnv returns the first non-empty value among the named env vars.
func firstEnv(names ...string) string {
	for _, name := range names {
		if value := os.Getenv(name); value != "" {
			return value
		}
	}
	return ""
}
