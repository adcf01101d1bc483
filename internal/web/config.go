package web

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/LYYYYL/AddressValidator/internal/config"
)

// Config represents the web server configuration
type Config struct {
	Server   ServerConfig  `json:"server"`
	CORS     CORSConfig    `json:"cors"`
	Features FeatureConfig `json:"features"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port            int      `json:"port"`
	Host            string   `json:"host"`
	ReadTimeout     Duration `json:"read_timeout"`
	WriteTimeout    Duration `json:"write_timeout"`
	IdleTimeout     Duration `json:"idle_timeout"`
	ShutdownTimeout Duration `json:"shutdown_timeout"`
}

// CORSConfig lists the origins allowed to call the API. "*" allows any origin.
type CORSConfig struct {
	AllowedOrigins []string `json:"allowed_origins"`
}

// FeatureConfig contains feature toggles
type FeatureConfig struct {
	MetricsEnabled bool `json:"metrics_enabled"`
}

// Duration is a time.Duration written as a string ("15s") in JSON
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// LoadConfig loads configuration from a JSON file on top of the defaults
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse web config %s: %w", filename, err)
	}

	return cfg, nil
}

// DefaultConfig returns a default configuration, with host and port taken from
// WEB_HOST and WEB_PORT when set
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            config.GetEnvInt("WEB_PORT", 8000),
			Host:            config.GetEnv("WEB_HOST", "0.0.0.0"),
			ReadTimeout:     Duration(15 * time.Second),
			WriteTimeout:    Duration(2 * time.Minute),
			IdleTimeout:     Duration(60 * time.Second),
			ShutdownTimeout: Duration(30 * time.Second),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		Features: FeatureConfig{
			MetricsEnabled: true,
		},
	}
}
