// internal/config/load.go
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment overrides, applied after the YAML file.
const (
	EnvDeviceURL = "DASHBOARD_DEVICE_URL"
	EnvListen    = "DASHBOARD_LISTEN"
	EnvCacheFile = "DASHBOARD_CACHE_FILE"
)

// Load reads the YAML file at path and applies environment overrides.
// A .env file in the working directory is loaded first if present.
// Load does not validate; call Validate then Normalize.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	applyEnv(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDeviceURL); v != "" {
		cfg.Dashboard.Device.BaseURL = v
	}
	if v := os.Getenv(EnvListen); v != "" {
		cfg.Dashboard.Listen = v
	}
	if v := os.Getenv(EnvCacheFile); v != "" {
		cfg.Dashboard.Availability.CacheFile = v
	}
}
