package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/skillforge/trainhub-backend/internal/logger"
	"github.com/skillforge/trainhub-backend/internal/utils"
)

// Config holds the server-level settings that are not secrets.
// Values come from an optional YAML file and are overridden by env vars.
type Config struct {
	Server struct {
		Port         int      `yaml:"port"`
		CORSOrigins  []string `yaml:"cors_origins"`
	} `yaml:"server"`
	DB struct {
		Driver string `yaml:"driver"`
	} `yaml:"db"`
	SeedReferenceData bool `yaml:"seed_reference_data"`
}

func defaults() Config {
	var cfg Config
	cfg.Server.Port = 8080
	cfg.Server.CORSOrigins = []string{"http://localhost:3000"}
	cfg.DB.Driver = "postgres"
	return cfg
}

// Load reads the config file named by CONFIG_PATH (default config.yaml)
// when it exists, then applies env overrides on top.
func Load(log *logger.Logger) (Config, error) {
	cfg := defaults()

	path := utils.GetEnv("CONFIG_PATH", "config.yaml", log)
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
		log.Info("Loaded config file", "path", path)
	case os.IsNotExist(err):
		log.Debug("No config file, using defaults", "path", path)
	default:
		return Config{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	cfg.Server.Port = utils.GetEnvAsInt("SERVER_PORT", cfg.Server.Port, log)
	if origins := utils.GetEnv("CORS_ORIGINS", "", log); origins != "" {
		cfg.Server.CORSOrigins = splitAndTrim(origins)
	}
	cfg.DB.Driver = utils.GetEnv("DB_DRIVER", cfg.DB.Driver, log)
	cfg.SeedReferenceData = utils.GetEnvAsBool("SEED_REFERENCE_DATA", cfg.SeedReferenceData, log)

	if cfg.DB.Driver != "postgres" && cfg.DB.Driver != "sqlite" {
		return Config{}, fmt.Errorf("unsupported db driver %q", cfg.DB.Driver)
	}
	return cfg, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
