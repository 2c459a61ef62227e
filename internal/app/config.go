package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/advisorgraph-backend/internal/platform/envutil"
	"github.com/yungbote/advisorgraph-backend/internal/platform/logger"
)

type Config struct {
	Port           string
	Environment    string
	Version        string
	AllowedOrigins []string
	DefaultRegions []string

	SessionTTL      time.Duration
	OptionsCacheTTL time.Duration
}

// fileConfig is the optional YAML overlay (CONFIG_FILE). Env vars win over
// the file; the file wins over built-in defaults.
type fileConfig struct {
	Port            string   `yaml:"port"`
	Environment     string   `yaml:"environment"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
	DefaultRegions  []string `yaml:"default_regions"`
	SessionTTLMin   int      `yaml:"session_ttl_minutes"`
	OptionsCacheSec int      `yaml:"options_cache_seconds"`
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:            "8080",
		Environment:     "development",
		Version:         strings.TrimSpace(os.Getenv("SERVICE_VERSION")),
		AllowedOrigins:  []string{"http://localhost:3000", "http://localhost:5173"},
		DefaultRegions:  nil,
		SessionTTL:      2 * time.Hour,
		OptionsCacheTTL: 5 * time.Minute,
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := overlayFile(&cfg, path); err != nil {
			log.Warn("config file load failed, using env/defaults", "path", path, "error", err)
		} else {
			log.Info("config file loaded", "path", path)
		}
	}

	cfg.Port = envutil.GetEnv("PORT", cfg.Port, log)
	cfg.Environment = envutil.GetEnv("APP_ENV", cfg.Environment, log)
	if raw := envutil.GetEnv("ALLOWED_ORIGINS", "", log); raw != "" {
		cfg.AllowedOrigins = splitCSV(raw)
	}
	if raw := envutil.GetEnv("DEFAULT_REGIONS", "", log); raw != "" {
		cfg.DefaultRegions = splitCSV(raw)
	}
	if min := envutil.GetEnvAsInt("SESSION_TTL_MINUTES", 0, log); min > 0 {
		cfg.SessionTTL = time.Duration(min) * time.Minute
	}
	if sec := envutil.GetEnvAsInt("OPTIONS_CACHE_SECONDS", 0, log); sec > 0 {
		cfg.OptionsCacheTTL = time.Duration(sec) * time.Second
	}
	return cfg
}

func overlayFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if fc.Port != "" {
		cfg.Port = fc.Port
	}
	if fc.Environment != "" {
		cfg.Environment = fc.Environment
	}
	if len(fc.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = fc.AllowedOrigins
	}
	if len(fc.DefaultRegions) > 0 {
		cfg.DefaultRegions = fc.DefaultRegions
	}
	if fc.SessionTTLMin > 0 {
		cfg.SessionTTL = time.Duration(fc.SessionTTLMin) * time.Minute
	}
	if fc.OptionsCacheSec > 0 {
		cfg.OptionsCacheTTL = time.Duration(fc.OptionsCacheSec) * time.Second
	}
	return nil
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
