package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/dmitrijs2005/dramahub/internal/flagx"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// envMappings maps lower-cased environment variable names to config keys.
// Variables not listed here are ignored.
var envMappings = map[string]string{
	"dramahub_http_addr":               "http_addr",
	"dramahub_grpc_addr":               "grpc_addr",
	"dramahub_database_driver":         "database.driver",
	"dramahub_database_dsn":            "database.dsn",
	"dramahub_redis_url":               "redis.url",
	"dramahub_redis_ttl":               "redis.ttl",
	"dramahub_catalog_base_url":        "catalog.base_url",
	"dramahub_catalog_api_key":         "catalog.api_key",
	"dramahub_catalog_timeout":         "catalog.timeout",
	"dramahub_catalog_max_concurrency": "catalog.max_concurrency",
	"dramahub_catalog_rate_per_second": "catalog.rate_per_second",
	"dramahub_catalog_burst":           "catalog.burst",
	"dramahub_textgen_api_url":         "textgen.api_url",
	"dramahub_textgen_api_key":         "textgen.api_key",
	"dramahub_textgen_model":           "textgen.model",
	"dramahub_textgen_timeout":         "textgen.timeout",
	"dramahub_cors_allowed_origins":    "cors.allowed_origins",
	"dramahub_log_level":               "log.level",
	"dramahub_log_format":              "log.format",

	// names used by existing deployments
	"gemini__apikey": "textgen.api_key",
	"gemini__apiurl": "textgen.api_url",
	"tmdb_api_key":   "catalog.api_key",
	"database_url":   "database.dsn",
}

var sliceConfigPaths = []string{
	"cors.allowed_origins",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// loadDotEnv copies variables from path into the process environment
// without overriding ones already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// parseKoanf overlays the config file named by -c/-config and the mapped
// environment variables on top of the values already in cfg.
func parseKoanf(cfg *Config, args []string) error {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
		return fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := flagx.ConfigFileFlag(args); path != "" {
		// the YAML parser also accepts JSON documents
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return nil
}

// processSliceFields splits comma-separated strings coming from the
// environment into lists.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		parts := strings.Split(s, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}
