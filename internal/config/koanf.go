// SteamLens - Steam Analytics and Recommendation API
// Copyright 2026 SteamLens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order
// of priority. The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/steamlens/config.yaml",
	"/etc/steamlens/config.yml",
}

// ConfigPathEnvVar is the environment variable that overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all default values. Defaults are applied
// first, then overridden by the config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8730,
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Data: DataConfig{
			Dir:       "/data/snapshots",
			MaxMemory: "1GB",
			Threads:   0, // 0 = use runtime.NumCPU()
			Snapshots: SnapshotFiles{
				Reviews:        "reviews.parquet",
				UserSpend:      "user_spend.parquet",
				GenreRanking:   "genre_ranking.parquet",
				Playtime:       "playtime.parquet",
				DeveloperItems: "developer_items.parquet",
				ItemSimilarity: "item_similarity.parquet",
				UserSimilarity: "user_similarity.parquet",
				RatingMatrix:   "rating_matrix.parquet",
			},
		},
		API: APIConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     300,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			QueryTimeout:      10 * time.Second,
		},
		Recommend: RecommendConfig{
			TopN:      5,
			Neighbors: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration with layered sources:
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML config file (if present)
//  3. Environment variables: override any setting
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// SERVER_PORT -> server.port, DATA_DIR -> data.dir, LOG_LEVEL -> logging.level
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file, honoring CONFIG_PATH first.
// Returns empty string if no file is found (file layer is optional).
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths defines which config paths are parsed as comma-separated slices.
var sliceConfigPaths = []string{
	"api.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields. Env vars come in as plain strings, but the config
// expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - SERVER_PORT -> server.port
//   - DATA_DIR -> data.dir
//   - SNAPSHOT_REVIEWS -> data.snapshots.reviews
//   - API_CORS_ORIGINS -> api.cors_origins
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		"server_host":        "server.host",
		"server_port":        "server.port",
		"server_timeout":     "server.timeout",
		"environment":        "server.environment",
		"data_dir":           "data.dir",
		"data_max_memory":    "data.max_memory",
		"data_threads":       "data.threads",
		"snapshot_reviews":         "data.snapshots.reviews",
		"snapshot_user_spend":      "data.snapshots.user_spend",
		"snapshot_genre_ranking":   "data.snapshots.genre_ranking",
		"snapshot_playtime":        "data.snapshots.playtime",
		"snapshot_developer_items": "data.snapshots.developer_items",
		"snapshot_item_similarity": "data.snapshots.item_similarity",
		"snapshot_user_similarity": "data.snapshots.user_similarity",
		"snapshot_rating_matrix":   "data.snapshots.rating_matrix",
		"api_cors_origins":        "api.cors_origins",
		"api_rate_limit_reqs":     "api.rate_limit_reqs",
		"api_rate_limit_window":   "api.rate_limit_window",
		"api_rate_limit_disabled": "api.rate_limit_disabled",
		"api_query_timeout":       "api.query_timeout",
		"recommend_top_n":     "recommend.top_n",
		"recommend_neighbors": "recommend.neighbors",
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if path, ok := envMappings[key]; ok {
		return path
	}
	// Unknown environment variables are ignored rather than guessed at,
	// so unrelated process env (PATH, HOME, ...) never leaks into config.
	return ""
}
