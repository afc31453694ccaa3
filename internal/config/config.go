// SteamLens - Steam Analytics and Recommendation API
// Copyright 2026 SteamLens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

// Package config provides layered configuration for SteamLens using Koanf v2.
//
// Precedence, highest wins: environment variables > config file > built-in
// defaults. See koanf.go for the loading mechanics.
package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Config is the root configuration for the SteamLens server.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Data      DataConfig      `koanf:"data"`
	API       APIConfig       `koanf:"api"`
	Recommend RecommendConfig `koanf:"recommend"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`      // Per-request read/write timeout
	Environment string        `koanf:"environment"`  // development or production
}

// DataConfig holds the snapshot store settings.
//
// Dir is the directory containing the parquet snapshot artifacts produced by
// the offline pipeline. Every snapshot is required at startup; a missing or
// unreadable file aborts the process.
type DataConfig struct {
	Dir       string        `koanf:"dir"`
	MaxMemory string        `koanf:"max_memory"` // DuckDB memory ceiling, e.g. "1GB"
	Threads   int           `koanf:"threads"`    // 0 = runtime.NumCPU()
	Snapshots SnapshotFiles `koanf:"snapshots"`
}

// SnapshotFiles names the individual parquet artifacts inside DataConfig.Dir.
type SnapshotFiles struct {
	Reviews        string `koanf:"reviews"`
	UserSpend      string `koanf:"user_spend"`
	GenreRanking   string `koanf:"genre_ranking"`
	Playtime       string `koanf:"playtime"`
	DeveloperItems string `koanf:"developer_items"`
	ItemSimilarity string `koanf:"item_similarity"`
	UserSimilarity string `koanf:"user_similarity"`
	RatingMatrix   string `koanf:"rating_matrix"`
}

// APIConfig holds API surface settings.
type APIConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	QueryTimeout      time.Duration `koanf:"query_timeout"` // Per-request store timeout
}

// RecommendConfig holds recommender settings.
//
// The matrices are precomputed upstream; these settings only control how many
// entries each recommendation returns and how many neighbour users the
// collaborative recommender consults.
type RecommendConfig struct {
	TopN      int `koanf:"top_n"`
	Neighbors int `koanf:"neighbors"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// SnapshotPath returns the absolute path of a snapshot file inside Dir.
func (d *DataConfig) SnapshotPath(name string) string {
	return filepath.Join(d.Dir, name)
}

// Validate checks the configuration for impossible values.
// It is called by Load; a validation failure aborts startup.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir must not be empty")
	}
	if c.Data.Threads < 0 {
		return fmt.Errorf("data.threads must not be negative, got %d", c.Data.Threads)
	}
	for name, file := range map[string]string{
		"reviews":         c.Data.Snapshots.Reviews,
		"user_spend":      c.Data.Snapshots.UserSpend,
		"genre_ranking":   c.Data.Snapshots.GenreRanking,
		"playtime":        c.Data.Snapshots.Playtime,
		"developer_items": c.Data.Snapshots.DeveloperItems,
		"item_similarity": c.Data.Snapshots.ItemSimilarity,
		"user_similarity": c.Data.Snapshots.UserSimilarity,
		"rating_matrix":   c.Data.Snapshots.RatingMatrix,
	} {
		if file == "" {
			return fmt.Errorf("data.snapshots.%s must not be empty", name)
		}
	}
	if c.Recommend.TopN < 1 {
		return fmt.Errorf("recommend.top_n must be at least 1, got %d", c.Recommend.TopN)
	}
	if c.Recommend.Neighbors < 1 {
		return fmt.Errorf("recommend.neighbors must be at least 1, got %d", c.Recommend.Neighbors)
	}
	if !c.API.RateLimitDisabled {
		if c.API.RateLimitReqs < 1 {
			return fmt.Errorf("api.rate_limit_reqs must be at least 1, got %d", c.API.RateLimitReqs)
		}
		if c.API.RateLimitWindow <= 0 {
			return fmt.Errorf("api.rate_limit_window must be positive, got %s", c.API.RateLimitWindow)
		}
	}
	if c.API.QueryTimeout <= 0 {
		return fmt.Errorf("api.query_timeout must be positive, got %s", c.API.QueryTimeout)
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
