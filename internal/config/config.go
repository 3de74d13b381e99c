// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package config

import (
	"fmt"
	"time"

	"github.com/decksage/decksage/internal/deckbuild"
	"github.com/decksage/decksage/internal/fusion"
	"github.com/decksage/decksage/internal/logging"
)

// Config is the full runtime configuration, assembled from defaults,
// an optional YAML file and environment variables.
type Config struct {
	Server    ServerConfig     `koanf:"server"`
	Logging   logging.Config   `koanf:"logging"`
	Fusion    fusion.Config    `koanf:"fusion"`
	Deckbuild deckbuild.Config `koanf:"deckbuild"`
	Snapshot  SnapshotConfig   `koanf:"snapshot"`
	Data      DataConfig       `koanf:"data"`
}

// DataConfig points at the precomputed similarity dataset.
type DataConfig struct {
	// DatasetPath is the JSON dataset produced by the training
	// pipeline: adjacency tables, embeddings, roles, inclusion rates
	// and prices.
	DatasetPath string `koanf:"dataset_path"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimit       int           `koanf:"rate_limit"` // requests per minute per IP, 0 disables
}

// SnapshotConfig points at the hot-reloadable weight snapshot file.
type SnapshotConfig struct {
	// WeightsPath is the YAML file holding the fusion weight snapshot.
	// Empty means built-in defaults with no file watching.
	WeightsPath string `koanf:"weights_path"`

	// Watch enables reloading the snapshot when the file changes.
	Watch bool `koanf:"watch"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimit:       300,
		},
		Logging:   logging.DefaultConfig(),
		Fusion:    fusion.DefaultConfig(),
		Deckbuild: deckbuild.DefaultConfig(),
		Snapshot: SnapshotConfig{
			WeightsPath: "",
			Watch:       true,
		},
		Data: DataConfig{
			DatasetPath: "dataset.json",
		},
	}
}

// Validate checks the whole configuration tree.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must be >= 0, got %d", c.Server.RateLimit)
	}
	if err := c.Fusion.Validate(); err != nil {
		return fmt.Errorf("fusion: %w", err)
	}
	if err := c.Deckbuild.Validate(); err != nil {
		return fmt.Errorf("deckbuild: %w", err)
	}
	if c.Data.DatasetPath == "" {
		return fmt.Errorf("data.dataset_path must be set")
	}
	return nil
}
