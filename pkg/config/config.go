// pkg/config/config.go
// Package config loads the engine configuration file. All fields are
// optional; a missing file yields the defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"minirel/pkg/index"
)

// Config selects the default index structure and the CLI paths.
type Config struct {
	Index       string `yaml:"index"`
	SnapshotDir string `yaml:"snapshot_dir"`
	HistoryFile string `yaml:"history_file"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Index:       index.KindBPTree.String(),
		SnapshotDir: ".",
		HistoryFile: filepath.Join(os.TempDir(), ".minirel_history"),
	}
}

// Load reads the configuration at path. A missing file is not an error;
// empty fields fall back to the defaults, and the index name must parse.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	def := Default()
	if cfg.Index == "" {
		cfg.Index = def.Index
	}
	if cfg.SnapshotDir == "" {
		cfg.SnapshotDir = def.SnapshotDir
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = def.HistoryFile
	}

	if _, err := index.ParseKind(cfg.Index); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// IndexKind resolves the configured index name.
func (c Config) IndexKind() (index.Kind, error) {
	return index.ParseKind(c.Index)
}
