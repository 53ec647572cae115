package main

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/LeandroLuccerini/similarity/pkg/batch"
	"github.com/LeandroLuccerini/similarity/pkg/similarity"
	"github.com/LeandroLuccerini/similarity/pkg/translit"
)

type config struct {
	Addr              string `yaml:"addr"`
	similarity.Config `yaml:",inline"`
	Batch             batchConfig `yaml:"batch"`
}

type batchConfig struct {
	Workers int          `yaml:"workers"`
	DBPath  string       `yaml:"db_path"`
	Format  batch.Format `yaml:"format"`
}

func defaultConfig() config {
	return config{
		Addr:   ":8421",
		Config: similarity.DefaultConfig(),
		Batch: batchConfig{
			Workers: 4,
			DBPath:  "scores.db",
			Format:  batch.Format{Delimiter: ",", HasHeader: true, ColumnA: "a", ColumnB: "b"},
		},
	}
}

// loadConfig reads path over the defaults. A missing file is not an error.
func loadConfig(path string, logger *slog.Logger) (config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no config file, using defaults", "path", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if _, err := translit.New(cfg.Transliterator); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Date.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Batch.Workers < 1 {
		cfg.Batch.Workers = 1
	}
	return cfg, nil
}

func mustLoadConfig(path string, logger *slog.Logger) config {
	cfg, err := loadConfig(path, logger)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}
	return cfg
}
