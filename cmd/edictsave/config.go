package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the edictsave configuration file
// ($XDG_CONFIG_HOME/edictsave/config.yaml). Pointer fields distinguish "not set"
// from zero values.
type Config struct {
	SaveDir     string `yaml:"save_dir"`
	CatalogPath string `yaml:"catalog_path"`

	MaxClients  *int `yaml:"max_clients"`
	MaxEntities *int `yaml:"max_entities"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	ServerAddress string `yaml:"server_address"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "edictsave", "config.yaml")
}

// LoadConfig reads the config file. A missing file yields a zero Config.
func LoadConfig() (Config, error) {
	return loadConfigFrom(configPath())
}

func loadConfigFrom(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// applyConfig applies config file defaults to the global flag variables when the
// corresponding flag was not set on the command line.
func applyConfig(c *cli.Command, cfg Config) {
	if cfg.SaveDir != "" && !c.IsSet("save-dir") {
		saveDir = cfg.SaveDir
	}
	if cfg.CatalogPath != "" && !c.IsSet("catalog") {
		catalogPath = cfg.CatalogPath
	}
	if cfg.MaxClients != nil && !c.IsSet("max-clients") {
		maxClients = *cfg.MaxClients
	}
	if cfg.MaxEntities != nil && !c.IsSet("max-entities") {
		maxEntities = *cfg.MaxEntities
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
}
