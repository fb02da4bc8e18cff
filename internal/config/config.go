package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape. Fields are
// pointers so absent keys stay distinguishable from zero values when
// merging with CLI flags.
type FileConfig struct {
	ListenAddr     *string  `yaml:"listen_addr"`
	LogLevel       *string  `yaml:"log_level"`
	HIBPBaseURL    *string  `yaml:"hibp_base_url"`
	HIBPTimeout    *string  `yaml:"hibp_timeout"`
	HistoryLimit   *int     `yaml:"history_limit"`
	PreserveFormat *bool    `yaml:"preserve_format"`
	Include        *string  `yaml:"include"`
	Exclude        *string  `yaml:"exclude"`
	MaxBytes       *int64   `yaml:"max_bytes"`
	Threads        *int     `yaml:"threads"`
	NoCache        *bool    `yaml:"no_cache"`
	NoColor        *bool    `yaml:"no_color"`
	CacheSize      *int     `yaml:"cache_size"`
	DefaultExcl    *bool    `yaml:"default_excludes"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a config file in the given root. It supports
// .phantom.yml/.yaml and phantom.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	for _, name := range []string{".phantom.yml", ".phantom.yaml", "phantom.yml", "phantom.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return FileConfig{}, errors.New("no local config found")
}

// LoadGlobal reads the per-user config from ~/.phantom/config.yml.
func LoadGlobal() (FileConfig, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return FileConfig{}, err
	}
	for _, name := range []string{"config.yml", "config.yaml"} {
		p := filepath.Join(home, ".phantom", name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return FileConfig{}, errors.New("no global config found")
}
