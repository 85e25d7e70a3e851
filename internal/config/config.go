// # internal/config/config.go
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Roots      []string `toml:"roots"`
	PHPVersion string   `toml:"php_version"`
	Exclude    Exclude  `toml:"exclude"`
	Output     Output   `toml:"output"`
	Store      Store    `toml:"store"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Output struct {
	TSV  string `toml:"tsv"`
	DOT  string `toml:"dot"`
	JSON string `toml:"json"`
}

type Store struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
	Project string `toml:"project"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if len(cfg.Exclude.Dirs) == 0 {
		cfg.Exclude.Dirs = []string{"vendor", "node_modules", ".git"}
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "classmap.db"
	}
	if cfg.Store.Project == "" {
		cfg.Store.Project = "default"
	}
}
