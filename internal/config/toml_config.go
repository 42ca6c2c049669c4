package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// tomlConfig mirrors the subset of Config a legacy "altidx.toml" file
// can set. It exists only as the decode target; callers get back the
// same *Config type Load returns.
type tomlConfig struct {
	Project struct {
		Root string `toml:"root"`
	} `toml:"project"`
	Store struct {
		Path string `toml:"path"`
	} `toml:"store"`
	Index struct {
		MaxFileSizeBytes int64 `toml:"max_file_size_bytes"`
		RespectGitignore *bool `toml:"respect_gitignore"`
	} `toml:"index"`
	Query struct {
		BusyTimeoutMs int `toml:"busy_timeout_ms"`
	} `toml:"query"`
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

// LoadTOML reads the legacy "altidx.toml" format, overlaying it on
// Default(). It exists for projects migrating from an older config
// convention; new projects should use Load (KDL).
func LoadTOML(configPath string) (*Config, error) {
	cfg := Default()

	content, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
	}

	var parsed tomlConfig
	if err := toml.Unmarshal(content, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config: %w", err)
	}

	if parsed.Project.Root != "" {
		cfg.Project.Root = parsed.Project.Root
		if !filepath.IsAbs(cfg.Project.Root) {
			cfg.Project.Root = filepath.Clean(filepath.Join(filepath.Dir(configPath), cfg.Project.Root))
		}
	}
	if parsed.Store.Path != "" {
		cfg.Store.Path = parsed.Store.Path
	}
	if parsed.Index.MaxFileSizeBytes != 0 {
		cfg.Index.MaxFileSizeBytes = parsed.Index.MaxFileSizeBytes
	}
	if parsed.Index.RespectGitignore != nil {
		cfg.Index.RespectGitignore = *parsed.Index.RespectGitignore
	}
	if parsed.Query.BusyTimeoutMs != 0 {
		cfg.Query.BusyTimeoutMs = parsed.Query.BusyTimeoutMs
	}
	if len(parsed.Include) > 0 {
		cfg.Include = parsed.Include
	}
	if len(parsed.Exclude) > 0 {
		cfg.Exclude = parsed.Exclude
	}

	if !filepath.IsAbs(cfg.Store.Path) {
		cfg.Store.Path = filepath.Join(cfg.Project.Root, cfg.Store.Path)
	}
	return cfg, nil
}
