// Package config loads altidx's configuration from a ".altidx.kdl" file
// (primary format) or an "altidx.toml" file (legacy format).
package config

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Config holds everything the CLI and the index handle need to operate.
type Config struct {
	Project Project
	Store   Store
	Index   Index
	Query   Query
	Include []string
	Exclude []string
}

type Project struct {
	Root string
}

// Store configures the embedded key-value store.
type Store struct {
	Path string // bbolt file location
}

type Index struct {
	MaxFileSizeBytes int64
	RespectGitignore bool
}

type Query struct {
	BusyTimeoutMs int // timeout applied to index mutex acquisition
}

// Default returns the configuration used when no config file is found.
func Default() *Config {
	root, err := os.Getwd()
	if err != nil {
		root = "."
	}
	return &Config{
		Project: Project{Root: root},
		Store:   Store{Path: filepath.Join(root, ".altidx", "index.bolt")},
		Index: Index{
			MaxFileSizeBytes: 10 * 1024 * 1024,
			RespectGitignore: true,
		},
		Query: Query{BusyTimeoutMs: 3000},
		Include: []string{},
		Exclude: []string{"**/.git/**", "**/node_modules/**"},
	}
}

// MatchesGlob reports whether relPath matches any of the configured
// Include patterns (or all paths, if Include is empty) and none of the
// Exclude patterns.
func (c *Config) MatchesGlob(relPath string) bool {
	for _, pattern := range c.Exclude {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return false
		}
	}
	if len(c.Include) == 0 {
		return true
	}
	for _, pattern := range c.Include {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}
	}
	return false
}
