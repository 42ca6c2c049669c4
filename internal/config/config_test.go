package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRootIsCwd(t *testing.T) {
	cfg := Default()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, cwd, cfg.Project.Root)
	assert.Equal(t, filepath.Join(cwd, ".altidx", "index.bolt"), cfg.Store.Path)
	assert.True(t, cfg.Index.RespectGitignore)
	assert.Equal(t, 3000, cfg.Query.BusyTimeoutMs)
}

func TestMatchesGlobExcludeWins(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.MatchesGlob("vendor/node_modules/foo.js"))
	assert.False(t, cfg.MatchesGlob(".git/HEAD"))
	assert.True(t, cfg.MatchesGlob("src/main.cpp"))
}

func TestMatchesGlobEmptyIncludeMatchesAll(t *testing.T) {
	cfg := Default()
	cfg.Include = nil
	assert.True(t, cfg.MatchesGlob("anything/at/all.h"))
}

func TestMatchesGlobNonEmptyIncludeRestricts(t *testing.T) {
	cfg := Default()
	cfg.Include = []string{"**/*.cpp", "**/*.h"}
	assert.True(t, cfg.MatchesGlob("src/thing.cpp"))
	assert.True(t, cfg.MatchesGlob("src/thing.h"))
	assert.False(t, cfg.MatchesGlob("src/thing.py"))
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.kdl"))
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestLoadKDLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".altidx.kdl")
	content := `
project {
    root "."
}
store {
    path "custom/index.bolt"
}
index {
    max_file_size 1048576
    respect_gitignore false
}
query {
    busy_timeout_ms 500
}
include "**/*.cpp" "**/*.h"
exclude "**/build/**"
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, int64(1048576), cfg.Index.MaxFileSizeBytes)
	assert.False(t, cfg.Index.RespectGitignore)
	assert.Equal(t, 500, cfg.Query.BusyTimeoutMs)
	assert.ElementsMatch(t, []string{"**/*.cpp", "**/*.h"}, cfg.Include)
	assert.ElementsMatch(t, []string{"**/build/**"}, cfg.Exclude)
	assert.Equal(t, filepath.Join(dir, "custom/index.bolt"), cfg.Store.Path)
}

func TestLoadKDLMalformedReturnsError(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".altidx.kdl")
	require.NoError(t, os.WriteFile(configPath, []byte("project {\n  root \"unterminated\n"), 0o644))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestLoadTOMLMissingFileReturnsDefault(t *testing.T) {
	cfg, err := LoadTOML(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestLoadTOMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "altidx.toml")
	content := `
include = ["**/*.cpp"]
exclude = ["**/dist/**"]

[project]
root = "."

[store]
path = "custom/index.bolt"

[index]
max_file_size_bytes = 2048
respect_gitignore = false

[query]
busy_timeout_ms = 750
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	cfg, err := LoadTOML(configPath)
	require.NoError(t, err)

	assert.Equal(t, int64(2048), cfg.Index.MaxFileSizeBytes)
	assert.False(t, cfg.Index.RespectGitignore)
	assert.Equal(t, 750, cfg.Query.BusyTimeoutMs)
	assert.Equal(t, []string{"**/*.cpp"}, cfg.Include)
	assert.Equal(t, []string{"**/dist/**"}, cfg.Exclude)
	assert.Equal(t, filepath.Join(dir, "custom/index.bolt"), cfg.Store.Path)
}

func TestLoadTOMLMalformedReturnsError(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "altidx.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("not = [valid toml"), 0o644))

	_, err := LoadTOML(configPath)
	assert.Error(t, err)
}
