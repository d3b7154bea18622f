package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "https://envirotestconstruct.com", cfg.BaseURL)
	assert.Equal(t, "enviro_content.json", cfg.Output)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, time.Second, cfg.Delay)
	assert.Equal(t, 500, cfg.ChunkSize)
	assert.Equal(t, 50, cfg.Overlap)
	assert.Equal(t, 50, cfg.MinWordCount)
	assert.Equal(t, 100, cfg.MinChunkChars)
	assert.Equal(t, ExtractorSelectors, cfg.Extractor)
	assert.Empty(t, cfg.HistoryDB)
	assert.Len(t, cfg.Pages, 11)
	assert.Equal(t, "", cfg.Pages[0])

	// callers may not mutate the package default
	cfg.Pages[0] = "/changed"
	assert.Equal(t, "", DefaultConfig().Pages[0])
}

func TestLoadConfig_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlData := `
base_url: http://localhost:8080
pages:
  - ""
  - /soil-testing
delay: 250ms
chunk_size: 200
overlap: 20
extractor: readability
history_db: runs.db
`
	require.NoError(t, os.WriteFile(path, []byte(yamlData), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, []string{"", "/soil-testing"}, cfg.Pages)
	assert.Equal(t, 250*time.Millisecond, cfg.Delay)
	assert.Equal(t, 200, cfg.ChunkSize)
	assert.Equal(t, 20, cfg.Overlap)
	assert.Equal(t, ExtractorReadability, cfg.Extractor)
	assert.Equal(t, "runs.db", cfg.HistoryDB)

	// untouched keys keep defaults
	assert.Equal(t, "enviro_content.json", cfg.Output)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 100, cfg.MinChunkChars)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunk_size: [1, 2"), 0644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative base url", func(c *Config) { c.BaseURL = "envirotestconstruct.com" }},
		{"ftp base url", func(c *Config) { c.BaseURL = "ftp://envirotestconstruct.com" }},
		{"no host", func(c *Config) { c.BaseURL = "https://" }},
		{"bad page", func(c *Config) { c.Pages = []string{"%zz"} }},
		{"empty output", func(c *Config) { c.Output = "" }},
		{"empty user agent", func(c *Config) { c.UserAgent = "" }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"negative delay", func(c *Config) { c.Delay = -time.Second }},
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }},
		{"overlap equals chunk size", func(c *Config) { c.Overlap = c.ChunkSize }},
		{"negative overlap", func(c *Config) { c.Overlap = -1 }},
		{"negative min word count", func(c *Config) { c.MinWordCount = -1 }},
		{"negative min chunk chars", func(c *Config) { c.MinChunkChars = -1 }},
		{"unknown extractor", func(c *Config) { c.Extractor = "markdown" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := DefaultConfig()
	cfg.Delay = 0
	cfg.Pages = nil
	assert.NoError(t, cfg.Validate())
}
