// Package models defines data structures for configuration and scraped content.
package models

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Extractor modes.
const (
	ExtractorSelectors   = "selectors"
	ExtractorReadability = "readability"
)

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// DefaultPages is the fixed list of site paths scraped on every run.
// The empty path is the home page.
var DefaultPages = []string{
	"",
	"/services",
	"/about",
	"/contact",
	"/site-assessment",
	"/environmental-monitoring",
	"/green-building-compliance",
	"/contamination-detection",
	"/air-quality-monitoring",
	"/soil-testing",
	"/groundwater-analysis",
}

// Config holds runtime configuration for a scrape run.
// Values come from DefaultConfig, optionally overlaid by a YAML file and CLI flags.
type Config struct {
	BaseURL   string        `yaml:"base_url"`
	Pages     []string      `yaml:"pages"`
	Output    string        `yaml:"output"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
	Delay     time.Duration `yaml:"delay"`

	// Chunking
	ChunkSize     int `yaml:"chunk_size"`
	Overlap       int `yaml:"overlap"`
	MinWordCount  int `yaml:"min_word_count"`  // pages need strictly more words than this
	MinChunkChars int `yaml:"min_chunk_chars"` // chunks need strictly more characters than this

	Extractor string `yaml:"extractor"` // "selectors" | "readability"

	// HistoryDB is the SQLite file recording runs. Empty disables history.
	HistoryDB string `yaml:"history_db,omitempty"`
}

// DefaultConfig returns the compiled-in configuration.
func DefaultConfig() Config {
	pages := make([]string, len(DefaultPages))
	copy(pages, DefaultPages)

	return Config{
		BaseURL:       "https://envirotestconstruct.com",
		Pages:         pages,
		Output:        "enviro_content.json",
		UserAgent:     DefaultUserAgent,
		Timeout:       10 * time.Second,
		Delay:         time.Second,
		ChunkSize:     500,
		Overlap:       50,
		MinWordCount:  50,
		MinChunkChars: 100,
		Extractor:     ExtractorSelectors,
	}
}

// LoadConfig reads a YAML file and overlays it on DefaultConfig.
// Keys missing from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must use http or https, got %q", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base_url has no host: %q", c.BaseURL)
	}
	for _, page := range c.Pages {
		if _, err := url.Parse(page); err != nil {
			return fmt.Errorf("invalid page path %q: %w", page, err)
		}
	}
	if c.Output == "" {
		return fmt.Errorf("output is required")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user_agent is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay must be non-negative, got %s", c.Delay)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.Overlap < 0 || c.Overlap >= c.ChunkSize {
		return fmt.Errorf("overlap (%d) must be in [0, chunk_size) (chunk_size=%d)", c.Overlap, c.ChunkSize)
	}
	if c.MinWordCount < 0 {
		return fmt.Errorf("min_word_count must be non-negative, got %d", c.MinWordCount)
	}
	if c.MinChunkChars < 0 {
		return fmt.Errorf("min_chunk_chars must be non-negative, got %d", c.MinChunkChars)
	}
	switch c.Extractor {
	case ExtractorSelectors, ExtractorReadability:
	default:
		return fmt.Errorf("unknown extractor %q (want %s or %s)", c.Extractor, ExtractorSelectors, ExtractorReadability)
	}
	return nil
}
