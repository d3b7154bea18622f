// Package chunker splits page content into overlapping word windows.
package chunker

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Config holds chunking configuration.
type Config struct {
	// ChunkSize is the maximum number of words per chunk.
	ChunkSize int

	// Overlap is the number of words shared by consecutive windows.
	Overlap int

	// MinChars drops chunks whose trimmed length is not strictly greater.
	MinChars int
}

// DefaultConfig returns the standard chunking parameters.
func DefaultConfig() Config {
	return Config{
		ChunkSize: 500,
		Overlap:   50,
		MinChars:  100,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("ChunkSize must be positive, got %d", c.ChunkSize)
	}
	if c.Overlap < 0 {
		return fmt.Errorf("Overlap must not be negative, got %d", c.Overlap)
	}
	if c.Overlap >= c.ChunkSize {
		return fmt.Errorf("Overlap (%d) must be less than ChunkSize (%d)", c.Overlap, c.ChunkSize)
	}
	if c.MinChars < 0 {
		return fmt.Errorf("MinChars must not be negative, got %d", c.MinChars)
	}
	return nil
}

type Chunker struct {
	config Config
}

// New creates a Chunker, returning an error if the configuration is invalid.
func New(cfg Config) (*Chunker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Chunker{config: cfg}, nil
}

// Split returns the kept word windows of content in order. Windows start
// every ChunkSize-Overlap words; the last one may be shorter.
func (c *Chunker) Split(content string) []string {
	words := strings.Fields(content)
	step := c.config.ChunkSize - c.config.Overlap

	chunks := make([]string, 0, len(words)/step+1)
	for start := 0; start < len(words); start += step {
		end := min(start+c.config.ChunkSize, len(words))
		chunk := strings.Join(words[start:end], " ")
		if utf8.RuneCountInString(strings.TrimSpace(chunk)) > c.config.MinChars {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}
