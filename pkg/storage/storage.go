package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dtnitsch/enviro-scraper/models"
)

type Storage struct{}

// FileStats holds metadata about a file without reading its contents.
type FileStats struct {
	SizeBytes int64
	ModTime   time.Time
}

// EncodeCorpus renders a corpus as a 2-space indented JSON array.
// Non-ASCII and HTML characters are written literally; nil encodes as [].
func EncodeCorpus(corpus models.Corpus) ([]byte, error) {
	if corpus == nil {
		corpus = models.Corpus{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(corpus); err != nil {
		return nil, fmt.Errorf("failed to encode corpus: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// SaveCorpus writes the corpus to filePath, replacing any existing file.
func (s *Storage) SaveCorpus(filePath string, corpus models.Corpus) error {
	data, err := EncodeCorpus(corpus)
	if err != nil {
		return err
	}
	return s.SaveFile(filePath, data)
}

// SaveFile writes content to a temp file in the target directory and renames
// it over filePath, so readers never see a partial file.
func (s *Storage) SaveFile(filePath string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(filePath), "."+filepath.Base(filePath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", filePath, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions on %s: %w", filePath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", filePath, err)
	}
	if err := os.Rename(tmpName, filePath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

func (s *Storage) ReadFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// LoadCorpus reads a corpus previously written by SaveCorpus.
func (s *Storage) LoadCorpus(filePath string) (models.Corpus, error) {
	data, err := s.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var corpus models.Corpus
	if err := json.Unmarshal(data, &corpus); err != nil {
		return nil, fmt.Errorf("failed to parse corpus %s: %w", filePath, err)
	}
	return corpus, nil
}

func (s *Storage) HasFile(fn string) bool {
	_, err := os.Stat(fn)
	return err == nil
}

// GetFileStats returns metadata about a file using os.Stat.
func (s *Storage) GetFileStats(filePath string) (*FileStats, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get file stats: %w", err)
	}

	return &FileStats{
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
	}, nil
}
