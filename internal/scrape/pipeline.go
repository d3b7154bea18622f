package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/url"
	"time"

	"github.com/dtnitsch/enviro-scraper/internal/common"
	"github.com/dtnitsch/enviro-scraper/models"
	"github.com/dtnitsch/enviro-scraper/pkg/analytics"
	"github.com/dtnitsch/enviro-scraper/pkg/categorizer"
	"github.com/dtnitsch/enviro-scraper/pkg/chunker"
	"github.com/dtnitsch/enviro-scraper/pkg/db"
	"github.com/dtnitsch/enviro-scraper/pkg/fetcher"
	"github.com/dtnitsch/enviro-scraper/pkg/parser"
	"github.com/dtnitsch/enviro-scraper/pkg/storage"
	"github.com/dustin/go-humanize"
)

// Scraper runs the fetch, extract, chunk, categorize and persist pipeline
// over the configured pages, one page at a time.
type Scraper struct {
	cfg     models.Config
	base    *url.URL
	logger  *slog.Logger
	out     io.Writer
	fetcher *fetcher.Fetcher
	parser  *parser.Parser
	chunker *chunker.Chunker
	storage *storage.Storage
	history *db.DB
}

// NewScraper validates cfg and wires the pipeline stages. history may be nil.
func NewScraper(cfg models.Config, logger *slog.Logger, out io.Writer, history *db.DB) (*Scraper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	p, err := parser.New(cfg.Extractor)
	if err != nil {
		return nil, err
	}

	ch, err := chunker.New(chunker.Config{
		ChunkSize: cfg.ChunkSize,
		Overlap:   cfg.Overlap,
		MinChars:  cfg.MinChunkChars,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid chunking configuration: %w", err)
	}

	return &Scraper{
		cfg:     cfg,
		base:    base,
		logger:  logger,
		out:     out,
		fetcher: fetcher.New(cfg.Timeout, cfg.UserAgent),
		parser:  p,
		chunker: ch,
		storage: &storage.Storage{},
		history: history,
	}, nil
}

// Run scrapes every configured page and writes the corpus to cfg.Output.
// If ctx is canceled the run stops and nothing is written.
func (s *Scraper) Run(ctx context.Context) (models.Corpus, error) {
	startTime := time.Now()
	fmt.Fprintf(s.out, "Starting to scrape %s website...\n", common.SiteName(s.base))
	s.logger.Info("Starting scrape", "base_url", s.cfg.BaseURL, "pages", len(s.cfg.Pages), "extractor", s.cfg.Extractor)

	runID := s.startRun()

	corpus := models.Corpus{}
	visited := make(map[string]struct{}, len(s.cfg.Pages))
	failed := 0

	for _, page := range s.cfg.Pages {
		pageURL, err := common.ResolvePageURL(s.base, page)
		if err != nil {
			failed++
			fmt.Fprintf(s.out, "Error scraping %s: %v\n", page, err)
			s.logger.Error("Invalid page path", "page", page, "error", err)
			continue
		}
		if _, seen := visited[pageURL]; seen {
			s.logger.Info("Skipping duplicate page", "url", pageURL)
			continue
		}

		if ctx.Err() != nil {
			return nil, s.interrupted(ctx, runID, failed, len(corpus))
		}

		fmt.Fprintf(s.out, "Scraping: %s\n", pageURL)
		result := s.processPage(ctx, pageURL)
		if result.Error != nil {
			if ctx.Err() != nil {
				return nil, s.interrupted(ctx, runID, failed, len(corpus))
			}
			failed++
			fmt.Fprintf(s.out, "Error scraping %s: %v\n", pageURL, result.Error)
			s.logger.Error("Failed to scrape page", "url", pageURL, "error", result.Error, "error_type", result.ErrorType)
		}
		corpus = append(corpus, result.Chunks...)
		s.recordPage(runID, result)

		visited[pageURL] = struct{}{}
		if err := sleep(ctx, s.cfg.Delay); err != nil {
			return nil, s.interrupted(ctx, runID, failed, len(corpus))
		}
	}

	fmt.Fprintf(s.out, "Scraping completed. Collected %d content chunks.\n", len(corpus))

	if err := s.storage.SaveCorpus(s.cfg.Output, corpus); err != nil {
		s.finishRun(runID, db.RunFailed, failed, len(corpus))
		return nil, fmt.Errorf("failed to save output: %w", err)
	}
	fmt.Fprintf(s.out, "Content saved to %s\n", s.cfg.Output)

	if stats, err := s.storage.GetFileStats(s.cfg.Output); err == nil {
		s.logger.Info("Output written", "path", s.cfg.Output, "size", humanize.Bytes(uint64(stats.SizeBytes)))
	}
	s.finishRun(runID, db.RunCompleted, failed, len(corpus))
	s.logger.Info("Scrape finished", "chunks", len(corpus), "failed", failed, "duration", time.Since(startTime).String())

	analytics.WriteSummary(s.out, corpus)
	return corpus, nil
}

// processPage fetches, extracts, chunks and categorizes a single page.
func (s *Scraper) processPage(ctx context.Context, pageURL string) Result {
	result := Result{URL: pageURL}

	html, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		result.Error = err
		result.ErrorType = classifyFetchError(err)
		var statusErr *fetcher.StatusError
		if errors.As(err, &statusErr) {
			result.StatusCode = statusErr.StatusCode
		}
		return result
	}
	result.StatusCode = 200

	page, err := s.parser.Extract(pageURL, html)
	if err != nil {
		result.Error = err
		result.ErrorType = "parse_error"
		return result
	}
	result.Page = page

	if page.WordCount <= s.cfg.MinWordCount {
		s.logger.Info("Page below word threshold", "url", pageURL, "word_count", page.WordCount)
		return result
	}

	result.Chunks = s.buildChunks(page)
	s.logger.Info("Scraped page", "url", pageURL, "word_count", page.WordCount, "chunks", len(result.Chunks))
	return result
}

// buildChunks splits a page and stamps every chunk with its position and category.
func (s *Scraper) buildChunks(page *models.PageResult) []models.Chunk {
	texts := s.chunker.Split(page.Content)
	slug := common.PageSlug(page.URL)

	chunks := make([]models.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = models.Chunk{
			ID:          common.ChunkID(slug, i),
			SourceURL:   page.URL,
			Title:       page.Title,
			Description: page.Description,
			Content:     text,
			ChunkIndex:  i,
			TotalChunks: len(texts),
			Category:    categorizer.Categorize(page.URL, text),
		}
	}
	return chunks
}

func classifyFetchError(err error) string {
	var statusErr *fetcher.StatusError
	if errors.As(err, &statusErr) {
		return "http_status"
	}
	if errors.Is(err, fetcher.ErrBodyTooLarge) {
		return "body_too_large"
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return "timeout"
	}
	return "fetch_error"
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Scraper) interrupted(ctx context.Context, runID string, failed, chunks int) error {
	s.logger.Error("Scrape interrupted, output not written", "error", ctx.Err())
	s.finishRun(runID, db.RunInterrupted, failed, chunks)
	return fmt.Errorf("scrape interrupted: %w", ctx.Err())
}

// History is telemetry only; failures are logged and never stop the run.

func (s *Scraper) startRun() string {
	if s.history == nil {
		return ""
	}
	runID, err := s.history.StartRun(s.cfg.BaseURL, s.cfg.Output, len(s.cfg.Pages))
	if err != nil {
		s.logger.Error("Failed to record run start", "error", err)
		return ""
	}
	s.logger.Info("Recording run history", "run_id", runID, "db", s.history.Path())
	return runID
}

func (s *Scraper) recordPage(runID string, r Result) {
	if s.history == nil || runID == "" {
		return
	}
	rec := db.PageRecord{
		URL:        r.URL,
		Status:     r.Status(),
		StatusCode: r.StatusCode,
		ErrorType:  r.ErrorType,
		ChunkCount: len(r.Chunks),
	}
	if r.Error != nil {
		rec.ErrorMessage = r.Error.Error()
	}
	if r.Page != nil {
		rec.WordCount = r.Page.WordCount
	}
	if err := s.history.RecordPage(runID, rec); err != nil {
		s.logger.Error("Failed to record page result", "url", r.URL, "error", err)
	}
}

func (s *Scraper) finishRun(runID, status string, failed, chunks int) {
	if s.history == nil || runID == "" {
		return
	}
	if err := s.history.FinishRun(runID, status, failed, chunks); err != nil {
		s.logger.Error("Failed to record run finish", "run_id", runID, "error", err)
	}
}
