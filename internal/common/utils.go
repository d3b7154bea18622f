package common

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// Log formats accepted by NewLogger.
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// NewLogger builds the diagnostic logger. JSON goes through slog's own
// handler; text uses charmbracelet/log. quiet only lets errors through.
func NewLogger(w io.Writer, format string, quiet bool) (*slog.Logger, error) {
	switch format {
	case LogFormatJSON, "":
		logLevel := slog.LevelInfo
		if quiet {
			logLevel = slog.LevelError
		}
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel})), nil
	case LogFormatText:
		logLevel := charmlog.InfoLevel
		if quiet {
			logLevel = charmlog.ErrorLevel
		}
		handler := charmlog.NewWithOptions(w, charmlog.Options{
			Level:           logLevel,
			ReportTimestamp: true,
		})
		return slog.New(handler), nil
	}
	return nil, fmt.Errorf("unknown log format %q (want %s or %s)", format, LogFormatJSON, LogFormatText)
}

// ResolvePageURL joins a configured page path onto the base URL.
// An empty page resolves to the base URL itself.
func ResolvePageURL(base *url.URL, page string) (string, error) {
	ref, err := url.Parse(page)
	if err != nil {
		return "", fmt.Errorf("invalid page path %q: %w", page, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// PageSlug turns a page URL into the chunk ID prefix: the path with every
// "/" replaced by "_", or "home" when the path is empty.
func PageSlug(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return "home"
	}
	return strings.ReplaceAll(u.Path, "/", "_")
}

// ChunkID returns the stable identifier of chunk i of a page.
func ChunkID(slug string, i int) string {
	return fmt.Sprintf("%s_%d", slug, i)
}

// SiteName is the display name of a site: the base URL's host.
func SiteName(base *url.URL) string {
	return base.Host
}
