package stats

import (
	"fmt"
	"io"
	"os"

	"github.com/dtnitsch/enviro-scraper/internal/scrape"
	"github.com/dtnitsch/enviro-scraper/models"
	"github.com/dtnitsch/enviro-scraper/pkg/analytics"
	"github.com/dtnitsch/enviro-scraper/pkg/storage"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
)

// StatsAction prints the summary of an existing corpus file. Without an
// argument it reads the configured output path.
func StatsAction(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		cfg, err := scrape.ConfigFromContext(c)
		if err != nil {
			return err
		}
		path = cfg.Output
	}

	s := &storage.Storage{}
	corpus, err := s.LoadCorpus(path)
	if err != nil {
		return err
	}

	size := ""
	if stats, err := s.GetFileStats(path); err == nil {
		size = humanize.Bytes(uint64(stats.SizeBytes))
	}

	writeStats(os.Stdout, path, size, corpus, c.Int("top"))
	return nil
}

func writeStats(w io.Writer, path, size string, corpus models.Corpus, top int) {
	if size != "" {
		fmt.Fprintf(w, "File: %s (%s)\n", path, size)
	} else {
		fmt.Fprintf(w, "File: %s\n", path)
	}
	analytics.WriteSummary(w, corpus)

	if top <= 0 {
		return
	}
	fmt.Fprintf(w, "\nTop %d keywords:\n", top)
	for _, wc := range analytics.TopNWords(corpus, top) {
		fmt.Fprintf(w, "  %s: %d\n", wc.Word, wc.Count)
	}
}
