package history

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dtnitsch/enviro-scraper/internal/scrape"
	dbpkg "github.com/dtnitsch/enviro-scraper/pkg/db"
	"github.com/dtnitsch/enviro-scraper/pkg/storage"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
)

// openHistory opens the database named by --history-db or the config file,
// falling back to DefaultDBName in the working directory.
func openHistory(c *cli.Context) (*dbpkg.DB, error) {
	cfg, err := scrape.ConfigFromContext(c)
	if err != nil {
		return nil, err
	}
	path := cfg.HistoryDB
	if path == "" {
		path = dbpkg.DefaultDBName
	}
	if !(&storage.Storage{}).HasFile(path) {
		return nil, fmt.Errorf("no run history at %s (enable it with --history-db)", path)
	}

	database, err := dbpkg.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

// HistoryAction lists recent runs, shows one run when an ID is given, or
// shows every attempt at one page with --url.
func HistoryAction(c *cli.Context) error {
	database, err := openHistory(c)
	if err != nil {
		return err
	}
	defer database.Close()

	if pageURL := c.String("url"); pageURL != "" {
		return printURLAttempts(os.Stdout, database, pageURL)
	}

	if c.NArg() > 0 {
		return printRun(os.Stdout, database, c.Args().First())
	}

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	printRuns(os.Stdout, runs)
	return nil
}

func printRuns(w io.Writer, runs []dbpkg.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found")
		return
	}

	fmt.Fprintf(w, "%-10s %-20s %-12s %-6s %-7s %-7s %-30s\n",
		"ID", "Started", "Status", "Pages", "Failed", "Chunks", "Output")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, r := range runs {
		fmt.Fprintf(w, "%-10s %-20s %-12s %-6d %-7d %-7d %-30s\n",
			shortID(r.RunID),
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Status,
			r.PageCount,
			r.FailedCount,
			r.ChunkCount,
			r.OutputPath,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d runs\n", len(runs))
	fmt.Fprintf(w, "\nTip: Use 'enviro-scraper history <id>' to see details\n")
}

func printRun(w io.Writer, database *dbpkg.DB, id string) error {
	run, err := database.GetRun(id)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}
	pages, err := database.GetRunPages(run.RunID)
	if err != nil {
		return fmt.Errorf("failed to get run pages: %w", err)
	}

	fmt.Fprintf(w, "Run %s\n", run.RunID)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Site:        %s\n", run.BaseURL)
	fmt.Fprintf(w, "Started:     %s (%s)\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"), humanize.Time(run.StartedAt))
	if run.FinishedAt != nil {
		fmt.Fprintf(w, "Duration:    %s\n", run.Duration().Round(time.Millisecond))
	}
	fmt.Fprintf(w, "Status:      %s\n", run.Status)
	fmt.Fprintf(w, "Pages:       %d configured, %d failed\n", run.PageCount, run.FailedCount)
	fmt.Fprintf(w, "Chunks:      %d\n", run.ChunkCount)
	fmt.Fprintf(w, "Output:      %s\n", run.OutputPath)

	if len(pages) > 0 {
		fmt.Fprintf(w, "\nPages (%d):\n", len(pages))
		fmt.Fprintln(w, strings.Repeat("-", 60))
		for i, p := range pages {
			fmt.Fprintf(w, "%2d. [%s] %s\n", i+1, p.Status, p.URL)
			if p.Status == dbpkg.PageFailed {
				fmt.Fprintf(w, "    Error: [%s] %s\n", p.ErrorType, p.ErrorMessage)
			} else {
				fmt.Fprintf(w, "    Status: %d | Words: %s | Chunks: %d\n",
					p.StatusCode, humanize.Comma(int64(p.WordCount)), p.ChunkCount)
			}
		}
	}
	return nil
}

func printURLAttempts(w io.Writer, database *dbpkg.DB, pageURL string) error {
	attempts, err := database.GetURLAttempts(pageURL)
	if err != nil {
		return fmt.Errorf("failed to get URL history: %w", err)
	}

	fmt.Fprintf(w, "%s\n", pageURL)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	for _, a := range attempts {
		fmt.Fprintf(w, "%-10s %-14s %-8s ", shortID(a.RunID), humanize.Time(a.AttemptedAt), a.Status)
		if a.Status == dbpkg.PageFailed {
			fmt.Fprintf(w, "[%s] %s\n", a.ErrorType, a.ErrorMessage)
		} else {
			fmt.Fprintf(w, "HTTP %d, %s words, %d chunks\n",
				a.StatusCode, humanize.Comma(int64(a.WordCount)), a.ChunkCount)
		}
	}
	fmt.Fprintf(w, "\nTotal: %d attempts\n", len(attempts))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
