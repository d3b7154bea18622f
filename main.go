package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/enviro-scraper/internal/common"
	"github.com/dtnitsch/enviro-scraper/internal/history"
	"github.com/dtnitsch/enviro-scraper/internal/scrape"
	"github.com/dtnitsch/enviro-scraper/internal/stats"
	"github.com/dtnitsch/enviro-scraper/models"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:   "enviro-scraper",
		Usage:  "scrape a site's key pages into categorized text chunks",
		Flags:  scrapeFlags(),
		Action: scrape.ScrapeAction,
		Commands: []*cli.Command{
			{
				Name:   "scrape",
				Usage:  "scrape the configured pages and write the corpus (default)",
				Flags:  scrapeFlags(),
				Action: scrape.ScrapeAction,
			},
			{
				Name:      "history",
				Usage:     "list recorded runs, or show one run",
				ArgsUsage: "[run-id]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "maximum runs to list (0 for all)",
						Value: 20,
					},
					&cli.StringFlag{
						Name:  "url",
						Usage: "show every recorded attempt at one page URL",
					},
				},
				Action: history.HistoryAction,
			},
			{
				Name:      "stats",
				Usage:     "summarize an existing corpus file",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "top",
						Usage: "also list the N most frequent keywords",
					},
				},
				Action: stats.StatsAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// scrapeFlags are accepted both before and after the scrape subcommand.
func scrapeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "YAML config file overlaid on the defaults",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output JSON file",
			Value:   models.DefaultConfig().Output,
		},
		&cli.StringFlag{
			Name:  "base-url",
			Usage: "site to scrape",
			Value: models.DefaultConfig().BaseURL,
		},
		&cli.StringFlag{
			Name:  "extractor",
			Usage: "content extractor: selectors or readability",
			Value: models.ExtractorSelectors,
		},
		&cli.DurationFlag{
			Name:  "delay",
			Usage: "pause after each page",
			Value: models.DefaultConfig().Delay,
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "per-request timeout",
			Value: models.DefaultConfig().Timeout,
		},
		&cli.StringFlag{
			Name:  "history-db",
			Usage: "SQLite file recording run history (disabled when empty)",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "diagnostic log format: json or text",
			Value: common.LogFormatJSON,
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "only log errors",
		},
	}
}
