package scrape

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dtnitsch/enviro-scraper/internal/common"
	"github.com/dtnitsch/enviro-scraper/models"
	"github.com/dtnitsch/enviro-scraper/pkg/db"
	"github.com/urfave/cli/v2"
)

func ScrapeAction(c *cli.Context) error {
	format, quiet := common.LogFormatJSON, false
	if fc := flagContext(c, "log-format"); fc != nil {
		format = fc.String("log-format")
	}
	if fc := flagContext(c, "quiet"); fc != nil {
		quiet = fc.Bool("quiet")
	}
	logger, err := common.NewLogger(os.Stderr, format, quiet)
	if err != nil {
		return err
	}

	cfg, err := ConfigFromContext(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var history *db.DB
	if cfg.HistoryDB != "" {
		history, err = db.Open(cfg.HistoryDB)
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer history.Close()
	}

	scraper, err := NewScraper(cfg, logger, os.Stdout, history)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = scraper.Run(ctx)
	return err
}

// flagContext returns the innermost context in which name was given on the
// command line, or nil. The scrape flags exist on both the app and the scrape
// subcommand, so "-o x scrape" and "scrape -o x" must both be honored.
func flagContext(c *cli.Context, name string) *cli.Context {
	for _, ctx := range c.Lineage() {
		for _, set := range ctx.LocalFlagNames() {
			if set == name {
				return ctx
			}
		}
	}
	return nil
}

// ConfigFromContext loads the config file named by --config, if any, and
// applies flag overrides on top. Without flags it returns DefaultConfig.
func ConfigFromContext(c *cli.Context) (models.Config, error) {
	cfg := models.DefaultConfig()
	if fc := flagContext(c, "config"); fc != nil {
		var err error
		cfg, err = models.LoadConfig(fc.String("config"))
		if err != nil {
			return cfg, err
		}
	}

	if fc := flagContext(c, "output"); fc != nil {
		cfg.Output = fc.String("output")
	}
	if fc := flagContext(c, "base-url"); fc != nil {
		cfg.BaseURL = fc.String("base-url")
	}
	if fc := flagContext(c, "extractor"); fc != nil {
		cfg.Extractor = fc.String("extractor")
	}
	if fc := flagContext(c, "history-db"); fc != nil {
		cfg.HistoryDB = fc.String("history-db")
	}
	if fc := flagContext(c, "delay"); fc != nil {
		cfg.Delay = fc.Duration("delay")
	}
	if fc := flagContext(c, "timeout"); fc != nil {
		cfg.Timeout = fc.Duration("timeout")
	}
	return cfg, nil
}
