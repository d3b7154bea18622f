package scrape

import (
	"github.com/dtnitsch/enviro-scraper/models"
	"github.com/dtnitsch/enviro-scraper/pkg/db"
)

// Result holds the outcome of one page attempt.
type Result struct {
	URL        string
	Page       *models.PageResult
	Chunks     []models.Chunk
	Error      error
	ErrorType  string
	StatusCode int
}

// Status is the page outcome recorded in run history.
func (r Result) Status() string {
	switch {
	case r.Error != nil:
		return db.PageFailed
	case len(r.Chunks) == 0:
		return db.PageSkipped
	}
	return db.PageOK
}
