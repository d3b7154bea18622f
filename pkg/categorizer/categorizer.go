// Package categorizer assigns topic categories to chunks.
package categorizer

import (
	"strings"

	"github.com/dtnitsch/enviro-scraper/models"
)

// Rule maps a chunk to a category when any of its URL or text keywords is a
// case-insensitive substring of the page URL or the chunk text.
type Rule struct {
	Category     models.Category
	URLKeywords  []string
	TextKeywords []string
}

func (r Rule) matches(url, text string) bool {
	for _, kw := range r.URLKeywords {
		if strings.Contains(url, kw) {
			return true
		}
	}
	for _, kw := range r.TextKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Rules is evaluated in order; the first match wins.
var Rules = []Rule{
	{Category: models.CategorySiteAssessment, URLKeywords: []string{"site-assessment"}, TextKeywords: []string{"assessment"}},
	{Category: models.CategoryEnvironmentalMonitoring, URLKeywords: []string{"monitoring"}, TextKeywords: []string{"monitoring"}},
	{Category: models.CategoryGreenBuilding, URLKeywords: []string{"green"}, TextKeywords: []string{"compliance"}},
	{Category: models.CategoryContaminationDetection, URLKeywords: []string{"contamination"}, TextKeywords: []string{"contamination"}},
	{Category: models.CategoryAirQuality, URLKeywords: []string{"air-quality"}, TextKeywords: []string{"air"}},
	{Category: models.CategorySoilTesting, URLKeywords: []string{"soil"}, TextKeywords: []string{"soil"}},
	{Category: models.CategoryGroundwater, TextKeywords: []string{"water", "groundwater"}},
	{Category: models.CategoryCompanyInfo, URLKeywords: []string{"about"}, TextKeywords: []string{"company"}},
}

// Categorize returns the category of the first matching rule, or general.
func Categorize(url, text string) models.Category {
	url = strings.ToLower(url)
	text = strings.ToLower(text)
	for _, rule := range Rules {
		if rule.matches(url, text) {
			return rule.Category
		}
	}
	return models.CategoryGeneral
}
