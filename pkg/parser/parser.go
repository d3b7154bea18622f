package parser

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/enviro-scraper/models"
	"github.com/dtnitsch/enviro-scraper/pkg/cleaner"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// ErrEmptyDocument is returned when the readability extractor is given no markup.
var ErrEmptyDocument = errors.New("empty document")

// ContentSelectors are tried in order; every match contributes its text,
// so nested matches (a section inside main) are counted more than once.
var ContentSelectors = []string{
	"main",
	"article",
	".content",
	"#content",
	".main-content",
	".page-content",
	"section",
}

// boilerplate is removed before any text is read.
const boilerplate = "script, style, nav, footer, header"

type Parser struct {
	mode string
}

// New returns a Parser for the given extractor mode.
func New(mode string) (*Parser, error) {
	switch mode {
	case models.ExtractorSelectors, models.ExtractorReadability:
		return &Parser{mode: mode}, nil
	}
	return nil, fmt.Errorf("unknown extractor mode %q", mode)
}

// Extract turns raw HTML into a cleaned PageResult.
func (p *Parser) Extract(rawURL string, rawHTML []byte) (*models.PageResult, error) {
	if p.mode == models.ExtractorReadability {
		return p.extractReadable(rawURL, rawHTML)
	}
	return p.extractSelectors(rawURL, rawHTML)
}

func (p *Parser) extractSelectors(rawURL string, rawHTML []byte) (*models.PageResult, error) {
	doc, err := parseDocument(rawHTML)
	if err != nil {
		return nil, err
	}

	doc.Find(boilerplate).Remove()

	var content strings.Builder
	for _, sel := range ContentSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			content.WriteString(s.Text())
			content.WriteString(" ")
		})
	}

	text := content.String()
	if strings.TrimSpace(text) == "" {
		text = doc.Find("body").First().Text()
	}

	return newPageResult(rawURL, doc.Find("title").First().Text(), description(doc), text), nil
}

func (p *Parser) extractReadable(rawURL string, rawHTML []byte) (*models.PageResult, error) {
	if len(bytes.TrimSpace(rawHTML)) == 0 {
		return nil, ErrEmptyDocument
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	doc, err := parseDocument(rawHTML)
	if err != nil {
		return nil, err
	}
	desc := description(doc)

	readabilityParser := readability.NewParser()
	article, err := readabilityParser.Parse(bytes.NewReader(rawHTML), parsedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to extract readable content: %w", err)
	}

	body, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse readable content: %w", err)
	}

	if desc == "" {
		desc = article.Excerpt
	}
	return newPageResult(rawURL, article.Title, desc, body.Text()), nil
}

// parseDocument parses with scripting disabled so <noscript> children are
// elements rather than raw text.
func parseDocument(raw []byte) (*goquery.Document, error) {
	root, err := html.ParseWithOptions(bytes.NewReader(raw), html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

func description(doc *goquery.Document) string {
	return doc.Find(`meta[name="description"]`).First().AttrOr("content", "")
}

func newPageResult(rawURL, title, desc, content string) *models.PageResult {
	cleaned := cleaner.Clean(content)
	return &models.PageResult{
		URL:         rawURL,
		Title:       cleaner.Clean(title),
		Description: cleaner.Clean(desc),
		Content:     cleaned,
		WordCount:   len(strings.Fields(cleaned)),
	}
}
