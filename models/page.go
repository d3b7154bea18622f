package models

// PageResult is the cleaned text extracted from a single fetched page.
// It is transient: only the chunks derived from it are persisted.
type PageResult struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	WordCount   int    `json:"word_count"`
}
