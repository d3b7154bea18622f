// Package analytics summarizes a corpus: chunk counts per category and
// keyword frequencies.
package analytics

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/dtnitsch/enviro-scraper/models"
)

// CategoryCount is one histogram bucket.
type CategoryCount struct {
	Category models.Category
	Count    int
}

// CategoryHistogram counts chunks per category, ordered by first appearance.
func CategoryHistogram(corpus models.Corpus) []CategoryCount {
	index := make(map[models.Category]int)
	var hist []CategoryCount
	for _, chunk := range corpus {
		i, ok := index[chunk.Category]
		if !ok {
			i = len(hist)
			index[chunk.Category] = i
			hist = append(hist, CategoryCount{Category: chunk.Category})
		}
		hist[i].Count++
	}
	return hist
}

// WriteSummary prints the run summary block.
func WriteSummary(w io.Writer, corpus models.Corpus) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Scraping Summary:")
	fmt.Fprintf(w, "Total chunks: %d\n", len(corpus))
	fmt.Fprintln(w, "Content by category:")
	for _, c := range CategoryHistogram(corpus) {
		fmt.Fprintf(w, "  %s: %d chunks\n", c.Category, c.Count)
	}
}

// stopwords are skipped in keyword frequency counts.
var stopwords = map[string]struct{}{
	"a": {}, "about": {}, "after": {}, "all": {}, "also": {}, "an": {}, "and": {},
	"any": {}, "are": {}, "as": {}, "at": {}, "be": {}, "been": {}, "but": {},
	"by": {}, "can": {}, "could": {}, "do": {}, "does": {}, "each": {}, "for": {},
	"from": {}, "had": {}, "has": {}, "have": {}, "he": {}, "her": {}, "his": {},
	"how": {}, "i": {}, "if": {}, "in": {}, "into": {}, "is": {}, "it": {},
	"its": {}, "more": {}, "most": {}, "no": {}, "not": {}, "of": {}, "on": {},
	"or": {}, "our": {}, "out": {}, "over": {}, "she": {}, "so": {}, "such": {},
	"than": {}, "that": {}, "the": {}, "their": {}, "them": {}, "then": {},
	"there": {}, "these": {}, "they": {}, "this": {}, "those": {}, "to": {},
	"up": {}, "us": {}, "was": {}, "we": {}, "were": {}, "what": {}, "when": {},
	"which": {}, "who": {}, "will": {}, "with": {}, "would": {}, "you": {},
	"your": {},

	// site chrome
	"click": {}, "contact": {}, "home": {}, "menu": {}, "read": {}, "skip": {},
}

// IsStopword checks if a word is a common stopword that should be filtered out.
func IsStopword(word string) bool {
	_, exists := stopwords[strings.ToLower(word)]
	return exists
}

// WordFrequency counts lowercased words in text, ignoring stopwords and
// surrounding punctuation.
func WordFrequency(text string) map[string]int {
	frequencies := make(map[string]int)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if word == "" || IsStopword(word) {
			continue
		}
		frequencies[word]++
	}
	return frequencies
}

// WordCount is a keyword and its frequency.
type WordCount struct {
	Word  string
	Count int
}

// TopNWords returns the n most frequent keywords across the corpus.
// Ties are broken alphabetically.
func TopNWords(corpus models.Corpus, n int) []WordCount {
	totals := make(map[string]int)
	for _, chunk := range corpus {
		for w, c := range WordFrequency(chunk.Content) {
			totals[w] += c
		}
	}

	counts := make([]WordCount, 0, len(totals))
	for w, c := range totals {
		counts = append(counts, WordCount{Word: w, Count: c})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})

	if n < len(counts) {
		counts = counts[:n]
	}
	return counts
}
