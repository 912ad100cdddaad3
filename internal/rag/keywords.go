package rag

import (
	"strings"
	"unicode"
)

const minKeywordLength = 3

var keywordStopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "but": {}, "can": {}, "did": {},
	"does": {}, "for": {}, "from": {}, "had": {}, "has": {}, "have": {},
	"how": {}, "its": {}, "not": {}, "our": {}, "out": {}, "the": {},
	"their": {}, "them": {}, "they": {}, "this": {}, "was": {}, "were": {},
	"what": {}, "when": {}, "where": {}, "which": {}, "who": {}, "why": {},
	"will": {}, "with": {}, "you": {}, "your": {},
}

// queryKeywords extracts the scoring keyword set from a question:
// lower-cased, split on non-alphanumeric runs, deduplicated, at least
// minKeywordLength characters, stopwords removed.
func queryKeywords(query string) []string {
	tokens := tokenize(query)
	seen := make(map[string]struct{}, len(tokens))
	keywords := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if len(token) < minKeywordLength {
			continue
		}
		if _, isStop := keywordStopwords[token]; isStop {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		keywords = append(keywords, token)
	}
	return keywords
}

// tokenize lower-cases text and splits it on non-alphanumeric runs.
func tokenize(text string) []string {
	if text == "" {
		return nil
	}

	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
		} else {
			builder.WriteRune(' ')
		}
	}
	tokens := strings.Fields(builder.String())
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}
