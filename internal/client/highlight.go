package client

import (
	"regexp"
	"strings"
)

// minHighlightLength filters out short filler words when highlighting
// query terms inside source snippets.
const minHighlightLength = 4

// Segment is a run of snippet text, either matching a query term or not.
type Segment struct {
	Text    string
	Matched bool
}

// queryTerms extracts the highlightable words from a question. Words
// are lowercased, split on non-alphanumeric characters, deduplicated
// in first-seen order, and must be at least four characters long.
func queryTerms(question string) []string {
	normalized := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return ' '
	}, question)

	seen := make(map[string]struct{})
	var terms []string
	for _, word := range strings.Fields(normalized) {
		if len(word) < minHighlightLength {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		terms = append(terms, word)
	}
	return terms
}

// Highlight splits a snippet into segments, marking case-insensitive
// occurrences of the question's terms. With no usable terms the whole
// snippet comes back as a single unmatched segment.
func Highlight(snippet, question string) []Segment {
	terms := queryTerms(question)
	if len(terms) == 0 || snippet == "" {
		if snippet == "" {
			return nil
		}
		return []Segment{{Text: snippet}}
	}

	quoted := make([]string, len(terms))
	for i, term := range terms {
		quoted[i] = regexp.QuoteMeta(term)
	}
	pattern, err := regexp.Compile(`(?i)` + strings.Join(quoted, "|"))
	if err != nil {
		return []Segment{{Text: snippet}}
	}

	matches := pattern.FindAllStringIndex(snippet, -1)
	if len(matches) == 0 {
		return []Segment{{Text: snippet}}
	}

	segments := make([]Segment, 0, len(matches)*2+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			segments = append(segments, Segment{Text: snippet[last:m[0]]})
		}
		segments = append(segments, Segment{Text: snippet[m[0]:m[1]], Matched: true})
		last = m[1]
	}
	if last < len(snippet) {
		segments = append(segments, Segment{Text: snippet[last:]})
	}
	return segments
}
