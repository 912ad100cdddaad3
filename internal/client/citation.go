package client

import (
	"regexp"
	"strconv"
)

// SpanKind distinguishes the pieces of a parsed answer.
type SpanKind int

const (
	// PlainText is a run of answer text with no citation in it.
	PlainText SpanKind = iota
	// CitationToken is a bracketed reference like [2].
	CitationToken
)

// Span is one piece of a parsed answer, in document order.
type Span struct {
	Kind SpanKind
	// Text is the original answer text for this span, including the
	// brackets when Kind is CitationToken.
	Text string
	// SourceIndex is the zero-based index into the sources list for a
	// bound citation, or -1 for plain text and unbound citations.
	SourceIndex int
}

var citationPattern = regexp.MustCompile(`\[(\d+)\]`)

// ParseCitations splits an answer into plain text and citation spans.
// A citation [n] is bound to sources[n-1] when n is within range;
// out-of-range citations are kept as inert tokens so the original text
// is always reconstructable by concatenating span texts.
func ParseCitations(answer string, sourceCount int) []Span {
	matches := citationPattern.FindAllStringSubmatchIndex(answer, -1)
	if len(matches) == 0 {
		if answer == "" {
			return nil
		}
		return []Span{{Kind: PlainText, Text: answer, SourceIndex: -1}}
	}

	spans := make([]Span, 0, len(matches)*2+1)
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if start > last {
			spans = append(spans, Span{Kind: PlainText, Text: answer[last:start], SourceIndex: -1})
		}

		n, err := strconv.Atoi(answer[m[2]:m[3]])
		index := -1
		if err == nil && n >= 1 && n <= sourceCount {
			index = n - 1
		}
		spans = append(spans, Span{Kind: CitationToken, Text: answer[start:end], SourceIndex: index})
		last = end
	}
	if last < len(answer) {
		spans = append(spans, Span{Kind: PlainText, Text: answer[last:], SourceIndex: -1})
	}
	return spans
}
