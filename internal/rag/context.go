package rag

import (
	"fmt"
	"strconv"
	"strings"
)

// unknownPage is the placeholder used when chunk metadata has no page.
const unknownPage = "?"

// BuildContext renders the ranked sources as a single prompt blob, one
// source per block in Order sequence:
//
//	[1] (page 12) content...
//
//	[2] (page 40) content...
func BuildContext(sources []RankedSource) string {
	blocks := make([]string, 0, len(sources))
	for _, source := range sources {
		blocks = append(blocks, fmt.Sprintf("[%d] (page %s) %s", source.Order, pageLabel(source.Metadata), source.Content))
	}
	return strings.Join(blocks, "\n\n")
}

// pageLabel extracts a printable page value from chunk metadata.
// Stores serialize the page as a string or any numeric type.
func pageLabel(metadata map[string]any) string {
	if metadata == nil {
		return unknownPage
	}
	switch page := metadata["page"].(type) {
	case string:
		if page != "" {
			return page
		}
	case int:
		return strconv.Itoa(page)
	case int64:
		return strconv.FormatInt(page, 10)
	case float64:
		return strconv.FormatFloat(page, 'f', -1, 64)
	}
	return unknownPage
}
