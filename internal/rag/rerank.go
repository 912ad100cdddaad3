package rag

import (
	"sort"
	"strings"
)

const (
	// keywordWeight is the blend factor for the lexical bonus.
	keywordWeight = 0.35
	// maxSources caps the final source list (and citation ordinals).
	maxSources = 6
)

// Rerank reorders candidates by blending vector similarity with keyword
// overlap, truncates to maxSources, and assigns the 1-based citation
// ordinals. This is the only place ordinals are produced; the whole
// ordering is recomputed from scratch on every call.
func Rerank(chunks []RetrievedChunk, keywords []string) []RankedSource {
	ranked := make([]RankedSource, 0, len(chunks))
	for _, chunk := range chunks {
		hits := keywordHits(chunk.Content, keywords)

		var keywordScore float64
		if len(keywords) > 0 {
			keywordScore = float64(hits) / float64(len(keywords))
		} else if hits > 0 {
			keywordScore = 1
		}

		ranked = append(ranked, RankedSource{
			RetrievedChunk: chunk,
			KeywordHits:    hits,
			CompositeScore: chunk.Similarity + keywordScore*keywordWeight,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].CompositeScore != ranked[j].CompositeScore {
			return ranked[i].CompositeScore > ranked[j].CompositeScore
		}
		if ranked[i].KeywordHits != ranked[j].KeywordHits {
			return ranked[i].KeywordHits > ranked[j].KeywordHits
		}
		return ranked[i].Similarity > ranked[j].Similarity
	})

	if len(ranked) > maxSources {
		ranked = ranked[:maxSources]
	}

	for i := range ranked {
		ranked[i].Order = i + 1
	}
	return ranked
}

// keywordHits counts how many keywords appear as case-insensitive
// substrings of the chunk text.
func keywordHits(content string, keywords []string) int {
	if len(keywords) == 0 {
		return 0
	}
	lowered := strings.ToLower(content)
	hits := 0
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			hits++
		}
	}
	return hits
}
