package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks nutrichat/internal/rag Engine,Embedder,Generator

// AskRequest represents a RAG query request.
type AskRequest struct {
	// Question is the user's question to answer.
	Question string `json:"question"`
}

// RetrievedChunk is a candidate passage returned by vector search,
// coerced from the store's loose payload into a strict shape.
type RetrievedChunk struct {
	// ID is the store-assigned point id.
	ID string `json:"id"`
	// DocID is the source document id, empty when the payload lacks one.
	DocID string `json:"doc_id"`
	// ChunkIndex is the chunk position within the document, -1 when unknown.
	ChunkIndex int `json:"chunk_index"`
	// Content is the passage text.
	Content string `json:"content"`
	// Metadata is the free-form payload mapping (source, page, ...).
	Metadata map[string]any `json:"metadata"`
	// Similarity is the raw similarity score from retrieval (higher = closer).
	Similarity float64 `json:"similarity"`
	// Rank is the 1-based position in the raw retrieval order.
	Rank int `json:"rank"`
}

// RankedSource is a retrieved chunk after lexical reranking.
// The similarity score is carried through unchanged; only position moves.
type RankedSource struct {
	RetrievedChunk
	// KeywordHits is the number of query keywords found in the content.
	KeywordHits int `json:"keyword_hits"`
	// CompositeScore blends similarity with the keyword overlap bonus.
	CompositeScore float64 `json:"composite_score"`
	// Order is the 1-based citation ordinal. Across one response the
	// orders are exactly 1..K with no gaps or duplicates.
	Order int `json:"order"`
}

// AskResponse represents the response from a RAG query.
type AskResponse struct {
	// Answer is the generated answer, with bracketed citation markers
	// referencing Sources by Order.
	Answer string `json:"answer"`
	// Sources are the reranked passages in Order sequence.
	Sources []RankedSource `json:"sources"`
}
