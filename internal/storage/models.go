package storage

import "time"

// Document represents an indexed source document in the registry.
// Rows are written by the external ingestion pipeline; this API only
// reads them (plus Migrate creating the schema).
type Document struct {
	ID         string    // UUID
	DocID      string    // Stable document id used as the retrieval filter (e.g. "nutrition-v1")
	Title      string    // Human-readable title shown by clients
	Source     string    // Source file name (e.g. "human-nutrition-text.pdf")
	Pages      int       // Page count of the source
	ChunkCount int       // Number of chunks indexed for this document
	CreatedAt  time.Time
}
