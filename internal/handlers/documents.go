package handlers

import (
	"encoding/json"
	"net/http"

	"nutrichat/internal/contextutil"
	"nutrichat/internal/storage"
)

// DocumentsHandler lists the registered source documents.
type DocumentsHandler struct {
	documentRepo storage.DocumentStore
}

// NewDocumentsHandler creates a new DocumentsHandler.
func NewDocumentsHandler(documentRepo storage.DocumentStore) *DocumentsHandler {
	return &DocumentsHandler{documentRepo: documentRepo}
}

// DocumentResponse represents one registered document.
type DocumentResponse struct {
	DocID      string `json:"docId"`
	Title      string `json:"title"`
	Source     string `json:"source"`
	Pages      int    `json:"pages"`
	ChunkCount int    `json:"chunkCount"`
}

// DocumentsResponse wraps the document list.
type DocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

// ServeHTTP handles GET /api/documents.
func (h *DocumentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	docs, err := h.documentRepo.ListAll(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list documents", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list documents")
		return
	}

	resp := DocumentsResponse{Documents: make([]DocumentResponse, len(docs))}
	for i, doc := range docs {
		resp.Documents[i] = DocumentResponse{
			DocID:      doc.DocID,
			Title:      doc.Title,
			Source:     doc.Source,
			Pages:      doc.Pages,
			ChunkCount: doc.ChunkCount,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
