package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"nutrichat/internal/contextutil"
	"nutrichat/internal/rag"
	"nutrichat/internal/service"
)

// previewLength bounds the preview field of each source.
const previewLength = 160

// AskHandler handles HTTP requests for question answering.
type AskHandler struct {
	askService service.AskService
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(askService service.AskService) *AskHandler {
	return &AskHandler{askService: askService}
}

// AskRequest represents the HTTP request payload.
type AskRequest struct {
	Message string `json:"message"`
}

// AskResponse represents the HTTP response payload.
type AskResponse struct {
	// The generated answer; bracketed markers like [1] reference sources by order.
	Answer string `json:"answer"`

	// Sources used for the answer, in citation order.
	Sources []SourceResponse `json:"sources"`
}

// SourceResponse represents one ranked source in the HTTP response.
type SourceResponse struct {
	ID         string         `json:"id"`
	Order      int            `json:"order"`
	DocID      *string        `json:"docId"`
	ChunkIndex *int           `json:"chunkIndex"`
	Page       any            `json:"page"`
	Similarity *float64       `json:"similarity"`
	Content    string         `json:"content"`
	Preview    string         `json:"preview"`
	Metadata   map[string]any `json:"metadata"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP handles POST /api/ask.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	svcResp, err := h.askService.ProcessAsk(ctx, service.AskRequest{Message: req.Message})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	resp := AskResponse{
		Answer:  svcResp.Answer,
		Sources: make([]SourceResponse, len(svcResp.Sources)),
	}
	for i, source := range svcResp.Sources {
		resp.Sources[i] = toSourceResponse(source)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// toSourceResponse maps a ranked source onto the wire shape, with
// explicit nulls for fields retrieval could not supply.
func toSourceResponse(source rag.RankedSource) SourceResponse {
	resp := SourceResponse{
		ID:       source.ID,
		Order:    source.Order,
		Content:  source.Content,
		Preview:  truncatePreview(source.Content),
		Metadata: source.Metadata,
	}
	if source.DocID != "" {
		docID := source.DocID
		resp.DocID = &docID
	}
	if source.ChunkIndex >= 0 {
		chunkIndex := source.ChunkIndex
		resp.ChunkIndex = &chunkIndex
	}
	similarity := source.Similarity
	resp.Similarity = &similarity
	if source.Metadata != nil {
		if page, ok := source.Metadata["page"]; ok {
			resp.Page = page
		}
	}
	return resp
}

// truncatePreview bounds content to previewLength runes with an ellipsis.
func truncatePreview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLength {
		return content
	}
	return string(runes[:previewLength]) + "…"
}

// handleServiceError maps service errors to HTTP status codes.
// Validation failures are the caller's fault; everything else, including
// upstream embedding/search/generation failures, is a plain 500.
func (h *AskHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "service error", "error", err)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, validationErr.Error())
		return
	}
	if errors.Is(err, service.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	writeError(w, http.StatusInternalServerError, err.Error())
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
