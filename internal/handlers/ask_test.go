package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"nutrichat/internal/rag"
	"nutrichat/internal/service"
	"nutrichat/internal/service/mocks"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func performAsk(t *testing.T, handler *AskHandler, method string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	switch b := body.(type) {
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, "/api/ask", reader)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestAskHandlerSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockAskService(ctrl)
	handler := NewAskHandler(mockService)

	longContent := strings.Repeat("x", 200)
	mockService.EXPECT().
		ProcessAsk(gomock.Any(), service.AskRequest{Message: "How does saliva help?"}).
		Return(service.AskResponse{
			Answer: "Saliva helps digestion [1] and moistens food [2].",
			Sources: []rag.RankedSource{
				{
					RetrievedChunk: rag.RetrievedChunk{
						ID:         "p1",
						DocID:      "nutrition-v1",
						ChunkIndex: 4,
						Content:    longContent,
						Metadata:   map[string]any{"page": int64(123)},
						Similarity: 0.91,
					},
					Order: 1,
				},
				{
					RetrievedChunk: rag.RetrievedChunk{
						ID:         "p2",
						ChunkIndex: -1,
						Content:    "short",
						Metadata:   map[string]any{},
						Similarity: 0.82,
					},
					Order: 2,
				},
			},
		}, nil)

	w := performAsk(t, handler, http.MethodPost, AskRequest{Message: "How does saliva help?"})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp AskResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Sources) != 2 {
		t.Fatalf("sources = %d, want 2", len(resp.Sources))
	}

	first := resp.Sources[0]
	if first.Order != 1 || first.ID != "p1" {
		t.Errorf("first source = %+v", first)
	}
	if first.DocID == nil || *first.DocID != "nutrition-v1" {
		t.Errorf("docId = %v, want nutrition-v1", first.DocID)
	}
	if first.ChunkIndex == nil || *first.ChunkIndex != 4 {
		t.Errorf("chunkIndex = %v, want 4", first.ChunkIndex)
	}
	if len([]rune(first.Preview)) != 161 || !strings.HasSuffix(first.Preview, "…") {
		t.Errorf("preview not truncated with ellipsis: %d runes", len([]rune(first.Preview)))
	}

	second := resp.Sources[1]
	if second.DocID != nil {
		t.Errorf("missing docId should be null, got %v", *second.DocID)
	}
	if second.ChunkIndex != nil {
		t.Errorf("unknown chunkIndex should be null, got %v", *second.ChunkIndex)
	}
	if second.Page != nil {
		t.Errorf("missing page should be null, got %v", second.Page)
	}
	if second.Preview != "short" {
		t.Errorf("short content should not be truncated: %q", second.Preview)
	}
}

func TestAskHandlerMethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewAskHandler(mocks.NewMockAskService(ctrl))
	w := performAsk(t, handler, http.MethodGet, AskRequest{Message: "q"})

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}

func TestAskHandlerInvalidBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewAskHandler(mocks.NewMockAskService(ctrl))
	w := performAsk(t, handler, http.MethodPost, "not json at all")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAskHandlerEmptyMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockAskService(ctrl)
	handler := NewAskHandler(mockService)

	mockService.EXPECT().
		ProcessAsk(gomock.Any(), service.AskRequest{Message: ""}).
		Return(service.AskResponse{}, &service.ValidationError{Field: "message", Message: "cannot be empty"})

	w := performAsk(t, handler, http.MethodPost, AskRequest{Message: ""})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Error == "" {
		t.Error("error message should not be empty")
	}
}

func TestAskHandlerUpstreamError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockAskService(ctrl)
	handler := NewAskHandler(mockService)

	mockService.EXPECT().
		ProcessAsk(gomock.Any(), gomock.Any()).
		Return(service.AskResponse{}, errors.New("failed to embed question: connection refused"))

	w := performAsk(t, handler, http.MethodPost, AskRequest{Message: "q"})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if !strings.Contains(resp.Error, "connection refused") {
		t.Errorf("error = %q, want the original upstream message surfaced", resp.Error)
	}
}

func TestTruncatePreview(t *testing.T) {
	if got := truncatePreview("short"); got != "short" {
		t.Errorf("truncatePreview(short) = %q", got)
	}
	long := strings.Repeat("а", 300) // multibyte runes
	got := truncatePreview(long)
	if len([]rune(got)) != previewLength+1 {
		t.Errorf("truncated preview = %d runes, want %d + ellipsis", len([]rune(got)), previewLength)
	}
}
