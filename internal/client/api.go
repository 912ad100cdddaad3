package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Source is one ranked passage as returned by the ask endpoint.
type Source struct {
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

// AskResponse is the success payload of the ask endpoint.
type AskResponse struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// Document is one registered source document.
type Document struct {
	DocID      string `json:"docId"`
	Title      string `json:"title"`
	Source     string `json:"source"`
	Pages      int    `json:"pages"`
	ChunkCount int    `json:"chunkCount"`
}

// documentsResponse is the success payload of the documents endpoint.
type documentsResponse struct {
	Documents []Document `json:"documents"`
}

// errorResponse is the failure payload of every endpoint.
type errorResponse struct {
	Error string `json:"error"`
}

// API is an HTTP client for the nutrichat server.
type API struct {
	BaseURL string
	client  *http.Client
}

// NewAPI creates a client for the given server base URL.
func NewAPI(baseURL string) *API {
	return &API{
		BaseURL: baseURL,
		client:  http.DefaultClient,
	}
}

// Ask submits a question and returns the answer with its sources.
func (a *API) Ask(ctx context.Context, message string) (AskResponse, error) {
	payload, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return AskResponse{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/ask", a.BaseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return AskResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return AskResponse{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		raw, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(raw, &errResp) == nil && errResp.Error != "" {
			return AskResponse{}, fmt.Errorf("server error: %s", errResp.Error)
		}
		return AskResponse{}, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var askResp AskResponse
	if err := json.NewDecoder(resp.Body).Decode(&askResp); err != nil {
		return AskResponse{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return askResp, nil
}

// Documents lists the registered source documents.
func (a *API) Documents(ctx context.Context) ([]Document, error) {
	url := fmt.Sprintf("%s/api/documents", a.BaseURL)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status %d", resp.StatusCode)
	}

	var docsResp documentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&docsResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return docsResp.Documents, nil
}
