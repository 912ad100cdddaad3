package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientChatWithMessages(t *testing.T) {
	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(chatResponse{
			Choices: []chatChoice{
				{Message: Message{Role: "assistant", Content: "Saliva moistens food [1]."}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gpt-4o-mini")
	messages := []Message{
		{Role: "system", Content: "answer from context"},
		{Role: "user", Content: "How does saliva help digestion?"},
	}

	answer, err := client.ChatWithMessages(context.Background(), messages, ChatParams{Temperature: 0.2})
	if err != nil {
		t.Fatalf("ChatWithMessages() error = %v", err)
	}
	if answer != "Saliva moistens food [1]." {
		t.Errorf("answer = %q", answer)
	}
	if gotReq.Model != "gpt-4o-mini" {
		t.Errorf("request model = %q, want default model", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 {
		t.Errorf("request messages = %d, want 2", len(gotReq.Messages))
	}
}

func TestClientChatModelOverride(t *testing.T) {
	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(chatResponse{
			Choices: []chatChoice{{Message: Message{Content: "ok"}}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", "default-model")
	_, err := client.ChatWithMessages(context.Background(), []Message{{Role: "user", Content: "hi"}}, ChatParams{Model: "other-model"})
	if err != nil {
		t.Fatalf("ChatWithMessages() error = %v", err)
	}
	if gotReq.Model != "other-model" {
		t.Errorf("request model = %q, want other-model", gotReq.Model)
	}
}

func TestClientChatBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", "m")
	if _, err := client.Chat(context.Background(), "hi"); err == nil {
		t.Error("Chat() expected error on non-200 status")
	}
}

func TestClientChatNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(chatResponse{})
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", "m")
	if _, err := client.Chat(context.Background(), "hi"); err == nil {
		t.Error("Chat() expected error when no choices returned")
	}
}
