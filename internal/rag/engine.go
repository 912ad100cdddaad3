package rag

import (
	"context"
	"fmt"

	"nutrichat/internal/contextutil"
	"nutrichat/internal/llm"
	"nutrichat/internal/vectorstore"
)

// Engine answers questions by retrieving passages and generating a
// cited answer from them.
type Engine interface {
	// Ask runs the full pipeline: embed, retrieve, rerank, generate.
	Ask(ctx context.Context, req AskRequest) (AskResponse, error)
}

// Embedder turns texts into fixed-length vectors.
// This interface is defined from the engine's perspective (consumer-first).
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces a chat completion from a message list.
type Generator interface {
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

// Options tune the retrieval stage.
type Options struct {
	// Collection is the vector store collection to query.
	Collection string
	// DocID restricts retrieval to one source document when non-empty.
	DocID string
	// RetrieveK is the candidate cap passed to the vector store.
	RetrieveK int
}

// ragEngine implements the Engine interface.
type ragEngine struct {
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	generator   Generator
	opts        Options
}

// NewEngine creates a new RAG engine.
func NewEngine(embedder Embedder, vectorStore vectorstore.VectorStore, generator Generator, opts Options) Engine {
	if opts.RetrieveK <= 0 {
		opts.RetrieveK = 8
	}
	return &ragEngine{
		embedder:    embedder,
		vectorStore: vectorStore,
		generator:   generator,
		opts:        opts,
	}
}

// Ask answers a question using RAG. Stages run strictly in sequence;
// each depends on the previous stage's output.
func (e *ragEngine) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	logger.InfoContext(ctx, "RAG query started", "question", req.Question, "doc_id", e.opts.DocID, "k", e.opts.RetrieveK)

	embeddings, err := e.embedder.EmbedTexts(ctx, []string{req.Question})
	if err != nil {
		logger.ErrorContext(ctx, "failed to embed question", "error", err)
		return AskResponse{}, fmt.Errorf("failed to embed question: %w", err)
	}
	if len(embeddings) == 0 {
		return AskResponse{}, fmt.Errorf("no embedding returned for question")
	}
	queryVector := embeddings[0]

	filters := make(map[string]any)
	if e.opts.DocID != "" {
		filters["doc_id"] = e.opts.DocID
	}

	results, err := e.vectorStore.Search(ctx, e.opts.Collection, queryVector, e.opts.RetrieveK, filters)
	if err != nil {
		logger.ErrorContext(ctx, "failed to search vector store", "error", err)
		return AskResponse{}, fmt.Errorf("failed to search vector store: %w", err)
	}

	chunks := coerceResults(ctx, results)
	logger.InfoContext(ctx, "vector search completed", "results", len(results), "usable_chunks", len(chunks))

	keywords := queryKeywords(req.Question)
	sources := Rerank(chunks, keywords)

	if len(sources) == 0 {
		// Not an error: skip generation entirely and return the canned reply.
		logger.InfoContext(ctx, "no search results found")
		return AskResponse{
			Answer:  NoMatchAnswer,
			Sources: []RankedSource{},
		}, nil
	}

	contextBlob := BuildContext(sources)
	logger.DebugContext(ctx, "context assembled", "sources", len(sources), "context_length", len(contextBlob))

	messages := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: buildUserMessage(req.Question, contextBlob)},
	}

	answer, err := e.generator.ChatWithMessages(ctx, messages, llm.ChatParams{Temperature: 0.2})
	if err != nil {
		logger.ErrorContext(ctx, "failed to get LLM response", "error", err)
		return AskResponse{}, fmt.Errorf("failed to get LLM response: %w", err)
	}

	logger.InfoContext(ctx, "RAG query completed", "sources", len(sources), "answer_length", len(answer))

	return AskResponse{
		Answer:  answer,
		Sources: sources,
	}, nil
}

// coerceResults validates loose vector-store payloads into strict
// RetrievedChunk values. Results without text content are dropped;
// missing optional fields default rather than failing the request.
func coerceResults(ctx context.Context, results []vectorstore.SearchResult) []RetrievedChunk {
	logger := contextutil.LoggerFromContext(ctx)

	chunks := make([]RetrievedChunk, 0, len(results))
	for i, result := range results {
		content, _ := result.Meta["content"].(string)
		if content == "" {
			logger.WarnContext(ctx, "skipping result without content", "point_id", result.PointID, "rank", i+1)
			continue
		}

		docID, _ := result.Meta["doc_id"].(string)

		chunkIndex := -1
		switch v := result.Meta["chunk_index"].(type) {
		case int64:
			chunkIndex = int(v)
		case float64:
			chunkIndex = int(v)
		case int:
			chunkIndex = v
		}

		// Ingest stores page/source under a nested metadata object; fall
		// back to the flat payload for stores that inline them.
		metadata, ok := result.Meta["metadata"].(map[string]any)
		if !ok {
			metadata = result.Meta
		}

		chunks = append(chunks, RetrievedChunk{
			ID:         result.PointID,
			DocID:      docID,
			ChunkIndex: chunkIndex,
			Content:    content,
			Metadata:   metadata,
			Similarity: float64(result.Score),
			Rank:       i + 1,
		})
	}
	return chunks
}
