package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_ask_service.go -package=mocks -mock_names=AskService=MockAskService nutrichat/internal/service AskService

import (
	"context"

	"nutrichat/internal/contextutil"
	"nutrichat/internal/rag"
)

// AskRequest represents an ask request in the domain layer.
type AskRequest struct {
	Message string `validate:"required"`
}

// AskResponse represents an ask response in the domain layer.
type AskResponse struct {
	Answer  string
	Sources []rag.RankedSource
}

// AskService provides question answering over the indexed document.
type AskService interface {
	// ProcessAsk validates the request and runs the RAG pipeline.
	ProcessAsk(ctx context.Context, req AskRequest) (AskResponse, error)
}

// askService implements AskService.
type askService struct {
	engine rag.Engine
}

// NewAskService creates a new AskService.
func NewAskService(engine rag.Engine) AskService {
	return &askService{engine: engine}
}

// ProcessAsk processes an ask request.
func (s *askService) ProcessAsk(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	// Business validation: reject before any upstream call is made.
	if req.Message == "" {
		logger.WarnContext(ctx, "empty message in ask request")
		return AskResponse{}, &ValidationError{
			Field:   "message",
			Message: "cannot be empty",
		}
	}

	ragResp, err := s.engine.Ask(ctx, rag.AskRequest{Question: req.Message})
	if err != nil {
		logger.ErrorContext(ctx, "failed to process RAG query", "error", err)
		return AskResponse{}, WrapError(err, "failed to process question")
	}

	logger.InfoContext(ctx, "ask request processed", "message_length", len(req.Message), "sources", len(ragResp.Sources))
	return AskResponse{
		Answer:  ragResp.Answer,
		Sources: ragResp.Sources,
	}, nil
}
