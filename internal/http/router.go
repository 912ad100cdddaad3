package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"nutrichat/internal/handlers"
	"nutrichat/internal/service"
	"nutrichat/internal/storage"
	"nutrichat/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	AskService     service.AskService
	DocumentRepo   storage.DocumentStore
	VectorStore    vectorstore.VectorStore
	CollectionName string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	askHandler := handlers.NewAskHandler(deps.AskService)
	documentsHandler := handlers.NewDocumentsHandler(deps.DocumentRepo)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.CollectionName)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/ask", askHandler)
		r.Method(http.MethodGet, "/documents", documentsHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
