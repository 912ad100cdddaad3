package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrDocumentNotFound is returned when a document id has no registry row.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore defines the interface for document registry operations.
type DocumentStore interface {
	// ListAll returns all registered documents ordered by creation time.
	ListAll(ctx context.Context) ([]Document, error)
	// GetByDocID returns the document with the given stable doc id.
	GetByDocID(ctx context.Context, docID string) (Document, error)
	// Upsert inserts or updates a document row keyed by doc id.
	Upsert(ctx context.Context, doc Document) (Document, error)
}

// documentRepo implements DocumentStore backed by SQLite.
type documentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new document repository.
func NewDocumentRepo(db *sql.DB) DocumentStore {
	return &documentRepo{db: db}
}

func (r *documentRepo) ListAll(ctx context.Context) ([]Document, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, doc_id, title, source, pages, chunk_count, created_at
		 FROM documents ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var docs []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.DocID, &doc.Title, &doc.Source, &doc.Pages, &doc.ChunkCount, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}
	return docs, nil
}

func (r *documentRepo) GetByDocID(ctx context.Context, docID string) (Document, error) {
	var doc Document
	err := r.db.QueryRowContext(ctx,
		`SELECT id, doc_id, title, source, pages, chunk_count, created_at
		 FROM documents WHERE doc_id = ?`, docID).
		Scan(&doc.ID, &doc.DocID, &doc.Title, &doc.Source, &doc.Pages, &doc.ChunkCount, &doc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrDocumentNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("failed to get document: %w", err)
	}
	return doc, nil
}

func (r *documentRepo) Upsert(ctx context.Context, doc Document) (Document, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, doc_id, title, source, pages, chunk_count)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(doc_id) DO UPDATE SET
			title = excluded.title,
			source = excluded.source,
			pages = excluded.pages,
			chunk_count = excluded.chunk_count`,
		doc.ID, doc.DocID, doc.Title, doc.Source, doc.Pages, doc.ChunkCount)
	if err != nil {
		return Document{}, fmt.Errorf("failed to upsert document: %w", err)
	}
	return r.GetByDocID(ctx, doc.DocID)
}
