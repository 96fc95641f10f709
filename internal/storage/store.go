// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/veldspar/sitepay/internal/models"
)

// Store defines the interface for ledger document storage. The document is
// loaded and saved wholesale; concurrent saves are last-write-wins. This
// abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// Load retrieves the ledger document. A store with no saved document
	// returns models.DefaultDocument(), never an error.
	Load(ctx context.Context) (*models.Document, error)

	// Save persists the document wholesale, replacing any previous state.
	Save(ctx context.Context, doc *models.Document) error

	// Close releases any resources held by the store.
	Close() error
}
