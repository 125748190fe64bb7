package dashboard

import "context"

// Store is the persistence interface for dashboard documents.
type Store interface {
	// List returns the names of all documents in the store, sorted.
	List(ctx context.Context) ([]string, error)

	// Load reads one document and validates it as JSON.
	Load(ctx context.Context, name string) (*Document, error)

	// Save persists the document's current bytes under its name.
	Save(ctx context.Context, doc *Document) error
}
