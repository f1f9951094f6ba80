package catalog

import "context"

// UpdateResult mirrors the datastore's matched/modified counts so callers can
// tell a no-op update apart from a real change.
type UpdateResult struct {
	Matched  int64
	Modified int64
}

// Repository defines the contract for book document storage. Field names in
// match and set maps use the internal vocabulary. Implementations return
// ErrInvalid (wrapped) for identifiers they cannot parse.
type Repository interface {
	All(ctx context.Context) ([]Book, error)
	Distinct(ctx context.Context, field string) ([]string, error)
	Exists(ctx context.Context, match map[string]string) (bool, error)
	Insert(ctx context.Context, b Book) (string, error)
	Update(ctx context.Context, id string, set map[string]string) (UpdateResult, error)
	Delete(ctx context.Context, id string) (int64, error)
}
