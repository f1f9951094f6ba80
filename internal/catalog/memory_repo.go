package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory Repository used by tests and as a dev backend.
// Records keep insertion order so listing mirrors natural storage order.
type MemoryRepo struct {
	mu    sync.RWMutex
	books []Book
}

// NewMemoryRepo creates an empty in-memory repository.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) All(ctx context.Context) ([]Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Book, len(r.books))
	copy(out, r.books)
	return out, nil
}

func (r *MemoryRepo) Distinct(ctx context.Context, field string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, b := range r.books {
		v := b.field(field)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *MemoryRepo) Exists(ctx context.Context, match map[string]string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.books {
		if matches(b, match) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepo) Insert(ctx context.Context, b Book) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	r.books = append(r.books, b)
	return b.ID, nil
}

func (r *MemoryRepo) Update(ctx context.Context, id string, set map[string]string) (UpdateResult, error) {
	if id == "" {
		return UpdateResult{}, fmt.Errorf("%w: malformed book id %q", ErrInvalid, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, b := range r.books {
		if b.ID != id {
			continue
		}
		res := UpdateResult{Matched: 1}
		for field, v := range set {
			if b.field(field) != v {
				res.Modified = 1
			}
			setField(&b, field, v)
		}
		r.books[i] = b
		return res, nil
	}
	return UpdateResult{}, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) (int64, error) {
	if id == "" {
		return 0, fmt.Errorf("%w: malformed book id %q", ErrInvalid, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, b := range r.books {
		if b.ID == id {
			r.books = append(r.books[:i], r.books[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func matches(b Book, match map[string]string) bool {
	for field, v := range match {
		if b.field(field) != v {
			return false
		}
	}
	return true
}

func setField(b *Book, field, v string) {
	switch field {
	case FieldName:
		b.Title = v
	case FieldAuthor:
		b.Author = v
	case FieldEdition:
		b.Edition = v
	case FieldPages:
		b.Pages = v
	case FieldYear:
		b.Year = v
	}
}
