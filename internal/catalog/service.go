package catalog

import (
	"context"
	"fmt"
	"sort"
)

// Service implements the catalog operations on top of a Repository, applying
// the configured policy for validation and duplicate detection.
type Service struct {
	repo   Repository
	policy Policy
}

// NewService creates a catalog service.
func NewService(repo Repository, policy Policy) *Service {
	return &Service{repo: repo, policy: policy}
}

// List returns every book in the external vocabulary, in natural storage order.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.repo.All(ctx)
}

// DistinctAuthors returns the sorted set of non-empty author values.
func (s *Service) DistinctAuthors(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, FieldAuthor)
}

// DistinctYears returns the sorted set of non-empty year values. Years are
// stored as strings, so the order is lexicographic.
func (s *Service) DistinctYears(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, FieldYear)
}

func (s *Service) distinct(ctx context.Context, field string) ([]string, error) {
	raw, err := s.repo.Distinct(ctx, field)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

// Create validates the payload against the policy's required fields, rejects
// duplicates, and inserts a new record. Returns the generated identifier.
//
// The existence check and the insert are separate datastore operations, so two
// concurrent creates can both pass the check. That gap is inherited behavior
// and accepted; duplicate detection here is best effort.
func (s *Service) Create(ctx context.Context, p Payload) (string, error) {
	for _, f := range s.policy.RequiredFields {
		if !p.Has(f) {
			return "", fmt.Errorf("%w: missing field: %s", ErrInvalid, f)
		}
	}

	b := p.book()
	exists, err := s.repo.Exists(ctx, s.policy.duplicateFilter(b))
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrDuplicate
	}
	return s.repo.Insert(ctx, b)
}

// Update applies the allow-listed subset of the payload to the record with the
// given identifier. A payload that maps to nothing is a validation error. When
// the policy asks for it, the full content tuple is re-checked for a conflict
// before anything is written.
func (s *Service) Update(ctx context.Context, id string, p Payload) (UpdateResult, error) {
	set := p.MapFields()
	if len(set) == 0 {
		return UpdateResult{}, fmt.Errorf("%w: no valid fields to update", ErrInvalid)
	}

	if s.policy.UpdateConflictCheck {
		exists, err := s.repo.Exists(ctx, p.book().fields())
		if err != nil {
			return UpdateResult{}, err
		}
		if exists {
			return UpdateResult{}, ErrDuplicate
		}
	}

	res, err := s.repo.Update(ctx, id, set)
	if err != nil {
		return UpdateResult{}, err
	}
	if res.Matched == 0 {
		return res, ErrNotFound
	}
	return res, nil
}

// Delete removes the record with the given identifier and returns the number
// of records removed, which is always 1 on success.
func (s *Service) Delete(ctx context.Context, id string) (int64, error) {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrNotFound
	}
	return n, nil
}
