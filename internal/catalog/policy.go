package catalog

import "fmt"

// DuplicateMatch selects which fields a pre-insert duplicate check compares.
type DuplicateMatch int

const (
	// MatchEdition treats the edition/ISBN string as the unique key.
	MatchEdition DuplicateMatch = iota
	// MatchFullTuple compares the full five-field content tuple.
	MatchFullTuple
)

// Policy captures the behaviors the two upstream deployments disagree on.
// Neither variant is canonical; the choice is configuration.
type Policy struct {
	// RequiredFields are external field names that must be present on create.
	RequiredFields []string
	// DuplicateMatch selects the duplicate check performed before insert.
	DuplicateMatch DuplicateMatch
	// UpdateConflictCheck re-checks the full content tuple before an update
	// is applied.
	UpdateConflictCheck bool
}

// EditionKeyPolicy requires the full field set on create and keys duplicate
// detection on the edition alone. This is the default.
func EditionKeyPolicy() Policy {
	return Policy{
		RequiredFields: []string{ExtTitle, ExtAuthor, ExtEdition, ExtPages, ExtYear},
		DuplicateMatch: MatchEdition,
	}
}

// FullTuplePolicy requires only title and author on create, detects duplicates
// by the full content tuple, and re-checks that tuple before updates.
func FullTuplePolicy() Policy {
	return Policy{
		RequiredFields:      []string{ExtTitle, ExtAuthor},
		DuplicateMatch:      MatchFullTuple,
		UpdateConflictCheck: true,
	}
}

// PolicyFromName resolves a policy by its configuration name.
func PolicyFromName(name string) (Policy, error) {
	switch name {
	case "edition":
		return EditionKeyPolicy(), nil
	case "tuple":
		return FullTuplePolicy(), nil
	}
	return Policy{}, fmt.Errorf("unknown catalog policy %q (want \"edition\" or \"tuple\")", name)
}

// duplicateFilter builds the existence-check filter for b under this policy.
func (p Policy) duplicateFilter(b Book) map[string]string {
	if p.DuplicateMatch == MatchEdition {
		return map[string]string{FieldEdition: b.Edition}
	}
	return b.fields()
}
