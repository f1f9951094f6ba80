package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepo_InsertAndAll(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	id, err := repo.Insert(ctx, Book{Title: "Frankenstein", Author: "Mary Shelley"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	books, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, id, books[0].ID)
}

func TestMemoryRepo_Exists(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	_, err := repo.Insert(ctx, Book{Title: "Frankenstein", Author: "Mary Shelley", Edition: "978-3-649-64609-9"})
	require.NoError(t, err)

	ok, err := repo.Exists(ctx, map[string]string{FieldEdition: "978-3-649-64609-9"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, map[string]string{FieldEdition: "978-3-649-64609-9", FieldName: "Dracula"})
	require.NoError(t, err)
	assert.False(t, ok, "every field in the filter must match")
}

func TestMemoryRepo_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	id, err := repo.Insert(ctx, Book{Title: "Frankenstein", Year: "1818"})
	require.NoError(t, err)

	res, err := repo.Update(ctx, id, map[string]string{FieldYear: "1823"})
	require.NoError(t, err)
	assert.Equal(t, UpdateResult{Matched: 1, Modified: 1}, res)

	res, err = repo.Update(ctx, id, map[string]string{FieldYear: "1823"})
	require.NoError(t, err)
	assert.Equal(t, UpdateResult{Matched: 1, Modified: 0}, res)

	res, err = repo.Update(ctx, "missing", map[string]string{FieldYear: "1823"})
	require.NoError(t, err)
	assert.Equal(t, UpdateResult{}, res)

	_, err = repo.Update(ctx, "", map[string]string{FieldYear: "1823"})
	require.ErrorIs(t, err, ErrInvalid)
}

func TestMemoryRepo_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	id, err := repo.Insert(ctx, Book{Title: "Frankenstein"})
	require.NoError(t, err)

	n, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemoryRepo_Distinct(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	for _, b := range []Book{
		{Title: "The Black Cat", Author: "Edgar Allan Poe"},
		{Title: "The Raven", Author: "Edgar Allan Poe"},
		{Title: "Frankenstein", Author: "Mary Shelley"},
	} {
		_, err := repo.Insert(ctx, b)
		require.NoError(t, err)
	}

	authors, err := repo.Distinct(ctx, FieldAuthor)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Edgar Allan Poe", "Mary Shelley"}, authors)
}
