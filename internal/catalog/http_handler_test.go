package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockedHandler(t *testing.T, policy Policy) (*HTTPHandler, *MockRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockRepo := NewMockRepository(ctrl)
	return NewHTTPHandler(NewService(mockRepo, policy)), mockRepo
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestHTTPHandler_List(t *testing.T) {
	handler, mockRepo := newMockedHandler(t, EditionKeyPolicy())

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().All(gomock.Any()).Return([]Book{{ID: "1", Title: "The Vortex"}}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/books", nil)

		handler.List(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var books []Book
		require.NoError(t, json.NewDecoder(w.Body).Decode(&books))
		assert.Len(t, books, 1)
	})

	t.Run("empty store returns an array, not null", func(t *testing.T) {
		mockRepo.EXPECT().All(gomock.Any()).Return(nil, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/books", nil)

		handler.List(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]\n", w.Body.String())
	})

	t.Run("store error", func(t *testing.T) {
		mockRepo.EXPECT().All(gomock.Any()).Return(nil, context.DeadlineExceeded)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/books", nil)

		handler.List(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, decodeBody(t, w), "error")
	})
}

func TestHTTPHandler_Create(t *testing.T) {
	handler, mockRepo := newMockedHandler(t, EditionKeyPolicy())

	payload := `{"title":"The Vortex","author":"José Eustasio Rivera","edition":"958-30-0804-4","pages":"292","year":"1924"}`

	t.Run("created", func(t *testing.T) {
		mockRepo.EXPECT().Exists(gomock.Any(), map[string]string{FieldEdition: "958-30-0804-4"}).Return(false, nil)
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return("64f0c2a7e13b4a0001a2b3c4", nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader(payload))

		handler.Create(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Book created successfully.", body["message"])
		assert.Equal(t, "64f0c2a7e13b4a0001a2b3c4", body["id"])
	})

	t.Run("duplicate", func(t *testing.T) {
		mockRepo.EXPECT().Exists(gomock.Any(), gomock.Any()).Return(true, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader(payload))

		handler.Create(w, r)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing field", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader(`{"title":"The Vortex"}`))

		handler.Create(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Contains(t, body["error"], "missing field")
	})

	t.Run("malformed body", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader("{"))

		handler.Create(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_Update(t *testing.T) {
	handler, mockRepo := newMockedHandler(t, EditionKeyPolicy())

	const id = "64f0c2a7e13b4a0001a2b3c4"

	newUpdateRequest := func(body string) (*httptest.ResponseRecorder, *http.Request) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPut, "/api/books/"+id, strings.NewReader(body))
		r.SetPathValue("id", id)
		return w, r
	}

	t.Run("updated", func(t *testing.T) {
		mockRepo.EXPECT().Update(gomock.Any(), id, map[string]string{FieldPages: "300"}).
			Return(UpdateResult{Matched: 1, Modified: 1}, nil)

		w, r := newUpdateRequest(`{"pages":"300"}`)
		handler.Update(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Book updated successfully.", body["message"])
		assert.Equal(t, id, body["id"])
	})

	t.Run("matched but unmodified", func(t *testing.T) {
		mockRepo.EXPECT().Update(gomock.Any(), id, gomock.Any()).
			Return(UpdateResult{Matched: 1, Modified: 0}, nil)

		w, r := newUpdateRequest(`{"pages":"300"}`)
		handler.Update(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Contains(t, body["message"], "no changes were applied")
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().Update(gomock.Any(), id, gomock.Any()).
			Return(UpdateResult{}, nil)

		w, r := newUpdateRequest(`{"pages":"300"}`)
		handler.Update(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("nothing mapped", func(t *testing.T) {
		w, r := newUpdateRequest(`{"publisher":"ignored"}`)
		handler.Update(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_Delete(t *testing.T) {
	handler, mockRepo := newMockedHandler(t, EditionKeyPolicy())

	const id = "64f0c2a7e13b4a0001a2b3c4"

	newDeleteRequest := func(pathID string) (*httptest.ResponseRecorder, *http.Request) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/api/books/"+pathID, nil)
		r.SetPathValue("id", pathID)
		return w, r
	}

	t.Run("deleted", func(t *testing.T) {
		mockRepo.EXPECT().Delete(gomock.Any(), id).Return(int64(1), nil)

		w, r := newDeleteRequest(id)
		handler.Delete(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Deleted 1 book(s) with ID '"+id+"'", body["message"])
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().Delete(gomock.Any(), id).Return(int64(0), nil)

		w, r := newDeleteRequest(id)
		handler.Delete(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed identifier", func(t *testing.T) {
		mockRepo.EXPECT().Delete(gomock.Any(), "not-hex").
			Return(int64(0), parseIDErr("not-hex"))

		w, r := newDeleteRequest("not-hex")
		handler.Delete(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// parseIDErr mirrors what repositories return for an unparseable identifier.
func parseIDErr(id string) error {
	_, err := parseID(id)
	return err
}
