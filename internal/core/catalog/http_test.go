// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openreader/storefront/internal/core/catalog"
)

type envelope[T any] struct {
	Data T `json:"data"`
}

type errorBody struct {
	Code    string `json:"code"`
	Details []struct {
		Field string `json:"field"`
	} `json:"details"`
}

func serve(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
	return recorder
}

func newHandler() http.Handler {
	books := fiveDatedBooks()
	books[0].Tags = []string{"a", "b"}
	books[1].Tags = []string{"a"}
	books[0].Categories = []string{"c"}
	return catalog.NewHandler(newService(books, []catalog.Category{{ID: "c", Title: "C", Slug: "c"}}, nil)).Routes()
}

func TestHandler_ListBooks(t *testing.T) {
	recorder := serve(t, newHandler(), "/books?sort=new&limit=2")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body envelope[struct {
		Items      []catalog.Book `json:"items"`
		NextCursor string         `json:"nextCursor"`
	}]
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, []string{"b1", "b2"}, ids(body.Data.Items))
	assert.Equal(t, "2", body.Data.NextCursor)
}

func TestHandler_ListBooks_Tags(t *testing.T) {
	for _, target := range []string{"/books?tags=a,b", "/books?tags=a&tags=b"} {
		recorder := serve(t, newHandler(), target)
		require.Equal(t, http.StatusOK, recorder.Code, target)

		var body envelope[struct {
			Items []catalog.Book `json:"items"`
		}]
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, []string{"b3"}, ids(body.Data.Items), target)
	}
}

func TestHandler_ListBooks_Validation(t *testing.T) {
	tests := []struct {
		target string
		field  string
	}{
		{"/books?limit=0", "limit"},
		{"/books?limit=51", "limit"},
		{"/books?limit=ten", "limit"},
		{"/books?sort=oldest", "sort"},
		{"/categories/c/tags?limit=21", "limit"},
		{"/books/b1/reviews?limit=100", "limit"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			recorder := serve(t, newHandler(), tt.target)
			require.Equal(t, http.StatusBadRequest, recorder.Code)

			var body errorBody
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, "VALIDATION_ERROR", body.Code)
			require.Len(t, body.Details, 1)
			assert.Equal(t, tt.field, body.Details[0].Field)
		})
	}
}

func TestHandler_GetBook(t *testing.T) {
	handler := newHandler()

	recorder := serve(t, handler, "/books/b4")
	require.Equal(t, http.StatusOK, recorder.Code)
	var body envelope[catalog.Book]
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Fourth", body.Data.Title)

	recorder = serve(t, handler, "/books/nope")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_CategoryTags(t *testing.T) {
	recorder := serve(t, newHandler(), "/categories/c/tags?limit=1")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body envelope[[]string]
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, []string{"a"}, body.Data)
}

func TestHandler_ListCategories(t *testing.T) {
	recorder := serve(t, newHandler(), "/categories")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body envelope[[]catalog.Category]
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Data, 3)
	assert.Equal(t, catalog.CategoryMostRead, body.Data[0].ID)
}
