// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/openreader/storefront/internal/platform/request"
	"github.com/openreader/storefront/internal/platform/respond"
	"github.com/openreader/storefront/internal/platform/validate"
	"github.com/openreader/storefront/pkg/pagination"
)

// Bounds enforced on query parameters.
const (
	maxTagsLimit = 20
)

// # Handler Implementation

// Handler implements the HTTP layer for catalog browsing.
type Handler struct {
	service *Service
}

// NewHandler constructs a new catalog [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the catalog endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/categories", handler.listCategories)
	router.Get("/categories/{id}/tags", handler.listCategoryTags)

	router.Get("/books", handler.listBooks)
	router.Get("/books/{id}", handler.getBook)
	router.Get("/books/{id}/reviews", handler.listReviews)

	return router
}

/*
GET /api/v1/catalog/categories.

Request:
  - search: string (optional, matches title or slug)

Response:
  - 200: []Category: Special categories first
*/
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListCategories(request.Context(), request.URL.Query().Get("search"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, categories)
}

/*
GET /api/v1/catalog/categories/{id}/tags.

Request:
  - limit: int (optional, 1-20)

Response:
  - 200: []string: Alphabetical tags of the category's books
  - 400: VALIDATION_ERROR: limit out of range
*/
func (handler *Handler) listCategoryTags(writer http.ResponseWriter, request *http.Request) {
	limit, err := requestutil.QueryInt(request, "limit")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if limit != nil {
		validator.Range("limit", *limit, 1, maxTagsLimit)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tags, err := handler.service.CategoryTags(request.Context(), requestutil.Param(request, "id"), valueOr(limit, 0))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tags)
}

/*
GET /api/v1/catalog/books.

Request:
  - categoryId: string
  - search: string
  - sort: string (popular, rating, new)
  - tags: []string (repeated or comma-separated; all must match)
  - cursor: string
  - limit: int (1-50)

Response:
  - 200: Page[Book]: items and nextCursor
  - 400: VALIDATION_ERROR: Bad sort or limit
*/
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	params := request.URL.Query()

	limit, err := requestutil.QueryInt(request, "limit")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sort := strings.TrimSpace(params.Get("sort"))

	validator := &validate.Validator{}
	if sort != "" {
		validator.OneOf("sort", sort, string(SortPopular), string(SortRating), string(SortNew))
	}
	if limit != nil {
		validator.Range("limit", *limit, 1, pagination.MaxLimit)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if sort == "" {
		sort = string(SortPopular)
	}

	page, err := handler.service.ListBooks(request.Context(), BookQuery{
		CategoryID: params.Get("categoryId"),
		Search:     params.Get("search"),
		Sort:       BookSort(sort),
		Tags:       requestutil.QueryStrings(request, "tags"),
		Cursor:     params.Get("cursor"),
		Limit:      valueOr(limit, pagination.DefaultLimit),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, page)
}

/*
GET /api/v1/catalog/books/{id}.

Response:
  - 200: Book
  - 404: NOT_FOUND: Book not found
*/
func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	book, err := handler.service.GetBook(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, book)
}

/*
GET /api/v1/catalog/books/{id}/reviews.

Request:
  - cursor: string
  - limit: int (1-50)

Response:
  - 200: Page[Review]: Newest first
*/
func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	limit, err := requestutil.QueryInt(request, "limit")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if limit != nil {
		if err := (&validate.Validator{}).Range("limit", *limit, 1, pagination.MaxLimit).Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	page, err := handler.service.ListReviews(
		request.Context(),
		requestutil.Param(request, "id"),
		request.URL.Query().Get("cursor"),
		valueOr(limit, pagination.DefaultLimit),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, page)
}

func valueOr(value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	return *value
}
