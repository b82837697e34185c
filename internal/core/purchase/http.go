// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package purchase

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/openreader/storefront/internal/platform/request"
	"github.com/openreader/storefront/internal/platform/respond"
	"github.com/openreader/storefront/internal/platform/validate"
)

// # Handler Implementation

// Handler implements the HTTP layer for purchase state.
type Handler struct {
	service *Service
}

// NewHandler constructs a new purchase [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the purchase endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPurchases)
	router.Post("/confirm", handler.confirmPurchase)
	router.Get("/{bookId}", handler.getStatus)

	return router
}

/*
GET /api/v1/purchases.

Response:
  - 200: {items: []Record}
*/
func (handler *Handler) listPurchases(writer http.ResponseWriter, request *http.Request) {
	records, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"items": records})
}

/*
GET /api/v1/purchases/{bookId}.

Response:
  - 200: Status: {purchased, details|null}
*/
func (handler *Handler) getStatus(writer http.ResponseWriter, request *http.Request) {
	bookID := strings.TrimSpace(requestutil.Param(request, "bookId"))
	if err := (&validate.Validator{}).Required("bookId", bookID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := handler.service.Status(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, status)
}

// confirmRequest defines the inbound JSON schema for purchase confirmation.
type confirmRequest struct {
	BookID    string `json:"bookId"`
	PaymentID string `json:"paymentId"`
}

/*
POST /api/v1/purchases/confirm.

Request (Body):
  - bookId: string (required)
  - paymentId: string (required)

Response:
  - 200: {ok: true}
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) confirmPurchase(writer http.ResponseWriter, request *http.Request) {
	var input confirmRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input.BookID = strings.TrimSpace(input.BookID)
	input.PaymentID = strings.TrimSpace(input.PaymentID)

	err := (&validate.Validator{}).
		Required("bookId", input.BookID).
		Required("paymentId", input.PaymentID).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Confirm(request.Context(), input.BookID, input.PaymentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]bool{"ok": true})
}
