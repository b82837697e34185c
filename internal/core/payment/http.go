// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package payment

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/openreader/storefront/internal/platform/request"
	"github.com/openreader/storefront/internal/platform/respond"
	"github.com/openreader/storefront/internal/platform/validate"
)

// Handler implements the HTTP layer for Stars invoices.
type Handler struct {
	issuer *Issuer
}

// NewHandler constructs a new payment [Handler].
func NewHandler(issuer *Issuer) *Handler {
	return &Handler{issuer: issuer}
}

// Routes returns a [chi.Router] configured with the Stars endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/invoice", handler.createInvoice)
	return router
}

type invoiceRequest struct {
	BookID string `json:"bookId"`
}

/*
POST /api/v1/stars/invoice.

Request (Body):
  - bookId: string (required)

Response:
  - 200: Invoice: {invoiceLink, paymentId}
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) createInvoice(writer http.ResponseWriter, request *http.Request) {
	var input invoiceRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input.BookID = strings.TrimSpace(input.BookID)
	if err := (&validate.Validator{}).Required("bookId", input.BookID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, handler.issuer.CreateInvoice(request.Context(), input.BookID))
}
