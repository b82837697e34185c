// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package payment_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openreader/storefront/internal/core/payment"
	"github.com/openreader/storefront/pkg/uuid"
)

func TestCreateInvoice_DistinctIDs(t *testing.T) {
	issuer := payment.NewIssuer("https://t.me/test-stars-invoice")

	first := issuer.CreateInvoice(context.Background(), "book-1")
	second := issuer.CreateInvoice(context.Background(), "book-1")

	assert.NotEqual(t, first.PaymentID, second.PaymentID)
	assert.True(t, uuid.Valid(first.PaymentID))
	assert.Equal(t, "https://t.me/test-stars-invoice/book-1/"+first.PaymentID, first.InvoiceLink)
}

func TestCreateInvoice_EscapesBookID(t *testing.T) {
	issuer := payment.NewIssuer("https://pay.test/")

	invoice := issuer.CreateInvoice(context.Background(), "a b/c")

	assert.Equal(t, "https://pay.test/a%20b%2Fc/"+invoice.PaymentID, invoice.InvoiceLink)
}

func TestHandler_CreateInvoice(t *testing.T) {
	handler := payment.NewHandler(payment.NewIssuer("https://pay.test")).Routes()

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/invoice", strings.NewReader(`{"bookId":"book-7"}`)))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data payment.Invoice `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.True(t, strings.HasPrefix(body.Data.InvoiceLink, "https://pay.test/book-7/"))
	assert.NotEmpty(t, body.Data.PaymentID)

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/invoice", strings.NewReader(`{"bookId":""}`)))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
