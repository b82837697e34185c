// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/openreader/storefront/internal/core/payment"
	"github.com/openreader/storefront/internal/core/purchase"
	"github.com/openreader/storefront/internal/platform/apperr"
	"github.com/openreader/storefront/internal/platform/constants"
)

// errNotConfirmed is returned when the API answers a confirmation without ok.
var errNotConfirmed = errors.New("checkout: confirmation was not acknowledged")

// HTTPBackend talks to the storefront REST API under /api/v1.
type HTTPBackend struct {
	baseURL string
	client  *http.Client
}

// NewHTTPBackend returns a [Backend] rooted at baseURL (e.g.
// "https://api.example.com/api/v1"). A nil client gets a 10s timeout.
func NewHTTPBackend(baseURL string, client *http.Client) *HTTPBackend {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Status implements [Backend].
func (backend *HTTPBackend) Status(context context.Context, bookID string) (purchase.Status, error) {
	var status purchase.Status
	err := backend.do(context, http.MethodGet, "/purchases/"+url.PathEscape(bookID), nil, &status)
	return status, err
}

// CreateInvoice implements [Backend].
func (backend *HTTPBackend) CreateInvoice(context context.Context, bookID string) (payment.Invoice, error) {
	var invoice payment.Invoice
	err := backend.do(context, http.MethodPost, "/stars/invoice", map[string]string{"bookId": bookID}, &invoice)
	if err == nil && (invoice.InvoiceLink == "" || invoice.PaymentID == "") {
		err = apperr.Upstream("Invoice payload is incomplete", nil)
	}
	return invoice, err
}

// Confirm implements [Backend].
func (backend *HTTPBackend) Confirm(context context.Context, bookID, paymentID string) error {
	var result struct {
		OK bool `json:"ok"`
	}
	body := map[string]string{"bookId": bookID, "paymentId": paymentID}
	if err := backend.do(context, http.MethodPost, "/purchases/confirm", body, &result); err != nil {
		return err
	}
	if !result.OK {
		return apperr.Upstream("Purchase confirmation failed", errNotConfirmed)
	}
	return nil
}

// do sends one JSON request and unwraps the {"data": ...} envelope into out.
// Error envelopes come back as *apperr.AppError; transport failures are
// retryable upstream errors.
func (backend *HTTPBackend) do(context context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("checkout: encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(context, method, backend.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("checkout: build request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set(constants.HeaderTestEnv, "true")
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := backend.client.Do(request)
	if err != nil {
		if ctxErr := context.Err(); ctxErr != nil {
			return ctxErr
		}
		return apperr.Upstream("Storefront API is unreachable", err)
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusBadRequest {
		return decodeError(response)
	}

	envelope := struct {
		Data any `json:"data"`
	}{Data: out}
	if err := json.NewDecoder(response.Body).Decode(&envelope); err != nil {
		return apperr.Upstream("Storefront API returned an unreadable response", err)
	}
	return nil
}

func decodeError(response *http.Response) error {
	appErr := &apperr.AppError{HTTPStatus: response.StatusCode}
	if err := json.NewDecoder(response.Body).Decode(appErr); err != nil || appErr.Code == "" {
		appErr.Code = "UPSTREAM_FAILURE"
		appErr.Message = fmt.Sprintf("Storefront API responded %d", response.StatusCode)
		appErr.Retryable = response.StatusCode >= http.StatusInternalServerError
	}
	appErr.HTTPStatus = response.StatusCode
	return appErr
}
