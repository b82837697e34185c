// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package purchase_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openreader/storefront/internal/core/purchase"
)

func do(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, target, nil)
	} else {
		request = httptest.NewRequest(method, target, strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestHandler_ConfirmThenStatus(t *testing.T) {
	handler := purchase.NewHandler(purchase.NewService(purchase.NewMemoryStore())).Routes()

	recorder := do(t, handler, http.MethodGet, "/book-1", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"purchased":false,"details":null}}`, recorder.Body.String())

	recorder = do(t, handler, http.MethodPost, "/confirm", `{"bookId":"book-1","paymentId":"pay-9"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"ok":true}}`, recorder.Body.String())

	recorder = do(t, handler, http.MethodGet, "/book-1", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var status struct {
		Data purchase.Status `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &status))
	assert.True(t, status.Data.Purchased)
	require.NotNil(t, status.Data.Details)
	assert.Equal(t, "pay-9", status.Data.Details.PaymentID)

	recorder = do(t, handler, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var list struct {
		Data struct {
			Items []purchase.Record `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &list))
	require.Len(t, list.Data.Items, 1)
	assert.Equal(t, "book-1", list.Data.Items[0].BookID)
}

func TestHandler_ConfirmValidation(t *testing.T) {
	handler := purchase.NewHandler(purchase.NewService(purchase.NewMemoryStore())).Routes()

	tests := []struct {
		name string
		body string
	}{
		{"missing_payment", `{"bookId":"book-1"}`},
		{"blank_book", `{"bookId":"  ","paymentId":"p"}`},
		{"malformed", `{"bookId":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := do(t, handler, http.MethodPost, "/confirm", tt.body)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}
