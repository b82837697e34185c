// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package payment issues mock Telegram Stars invoices.

No payment gateway is contacted. An invoice is a fresh payment id plus a
deep link embedding the book and payment ids; nothing is persisted. The
client later hands the payment id to the purchase confirmation endpoint.
*/
package payment

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/openreader/storefront/internal/platform/ctxutil"
	"github.com/openreader/storefront/pkg/uuid"
)

// Invoice is the handoff token between invoice creation and confirmation.
type Invoice struct {
	InvoiceLink string `json:"invoiceLink"`
	PaymentID   string `json:"paymentId"`
}

// Issuer creates invoices. It is stateless and safe for concurrent use.
type Issuer struct {
	baseURL string
	newID   func() string
}

// NewIssuer returns an [Issuer] linking invoices under baseURL.
func NewIssuer(baseURL string) *Issuer {
	return &Issuer{
		baseURL: strings.TrimRight(baseURL, "/"),
		newID:   uuid.Random,
	}
}

/*
CreateInvoice issues an invoice for bookID.

Description: The payment id is a random UUID v4. The book id is
path-escaped into the link; it is not checked against the catalog.

Returns:
  - Invoice: payment id and deep link
*/
func (issuer *Issuer) CreateInvoice(context context.Context, bookID string) Invoice {
	paymentID := issuer.newID()

	invoice := Invoice{
		PaymentID:   paymentID,
		InvoiceLink: issuer.baseURL + "/" + url.PathEscape(bookID) + "/" + paymentID,
	}

	ctxutil.GetLogger(context).InfoContext(context, "invoice_issued",
		slog.String("book_id", bookID),
		slog.String("payment_id", paymentID),
	)

	return invoice
}
