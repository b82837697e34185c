// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package purchase

import (
	"context"
	"log/slog"

	"github.com/openreader/storefront/internal/platform/ctxutil"
)

// # Service Layer

// Service exposes purchase state to the HTTP layer.
type Service struct {
	store Store
}

// NewService constructs a purchase [Service] over store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

/*
Status reports whether a book is unlocked, with its payment reference.

Parameters:
  - context: context.Context
  - bookID: string

Returns:
  - Status: Details is nil unless purchased
  - error: Store failures
*/
func (service *Service) Status(context context.Context, bookID string) (Status, error) {
	// One read so a concurrent Confirm cannot split the answer.
	details, err := service.store.GetPurchaseDetails(context, bookID)
	if err != nil {
		return Status{}, err
	}

	return Status{Purchased: details != nil, Details: details}, nil
}

/*
Confirm records a completed payment for a book.

Description: The book id is not checked against the catalog and the payment
id is not checked against issued invoices; the Stars flow is a mock.
*/
func (service *Service) Confirm(context context.Context, bookID, paymentID string) error {
	if err := service.store.SetPurchased(context, bookID, paymentID); err != nil {
		return err
	}

	ctxutil.GetLogger(context).InfoContext(context, "purchase_confirmed",
		slog.String("book_id", bookID),
		slog.String("payment_id", paymentID),
	)

	return nil
}

// List returns every purchased book.
func (service *Service) List(context context.Context) ([]Record, error) {
	return service.store.ListPurchasedBooks(context)
}
