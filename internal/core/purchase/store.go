// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package purchase

import "context"

// # Purchase Data Access

// Store defines the persistence contract for purchase records.
//
// Implementations must make SetPurchased atomic per book.
type Store interface {

	// GetPurchased reports whether bookID has been purchased; false when no record exists.
	GetPurchased(context context.Context, bookID string) (bool, error)

	/*
		GetPurchaseDetails returns the payment reference of a purchased book.

		Returns:
		  - *Details: nil when the book has not been purchased
		  - error: Backend failures
	*/
	GetPurchaseDetails(context context.Context, bookID string) (*Details, error)

	/*
		SetPurchased creates or overwrites the record of bookID with
		purchased=true, paymentID and the current time.

		Parameters:
		  - context: context.Context
		  - bookID: string
		  - paymentID: string

		Returns:
		  - error: Backend failures
	*/
	SetPurchased(context context.Context, bookID, paymentID string) error

	// ListPurchasedBooks returns every purchased record. Order is backend specific.
	ListPurchasedBooks(context context.Context) ([]Record, error)
}
