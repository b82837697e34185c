// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package purchase is the single source of truth for which books have been
unlocked.

A record is created on the first successful confirmation of a book and is
never removed: there is no refund path. Confirming again overwrites the
payment reference and timestamp without complaint.

Storage Backends:

  - Memory: Default; lost on restart.
  - Redis: Shared between API replicas.
  - Badger: Embedded and durable on a single node.
*/
package purchase

import "time"

// Record is the purchase state of one book.
type Record struct {
	BookID      string     `json:"bookId"`
	Purchased   bool       `json:"purchased"`
	PaymentID   string     `json:"paymentId,omitempty"`
	PurchasedAt *time.Time `json:"purchasedAt,omitempty"`
}

// Details is the payment reference of a purchased book.
type Details struct {
	PaymentID   string     `json:"paymentId,omitempty"`
	PurchasedAt *time.Time `json:"purchasedAt,omitempty"`
}

// Status answers "may the reader open this book".
type Status struct {
	Purchased bool     `json:"purchased"`
	Details   *Details `json:"details"`
}

// Clock returns the current time. Stores take one so tests can pin timestamps.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}

// details projects a record onto its payment reference.
func (r Record) details() *Details {
	return &Details{PaymentID: r.PaymentID, PurchasedAt: r.PurchasedAt}
}
