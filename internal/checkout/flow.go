// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package checkout models the purchase flow as the Mini App observes it.

A [Flow] tracks one book. Check asks the API whether the book is already
unlocked; Buy walks the invoice path:

	not-purchased → invoice-requested → invoice-issued →
	awaiting-external-confirmation → purchased | purchase-failed | purchase-cancelled

A book only becomes purchased after the API confirms the payment. Failed and
cancelled payments fall back to not-purchased and surface a retryable error.
*/
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/openreader/storefront/internal/core/payment"
	"github.com/openreader/storefront/internal/core/purchase"
	"github.com/openreader/storefront/internal/platform/apperr"
)

// # States

// State is a step of the purchase flow.
type State string

const (
	StateUnknown              State = "unknown"
	StateChecking             State = "checking"
	StatePurchased            State = "purchased"
	StateNotPurchased         State = "not-purchased"
	StateInvoiceRequested     State = "invoice-requested"
	StateInvoiceIssued        State = "invoice-issued"
	StateAwaitingConfirmation State = "awaiting-external-confirmation"
	StatePurchaseFailed       State = "purchase-failed"
	StatePurchaseCancelled    State = "purchase-cancelled"
)

// InvoiceStatus is what the payment sheet reports when it closes.
type InvoiceStatus string

const (
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceFailed    InvoiceStatus = "failed"
	InvoiceCancelled InvoiceStatus = "cancelled"
	InvoicePending   InvoiceStatus = "pending"
)

// ParseOutcome converts a terminal invoice status name (paid, failed or
// cancelled) into an [InvoiceStatus].
func ParseOutcome(value string) (InvoiceStatus, error) {
	switch status := InvoiceStatus(value); status {
	case InvoicePaid, InvoiceFailed, InvoiceCancelled:
		return status, nil
	}
	return "", fmt.Errorf("checkout: unknown invoice outcome %q (want paid, failed or cancelled)", value)
}

// # Errors

var (
	ErrPurchaseFailed    = errors.New("checkout: payment failed")
	ErrPurchaseCancelled = errors.New("checkout: payment cancelled")

	// ErrBusy is returned when Buy is called outside the not-purchased state.
	ErrBusy = errors.New("checkout: flow is not ready to buy")
)

// Retryable reports whether the user should be offered a retry for err.
func Retryable(err error) bool {
	if errors.Is(err, ErrPurchaseFailed) || errors.Is(err, ErrPurchaseCancelled) {
		return true
	}
	if appErr := apperr.As(err); appErr != nil {
		return appErr.Retryable
	}
	return false
}

// # Dependencies

// Backend is the slice of the storefront API the flow talks to.
type Backend interface {
	Status(context context.Context, bookID string) (purchase.Status, error)
	CreateInvoice(context context.Context, bookID string) (payment.Invoice, error)
	Confirm(context context.Context, bookID, paymentID string) error
}

// InvoiceOpener presents the invoice to the user and reports its outcome via
// callback. The callback may be invoked any number of times.
type InvoiceOpener func(invoiceLink string, callback func(InvoiceStatus))

// Observer is notified of every state change.
type Observer func(from, to State)

// # Flow

// Flow drives the purchase of a single book. It is safe for concurrent use;
// only one Buy runs at a time.
type Flow struct {
	bookID   string
	backend  Backend
	open     InvoiceOpener
	logger   *slog.Logger
	observer Observer

	mu    sync.Mutex
	state State
}

// NewFlow returns a [Flow] in the unknown state.
func NewFlow(bookID string, backend Backend, open InvoiceOpener, logger *slog.Logger) *Flow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Flow{
		bookID:  bookID,
		backend: backend,
		open:    open,
		logger:  logger.With(slog.String("book_id", bookID)),
		state:   StateUnknown,
	}
}

// OnTransition registers fn to observe state changes. Call before use.
func (flow *Flow) OnTransition(fn Observer) {
	flow.observer = fn
}

// State returns the current state.
func (flow *Flow) State() State {
	flow.mu.Lock()
	defer flow.mu.Unlock()
	return flow.state
}

/*
Check asks the API whether the book is purchased.

Description: The server is always re-queried; a previous purchased state is
not trusted. On failure the flow returns to unknown.

Returns:
  - State: purchased or not-purchased
  - error: Backend failure
*/
func (flow *Flow) Check(context context.Context) (State, error) {
	flow.mu.Lock()
	if flow.busy() {
		current := flow.state
		flow.mu.Unlock()
		return current, ErrBusy
	}
	previous := flow.swapLocked(StateChecking)
	flow.mu.Unlock()
	flow.notify(previous, StateChecking)

	status, err := flow.backend.Status(context, flow.bookID)
	if err != nil {
		flow.move(StateUnknown)
		return StateUnknown, err
	}

	next := StateNotPurchased
	if status.Purchased {
		next = StatePurchased
	}
	flow.move(next)
	return next, nil
}

/*
Buy requests an invoice, presents it and waits for the outcome.

Description: Only pending outcomes are ignored; the first paid, failed or
cancelled report settles the invoice and later reports are dropped. A paid
invoice is confirmed with the API before the book counts as purchased.

Returns:
  - error: ErrBusy, ErrPurchaseFailed, ErrPurchaseCancelled, backend or
    context errors. The flow is back in not-purchased on every error except
    ErrBusy.
*/
func (flow *Flow) Buy(context context.Context) error {
	flow.mu.Lock()
	if flow.state != StateNotPurchased {
		flow.mu.Unlock()
		return ErrBusy
	}
	previous := flow.swapLocked(StateInvoiceRequested)
	flow.mu.Unlock()
	flow.notify(previous, StateInvoiceRequested)

	invoice, err := flow.backend.CreateInvoice(context, flow.bookID)
	if err != nil {
		flow.move(StateNotPurchased)
		return err
	}
	flow.move(StateInvoiceIssued)

	settled := newSettlement()
	flow.open(invoice.InvoiceLink, settled.resolve)
	flow.move(StateAwaitingConfirmation)

	var outcome InvoiceStatus
	select {
	case outcome = <-settled.done:
	case <-context.Done():
		flow.move(StateNotPurchased)
		return context.Err()
	}

	switch outcome {
	case InvoicePaid:
		if err := flow.backend.Confirm(context, flow.bookID, invoice.PaymentID); err != nil {
			flow.logger.Warn("checkout_confirm_failed", slog.String("payment_id", invoice.PaymentID), slog.Any("error", err))
			flow.move(StateNotPurchased)
			return err
		}
		flow.move(StatePurchased)
		flow.logger.Info("checkout_purchased", slog.String("payment_id", invoice.PaymentID))
		return nil

	case InvoiceFailed:
		flow.move(StatePurchaseFailed)
		flow.move(StateNotPurchased)
		return ErrPurchaseFailed

	default:
		flow.move(StatePurchaseCancelled)
		flow.move(StateNotPurchased)
		return ErrPurchaseCancelled
	}
}

// busy reports whether a purchase is in flight. Caller holds mu.
func (flow *Flow) busy() bool {
	switch flow.state {
	case StateInvoiceRequested, StateInvoiceIssued, StateAwaitingConfirmation:
		return true
	}
	return false
}

func (flow *Flow) move(next State) {
	flow.mu.Lock()
	previous := flow.swapLocked(next)
	flow.mu.Unlock()
	flow.notify(previous, next)
}

// swapLocked sets the state and returns the previous one. Caller holds mu.
func (flow *Flow) swapLocked(next State) State {
	previous := flow.state
	flow.state = next
	return previous
}

// notify runs the observer. Never call it with mu held: observers may read
// the flow.
func (flow *Flow) notify(from, to State) {
	if flow.observer != nil {
		flow.observer(from, to)
	}
}

// # Invoice Settlement

// settlement turns a repeatable callback into one awaitable outcome.
type settlement struct {
	once sync.Once
	done chan InvoiceStatus
}

func newSettlement() *settlement {
	return &settlement{done: make(chan InvoiceStatus, 1)}
}

func (s *settlement) resolve(status InvoiceStatus) {
	switch status {
	case InvoicePaid, InvoiceFailed, InvoiceCancelled:
		s.once.Do(func() { s.done <- status })
	}
}
