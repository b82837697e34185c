// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package purchase_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openreader/storefront/internal/core/purchase"
)

// countingStore counts reads so tests can assert Status answers from one snapshot.
type countingStore struct {
	purchase.Store
	reads atomic.Int32
}

func (store *countingStore) GetPurchased(context context.Context, bookID string) (bool, error) {
	store.reads.Add(1)
	return store.Store.GetPurchased(context, bookID)
}

func (store *countingStore) GetPurchaseDetails(context context.Context, bookID string) (*purchase.Details, error) {
	store.reads.Add(1)
	return store.Store.GetPurchaseDetails(context, bookID)
}

func TestService_StatusReadsOnce(t *testing.T) {
	store := &countingStore{Store: purchase.NewMemoryStore()}
	service := purchase.NewService(store)
	ctx := context.Background()

	status, err := service.Status(ctx, "book-1")
	require.NoError(t, err)
	assert.False(t, status.Purchased)
	assert.Nil(t, status.Details)
	assert.EqualValues(t, 1, store.reads.Load())

	require.NoError(t, service.Confirm(ctx, "book-1", "pay-1"))

	store.reads.Store(0)
	status, err = service.Status(ctx, "book-1")
	require.NoError(t, err)
	assert.True(t, status.Purchased)
	require.NotNil(t, status.Details)
	assert.Equal(t, "pay-1", status.Details.PaymentID)
	assert.EqualValues(t, 1, store.reads.Load())
}

func TestService_StatusConsistentUnderConfirm(t *testing.T) {
	service := purchase.NewService(purchase.NewMemoryStore())
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 200 {
			_ = service.Confirm(ctx, "book-2", "pay-2")
		}
	}()

	for range 200 {
		status, err := service.Status(ctx, "book-2")
		require.NoError(t, err)
		assert.Equal(t, status.Purchased, status.Details != nil)
	}
	<-done
}
