// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package purchase_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openreader/storefront/internal/core/purchase"
	redisclient "github.com/openreader/storefront/internal/platform/redis"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// runStoreContract checks the behaviour every purchase backend must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) purchase.Store) {
	ctx := context.Background()

	t.Run("absent_before_purchase", func(t *testing.T) {
		store := newStore(t)

		purchased, err := store.GetPurchased(ctx, "book-x")
		require.NoError(t, err)
		assert.False(t, purchased)

		details, err := store.GetPurchaseDetails(ctx, "book-x")
		require.NoError(t, err)
		assert.Nil(t, details)
	})

	t.Run("present_after_purchase", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.SetPurchased(ctx, "book-x", "pay-1"))

		purchased, err := store.GetPurchased(ctx, "book-x")
		require.NoError(t, err)
		assert.True(t, purchased)

		details, err := store.GetPurchaseDetails(ctx, "book-x")
		require.NoError(t, err)
		require.NotNil(t, details)
		assert.Equal(t, "pay-1", details.PaymentID)
		assert.NotNil(t, details.PurchasedAt)
	})

	t.Run("overwrite_is_silent", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.SetPurchased(ctx, "book-x", "pay-1"))
		require.NoError(t, store.SetPurchased(ctx, "book-x", "pay-2"))

		details, err := store.GetPurchaseDetails(ctx, "book-x")
		require.NoError(t, err)
		require.NotNil(t, details)
		assert.Equal(t, "pay-2", details.PaymentID)

		records, err := store.ListPurchasedBooks(ctx)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("list_contains_exactly_purchased", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.SetPurchased(ctx, "b1", "p1"))
		require.NoError(t, store.SetPurchased(ctx, "b2", "p2"))

		records, err := store.ListPurchasedBooks(ctx)
		require.NoError(t, err)

		got := make(map[string]string, len(records))
		for _, record := range records {
			assert.True(t, record.Purchased)
			got[record.BookID] = record.PaymentID
		}
		assert.Equal(t, map[string]string{"b1": "p1", "b2": "p2"}, got)
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) purchase.Store {
		return purchase.NewMemoryStore()
	})
}

func TestMemoryStore_InsertionOrder(t *testing.T) {
	store := purchase.NewMemoryStore()
	ctx := context.Background()

	for _, bookID := range []string{"c", "a", "b", "a"} {
		require.NoError(t, store.SetPurchased(ctx, bookID, "p-"+bookID))
	}

	records, err := store.ListPurchasedBooks(ctx)
	require.NoError(t, err)

	order := make([]string, 0, len(records))
	for _, record := range records {
		order = append(order, record.BookID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, order)
}

func TestBadgerStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) purchase.Store {
		store, err := purchase.OpenBadgerStore("", true, discardLogger())
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		return store
	})
}

func TestBadgerStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := purchase.OpenBadgerStore(dir, false, discardLogger())
	require.NoError(t, err)
	require.NoError(t, store.SetPurchased(ctx, "book-1", "pay-1"))
	require.NoError(t, store.Close())

	reopened, err := purchase.OpenBadgerStore(dir, false, discardLogger())
	require.NoError(t, err)
	defer reopened.Close()

	purchased, err := reopened.GetPurchased(ctx, "book-1")
	require.NoError(t, err)
	assert.True(t, purchased)
}

// TestRedisStore runs against a real server when REDIS_TEST_URL is set.
func TestRedisStore(t *testing.T) {
	redisURL := os.Getenv("REDIS_TEST_URL")
	if redisURL == "" {
		t.Skip("REDIS_TEST_URL not set")
	}

	runStoreContract(t, func(t *testing.T) purchase.Store {
		client, err := redisclient.NewClient(context.Background(), redisURL, discardLogger())
		require.NoError(t, err)
		require.NoError(t, client.FlushDB(context.Background()).Err())
		t.Cleanup(func() { _ = client.Close() })
		return purchase.NewRedisStore(client)
	})
}
