// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package purchase

import (
	"context"
	"sync"
)

// MemoryStore keeps purchases in process memory, listed in first-purchase order.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	order   []string
	now     Clock
}

// NewMemoryStore returns an empty store using the system clock.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(systemClock)
}

// NewMemoryStoreWithClock returns an empty store stamping records with now.
func NewMemoryStoreWithClock(now Clock) *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
		now:     now,
	}
}

func (store *MemoryStore) GetPurchased(_ context.Context, bookID string) (bool, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	return store.records[bookID].Purchased, nil
}

func (store *MemoryStore) GetPurchaseDetails(_ context.Context, bookID string) (*Details, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	record, ok := store.records[bookID]
	if !ok || !record.Purchased {
		return nil, nil
	}
	return record.details(), nil
}

func (store *MemoryStore) SetPurchased(_ context.Context, bookID, paymentID string) error {
	purchasedAt := store.now()

	store.mu.Lock()
	defer store.mu.Unlock()

	if _, exists := store.records[bookID]; !exists {
		store.order = append(store.order, bookID)
	}

	store.records[bookID] = Record{
		BookID:      bookID,
		Purchased:   true,
		PaymentID:   paymentID,
		PurchasedAt: &purchasedAt,
	}

	return nil
}

func (store *MemoryStore) ListPurchasedBooks(_ context.Context) ([]Record, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	records := make([]Record, 0, len(store.order))
	for _, bookID := range store.order {
		if record := store.records[bookID]; record.Purchased {
			records = append(records, record)
		}
	}
	return records, nil
}
