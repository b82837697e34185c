// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package purchase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/openreader/storefront/internal/platform/constants"
)

// BadgerStore persists purchases in an embedded Badger database as JSON
// values under the purchase key prefix. Listings come back in key order.
type BadgerStore struct {
	db     *badger.DB
	logger *slog.Logger
	now    Clock
}

/*
OpenBadgerStore opens (or creates) the database at path.

Parameters:
  - path: Data directory; ignored when inMemory is true
  - inMemory: Keep everything in RAM (tests)
  - logger: Structured logger for lifecycle events
*/
func OpenBadgerStore(path string, inMemory bool, logger *slog.Logger) (*BadgerStore, error) {
	options := badger.DefaultOptions(path)
	if inMemory {
		options = badger.DefaultOptions("").WithInMemory(true)
	}
	options.Logger = nil
	options.SyncWrites = !inMemory
	options.CompactL0OnClose = true

	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("badger: open %q: %w", path, err)
	}

	logger.Info("badger_store_opened", slog.String("path", path), slog.Bool("in_memory", inMemory))

	return &BadgerStore{db: db, logger: logger, now: systemClock}, nil
}

// Close flushes and closes the database.
func (store *BadgerStore) Close() error {
	store.logger.Info("badger_store_closing")
	return store.db.Close()
}

func badgerKey(bookID string) []byte {
	return []byte(constants.BadgerPrefixPurchase + bookID)
}

func (store *BadgerStore) GetPurchased(context context.Context, bookID string) (bool, error) {
	record, err := store.get(context, bookID)
	if err != nil {
		return false, err
	}
	return record != nil && record.Purchased, nil
}

func (store *BadgerStore) GetPurchaseDetails(context context.Context, bookID string) (*Details, error) {
	record, err := store.get(context, bookID)
	if err != nil || record == nil || !record.Purchased {
		return nil, err
	}
	return record.details(), nil
}

func (store *BadgerStore) SetPurchased(context context.Context, bookID, paymentID string) error {
	if err := context.Err(); err != nil {
		return err
	}

	purchasedAt := store.now()
	value, err := json.Marshal(Record{
		BookID:      bookID,
		Purchased:   true,
		PaymentID:   paymentID,
		PurchasedAt: &purchasedAt,
	})
	if err != nil {
		return fmt.Errorf("badger_purchase_encode_failed: %w", err)
	}

	err = store.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(bookID), value)
	})
	if err != nil {
		return fmt.Errorf("badger_purchase_set_failed: %w", err)
	}

	return nil
}

func (store *BadgerStore) ListPurchasedBooks(context context.Context) ([]Record, error) {
	if err := context.Err(); err != nil {
		return nil, err
	}

	records := make([]Record, 0)
	prefix := []byte(constants.BadgerPrefixPurchase)

	err := store.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Prefix = prefix

		iterator := txn.NewIterator(options)
		defer iterator.Close()

		for iterator.Seek(prefix); iterator.ValidForPrefix(prefix); iterator.Next() {
			var record Record
			err := iterator.Item().Value(func(value []byte) error {
				return json.Unmarshal(value, &record)
			})
			if err != nil {
				return err
			}
			if record.Purchased {
				records = append(records, record)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("badger_purchase_list_failed: %w", err)
	}

	return records, nil
}

func (store *BadgerStore) get(context context.Context, bookID string) (*Record, error) {
	if err := context.Err(); err != nil {
		return nil, err
	}

	var record Record
	err := store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(bookID))
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			return json.Unmarshal(value, &record)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("badger_purchase_get_failed: %w", err)
	}

	return &record, nil
}
